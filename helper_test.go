// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux_test

import (
	"code.hybscloud.com/flux"
)

// recorder is a scripted consumer: it records every signal and answers each
// element with ContinueAck unless the script says otherwise.
type recorder[A any] struct {
	items     []A
	completes int
	errs      []error

	// stopAfter answers Stop once this many elements were recorded
	// (0 = never stop).
	stopAfter int

	// ackFunc, when set, may override the acknowledgment for delivery i
	// (0-based). Returning nil falls through to the default answer.
	ackFunc func(i int, a A) *flux.Deferred[flux.Ack]
}

func (r *recorder[A]) OnNext(a A) *flux.Deferred[flux.Ack] {
	i := len(r.items)
	r.items = append(r.items, a)
	if r.ackFunc != nil {
		if ack := r.ackFunc(i, a); ack != nil {
			return ack
		}
	}
	if r.stopAfter > 0 && len(r.items) >= r.stopAfter {
		return flux.StopAck
	}
	return flux.ContinueAck
}

func (r *recorder[A]) OnComplete() {
	r.completes++
}

func (r *recorder[A]) OnError(err error) {
	r.errs = append(r.errs, err)
}

// counting is an Unfold step yielding 0, 1, 2, ... with synchronous
// resolution.
func counting(s int) *flux.Deferred[flux.Yield[int, int]] {
	return flux.Done(flux.Yield[int, int]{Elem: s, Next: s + 1})
}

// tickAll advances the scheduler until the queue stays empty, returning the
// number of tasks run. The producer must halt on its own (Stop, terminal,
// or cancellation), otherwise tickAll spins forever.
func tickAll(sched *flux.Sched) int {
	n := 0
	for sched.Tick() {
		n++
	}
	return n
}
