// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// Yield is one step of an asynchronous state machine: the element produced
// and the state for the next step.
type Yield[A, S any] struct {
	Elem A
	Next S
}

// Unfold produces a lazy, potentially endless sequence of elements by
// repeatedly invoking step, threading the state value through each
// invocation. The step's deferred result may resolve immediately or later,
// and may fail; a failure terminates the sequence with exactly one OnError.
// The sequence also ends when the subscriber answers Stop or the returned
// handle is canceled — after cancellation, no terminal signal is delivered.
//
// Synchronous resolutions run in place while the execution model's
// allowance lasts. Unfold consumes the batch at half rate — two generator
// steps share one fairness quantum with downstream operators that spend one
// unit per element — after which the next iteration is resubmitted to the
// scheduler to bound stack depth. Under AlwaysAsync every step, including
// the first, runs as its own scheduled task.
func Unfold[S, A any](initial S, step func(S) *Deferred[Yield[A, S]]) Source[A] {
	return SourceFunc[A](func(sub *Subscriber[A]) Cancelable {
		g := &generator[S, A]{
			sub:       sub,
			step:      step,
			allowance: sub.Sched().Model().BatchSize() / 2,
		}
		if g.allowance == 0 {
			sub.Sched().Execute(func() { g.turn(initial) })
		} else {
			g.turn(initial)
		}
		return &g.stop
	})
}

// generator owns the per-subscription loop state. The state value itself is
// passed between turns, never shared; only the stop flag crosses goroutines.
type generator[S, A any] struct {
	sub       *Subscriber[A]
	step      func(S) *Deferred[Yield[A, S]]
	allowance int
	stop      Flag
}

// turn runs one trampoline turn: up to the synchronous allowance of steps
// (at least one when the turn itself was scheduled). A pending step
// resolution or an exhausted allowance resubmits the next iteration instead
// of recursing.
func (g *generator[S, A]) turn(state S) {
	frame := 0
	for {
		if g.stop.Canceled() {
			return
		}
		d := g.step(state)
		out, err := d.TryGet()
		if err != nil {
			// Pending: deliver on the resolver's context, then resubmit
			// with a fresh batch.
			d.OnComplete(func(out kont.Either[error, Yield[A, S]]) {
				next, again := g.emit(out)
				if again {
					g.sub.Sched().Execute(func() { g.turn(next) })
				}
			})
			return
		}
		next, again := g.emit(out)
		if !again {
			return
		}
		state = next
		frame++
		if frame >= g.allowance {
			// Stack-safety trampoline: resubmit instead of recursing.
			g.sub.Sched().Execute(func() { g.turn(state) })
			return
		}
	}
}

// emit handles one resolved step outcome: cancellation, terminal error, or
// element delivery. It reports the next state and whether the caller may
// keep iterating synchronously. When the element's acknowledgment is
// pending, emit registers the trampolined continuation itself and reports
// false.
func (g *generator[S, A]) emit(out kont.Either[error, Yield[A, S]]) (S, bool) {
	var zero S
	if g.stop.Canceled() {
		return zero, false
	}
	if e, ok := out.GetLeft(); ok {
		g.sub.OnError(e)
		return zero, false
	}
	y, _ := out.GetRight()
	ack := g.sub.OnNext(y.Elem)
	if ackOut, err := ack.TryGet(); err == nil {
		if ackValue(ackOut) != Continue {
			return zero, false
		}
		return y.Next, true
	}
	ack.OnComplete(func(ackOut kont.Either[error, Ack]) {
		if ackValue(ackOut) != Continue || g.stop.Canceled() {
			return
		}
		g.sub.Sched().Execute(func() { g.turn(y.Next) })
	})
	return zero, false
}
