// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// Source produces elements for a Subscriber. Subscribe starts the flow and
// returns the handle that stops it. Elements and terminal signals flow from
// the source to the subscriber; acknowledgments flow backward.
type Source[A any] interface {
	Subscribe(sub *Subscriber[A]) Cancelable
}

// SourceFunc adapts a subscribe function to the Source interface.
type SourceFunc[A any] func(*Subscriber[A]) Cancelable

// Subscribe implements Source.
func (f SourceFunc[A]) Subscribe(sub *Subscriber[A]) Cancelable {
	return f(sub)
}

// FromSlice returns a finite source delivering items in order, one
// acknowledgment at a time. Delivery is batched per the subscriber's
// execution model: up to BatchSize elements run synchronously before the
// next batch is resubmitted to the scheduler.
func FromSlice[A any](items ...A) Source[A] {
	return SourceFunc[A](func(sub *Subscriber[A]) Cancelable {
		p := &sliceProducer[A]{sub: sub, items: items}
		if sub.Sched().Model().IsAlwaysAsync() {
			sub.Sched().Execute(func() { p.turn() })
		} else {
			p.turn()
		}
		return &p.stop
	})
}

// sliceProducer owns the per-subscription cursor. It is mutated only by the
// single logical owner of the subscription.
type sliceProducer[A any] struct {
	sub   *Subscriber[A]
	items []A
	index int
	stop  Flag
}

// turn delivers elements until the batch allowance is exhausted, the
// acknowledgment goes asynchronous, Stop is observed, or the slice ends.
func (p *sliceProducer[A]) turn() {
	model := p.sub.Sched().Model()
	frame := 0
	for {
		if p.stop.Canceled() {
			return
		}
		if p.index >= len(p.items) {
			p.sub.OnComplete()
			return
		}
		elem := p.items[p.index]
		p.index++
		ack := p.sub.OnNext(elem)
		out, err := ack.TryGet()
		if err != nil {
			ack.OnComplete(func(out kont.Either[error, Ack]) {
				if ackValue(out) != Continue || p.stop.Canceled() {
					return
				}
				p.sub.Sched().Execute(func() { p.turn() })
			})
			return
		}
		if ackValue(out) != Continue {
			return
		}
		frame++
		if !model.CanSync(frame) {
			p.sub.Sched().Execute(func() { p.turn() })
			return
		}
	}
}
