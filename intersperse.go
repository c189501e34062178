// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// Intersperse returns a source emitting separator between each pair of
// consecutive upstream elements. An empty upstream passes through
// untouched.
func Intersperse[A any](src Source[A], separator A) Source[A] {
	return &intersperseSource[A]{src: src, sep: separator}
}

// IntersperseWith additionally emits start before the first upstream
// element and end after the upstream completes. Neither marker is emitted
// when the upstream terminates without producing any element, and an
// upstream error is forwarded without markers.
func IntersperseWith[A any](src Source[A], start, separator, end A) Source[A] {
	s := &intersperseSource[A]{src: src, sep: separator}
	s.start, s.end = &start, &end
	return s
}

type intersperseSource[A any] struct {
	src        Source[A]
	start, end *A
	sep        A
}

// Subscribe wires the marker-inserting observer between upstream and down.
// Cancellation forwards to the upstream handle unchanged.
func (s *intersperseSource[A]) Subscribe(down *Subscriber[A]) Cancelable {
	op := &intersperseObserver[A]{
		down:    down,
		start:   s.start,
		end:     s.end,
		sep:     s.sep,
		lastAck: ContinueAck,
	}
	return s.src.Subscribe(NewSubscriber[A](op, down.Sched()))
}

// intersperseObserver owns the per-subscription state. Fields are mutated
// only under the serialized acknowledgment protocol; no locking.
type intersperseObserver[A any] struct {
	down       *Subscriber[A]
	start, end *A
	sep        A

	// atLeastOne records whether any upstream element has been forwarded;
	// it selects between the start marker and the separator on OnNext.
	atLeastOne bool

	// lastAck is the latest acknowledgment owed by downstream. Terminal
	// signals wait on it so they never race ahead of an in-flight element
	// chain.
	lastAck *Deferred[Ack]
}

// OnNext forwards marker and element as one chained delivery. The
// acknowledgment returned upstream resolves only once both sends have
// resolved in order; Stop on the first send short-circuits the second.
func (o *intersperseObserver[A]) OnNext(elem A) *Deferred[Ack] {
	var ack *Deferred[Ack]
	if !o.atLeastOne {
		o.atLeastOne = true
		if o.start != nil {
			ack = o.sendPair(*o.start, elem)
		} else {
			ack = o.down.OnNext(elem)
		}
	} else {
		ack = o.sendPair(o.sep, elem)
	}
	o.lastAck = ack
	return ack
}

// sendPair delivers marker, then elem once the marker's acknowledgment
// resolves to Continue. Both sends completing synchronously keeps the whole
// chain allocation-free.
func (o *intersperseObserver[A]) sendPair(marker, elem A) *Deferred[Ack] {
	first := o.down.OnNext(marker)
	if out, err := first.TryGet(); err == nil {
		if ackValue(out) != Continue {
			return StopAck
		}
		return o.down.OnNext(elem)
	}
	chained := NewDeferred[Ack]()
	first.OnComplete(func(out kont.Either[error, Ack]) {
		if ackValue(out) != Continue {
			chained.Complete(Stop)
			return
		}
		link(o.down.OnNext(elem), chained)
	})
	return chained
}

// OnComplete waits for the last chained acknowledgment, forwards the end
// marker when one is configured and at least one element was seen, then
// completes downstream. Stop anywhere along the way suppresses the rest.
func (o *intersperseObserver[A]) OnComplete() {
	o.lastAck.OnComplete(func(out kont.Either[error, Ack]) {
		if ackValue(out) != Continue {
			return
		}
		if o.atLeastOne && o.end != nil {
			o.down.OnNext(*o.end).OnComplete(func(out kont.Either[error, Ack]) {
				if ackValue(out) != Continue {
					return
				}
				o.down.OnComplete()
			})
			return
		}
		o.down.OnComplete()
	})
}

// OnError waits for the last chained acknowledgment before forwarding, so
// the error cannot race ahead of an in-flight element chain. If downstream
// already answered Stop it has opted out of all further signals and the
// error is suppressed.
func (o *intersperseObserver[A]) OnError(err error) {
	o.lastAck.OnComplete(func(out kont.Either[error, Ack]) {
		if ackValue(out) != Continue {
			return
		}
		o.down.OnError(err)
	})
}
