// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"sync/atomic"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// Deferred cell states. A cell moves empty → completed (completion first),
// or empty → observed → delivered (observation first). Completed and
// delivered are both terminal for resolution; only the empty → observed
// transition reserves the single pending-observer slot.
const (
	deferredEmpty uint32 = iota
	deferredObserved
	deferredCompleted
	deferredDelivered
)

// Deferred is a single-assignment asynchronous cell: a value that may not
// yet be known. It resolves synchronously or asynchronously, at most once,
// and may fail. The outcome is a kont.Either — Left carries the failure,
// Right the value.
//
// A pending cell accepts a single observer; a completed cell may be
// observed any number of times. Observation follows the dual path: the
// callback runs inline when the outcome is already known, and is registered
// otherwise. Resolution and observation may race across goroutines; the
// cell serializes them with a lock-free state machine, no mutexes, no
// channels.
type Deferred[T any] struct {
	state    atomic.Uint32
	won      atomic.Uint32
	out      kont.Either[error, T]
	observer func(kont.Either[error, T])
}

// NewDeferred returns an unresolved cell.
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{}
}

// Done returns a cell already completed with v.
func Done[T any](v T) *Deferred[T] {
	d := &Deferred[T]{out: kont.Right[error](v)}
	d.won.Store(1)
	d.state.Store(deferredCompleted)
	return d
}

// Failed returns a cell already failed with err.
func Failed[T any](err error) *Deferred[T] {
	d := &Deferred[T]{out: kont.Left[error, T](err)}
	d.won.Store(1)
	d.state.Store(deferredCompleted)
	return d
}

// Complete resolves the cell with v. A registered observer runs
// synchronously on the caller's context. Panics if the cell has already
// been resolved.
func (d *Deferred[T]) Complete(v T) {
	d.settle(kont.Right[error](v))
}

// Fail resolves the cell with err. A registered observer runs synchronously
// on the caller's context. Panics if the cell has already been resolved.
func (d *Deferred[T]) Fail(err error) {
	d.settle(kont.Left[error, T](err))
}

// settle is the single resolution path behind Complete and Fail.
func (d *Deferred[T]) settle(out kont.Either[error, T]) {
	if d.won.Add(1) != 1 {
		panic("flux: deferred completed twice")
	}
	d.out = out
	if d.state.CompareAndSwap(deferredEmpty, deferredCompleted) {
		return
	}
	// An observer was registered first: hand the outcome over.
	if d.state.CompareAndSwap(deferredObserved, deferredDelivered) {
		d.observer(out)
	}
}

// TryGet returns the outcome without blocking, or iox.ErrWouldBlock while
// the cell is still pending.
func (d *Deferred[T]) TryGet() (kont.Either[error, T], error) {
	switch d.state.Load() {
	case deferredCompleted, deferredDelivered:
		return d.out, nil
	}
	var zero kont.Either[error, T]
	return zero, iox.ErrWouldBlock
}

// OnComplete observes the cell: f runs inline if the outcome is already
// known, and is registered to run on the resolver's context otherwise.
// At most one observer may be registered while the cell is pending;
// a second pending registration panics.
func (d *Deferred[T]) OnComplete(f func(kont.Either[error, T])) {
	for {
		switch d.state.Load() {
		case deferredEmpty:
			d.observer = f
			if d.state.CompareAndSwap(deferredEmpty, deferredObserved) {
				return
			}
			// Lost the race against settle; the cell is completed now.
		case deferredObserved:
			panic("flux: deferred observed twice while pending")
		case deferredCompleted, deferredDelivered:
			f(d.out)
			return
		}
	}
}

// Wait blocks until the cell resolves, backing off adaptively
// (iox.Backoff), and returns the outcome.
func (d *Deferred[T]) Wait() kont.Either[error, T] {
	var bo iox.Backoff
	for {
		out, err := d.TryGet()
		if err == nil {
			return out
		}
		bo.Wait()
	}
}

// link forwards from's outcome into into when it resolves.
func link[T any](from, into *Deferred[T]) {
	from.OnComplete(into.settle)
}
