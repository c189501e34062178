// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// Observer consumes a pushed stream of elements.
//
// The protocol serializes all callbacks: OnNext is never invoked before the
// acknowledgment for the previous element has resolved to Continue, and a
// terminal callback (OnComplete or OnError) arrives at most once, never
// both, and never while an acknowledgment is outstanding. Execution may hop
// across goroutines over time, but it is logically sequential —
// implementations need no locking for state touched only from these
// callbacks.
type Observer[A any] interface {
	// OnNext delivers one element. The returned acknowledgment may be
	// pre-completed (ContinueAck, StopAck) for synchronous consumers, or
	// completed later when the consumer needs to think before answering.
	OnNext(a A) *Deferred[Ack]

	// OnComplete signals normal termination.
	OnComplete()

	// OnError signals abnormal termination.
	OnError(err error)
}

// Subscriber couples an Observer with the scheduling context producers
// consult to decide synchronous versus trampolined execution.
type Subscriber[A any] struct {
	Observer[A]
	sched  *Sched
	serial Serial
}

// NewSubscriber pairs obs with sched and assigns the next subscription
// serial.
func NewSubscriber[A any](obs Observer[A], sched *Sched) *Subscriber[A] {
	return &Subscriber[A]{Observer: obs, sched: sched, serial: nextSerial()}
}

// Sched returns the subscriber's scheduling context.
func (s *Subscriber[A]) Sched() *Sched {
	return s.sched
}

// Serial returns the serial number assigned to this subscription.
func (s *Subscriber[A]) Serial() Serial {
	return s.serial
}
