// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"sync/atomic"

	"code.hybscloud.com/iox"
)

// Collect subscribes a collecting consumer to src and drives sched until
// the stream terminates. Returns the delivered elements and the terminal
// error, if any. Waits past quiet periods with adaptive backoff
// (iox.Backoff), without spawning goroutines or creating channels.
func Collect[A any](sched *Sched, src Source[A]) ([]A, error) {
	return collect(sched, src, 0)
}

// CollectN is Collect with a consumer that answers Stop after n elements,
// halting the producer. The terminal error is nil in that case: Stop opts
// out of all further signals, terminals included.
func CollectN[A any](sched *Sched, src Source[A], n int) ([]A, error) {
	return collect(sched, src, n)
}

func collect[A any](sched *Sched, src Source[A], limit int) ([]A, error) {
	c := &collector[A]{limit: limit}
	src.Subscribe(NewSubscriber[A](c, sched))
	var bo iox.Backoff
	for c.done.Load() == 0 {
		if sched.Tick() {
			bo.Reset()
		} else {
			bo.Wait()
		}
	}
	return c.items, c.err
}

// collector accumulates elements and latches the terminal outcome.
// items and err are written on the producing context and read by the
// driving goroutine only after done publishes them.
type collector[A any] struct {
	limit int
	items []A
	err   error
	done  atomic.Uint32
}

func (c *collector[A]) OnNext(a A) *Deferred[Ack] {
	c.items = append(c.items, a)
	if c.limit > 0 && len(c.items) >= c.limit {
		c.done.Store(1)
		return StopAck
	}
	return ContinueAck
}

func (c *collector[A]) OnComplete() {
	c.done.Store(1)
}

func (c *collector[A]) OnError(err error) {
	c.err = err
	c.done.Store(1)
}
