// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// taskCapacity is the bounded capacity of the scheduler's run queue.
// The trampoline protocol keeps at most one continuation per subscription
// in flight, so a small ring suffices; Execute waits past transient bursts.
const taskCapacity = 64

// Sched is an explicit run queue of trampolined tasks together with the
// execution model producers consult for their synchronous allowance.
//
// Tasks are enqueued by the single logical owner of a subscription and run
// by whoever drives the queue (Tick, Drain, or a blocking driver such as
// Collect). The queue is a bounded lock-free SPSC ring from lfq: ownership
// of the producing side may move across goroutines over time, but the
// acknowledgment protocol guarantees at most one producer at any instant.
type Sched struct {
	q     lfq.SPSC[func()]
	model ExecModel
}

// NewSched returns a scheduler carrying the given execution model.
func NewSched(model ExecModel) *Sched {
	s := &Sched{model: model}
	s.q.Init(taskCapacity)
	return s
}

// Model returns the execution model consulted by producers on this
// scheduler.
func (s *Sched) Model() ExecModel {
	return s.model
}

// Execute enqueues a task for a later Tick. Waits past a transiently full
// queue with adaptive backoff (iox.Backoff).
func (s *Sched) Execute(task func()) {
	var bo iox.Backoff
	for {
		if err := s.q.Enqueue(&task); err == nil {
			return
		}
		bo.Wait()
	}
}

// Tick runs one pending task. Returns false if the queue was empty.
func (s *Sched) Tick() bool {
	task, err := s.q.Dequeue()
	if err != nil {
		return false
	}
	task()
	return true
}

// Drain runs pending tasks until the queue is empty, including tasks
// enqueued by the tasks it runs.
func (s *Sched) Drain() {
	for s.Tick() {
	}
}
