// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flux provides push-based, back-pressured asynchronous streams.
//
// A producer pushes elements to a consumer; the consumer acknowledges each
// element with [Continue] or [Stop], synchronously or after thinking. The
// acknowledgment chain is the entire flow-control and synchronization
// discipline: at most one acknowledgment is outstanding per subscription,
// which serializes every callback without locks.
//
// # Architecture
//
//   - Acknowledgments: [Ack] values travel as [Deferred] cells.
//     Non-blocking inspection via TryGet returns [code.hybscloud.com/iox.ErrWouldBlock]
//     while pending; [ContinueAck] and [StopAck] serve synchronous answers
//     without allocation.
//   - Contract: [Observer] receives OnNext/OnComplete/OnError, logically
//     serialized; a terminal signal arrives at most once and never while an
//     acknowledgment is outstanding. [Subscriber] couples an Observer with
//     its [Sched] and a monotonically increasing [Serial].
//   - Scheduling: [Sched] is an explicit run queue (bounded lock-free SPSC
//     ring via [code.hybscloud.com/lfq]) driven by Tick/Drain or the
//     blocking [Collect]. [ExecModel] bounds consecutive synchronous steps;
//     exhausting the allowance trampolines the continuation through the
//     queue instead of recursing, bounding stack depth.
//   - Cancellation: every Subscribe returns an idempotent [Cancelable];
//     operators forward it upstream. Cancellation is best-effort: it
//     prevents future sends, suppresses terminal signals, and never waits
//     for an outstanding acknowledgment.
//
// # API Topologies
//
//   - Sources: [FromSlice], [Unfold] (asynchronous state-action generator),
//     [SourceFunc] for custom producers.
//   - Operators: [Intersperse], [IntersperseWith] — marker injection with
//     chained acknowledgments; the pattern for operator authors.
//   - Drivers: [Collect] and [CollectN] evaluate a stream to completion on
//     the calling goroutine, waiting past quiet periods with adaptive
//     backoff (iox.Backoff). [Sched.Tick] and [Sched.Drain] advance the
//     trampoline deterministically for event-loop integration.
//
// # Example
//
//	sched := flux.NewSched(flux.DefaultModel)
//	nums := flux.Unfold(0, func(s int) *flux.Deferred[flux.Yield[int, int]] {
//		return flux.Done(flux.Yield[int, int]{Elem: s, Next: s + 1})
//	})
//	first, _ := flux.CollectN(sched, nums, 5)
//	// first == [0 1 2 3 4]
package flux
