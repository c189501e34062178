// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

// defaultBatchSize is the fairness quantum of the zero-value and default
// execution models. 1024 amortizes scheduler hops on synchronous hot paths
// while still yielding often enough for other subscriptions to run.
const defaultBatchSize = 1024

// ExecModel is the policy deciding how many consecutive synchronous steps a
// producer may take before the scheduler forces a trampoline turn. It is a
// value type; the zero value behaves as DefaultModel.
type ExecModel struct {
	batch int
}

// Batched returns a model permitting up to n synchronous fairness units
// between forced yields. Panics if n < 1.
func Batched(n int) ExecModel {
	if n < 1 {
		panic("flux: batch size must be at least 1")
	}
	return ExecModel{batch: n}
}

// AlwaysAsync forces a scheduler hop for every single step, including the
// first one after subscribing. Equivalent to Batched(1).
var AlwaysAsync = ExecModel{batch: 1}

// DefaultModel is the batched model schedulers carry unless configured
// otherwise.
var DefaultModel = ExecModel{batch: defaultBatchSize}

// BatchSize returns the model's fairness quantum.
func (m ExecModel) BatchSize() int {
	if m.batch == 0 {
		return defaultBatchSize
	}
	return m.batch
}

// CanSync reports whether a producer that has already spent frame fairness
// units since its last yield may take one more synchronous step.
func (m ExecModel) CanSync(frame int) bool {
	return frame < m.BatchSize()
}

// IsAlwaysAsync reports whether every step must run as its own scheduled
// task.
func (m ExecModel) IsAlwaysAsync() bool {
	return m.batch == 1
}
