// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"sync/atomic"
)

// Cancelable is the idempotent "stop the upstream" token returned by every
// subscription. Cancellation is best-effort: it prevents future sends but
// does not retract an element already dispatched, and it never blocks
// waiting for an outstanding acknowledgment.
type Cancelable interface {
	Cancel()
}

// Flag is a boolean Cancelable. Cancel sets the flag; producers test it
// before invoking the state action and before each scheduled continuation.
// The zero value is ready to use.
type Flag struct {
	state atomic.Uint32
}

// Cancel sets the flag. Calling it again is a no-op.
func (f *Flag) Cancel() {
	f.state.Store(1)
}

// Canceled reports whether Cancel has been called.
func (f *Flag) Canceled() bool {
	return f.state.Load() != 0
}
