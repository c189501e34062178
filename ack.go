// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flux

import (
	"code.hybscloud.com/kont"
)

// Ack is the acknowledgment a consumer returns for each delivered element.
// It is the back-pressure signal: a producer must not deliver element k+1
// until the acknowledgment for element k has resolved to Continue.
type Ack uint32

const (
	// Continue tells the producer to keep sending.
	Continue Ack = iota
	// Stop tells the producer to cease sending. Stop is terminal for the
	// subscription: once a producer observes it, no further signals of any
	// kind are delivered downstream.
	Stop
)

// String implements fmt.Stringer.
func (a Ack) String() string {
	switch a {
	case Continue:
		return "Continue"
	case Stop:
		return "Stop"
	}
	return "Ack(invalid)"
}

// ContinueAck and StopAck are pre-completed acknowledgment cells shared by
// synchronous consumer paths. A completed Deferred may be observed any
// number of times, so sharing keeps the synchronous path allocation-free.
var (
	ContinueAck = Done(Continue)
	StopAck     = Done(Stop)
)

// ackValue extracts the signal from a resolved acknowledgment outcome.
// A failed acknowledgment is folded to Stop: a consumer whose
// acknowledgment machinery broke is in no state to receive more signals.
func ackValue(out kont.Either[error, Ack]) Ack {
	return kont.MatchEither(out,
		func(error) Ack { return Stop },
		func(a Ack) Ack { return a },
	)
}
