// Package tone gives the operator audible feedback. Cues are
// fire-and-forget; the control loop never acts on a beep failing.
package tone

import (
	"context"
	"time"
)

// Standard cues.
const (
	ReadyFreqHz       = 1200
	ReadyDuration     = 150 * time.Millisecond
	UnreachableFreqHz = 300
	UnreachableDur    = 100 * time.Millisecond
)

// Beeper emits a tone at the given frequency for the given duration.
type Beeper interface {
	Beep(ctx context.Context, freqHz uint, d time.Duration) error
	Close(ctx context.Context) error
}
