// Package servo maps joint angles onto hobby servo pulse widths and
// defines the actuation interface the control loop writes through.
package servo

import (
	"context"
	"math"

	"go.viam.com/armpad/arm"
)

// Standard hobby servo actuation range.
const (
	DefaultMinDeg float64 = 0
	DefaultMaxDeg float64 = 180
	DefaultMinUs  int     = 600
	DefaultMaxUs  int     = 2400
)

// PulseRange converts a commanded angle into a pulse width. The zero
// value is not usable; use DefaultPulseRange for a stock 180 degree servo.
type PulseRange struct {
	MinDeg float64 `json:"min_deg"`
	MaxDeg float64 `json:"max_deg"`
	MinUs  int     `json:"min_us"`
	MaxUs  int     `json:"max_us"`
}

// DefaultPulseRange maps 0-180 degrees onto 600-2400 microseconds.
func DefaultPulseRange() PulseRange {
	return PulseRange{
		MinDeg: DefaultMinDeg,
		MaxDeg: DefaultMaxDeg,
		MinUs:  DefaultMinUs,
		MaxUs:  DefaultMaxUs,
	}
}

// ToPulse clamps deg into the degree range and linearly interpolates it
// onto the pulse range, rounded to the nearest microsecond. There is no
// error path, the clamp makes every input legal.
func (p PulseRange) ToPulse(deg float64) int {
	if deg < p.MinDeg {
		deg = p.MinDeg
	}
	if deg > p.MaxDeg {
		deg = p.MaxDeg
	}
	scale := float64(p.MaxUs-p.MinUs) / (p.MaxDeg - p.MinDeg)
	return int(math.Round(float64(p.MinUs) + (deg-p.MinDeg)*scale))
}

// Writer transmits pulse widths to the physical servos. Implementations
// must accept any value in the pulse range without error.
type Writer interface {
	WritePulse(ctx context.Context, joint arm.Joint, us int) error
	Close(ctx context.Context) error
}
