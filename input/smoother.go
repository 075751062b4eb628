package input

import "gonum.org/v1/gonum/stat"

// RollingMean smooths a jittery axis by averaging the last n samples.
// Not goroutine safe; callers serialize access.
type RollingMean struct {
	window []float64
	size   int
	next   int
	filled bool
}

// NewRollingMean returns a smoother over a window of size samples.
func NewRollingMean(size int) *RollingMean {
	if size < 1 {
		size = 1
	}
	return &RollingMean{window: make([]float64, size), size: size}
}

// Add records a sample and returns the current mean.
func (r *RollingMean) Add(v float64) float64 {
	r.window[r.next] = v
	r.next++
	if r.next == r.size {
		r.next = 0
		r.filled = true
	}
	return r.Value()
}

// Value returns the mean of the recorded samples, or 0 if none.
func (r *RollingMean) Value() float64 {
	if r.filled {
		return stat.Mean(r.window, nil)
	}
	if r.next == 0 {
		return 0
	}
	return stat.Mean(r.window[:r.next], nil)
}
