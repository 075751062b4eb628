// Package gamepad reads a dual-stick game controller through the kernel
// event layer and keeps a last-known-state snapshot for polling.
package gamepad

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Config selects the event device and tuning for the pad.
type Config struct {
	// Device is the evdev node, e.g. /dev/input/event0.
	Device string `json:"device"`
	// Deadband around the axis center treated as noise; raw byte units.
	Deadband int `json:"deadband,omitempty"`
	// SmoothingWindow is how many samples each axis is averaged over.
	// Zero disables smoothing.
	SmoothingWindow int `json:"smoothing_window,omitempty"`
}

// Validate checks the device path.
func (c *Config) Validate() error {
	var err error
	if c.Device == "" {
		err = multierr.Append(err, errors.New("device is required"))
	}
	if c.SmoothingWindow < 0 {
		err = multierr.Append(err, errors.New("smoothing_window cannot be negative"))
	}
	return err
}
