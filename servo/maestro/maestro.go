// Package maestro drives servos through a Pololu Maestro controller
// using the compact serial protocol.
//
// See: https://www.pololu.com/docs/pdf/0J40/maestro.pdf
package maestro

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"go.bug.st/serial"
	"go.uber.org/multierr"

	"go.viam.com/armpad/arm"
	armservo "go.viam.com/armpad/servo"
)

const (
	cmdSetTarget = 0x84
	cmdGoHome    = 0xa2

	// DefaultBaudRate is the Maestro's fixed-baud default.
	DefaultBaudRate = 9600
)

// Config selects the serial port and the channel wired to each joint.
type Config struct {
	Port     string            `json:"port"`
	BaudRate int               `json:"baud_rate,omitempty"`
	Channels map[arm.Joint]int `json:"channels"`
}

// Validate checks the port and channel assignments.
func (c *Config) Validate() error {
	var err error
	if c.Port == "" {
		err = multierr.Append(err, errors.New("port is required"))
	}
	if len(c.Channels) == 0 {
		err = multierr.Append(err, errors.New("at least one channel assignment is required"))
	}
	for joint, ch := range c.Channels {
		if ch < 0 || ch > 23 {
			err = multierr.Append(err, errors.Errorf("%s: channel %d outside 0-23", joint, ch))
		}
	}
	return err
}

type writer struct {
	mu       sync.Mutex
	port     serial.Port
	channels map[arm.Joint]int
}

// New opens the Maestro's command port and returns a servo writer.
func New(cfg *Config) (armservo.Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid maestro config")
	}
	baud := cfg.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, errors.Wrapf(err, "couldn't open maestro port %s", cfg.Port)
	}
	channels := make(map[arm.Joint]int, len(cfg.Channels))
	for j, ch := range cfg.Channels {
		channels[j] = ch
	}
	return &writer{port: port, channels: channels}, nil
}

// setTargetFrame builds a compact-protocol set-target command. The
// Maestro wants the target in quarter microseconds, split into two
// 7 bit bytes, low first.
func setTargetFrame(channel, us int) []byte {
	quarters := us * 4
	return []byte{
		cmdSetTarget,
		byte(channel),
		byte(quarters & 0x7f),
		byte((quarters >> 7) & 0x7f),
	}
}

func (w *writer) WritePulse(ctx context.Context, joint arm.Joint, us int) error {
	channel, ok := w.channels[joint]
	if !ok {
		return errors.Errorf("no maestro channel assigned to joint %q", joint)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, err := w.port.Write(setTargetFrame(channel, us)); err != nil {
		return errors.Wrapf(err, "maestro write failed for joint %q", joint)
	}
	return nil
}

// Close sends the controller home before releasing the port so the arm
// doesn't hold its last commanded pose unpowered.
func (w *writer) Close(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, homeErr := w.port.Write([]byte{cmdGoHome})
	return multierr.Combine(
		errors.Wrap(homeErr, "maestro go-home failed"),
		w.port.Close(),
	)
}
