// Package gpio drives servos directly from PWM-capable GPIO pins via
// periph.io, for boards wired without a dedicated servo controller.
package gpio

import (
	"context"
	"math"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"go.viam.com/armpad/arm"
	armservo "go.viam.com/armpad/servo"
)

// Hobby servos expect a 50Hz frame.
const pwmFrequency = 50 * physic.Hertz

// Config assigns a PWM pin to each joint, by periph pin name.
type Config struct {
	Pins map[arm.Joint]string `json:"pins"`
}

// Validate checks that at least one pin is assigned.
func (c *Config) Validate() error {
	if len(c.Pins) == 0 {
		return errors.New("at least one pin assignment is required")
	}
	return nil
}

type writer struct {
	pins map[arm.Joint]gpio.PinIO
}

// New initializes the host drivers and resolves the configured pins.
func New(cfg *Config) (armservo.Writer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid gpio servo config")
	}
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "host init failed")
	}
	pins := make(map[arm.Joint]gpio.PinIO, len(cfg.Pins))
	for joint, name := range cfg.Pins {
		pin := gpioreg.ByName(name)
		if pin == nil {
			return nil, errors.Errorf("no gpio pin named %q for joint %q", name, joint)
		}
		pins[joint] = pin
	}
	return &writer{pins: pins}, nil
}

func (w *writer) WritePulse(ctx context.Context, joint arm.Joint, us int) error {
	pin, ok := w.pins[joint]
	if !ok {
		return errors.Errorf("no gpio pin assigned to joint %q", joint)
	}
	duty := pulseToDuty(us)
	if err := pin.PWM(duty, pwmFrequency); err != nil {
		return errors.Wrapf(err, "pwm write failed for joint %q", joint)
	}
	return nil
}

// pulseToDuty converts a pulse width into a duty cycle for one 20ms
// servo frame.
func pulseToDuty(us int) gpio.Duty {
	periodUs := 1e6 / float64(pwmFrequency/physic.Hertz)
	return gpio.Duty(math.Round(float64(us) / periodUs * float64(gpio.DutyMax)))
}

func (w *writer) Close(ctx context.Context) error {
	var err error
	for joint, pin := range w.pins {
		err = multierr.Append(err, errors.Wrapf(pin.Halt(), "halting %q pin", joint))
	}
	return err
}
