// Package buzzer drives a piezo on a PWM-capable GPIO pin via periph.io.
package buzzer

import (
	"context"
	"time"

	"github.com/pkg/errors"
	goutils "go.viam.com/utils"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"

	"go.viam.com/armpad/tone"
)

type buzzer struct {
	pin gpio.PinIO
}

// New resolves the named pin and returns a beeper for it.
func New(pinName string) (tone.Beeper, error) {
	if _, err := host.Init(); err != nil {
		return nil, errors.Wrap(err, "host init failed")
	}
	pin := gpioreg.ByName(pinName)
	if pin == nil {
		return nil, errors.Errorf("no gpio pin named %q for buzzer", pinName)
	}
	return &buzzer{pin: pin}, nil
}

// Beep holds a square wave at freqHz for d, then silences the pin.
// Blocks for the duration; callers wanting fire-and-forget wrap it.
func (b *buzzer) Beep(ctx context.Context, freqHz uint, d time.Duration) error {
	if err := b.pin.PWM(gpio.DutyHalf, physic.Frequency(freqHz)*physic.Hertz); err != nil {
		return errors.Wrap(err, "couldn't start tone")
	}
	goutils.SelectContextOrWait(ctx, d)
	return errors.Wrap(b.pin.Halt(), "couldn't stop tone")
}

func (b *buzzer) Close(ctx context.Context) error {
	return b.pin.Halt()
}
