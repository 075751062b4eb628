package gpio

import (
	"math"
	"testing"

	"go.viam.com/test"
	"periph.io/x/conn/v3/gpio"
)

func TestPulseToDuty(t *testing.T) {
	// 20ms frame: 1500us is 7.5% duty.
	test.That(t, pulseToDuty(1500), test.ShouldEqual, gpio.Duty(math.Round(0.075*float64(gpio.DutyMax))))
	test.That(t, pulseToDuty(0), test.ShouldEqual, gpio.Duty(0))
	test.That(t, pulseToDuty(20000), test.ShouldEqual, gpio.DutyMax)
}
