//go:build linux

package gamepad

import (
	"context"
	"testing"

	"github.com/edaniels/golog"
	"github.com/viamrobotics/evdev"
	"go.viam.com/test"

	"go.viam.com/armpad/input"
)

func newTestPad(t *testing.T) *pad {
	t.Helper()
	return &pad{
		logger:    golog.NewTestLogger(t),
		smoothers: map[input.Axis]*input.RollingMean{},
		axes:      map[input.Axis]uint8{},
		buttons:   map[input.Button]bool{},
		pressed:   map[input.Button]bool{},
	}
}

func TestHandleEventAxes(t *testing.T) {
	p := newTestPad(t)
	p.handleEvent(evdev.Event{Type: evdev.EventAbsolute, Code: 0x01, Value: 300})
	p.handleEvent(evdev.Event{Type: evdev.EventAbsolute, Code: 0x03, Value: -12})

	frame, err := p.ReadFrame(context.Background())
	test.That(t, err, test.ShouldBeNil)
	// Out-of-range kernel values clamp to the byte scale.
	test.That(t, frame.Axes[input.LeftY], test.ShouldEqual, uint8(255))
	test.That(t, frame.Axes[input.RightX], test.ShouldEqual, uint8(0))
}

func TestHandleEventButtonEdges(t *testing.T) {
	p := newTestPad(t)
	p.handleEvent(evdev.Event{Type: evdev.EventKey, Code: 0x131, Value: 1})

	frame, err := p.ReadFrame(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frame.Pressed[input.ButtonEast], test.ShouldBeTrue)
	test.That(t, frame.Buttons[input.ButtonEast], test.ShouldBeTrue)

	// Still held: the edge was consumed by the first read.
	frame, err = p.ReadFrame(context.Background())
	test.That(t, err, test.ShouldBeNil)
	test.That(t, frame.Pressed[input.ButtonEast], test.ShouldBeFalse)
	test.That(t, frame.Buttons[input.ButtonEast], test.ShouldBeTrue)
}

func TestNewRejectsMissingDevice(t *testing.T) {
	_, err := New(context.Background(),
		&Config{Device: "/dev/input/armpad-test-does-not-exist"},
		golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
}
