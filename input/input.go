// Package input models the operator's controller as a polled snapshot of
// axis and button state, so the control loop never blocks on a device.
package input

import "context"

// Axis identifies one analog stick axis.
type Axis string

// The four dual-stick axes.
const (
	LeftX  Axis = "left_x"
	LeftY  Axis = "left_y"
	RightX Axis = "right_x"
	RightY Axis = "right_y"
)

// Button identifies a digital control.
type Button string

// Buttons used by the teleop mapping.
const (
	ButtonSouth Button = "south" // gripper close
	ButtonEast  Button = "east"  // gripper open
	ButtonWest  Button = "west"  // speed down
	ButtonNorth Button = "north" // speed up
	ButtonStart Button = "start" // park
)

// Axis bytes are centered at 128; DefaultDeadband is the noise floor
// around center treated as no input.
const (
	AxisCenter      = 128
	DefaultDeadband = 4
)

// Frame is one snapshot of controller state. Axes hold raw bytes 0-255.
// Buttons is the held set, Pressed the newly-pressed-since-last-read set.
type Frame struct {
	Axes    map[Axis]uint8
	Buttons map[Button]bool
	Pressed map[Button]bool
}

// NewFrame returns an empty frame with all maps allocated.
func NewFrame() Frame {
	return Frame{
		Axes:    map[Axis]uint8{},
		Buttons: map[Button]bool{},
		Pressed: map[Button]bool{},
	}
}

// AxisDelta returns the axis offset from center with the deadband zeroed.
// An unreported axis reads as centered.
func (f Frame) AxisDelta(a Axis, deadband int) float64 {
	v, ok := f.Axes[a]
	if !ok {
		return 0
	}
	d := int(v) - AxisCenter
	if d > -deadband && d < deadband {
		return 0
	}
	return float64(d)
}

// Reader is the device side of the controller. ReadFrame must be a fast
// non-blocking poll of the last-known state; reading consumes the
// Pressed edge set.
type Reader interface {
	ReadFrame(ctx context.Context) (Frame, error)
	Close(ctx context.Context) error
}
