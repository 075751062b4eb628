package arm

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Joint identifies one of the arm's servos.
type Joint string

// The five joints, base up.
const (
	Base     Joint = "base"
	Shoulder Joint = "shoulder"
	Elbow    Joint = "elbow"
	Wrist    Joint = "wrist"
	Gripper  Joint = "gripper"
)

// Range is the allowed servo-frame angle span for one joint. Mid is the
// calibration offset corresponding to the joint's mechanical 90 degree
// reference.
type Range struct {
	Min float64 `json:"min"`
	Mid float64 `json:"mid"`
	Max float64 `json:"max"`
}

// Contains reports whether deg is within the range, inclusive.
func (r Range) Contains(deg float64) bool {
	return deg >= r.Min && deg <= r.Max
}

// Clamp returns deg forced into [Min, Max].
func (r Range) Clamp(deg float64) float64 {
	if deg < r.Min {
		return r.Min
	}
	if deg > r.Max {
		return r.Max
	}
	return deg
}

func (r Range) validate(j Joint) error {
	if r.Min > r.Mid || r.Mid > r.Max {
		return errors.Errorf("%s: limits not ordered, need min <= mid <= max, got %v <= %v <= %v",
			j, r.Min, r.Mid, r.Max)
	}
	return nil
}

// Limits holds the per-joint angle bounds, constructed once at startup.
type Limits struct {
	Base     Range `json:"base"`
	Shoulder Range `json:"shoulder"`
	Elbow    Range `json:"elbow"`
	Wrist    Range `json:"wrist"`
	Gripper  Range `json:"gripper"`
}

// DefaultLimits covers a standard 180 degree hobby servo on every joint,
// with a slightly narrowed gripper so it can't crush itself.
func DefaultLimits() Limits {
	full := Range{Min: 0, Mid: 90, Max: 180}
	return Limits{
		Base:     full,
		Shoulder: full,
		Elbow:    full,
		Wrist:    full,
		Gripper:  Range{Min: 10, Mid: 90, Max: 170},
	}
}

// Get returns the range for the given joint.
func (l Limits) Get(j Joint) Range {
	switch j {
	case Base:
		return l.Base
	case Shoulder:
		return l.Shoulder
	case Elbow:
		return l.Elbow
	case Wrist:
		return l.Wrist
	case Gripper:
		return l.Gripper
	}
	return Range{}
}

// Validate checks every joint's ordering invariant.
func (l Limits) Validate() error {
	return multierr.Combine(
		l.Base.validate(Base),
		l.Shoulder.validate(Shoulder),
		l.Elbow.validate(Elbow),
		l.Wrist.validate(Wrist),
		l.Gripper.validate(Gripper),
	)
}
