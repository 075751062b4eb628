// Package arm implements the closed-form inverse kinematics for a
// four joint (base, shoulder, elbow, wrist) hobby arm with a gripper.
package arm

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Geometry holds the fixed link lengths of the arm, in millimeters.
// The squared lengths are computed once so the solver doesn't redo it
// every cycle.
type Geometry struct {
	BaseHeight float64 `json:"base_height_mm"`
	Humerus    float64 `json:"humerus_mm"`
	Ulna       float64 `json:"ulna_mm"`
	Gripper    float64 `json:"gripper_mm"`

	humerusSq float64
	ulnaSq    float64
}

// DefaultGeometry is the stock AL5D-scale arm this was written for.
func DefaultGeometry() Geometry {
	g := Geometry{
		BaseHeight: 80.9625,
		Humerus:    263.525,
		Ulna:       325.4375,
		Gripper:    73.025,
	}
	g.precompute()
	return g
}

func (g *Geometry) precompute() {
	g.humerusSq = g.Humerus * g.Humerus
	g.ulnaSq = g.Ulna * g.Ulna
}

// Validate checks the link lengths make physical sense.
func (g *Geometry) Validate() error {
	var err error
	if g.Humerus <= 0 {
		err = multierr.Append(err, errors.New("humerus length must be positive"))
	}
	if g.Ulna <= 0 {
		err = multierr.Append(err, errors.New("ulna length must be positive"))
	}
	if g.Gripper < 0 {
		err = multierr.Append(err, errors.New("gripper length cannot be negative"))
	}
	if g.BaseHeight < 0 {
		err = multierr.Append(err, errors.New("base height cannot be negative"))
	}
	if err != nil {
		return err
	}
	g.precompute()
	return nil
}
