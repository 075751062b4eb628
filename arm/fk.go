package arm

import (
	"math"

	"github.com/golang/geo/r3"

	"go.viam.com/armpad/utils"
)

// Tip runs the forward kinematics for a solved pose: given servo-frame
// joint angles and the grip angle they were solved for, it returns the
// gripper tip position. X/Y are in the base plane (X lateral, Y out from
// the base axis), Z is height. Used to cross-check the solver.
func (s *Solver) Tip(ja JointAngles, gripAngleDeg float64) r3.Vector {
	// Undo the per joint servo-frame offsets.
	shoulderDeg := (ja.Shoulder - s.limits.Shoulder.Mid) + 90.0
	elbowDeg := 90.0 - (ja.Elbow - s.limits.Elbow.Mid)
	baseRad := utils.DegToRad(ja.Base - s.limits.Base.Mid)

	shoulderRad := utils.DegToRad(shoulderDeg)
	// Ulna direction relative to ground: shoulder folded back by the
	// elbow's supplement.
	ulnaRad := shoulderRad - utils.DegToRad(180.0-elbowDeg)
	gripRad := utils.DegToRad(gripAngleDeg)

	out := s.geom.Humerus*math.Cos(shoulderRad) +
		s.geom.Ulna*math.Cos(ulnaRad) +
		s.geom.Gripper*math.Cos(gripRad)
	z := s.geom.BaseHeight +
		s.geom.Humerus*math.Sin(shoulderRad) +
		s.geom.Ulna*math.Sin(ulnaRad) +
		s.geom.Gripper*math.Sin(gripRad)

	return r3.Vector{
		X: out * math.Sin(baseRad),
		Y: out * math.Cos(baseRad),
		Z: z,
	}
}
