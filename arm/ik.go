package arm

import (
	"math"

	"github.com/pkg/errors"

	"go.viam.com/armpad/utils"
)

// ErrUnreachable is returned by Solve when the requested tip pose has no
// joint-angle solution inside the configured limits, or when the geometry
// is degenerate. Callers check with errors.Is.
var ErrUnreachable = errors.New("pose unreachable")

// Target is a requested gripper tip pose. X is the lateral offset used to
// steer the base in the three axis variant; leave it zero to keep the base
// centered. Y is distance out from the base axis and Z is height above the
// work surface, both in millimeters. GripAngleDeg is the gripper's angle
// relative to the ground, signed.
type Target struct {
	X            float64
	Y            float64
	Z            float64
	GripAngleDeg float64
}

// JointAngles is a complete solve result in servo-frame degrees. It is
// never partially populated: Solve returns all four or an error.
type JointAngles struct {
	Base     float64
	Shoulder float64
	Elbow    float64
	Wrist    float64
}

// Solver converts tip poses into joint angles for one arm.
type Solver struct {
	geom   Geometry
	limits Limits
}

// NewSolver returns a solver for the given geometry and limits. Both are
// validated once here; Solve itself never mutates them.
func NewSolver(geom Geometry, limits Limits) (*Solver, error) {
	if err := geom.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid arm geometry")
	}
	if err := limits.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid joint limits")
	}
	return &Solver{geom: geom, limits: limits}, nil
}

// Geometry returns the solver's arm geometry.
func (s *Solver) Geometry() Geometry { return s.geom }

// Limits returns the solver's joint limit table.
func (s *Solver) Limits() Limits { return s.limits }

// Solve computes servo-frame angles for the target, or ErrUnreachable.
// The base angle comes straight from atan2 and cannot fail on its own;
// everything else goes through the planar two-link solution and a limit
// check. No partial result ever escapes.
func (s *Solver) Solve(t Target) (JointAngles, error) {
	// Fold the lateral component into distance-out for the planar solve.
	baseRad := math.Atan2(t.X, t.Y)
	y := math.Hypot(t.X, t.Y)

	gripRad := utils.DegToRad(t.GripAngleDeg)

	// The gripper's own length shifts the wrist target back from the tip.
	gripOffZ := math.Sin(gripRad) * s.geom.Gripper
	gripOffY := math.Cos(gripRad) * s.geom.Gripper

	wristZ := (t.Z - gripOffZ) - s.geom.BaseHeight
	wristY := y - gripOffY

	sw := utils.Square(wristZ) + utils.Square(wristY)
	swLen := math.Sqrt(sw)

	a1 := math.Atan2(wristZ, wristY)
	a2 := math.Acos(((s.geom.humerusSq - s.geom.ulnaSq) + sw) / (2 * s.geom.Humerus * swLen))
	if !isFinite(a2) {
		return JointAngles{}, errors.Wrapf(ErrUnreachable, "shoulder-wrist distance %.2f outside arm span", swLen)
	}

	shoulderRad := a1 + a2
	if !isFinite(shoulderRad) {
		return JointAngles{}, errors.Wrap(ErrUnreachable, "shoulder angle degenerate")
	}

	elbowRad := math.Acos((s.geom.humerusSq + s.geom.ulnaSq - sw) / (2 * s.geom.Humerus * s.geom.Ulna))
	if !isFinite(elbowRad) {
		return JointAngles{}, errors.Wrap(ErrUnreachable, "elbow angle degenerate")
	}

	shoulderDeg := utils.RadToDeg(shoulderRad)
	elbowDeg := utils.RadToDeg(elbowRad)

	// Wrist compensates the arm so the gripper holds the requested angle.
	elbowSupp := -(180.0 - elbowDeg)
	wristDeg := (t.GripAngleDeg - elbowSupp) - shoulderDeg

	ja := JointAngles{
		Base:     s.limits.Base.Mid + utils.RadToDeg(baseRad),
		Shoulder: s.limits.Shoulder.Mid + (shoulderDeg - 90.0),
		Elbow:    s.limits.Elbow.Mid - (elbowDeg - 90.0),
		Wrist:    s.limits.Wrist.Mid + (wristDeg - 90.0),
	}

	for _, jc := range []struct {
		joint Joint
		deg   float64
		r     Range
	}{
		{Base, ja.Base, s.limits.Base},
		{Shoulder, ja.Shoulder, s.limits.Shoulder},
		{Elbow, ja.Elbow, s.limits.Elbow},
		{Wrist, ja.Wrist, s.limits.Wrist},
	} {
		if !jc.r.Contains(jc.deg) {
			return JointAngles{}, errors.Wrapf(ErrUnreachable,
				"%s angle %.2f outside [%.2f, %.2f]", jc.joint, jc.deg, jc.r.Min, jc.r.Max)
		}
	}

	return ja, nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
