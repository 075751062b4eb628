// Package teleop runs the operator control loop: joystick deltas become
// candidate poses, the solver accepts or rejects them, and only accepted
// poses ever reach the servos.
package teleop

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/bep/debounce"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	goutils "go.viam.com/utils"

	"go.viam.com/armpad/arm"
	"go.viam.com/armpad/input"
	"go.viam.com/armpad/servo"
	"go.viam.com/armpad/tone"
	"go.viam.com/armpad/utils"
)

// Pose is the last committed good pose plus the solver-bypassing fields.
// Exactly one instance exists per loop and only the loop mutates it.
type Pose struct {
	X            float64 `json:"x_mm"`
	Y            float64 `json:"y_mm"`
	Z            float64 `json:"z_mm"`
	GripAngleDeg float64 `json:"grip_angle_deg"`
	GripOpenDeg  float64 `json:"grip_open_deg"`
	Speed        float64 `json:"speed"`
}

// Config tunes the loop. Zero values take the defaults below.
type Config struct {
	TickMs    int     `json:"tick_ms,omitempty"`
	Deadband  int     `json:"deadband,omitempty"`
	YMin      float64 `json:"y_min_mm,omitempty"`
	Gain      float64 `json:"gain_mm_per_unit,omitempty"`
	GripGain  float64 `json:"grip_gain_deg_per_unit,omitempty"`
	SpeedMin  float64 `json:"speed_min,omitempty"`
	SpeedMax  float64 `json:"speed_max,omitempty"`
	SpeedStep float64 `json:"speed_step,omitempty"`
	Ready     *Pose   `json:"ready,omitempty"`
}

// Loop defaults, tuned for a 30Hz cycle on the stock arm.
const (
	DefaultTickMs    = 33
	DefaultYMin      = 100.0
	DefaultGain      = 0.02
	DefaultGripGain  = 0.01
	DefaultSpeedMin  = 0.5
	DefaultSpeedMax  = 4.0
	DefaultSpeedStep = 0.25
)

// ReadyPose is the parking pose committed before any servo is powered.
func ReadyPose() Pose {
	return Pose{Y: 170, Z: 45, GripAngleDeg: 0, GripOpenDeg: 90, Speed: 1.0}
}

func (c *Config) withDefaults() Config {
	out := Config{}
	if c != nil {
		out = *c
	}
	if out.TickMs <= 0 {
		out.TickMs = DefaultTickMs
	}
	if out.Deadband <= 0 {
		out.Deadband = input.DefaultDeadband
	}
	if out.YMin == 0 {
		out.YMin = DefaultYMin
	}
	if out.Gain == 0 {
		out.Gain = DefaultGain
	}
	if out.GripGain == 0 {
		out.GripGain = DefaultGripGain
	}
	if out.SpeedMin == 0 {
		out.SpeedMin = DefaultSpeedMin
	}
	if out.SpeedMax == 0 {
		out.SpeedMax = DefaultSpeedMax
	}
	if out.SpeedStep == 0 {
		out.SpeedStep = DefaultSpeedStep
	}
	if out.Ready == nil {
		ready := ReadyPose()
		out.Ready = &ready
	}
	return out
}

// Loop owns the committed pose and is the only component allowed to talk
// to the actuation and feedback collaborators.
type Loop struct {
	cfg    Config
	solver *arm.Solver
	reader input.Reader
	writer servo.Writer
	beeper tone.Beeper
	pulse  servo.PulseRange
	logger golog.Logger
	clock  clock.Clock

	limitCue func(func())

	pose Pose
}

// New wires up a loop. The clock is injectable for tests; pass
// clock.New() for the real thing.
func New(
	solver *arm.Solver,
	reader input.Reader,
	writer servo.Writer,
	beeper tone.Beeper,
	cfg *Config,
	clk clock.Clock,
	logger golog.Logger,
) *Loop {
	full := cfg.withDefaults()
	return &Loop{
		cfg:      full,
		solver:   solver,
		reader:   reader,
		writer:   writer,
		beeper:   beeper,
		pulse:    servo.DefaultPulseRange(),
		logger:   logger,
		clock:    clk,
		limitCue: debounce.New(300 * time.Millisecond),
		pose:     *full.Ready,
	}
}

// Pose returns the last committed pose.
func (l *Loop) Pose() Pose { return l.pose }

// Run parks the arm at the ready pose, then polls the controller until
// the context is done. Park-before-power is an operational invariant:
// the first pulses on the wire are always the ready pose.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.park(ctx); err != nil {
		return errors.Wrap(err, "couldn't park arm at ready pose")
	}
	l.beep(ctx, tone.ReadyFreqHz, tone.ReadyDuration)

	ticker := l.clock.Ticker(time.Duration(l.cfg.TickMs) * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := l.step(ctx); err != nil {
				l.logger.Errorw("control cycle failed", "error", err)
			}
		}
	}
}

func (l *Loop) park(ctx context.Context) error {
	ready := *l.cfg.Ready
	ja, err := l.solver.Solve(arm.Target{X: ready.X, Y: ready.Y, Z: ready.Z, GripAngleDeg: ready.GripAngleDeg})
	if err != nil {
		return err
	}
	l.pose = ready
	return multierr.Combine(
		l.writeJoints(ctx, ja),
		l.writeGripper(ctx, ready.GripOpenDeg),
	)
}

// step runs one control cycle: read, evaluate, commit or discard.
func (l *Loop) step(ctx context.Context) error {
	frame, err := l.reader.ReadFrame(ctx)
	if err != nil {
		return errors.Wrap(err, "controller read failed")
	}

	if frame.Pressed[input.ButtonStart] {
		return l.park(ctx)
	}
	l.handleGripper(ctx, frame)
	l.handleSpeed(ctx, frame)

	dx := frame.AxisDelta(input.LeftX, l.cfg.Deadband) * l.cfg.Gain * l.pose.Speed
	// Stick up is a smaller byte; flip so up means out/up.
	dy := -frame.AxisDelta(input.LeftY, l.cfg.Deadband) * l.cfg.Gain * l.pose.Speed
	dz := -frame.AxisDelta(input.RightY, l.cfg.Deadband) * l.cfg.Gain * l.pose.Speed
	dg := frame.AxisDelta(input.RightX, l.cfg.Deadband) * l.cfg.GripGain * l.pose.Speed
	if dx == 0 && dy == 0 && dz == 0 && dg == 0 {
		return nil
	}

	// Candidate lives only inside this cycle.
	cand := l.pose
	cand.X += dx
	cand.Y += dy
	cand.Z += dz
	cand.GripAngleDeg += dg
	if cand.Y < l.cfg.YMin {
		cand.Y = l.cfg.YMin
	}
	if cand.Z < 0 {
		cand.Z = 0
	}

	ja, err := l.solver.Solve(arm.Target{X: cand.X, Y: cand.Y, Z: cand.Z, GripAngleDeg: cand.GripAngleDeg})
	if err != nil {
		if errors.Is(err, arm.ErrUnreachable) {
			// Discard the candidate; the committed pose stands and
			// no servo is touched.
			l.logger.Debugw("candidate rejected", "error", err)
			l.limitCue(func() {
				l.beep(ctx, tone.UnreachableFreqHz, tone.UnreachableDur)
			})
			return nil
		}
		return err
	}

	l.pose = cand
	return l.writeJoints(ctx, ja)
}

// handleGripper commits opening changes directly; they can't make a pose
// unreachable so they bypass the solver.
func (l *Loop) handleGripper(ctx context.Context, frame input.Frame) {
	step := 0.0
	if frame.Pressed[input.ButtonEast] {
		step += 5.0
	}
	if frame.Pressed[input.ButtonSouth] {
		step -= 5.0
	}
	if step == 0 {
		return
	}
	l.pose.GripOpenDeg = l.solver.Limits().Gripper.Clamp(l.pose.GripOpenDeg + step)
	if err := l.writeGripper(ctx, l.pose.GripOpenDeg); err != nil {
		l.logger.Errorw("gripper write failed", "error", err)
	}
}

func (l *Loop) handleSpeed(ctx context.Context, frame input.Frame) {
	step := 0.0
	if frame.Pressed[input.ButtonNorth] {
		step += l.cfg.SpeedStep
	}
	if frame.Pressed[input.ButtonWest] {
		step -= l.cfg.SpeedStep
	}
	if step == 0 {
		return
	}
	l.pose.Speed = utils.Clamp(l.pose.Speed+step, l.cfg.SpeedMin, l.cfg.SpeedMax)
	l.logger.Debugw("speed changed", "speed", l.pose.Speed)
	l.beep(ctx, tone.ReadyFreqHz, tone.UnreachableDur)
}

func (l *Loop) writeJoints(ctx context.Context, ja arm.JointAngles) error {
	return multierr.Combine(
		l.writer.WritePulse(ctx, arm.Base, l.pulse.ToPulse(ja.Base)),
		l.writer.WritePulse(ctx, arm.Shoulder, l.pulse.ToPulse(ja.Shoulder)),
		l.writer.WritePulse(ctx, arm.Elbow, l.pulse.ToPulse(ja.Elbow)),
		l.writer.WritePulse(ctx, arm.Wrist, l.pulse.ToPulse(ja.Wrist)),
	)
}

func (l *Loop) writeGripper(ctx context.Context, openDeg float64) error {
	return l.writer.WritePulse(ctx, arm.Gripper, l.pulse.ToPulse(openDeg))
}

// beep fires the cue without stalling the cycle. Beeper failures are
// logged and otherwise ignored.
func (l *Loop) beep(ctx context.Context, freqHz uint, d time.Duration) {
	if l.beeper == nil {
		return
	}
	goutils.PanicCapturingGo(func() {
		if err := l.beeper.Beep(ctx, freqHz, d); err != nil {
			l.logger.Debugw("beep failed", "error", err)
		}
	})
}
