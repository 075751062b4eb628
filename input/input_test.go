package input

import (
	"testing"

	"go.viam.com/test"
)

func TestAxisDelta(t *testing.T) {
	f := NewFrame()
	f.Axes[LeftY] = 128
	test.That(t, f.AxisDelta(LeftY, DefaultDeadband), test.ShouldEqual, 0)

	f.Axes[LeftY] = 131 // inside the deadband
	test.That(t, f.AxisDelta(LeftY, DefaultDeadband), test.ShouldEqual, 0)
	f.Axes[LeftY] = 125
	test.That(t, f.AxisDelta(LeftY, DefaultDeadband), test.ShouldEqual, 0)

	f.Axes[LeftY] = 132
	test.That(t, f.AxisDelta(LeftY, DefaultDeadband), test.ShouldEqual, 4)
	f.Axes[LeftY] = 0
	test.That(t, f.AxisDelta(LeftY, DefaultDeadband), test.ShouldEqual, -128)
	f.Axes[LeftY] = 255
	test.That(t, f.AxisDelta(LeftY, DefaultDeadband), test.ShouldEqual, 127)

	// Unreported axis reads centered.
	test.That(t, f.AxisDelta(RightX, DefaultDeadband), test.ShouldEqual, 0)
}

func TestRollingMean(t *testing.T) {
	r := NewRollingMean(4)
	test.That(t, r.Value(), test.ShouldEqual, 0)
	test.That(t, r.Add(10), test.ShouldAlmostEqual, 10)
	test.That(t, r.Add(20), test.ShouldAlmostEqual, 15)
	test.That(t, r.Add(30), test.ShouldAlmostEqual, 20)
	test.That(t, r.Add(40), test.ShouldAlmostEqual, 25)
	// Window full: oldest sample drops out.
	test.That(t, r.Add(50), test.ShouldAlmostEqual, 35)
}
