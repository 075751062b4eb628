package servo

import (
	"testing"

	"go.viam.com/test"
)

func TestToPulseClamping(t *testing.T) {
	p := DefaultPulseRange()

	test.That(t, p.ToPulse(-10), test.ShouldEqual, DefaultMinUs)
	test.That(t, p.ToPulse(0), test.ShouldEqual, DefaultMinUs)
	test.That(t, p.ToPulse(190), test.ShouldEqual, DefaultMaxUs)
	test.That(t, p.ToPulse(180), test.ShouldEqual, DefaultMaxUs)
}

func TestToPulseMidpoint(t *testing.T) {
	p := DefaultPulseRange()
	test.That(t, p.ToPulse(90), test.ShouldEqual, 1500)
}

func TestToPulseRounding(t *testing.T) {
	p := DefaultPulseRange()
	// 10us per degree for the default range.
	test.That(t, p.ToPulse(45), test.ShouldEqual, 1050)
	test.That(t, p.ToPulse(45.04), test.ShouldEqual, 1050)
	test.That(t, p.ToPulse(45.06), test.ShouldEqual, 1051)
}

func TestToPulseCustomRange(t *testing.T) {
	p := PulseRange{MinDeg: 0, MaxDeg: 270, MinUs: 500, MaxUs: 2500}
	test.That(t, p.ToPulse(135), test.ShouldEqual, 1500)
	test.That(t, p.ToPulse(270), test.ShouldEqual, 2500)
}
