package utils

import (
	"testing"

	"go.viam.com/test"
)

func TestDegRad(t *testing.T) {
	test.That(t, DegToRad(180), test.ShouldAlmostEqual, 3.14159265358979)
	test.That(t, RadToDeg(DegToRad(123.45)), test.ShouldAlmostEqual, 123.45)
}

func TestClamp(t *testing.T) {
	test.That(t, Clamp(5, 0, 10), test.ShouldEqual, 5)
	test.That(t, Clamp(-1, 0, 10), test.ShouldEqual, 0)
	test.That(t, Clamp(11, 0, 10), test.ShouldEqual, 10)
}
