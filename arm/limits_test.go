package arm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeClampContains(t *testing.T) {
	r := Range{Min: 10, Mid: 90, Max: 170}

	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(170))
	assert.False(t, r.Contains(9.99))
	assert.False(t, r.Contains(170.01))

	assert.InDelta(t, 10, r.Clamp(-5), 1e-9)
	assert.InDelta(t, 170, r.Clamp(500), 1e-9)
	assert.InDelta(t, 42, r.Clamp(42), 1e-9)
}

func TestLimitsValidate(t *testing.T) {
	assert.NoError(t, DefaultLimits().Validate())

	bad := DefaultLimits()
	bad.Elbow = Range{Min: 100, Mid: 90, Max: 180}
	bad.Wrist = Range{Min: 0, Mid: 90, Max: 80}
	err := bad.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "elbow")
	assert.Contains(t, err.Error(), "wrist")
}

func TestGeometryValidate(t *testing.T) {
	g := DefaultGeometry()
	assert.NoError(t, g.Validate())

	g.Ulna = 0
	assert.Error(t, g.Validate())

	g = Geometry{BaseHeight: -1, Humerus: 100, Ulna: 100}
	assert.Error(t, g.Validate())
}

func TestLimitsGet(t *testing.T) {
	l := DefaultLimits()
	assert.Equal(t, l.Gripper, l.Get(Gripper))
	assert.Equal(t, l.Base, l.Get(Base))
	assert.Equal(t, Range{}, l.Get(Joint("bogus")))
}
