package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertVecNear(t *testing.T, want, got Vec3, eps float64) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, eps, "x")
	assert.InDelta(t, want.Y, got.Y, eps, "y")
	assert.InDelta(t, want.Z, got.Z, eps, "z")
}

func TestInvertRoundTrip(t *testing.T) {
	view := LookAt(Vec3{10, 8, 12}, Vec3{}, Vec3{Y: 1})
	proj := Perspective(70*math.Pi/180, 16.0/9.0, 0.1, 1000)
	vp := proj.Mul(view)

	inv, ok := vp.Invert()
	require.True(t, ok)

	id := vp.Mul(inv)
	want := Identity4()
	for i := range id {
		assert.InDelta(t, want[i], id[i], 1e-3, "element %d", i)
	}
}

func TestInvertSingular(t *testing.T) {
	_, ok := Mat4{}.Invert()
	assert.False(t, ok)
}

func TestLookAtMovesEyeToOrigin(t *testing.T) {
	eye := Vec3{3, 4, 5}
	view := LookAt(eye, Vec3{}, Vec3{Y: 1})
	assertVecNear(t, Vec3{}, view.TransformPoint(eye), 1e-5)

	// The target sits straight ahead on -Z.
	p := view.TransformPoint(Vec3{})
	assert.InDelta(t, 0, p.X, 1e-5)
	assert.InDelta(t, 0, p.Y, 1e-5)
	assert.InDelta(t, -eye.Length(), p.Z, 1e-4)
}

func TestPerspectiveDepthRange(t *testing.T) {
	proj := Perspective(math.Pi/2, 1, 0.1, 100)
	assert.InDelta(t, 0, proj.TransformPoint(Vec3{Z: -0.1}).Z, 1e-5)
	assert.InDelta(t, 1, proj.TransformPoint(Vec3{Z: -100}).Z, 1e-4)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 5, Clamp(9, 0, 5))
	assert.Equal(t, 0, Clamp(-3, 0, 5))
	assert.Equal(t, float32(2.5), Clamp(float32(2.5), 0, 5))
	// lo wins when the range is inverted.
	assert.Equal(t, 10, Clamp(3, 10, 5))
}
