package camera

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertNear(t *testing.T, want, got common.Vec3) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-3, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-3, "y")
	assert.InDelta(t, want.Z, got.Z, 1e-3, "z")
}

func TestControllerStartsAtDefaultPosition(t *testing.T) {
	cc := NewCameraController()
	assertNear(t, common.Vec3{X: 10, Y: 8, Z: 12}, cc.Position())
	assertNear(t, common.Vec3{}, cc.Target())
	assert.InDelta(t, math.Sqrt(100+64+144), cc.Radius(), 1e-4)
}

func TestRotateWithoutDampingAppliesAtOnce(t *testing.T) {
	cc := NewCameraController(WithDamping(0), WithPosition(common.Vec3{Z: 10}))

	// a drag of a quarter viewport height turns a quarter circle
	cc.Rotate(-100, 0, 400)
	assert.False(t, cc.Update())
	assertNear(t, common.Vec3{X: 10}, cc.Position())
	assert.InDelta(t, 10, cc.Radius(), 1e-4)
}

func TestDampedRotateConverges(t *testing.T) {
	cc := NewCameraController(WithPosition(common.Vec3{Z: 10}))
	cc.Rotate(-100, 0, 400)

	require.True(t, cc.Update(), "motion should remain pending after the first damped step")
	first := cc.Position()
	assert.Greater(t, first.X, float32(0))
	assert.Less(t, first.X, float32(10))

	for range 1000 {
		if !cc.Update() {
			break
		}
	}
	assert.False(t, cc.Update())
	assertNear(t, common.Vec3{X: 10}, cc.Position())
}

func TestElevationIsClamped(t *testing.T) {
	cc := NewCameraController(WithDamping(0), WithPosition(common.Vec3{Z: 10}))
	cc.Rotate(0, 10_000, 100)
	cc.Update()

	p := cc.Position()
	assert.Greater(t, p.Y, float32(9.9))
	assert.Less(t, p.Y, float32(10))
	assert.Greater(t, p.Z, float32(0), "camera must not flip over the pole")
}

func TestZoomRespectsLimits(t *testing.T) {
	cc := NewCameraController(WithDamping(0), WithPosition(common.Vec3{Z: 10}), WithDistanceLimits(2, 80))

	cc.Zoom(1)
	cc.Update()
	assert.InDelta(t, 9.5, cc.Radius(), 1e-4)

	cc.Zoom(500)
	cc.Update()
	assert.InDelta(t, 2, cc.Radius(), 1e-4)

	cc.Zoom(-500)
	cc.Update()
	assert.InDelta(t, 80, cc.Radius(), 1e-4)
}

func TestTargetShiftsPosition(t *testing.T) {
	cc := NewCameraController(WithTarget(common.Vec3{X: 1}), WithPosition(common.Vec3{X: 1, Z: 5}))
	assertNear(t, common.Vec3{X: 1, Z: 5}, cc.Position())

	cc.SetTarget(common.Vec3{Y: 2})
	assertNear(t, common.Vec3{Y: 2, Z: 5}, cc.Position())
}

func TestCenterRayPassesThroughTarget(t *testing.T) {
	cam := NewCamera(WithAspect(16.0 / 9.0))
	r := cam.Ray(0, 0)

	toTarget := common.Vec3{}.Sub(r.Origin).Normalize()
	assert.InDelta(t, 1, r.Direction.Dot(toTarget), 1e-4)
}

func TestRayHitsSphereAtTarget(t *testing.T) {
	cam := NewCamera()
	_, hit := cam.Ray(0, 0).IntersectSphere(common.Vec3{}, 0.35)
	assert.True(t, hit)

	_, hit = cam.Ray(0.9, 0.9).IntersectSphere(common.Vec3{}, 0.35)
	assert.False(t, hit)
}

func TestFrustumContainsTarget(t *testing.T) {
	cam := NewCamera()
	f := cam.Frustum()
	assert.True(t, f.ContainsSphere(common.Vec3{}, 0.1))
	assert.False(t, f.ContainsSphere(common.Vec3{X: 100, Y: 80, Z: 120}, 0.1), "points behind the eye are culled")
}

func TestUniformMarshal(t *testing.T) {
	cam := NewCamera()
	u := cam.Uniform()
	buf := u.Marshal()
	require.Len(t, buf, GPUCameraUniformSize)

	got := math.Float32frombits(binary.LittleEndian.Uint32(buf[128:]))
	assert.InDelta(t, 10, got, 1e-3)
	got = math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
	assert.Equal(t, u.ViewProj[0], got)
}

func TestSetAspectIgnoresDegenerate(t *testing.T) {
	cam := NewCamera(WithAspect(2))
	cam.SetAspect(0)
	assert.Equal(t, float32(2), cam.Aspect())
}
