package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
)

// cameraControllerImpl is the damped orbit implementation of CameraController.
type cameraControllerImpl struct {
	mu *sync.Mutex

	position common.Vec3
	target   common.Vec3

	radius    float32
	azimuth   float32 // around +Y, 0 = +Z
	elevation float32 // from the horizontal plane

	minRadius    float32
	maxRadius    float32
	maxElevation float32

	damping     float32
	rotateSpeed float32
	zoomSpeed   float32

	pendingAzimuth   float32
	pendingElevation float32
	pendingScale     float32
}

var _ CameraController = &cameraControllerImpl{}

// settle is the pending angle below which orbit motion counts as finished.
const settle = 1e-5

// NewCameraController creates a new orbit controller. The defaults look at the origin from (10, 8, 12)
// with damping 0.05.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:           &sync.Mutex{},
		minRadius:    2,
		maxRadius:    80,
		maxElevation: float32(math.Pi/2 - 0.01),
		damping:      0.05,
		rotateSpeed:  1,
		zoomSpeed:    1,
		pendingScale: 1,
	}
	cc.setPosition(common.Vec3{X: 10, Y: 8, Z: 12})

	for _, option := range options {
		option(cc)
	}

	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.updatePosition()
	return cc
}

func (cc *cameraControllerImpl) Position() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position
}

func (cc *cameraControllerImpl) Target() common.Vec3 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetPosition(p common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.setPosition(p)
	cc.updatePosition()
}

func (cc *cameraControllerImpl) SetTarget(t common.Vec3) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = t
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Rotate(dx, dy float32, viewportHeight int) {
	h := float32(max(viewportHeight, 1))
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingAzimuth -= 2 * math.Pi * dx / h * cc.rotateSpeed
	cc.pendingElevation += 2 * math.Pi * dy / h * cc.rotateSpeed
}

func (cc *cameraControllerImpl) Zoom(steps float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pendingScale *= float32(math.Pow(0.95, float64(steps*cc.zoomSpeed)))
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	f := cc.damping
	if f <= 0 || f > 1 {
		f = 1
	}

	cc.azimuth += cc.pendingAzimuth * f
	cc.elevation = common.Clamp(cc.elevation+cc.pendingElevation*f, -cc.maxElevation, cc.maxElevation)
	cc.radius = common.Clamp(cc.radius*cc.pendingScale, cc.minRadius, cc.maxRadius)
	cc.pendingScale = 1

	if f == 1 {
		cc.pendingAzimuth, cc.pendingElevation = 0, 0
	} else {
		cc.pendingAzimuth *= 1 - f
		cc.pendingElevation *= 1 - f
	}
	if abs32(cc.pendingAzimuth) < settle && abs32(cc.pendingElevation) < settle {
		cc.pendingAzimuth, cc.pendingElevation = 0, 0
	}

	cc.updatePosition()
	return cc.pendingAzimuth != 0 || cc.pendingElevation != 0
}

// setPosition derives spherical coordinates for p around the target. Caller must hold the mutex.
func (cc *cameraControllerImpl) setPosition(p common.Vec3) {
	off := p.Sub(cc.target)
	cc.radius = off.Length()
	if cc.radius == 0 {
		cc.azimuth, cc.elevation = 0, 0
		return
	}
	cc.azimuth = float32(math.Atan2(float64(off.X), float64(off.Z)))
	cc.elevation = float32(math.Asin(float64(off.Y / cc.radius)))
}

// updatePosition recomputes the position from the spherical coordinates. Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := float32(math.Cos(float64(cc.elevation)))
	sinElev := float32(math.Sin(float64(cc.elevation)))
	cosAzim := float32(math.Cos(float64(cc.azimuth)))
	sinAzim := float32(math.Sin(float64(cc.azimuth)))

	cc.position = cc.target.Add(common.Vec3{
		X: cc.radius * cosElev * sinAzim,
		Y: cc.radius * sinElev,
		Z: cc.radius * cosElev * cosAzim,
	})
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
