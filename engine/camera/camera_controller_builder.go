package camera

import "github.com/Carmen-Shannon/oxy-ontography/common"

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithTarget sets the orbit pivot. Apply it before WithPosition so the position is measured from it.
//
// Parameters:
//   - t: world-space target
//
// Returns:
//   - CameraControllerOption: functional option to set the target
func WithTarget(t common.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = t
	}
}

// WithPosition sets the initial camera position.
//
// Parameters:
//   - p: world-space position
//
// Returns:
//   - CameraControllerOption: functional option to set the position
func WithPosition(p common.Vec3) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.setPosition(p)
	}
}

// WithDamping sets the fraction of pending orbit applied per Update. Zero disables damping.
func WithDamping(d float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.damping = d
	}
}

// WithRotateSpeed scales drag-to-orbit sensitivity.
func WithRotateSpeed(s float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.rotateSpeed = s
	}
}

// WithZoomSpeed scales scroll-to-zoom sensitivity.
func WithZoomSpeed(s float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = s
	}
}

// WithDistanceLimits bounds the distance to the target.
//
// Parameters:
//   - minRadius: closest zoom
//   - maxRadius: farthest zoom
//
// Returns:
//   - CameraControllerOption: functional option to set the limits
func WithDistanceLimits(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}
