package camera

import (
	"math"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/bind_group_provider"
)

// cameraCount is an atomic counter used to generate unique bind group provider names for each camera instance.
var cameraCount atomic.Uint64

type cameraImpl struct {
	mu *sync.Mutex

	up common.Vec3

	fov    float32
	aspect float32
	near   float32
	far    float32

	view        common.Mat4
	projection  common.Mat4
	viewProj    common.Mat4
	invViewProj common.Mat4

	controller        CameraController
	bindGroupProvider bind_group_provider.BindGroupProvider
}

// Camera holds perspective settings and derives view/projection matrices from an attached
// CameraController each frame via Update(). It also turns pointer positions into picking rays.
type Camera interface {
	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// View returns the current view matrix.
	//
	// Returns:
	//   - common.Mat4: the view matrix
	View() common.Mat4

	// ViewProjection returns the current combined view-projection matrix.
	//
	// Returns:
	//   - common.Mat4: projection * view
	ViewProjection() common.Mat4

	// Position returns the eye position as of the last Update.
	//
	// Returns:
	//   - common.Vec3: world-space eye position
	Position() common.Vec3

	// Frustum returns the view volume as of the last Update.
	//
	// Returns:
	//   - common.Frustum: inward-facing frustum planes
	Frustum() common.Frustum

	// Ray unprojects a normalized device coordinate into a world-space ray from the near plane.
	//
	// Parameters:
	//   - ndcX, ndcY: position in [-1, 1], y up
	//
	// Returns:
	//   - common.Ray: the picking ray
	Ray(ndcX, ndcY float32) common.Ray

	// Uniform packs the camera state for the GPU.
	//
	// Returns:
	//   - GPUCameraUniform: the uniform ready for Marshal
	Uniform() GPUCameraUniform

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// BindGroupProvider returns the camera's bind group provider for GPU resources.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the bind group provider
	BindGroupProvider() bind_group_provider.BindGroupProvider

	// Update applies pending controller motion and recomputes matrices.
	// Should be called once per frame. A camera without a controller keeps its matrices.
	//
	// Returns:
	//   - bool: true while the controller still has motion pending
	Update() bool

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with a 70 degree field of view, near 0.1 and far 1000.
// Without WithController an orbit controller with default settings is attached.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     common.Vec3{Y: 1},
		fov:    70.0 * (math.Pi / 180.0),
		aspect: 1.0,
		near:   0.1,
		far:    1000.0,
		bindGroupProvider: bind_group_provider.NewBindGroupProvider(
			"camera_" + strconv.FormatUint(cameraCount.Add(1), 10),
		),
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) View() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

func (c *cameraImpl) ViewProjection() common.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProj
}

func (c *cameraImpl) Position() common.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return common.Vec3{}
	}
	return c.controller.Position()
}

func (c *cameraImpl) Frustum() common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.ExtractFrustum(c.viewProj)
}

func (c *cameraImpl) Ray(ndcX, ndcY float32) common.Ray {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.RayFromNDC(c.invViewProj, ndcX, ndcY)
}

func (c *cameraImpl) Uniform() GPUCameraUniform {
	c.mu.Lock()
	defer c.mu.Unlock()
	u := GPUCameraUniform{
		ViewProj: c.viewProj,
		View:     c.view,
	}
	if c.controller != nil {
		u.CameraPosition = c.controller.Position().Array()
	}
	return u
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) BindGroupProvider() bind_group_provider.BindGroupProvider {
	return c.bindGroupProvider
}

func (c *cameraImpl) Update() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return false
	}
	moving := c.controller.Update()
	c.updateMatrices()
	return moving
}

func (c *cameraImpl) SetAspect(aspect float32) {
	if aspect <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the view, projection, view-projection and its inverse from the controller.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller == nil {
		return
	}

	c.view = common.LookAt(c.controller.Position(), c.controller.Target(), c.up)
	c.projection = common.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProj = c.projection.Mul(c.view)
	if inv, ok := c.viewProj.Invert(); ok {
		c.invViewProj = inv
	}
}
