package viewer

import (
	"image"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/camera"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
)

// Frame is the snapshot of one step. The drawer reads only the frame, so input handlers may run while it draws.
type Frame struct {
	Nodes    []scene.Node
	Edges    []scene.Edge
	Camera   camera.GPUCameraUniform
	Frustum  common.Frustum
	Eye      common.Vec3
	Viewport picking.Viewport
	Hover    picking.State

	// Overlay is the composited legend and tooltip layer. OverlayChanged is false when it matches the previous frame.
	Overlay        *image.RGBA
	OverlayChanged bool

	// LabelsDrawn is filled in by the drawer.
	LabelsDrawn int
}

// Drawer turns frames into pixels.
type Drawer interface {
	// Init uploads everything that does not change per frame: meshes, the label atlas, lighting, pipelines.
	//
	// Parameters:
	//   - sc: the scene being shown
	//   - vp: the initial viewport
	//
	// Returns:
	//   - error: error if a GPU resource could not be created
	Init(sc scene.Scene, vp picking.Viewport) error

	// Resize adapts the surface to a new viewport.
	Resize(vp picking.Viewport)

	// Draw renders one frame and records the number of labels drawn on it.
	Draw(f *Frame) error
}
