package model

import (
	_ "embed"
	"unsafe"

	"github.com/Carmen-Shannon/oxy-ontography/common"
)

// GPUVertexSource is the WGSL definition of the VertexInput struct for the sphere mesh.
// Matches GPUVertex layout exactly (24 bytes).
//
//go:embed assets/vertex.wgsl
var GPUVertexSource string

// GPUVertex is a single mesh vertex.
type GPUVertex struct {
	Position [3]float32 // offset  0
	Normal   [3]float32 // offset 12
}

// GPUNodeInstanceSource is the WGSL definition of the NodeInstance struct.
// Matches GPUNodeInstance layout exactly (32 bytes).
//
//go:embed assets/node_instance.wgsl
var GPUNodeInstanceSource string

// GPUNodeInstance is the per-node data the sphere pipeline pulls from storage by instance index.
type GPUNodeInstance struct {
	Position [3]float32 // offset  0: world-space center
	Scale    float32    // offset 12: uniform scale of the unit marker
	Color    [4]float32 // offset 16: rgb + marker opacity
}

// GPUEdgeVertexSource is the WGSL definition of the EdgeVertex struct.
// Matches GPUEdgeVertex layout exactly (16 bytes).
//
//go:embed assets/edge_vertex.wgsl
var GPUEdgeVertexSource string

// GPUEdgeVertex is one endpoint of a line segment. Segment i uses vertices 2i and 2i+1.
type GPUEdgeVertex struct {
	Position [3]float32 // offset  0
	Opacity  float32    // offset 12
}

// GPULabelInstanceSource is the WGSL definition of the LabelInstance struct.
// Matches GPULabelInstance layout exactly (48 bytes).
//
//go:embed assets/label_instance.wgsl
var GPULabelInstanceSource string

// GPULabelInstance places one billboard quad with a region of the label atlas.
type GPULabelInstance struct {
	Anchor  [3]float32 // offset  0: world-space quad center
	Opacity float32    // offset 12
	UV      [4]float32 // offset 16: u0, v0, u1, v1
	Size    [2]float32 // offset 32: world-space width and height
	_       [2]float32 // offset 40: padding to 48
}

// GPUEdgeStyleSource is the WGSL definition of the EdgeStyle uniform. Matches GPUEdgeStyle (16 bytes).
//
//go:embed assets/edge_style.wgsl
var GPUEdgeStyleSource string

// GPUEdgeStyle holds the shared edge color.
type GPUEdgeStyle struct {
	Color [4]float32
}

// Marshal returns the byte view of a slice of GPU structs for upload. The structs above
// contain only 4-byte fields, so Go's layout matches the WGSL layout.
//
// Parameters:
//   - items: the structs to upload
//
// Returns:
//   - []byte: a view sharing memory with items, or nil when empty
func Marshal[T GPUVertex | GPUNodeInstance | GPUEdgeVertex | GPULabelInstance | GPUEdgeStyle](items []T) []byte {
	return common.SliceToBytes(items)
}

// Stride returns the byte size of one GPU struct.
func Stride[T GPUVertex | GPUNodeInstance | GPUEdgeVertex | GPULabelInstance | GPUEdgeStyle]() uint64 {
	var zero T
	return uint64(unsafe.Sizeof(zero))
}
