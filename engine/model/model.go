package model

import (
	"math"

	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/bind_group_provider"
)

// model is the implementation of the Model interface.
type model struct {
	name           string
	vertices       []GPUVertex
	indices        []uint32
	boundingRadius float32
	meshProvider   bind_group_provider.BindGroupProvider
}

// Model is an indexed triangle mesh ready for upload. The renderer fills MeshProvider with
// the vertex and index buffers built from VertexData and IndexData.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// VertexData returns the vertex bytes for upload.
	VertexData() []byte

	// IndexData returns the uint32 index bytes for upload.
	IndexData() []byte

	// IndexCount returns the number of indices.
	IndexCount() int

	// VertexCount returns the number of vertices.
	VertexCount() int

	// BoundingRadius returns the distance from the origin to the farthest vertex.
	//
	// Returns:
	//   - float32: the bounding sphere radius in model space
	BoundingRadius() float32

	// MeshProvider returns the provider that holds this model's GPU buffers.
	//
	// Returns:
	//   - bind_group_provider.BindGroupProvider: the mesh provider
	MeshProvider() bind_group_provider.BindGroupProvider
}

var _ Model = &model{}

// NewModel creates a Model from the configured mesh.
//
// Parameters:
//   - options: functional options, at least WithMesh
//
// Returns:
//   - Model: the model
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{name: "model"}
	for _, opt := range options {
		opt(m)
	}
	m.boundingRadius = computeBoundingRadius(m.vertices)
	m.meshProvider = bind_group_provider.NewBindGroupProvider(m.name + "_mesh")
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) VertexData() []byte {
	return Marshal(m.vertices)
}

func (m *model) IndexData() []byte {
	if len(m.indices) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(m.indices)*4)
	for _, i := range m.indices {
		buf = append(buf, byte(i), byte(i>>8), byte(i>>16), byte(i>>24))
	}
	return buf
}

func (m *model) IndexCount() int {
	return len(m.indices)
}

func (m *model) VertexCount() int {
	return len(m.vertices)
}

func (m *model) BoundingRadius() float32 {
	return m.boundingRadius
}

func (m *model) MeshProvider() bind_group_provider.BindGroupProvider {
	return m.meshProvider
}

func computeBoundingRadius(vertices []GPUVertex) float32 {
	var maxDistSq float32
	for _, v := range vertices {
		p := v.Position
		maxDistSq = max(maxDistSq, p[0]*p[0]+p[1]*p[1]+p[2]*p[2])
	}
	return float32(math.Sqrt(float64(maxDistSq)))
}
