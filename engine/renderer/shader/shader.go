package shader

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShaderType identifies the pipeline stage a shader module is used for.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex stage of a render pipeline.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment stage of a render pipeline.
	ShaderTypeFragment
)

// shader is the implementation of the Shader interface.
type shader struct {
	key                        string
	source                     string
	shaderType                 ShaderType
	entryPoint                 string
	bindGroupLayoutDescriptors map[int]wgpu.BindGroupLayoutDescriptor
	vertexLayouts              []wgpu.VertexBufferLayout
}

// Shader is a pre-processed WGSL module for one stage, with the resource layout reflected
// from its source so pipelines can be created without hand-written layout descriptors.
type Shader interface {
	// Key retrieves the unique identifier for this shader, used as the module label.
	//
	// Returns:
	//   - string: the shader's unique key
	Key() string

	// Source retrieves the WGSL source after include expansion.
	//
	// Returns:
	//   - string: the WGSL source code of the shader
	Source() string

	// ShaderType returns the stage this shader was parsed for.
	ShaderType() ShaderType

	// EntryPoint returns the entry point name for this shader's stage.
	//
	// Returns:
	//   - string: the entry point name (e.g. "vs_main")
	EntryPoint() string

	// BindGroupLayoutDescriptors returns the reflected bind group layouts keyed by group index.
	// Every entry carries this shader's stage as its visibility.
	//
	// Returns:
	//   - map[int]wgpu.BindGroupLayoutDescriptor: descriptors keyed by group index
	BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor

	// VertexLayouts returns the vertex buffer layouts for vertex shaders that read vertex attributes.
	// Shaders that pull everything from storage buffers return none.
	//
	// Returns:
	//   - []wgpu.VertexBufferLayout: one layout per vertex input struct, in source order
	VertexLayouts() []wgpu.VertexBufferLayout
}

var _ Shader = &shader{}

// NewShader pre-processes and reflects a WGSL source. Sources are embedded with the binary,
// so a malformed one is a programming error and panics.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to reflect the source for
//   - source: raw WGSL, possibly containing include annotations
//
// Returns:
//   - Shader: the parsed shader
func NewShader(key string, shaderType ShaderType, source string) Shader {
	s, err := ParseShader(key, shaderType, source)
	if err != nil {
		panic(fmt.Sprintf("shader: %v", err))
	}
	return s
}

// ParseShader is NewShader returning an error instead of panicking.
//
// Parameters:
//   - key: a unique identifier for the shader
//   - shaderType: the stage to reflect the source for
//   - source: raw WGSL, possibly containing include annotations
//
// Returns:
//   - Shader: the parsed shader
//   - error: if an include is unknown or the stage has no entry point
func ParseShader(key string, shaderType ShaderType, source string) (Shader, error) {
	processed, err := NewPreProcessor().Process(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	cleaned := stripComments(processed)

	s := &shader{
		key:        key,
		source:     processed,
		shaderType: shaderType,
		entryPoint: entryPoint(cleaned, shaderType),
	}
	if s.entryPoint == "" {
		return nil, fmt.Errorf("%s: no entry point for stage %d", key, shaderType)
	}

	visibility := wgpu.ShaderStageFragment
	if shaderType == ShaderTypeVertex {
		visibility = wgpu.ShaderStageVertex
		s.vertexLayouts = vertexLayouts(cleaned)
	}
	s.bindGroupLayoutDescriptors = bindGroupLayouts(cleaned, visibility)
	return s, nil
}

func (s *shader) Key() string {
	return s.key
}

func (s *shader) Source() string {
	return s.source
}

func (s *shader) ShaderType() ShaderType {
	return s.shaderType
}

func (s *shader) EntryPoint() string {
	return s.entryPoint
}

func (s *shader) BindGroupLayoutDescriptors() map[int]wgpu.BindGroupLayoutDescriptor {
	return s.bindGroupLayoutDescriptors
}

func (s *shader) VertexLayouts() []wgpu.VertexBufferLayout {
	return s.vertexLayouts
}
