package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/pipeline"
	"github.com/cogentcore/webgpu/wgpu"
)

// Surface is what the renderer needs from a window: a platform surface and its framebuffer size.
type Surface interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
	Width() int
	Height() int
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	pipelineCache map[string]pipeline.Pipeline

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	presentMode          PresentMode
	msaa                 MSAASampleCount
	clearColor           common.Color
}

// Renderer is the high-level drawing API used by the viewer.
//
// It caches pipelines by key, owns GPU resource creation for BindGroupProviders, and batches all draws
// of a frame into a single render pass (BeginFrame, DrawCall/DrawArrays, EndFrame, Present).
type Renderer interface {
	// Pipeline retrieves the cached Pipeline associated with the given key, or nil.
	//
	// Parameters:
	//   - key: the unique identifier for the Pipeline to retrieve
	//
	// Returns:
	//   - pipeline.Pipeline: the cached pipeline or nil
	Pipeline(key string) pipeline.Pipeline

	// RegisterPipelines creates the GPU pipelines for every Pipeline not yet cached.
	//
	// Parameters:
	//   - pipelines: the pipelines to create
	//
	// Returns:
	//   - error: the first creation failure
	RegisterPipelines(pipelines ...pipeline.Pipeline) error

	// Resize reconfigures the surface and its attachments for a new framebuffer size.
	// Zero sizes are ignored (minimized window).
	Resize(width, height int)

	SetPresentMode(mode PresentMode)

	// SetClearColor changes the background used by subsequent frames.
	SetClearColor(c common.Color)

	// MaxTextureDimension returns the largest 2D texture edge the device accepts.
	//
	// Returns:
	//   - uint32: the device limit
	MaxTextureDimension() uint32

	// InitMeshBuffers uploads vertex and index data onto the provider.
	//
	// Parameters:
	//   - provider: the mesh provider
	//   - vertexData: raw vertex bytes
	//   - indexData: raw little-endian uint32 indices
	//   - indexCount: number of indices
	//
	// Returns:
	//   - error: error if a buffer could not be created
	InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error

	// InitBindGroup creates any missing buffers for the descriptor's buffer entries and the bind group.
	// Texture and sampler entries must be initialized on the provider beforehand.
	//
	// Parameters:
	//   - provider: the provider receiving the resources
	//   - descriptor: the layout, normally taken from Pipeline.BindGroupLayoutDescriptors
	//   - bufferSizeOverrides: sizes for runtime-sized storage arrays, keyed by binding
	//
	// Returns:
	//   - error: error if a resource could not be created
	InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error

	// InitTextureView creates an RGBA texture from staging data and stores it at a binding.
	//
	// Parameters:
	//   - provider: the provider receiving the texture
	//   - bindingKey: the texture binding
	//   - stagingData: pixels and size
	//
	// Returns:
	//   - error: error if the texture could not be created
	InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// InitSampler creates a sampler at a binding; zero fields fall back to linear repeat.
	InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error

	// WriteBuffers stages buffer updates on the queue. Writes to missing buffers are skipped.
	WriteBuffers(writes []bind_group_provider.BufferWrite)

	// WriteTexture replaces the pixels of an existing texture binding of the same size.
	//
	// Parameters:
	//   - provider: the provider owning the texture
	//   - bindingKey: the texture binding
	//   - stagingData: new pixels
	//
	// Returns:
	//   - error: error if there is no texture or the size differs
	WriteTexture(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error

	// BeginFrame acquires the swapchain texture and opens the frame's render pass.
	BeginFrame() error

	// DrawCall encodes an indexed instanced draw of a mesh provider.
	//
	// Parameters:
	//   - pipelineKey: the cached pipeline to use
	//   - meshProvider: provider with vertex and index buffers
	//   - instanceCount: number of instances
	//   - bindGroups: providers bound at group 0, 1, ... in order
	//
	// Returns:
	//   - error: error if the pipeline is unknown
	DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// DrawArrays encodes a non-indexed draw with no vertex buffers. Vertices are pulled from storage
	// buffers by vertex_index.
	//
	// Parameters:
	//   - pipelineKey: the cached pipeline to use
	//   - vertexCount: vertices per instance
	//   - instanceCount: number of instances
	//   - bindGroups: providers bound at group 0, 1, ... in order
	//
	// Returns:
	//   - error: error if the pipeline is unknown
	DrawArrays(pipelineKey string, vertexCount, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error

	// EndFrame ends the render pass and submits the command buffer.
	EndFrame()

	// Present shows the frame and releases the swapchain texture.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer bound to a window surface. Adapter or device failure panics, since the
// viewer cannot run without a GPU.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., WGPU)
//   - surface: the window providing the surface descriptor and framebuffer size
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: a new instance of Renderer configured with the specified backend and options
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) Renderer {
	r := &renderer{
		mu:            &sync.Mutex{},
		pipelineCache: make(map[string]pipeline.Pipeline),
		backendType:   backendType,
		presentMode:   PresentModeVSync,
		msaa:          MSAA4x,
		clearColor:    common.ColorFromHex(0xd0d0d0),
	}

	// Options first so forceFallbackAdapter is known before the adapter request.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		r.backend = newWGPURendererBackend(surface.SurfaceDescriptor(), r.forceFallbackAdapter, r.msaa)
	}

	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(r.clearColor)
	r.backend.ConfigureSurface(surface.Width(), surface.Height())
	return r
}

func (r *renderer) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(c common.Color) {
	r.backend.SetClearColor(c)
}

func (r *renderer) MaxTextureDimension() uint32 {
	return r.backend.MaxTextureDimension()
}

func (r *renderer) Pipeline(key string) pipeline.Pipeline {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pipelineCache[key]
}

func (r *renderer) RegisterPipelines(pipelines ...pipeline.Pipeline) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range pipelines {
		key := p.PipelineKey()
		if _, exists := r.pipelineCache[key]; exists {
			continue
		}
		if err := r.backend.RegisterRenderPipeline(p); err != nil {
			return fmt.Errorf("pipeline %q: %w", key, err)
		}
		r.pipelineCache[key] = p
	}
	return nil
}

func (r *renderer) InitMeshBuffers(provider bind_group_provider.BindGroupProvider, vertexData, indexData []byte, indexCount int) error {
	return r.backend.InitMeshBuffers(provider, vertexData, indexData, indexCount)
}

func (r *renderer) InitBindGroup(provider bind_group_provider.BindGroupProvider, descriptor wgpu.BindGroupLayoutDescriptor, bufferSizeOverrides map[int]uint64) error {
	return r.backend.InitBindGroup(provider, descriptor, bufferSizeOverrides)
}

func (r *renderer) InitTextureView(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.InitTextureView(provider, bindingKey, stagingData)
}

func (r *renderer) InitSampler(provider bind_group_provider.BindGroupProvider, bindingKey int, samplerStagingData common.SamplerStagingData) error {
	return r.backend.InitSampler(provider, bindingKey, samplerStagingData)
}

func (r *renderer) WriteBuffers(writes []bind_group_provider.BufferWrite) {
	r.backend.WriteBuffers(writes)
}

func (r *renderer) WriteTexture(provider bind_group_provider.BindGroupProvider, bindingKey int, stagingData common.TextureStagingData) error {
	return r.backend.WriteTexture(provider, bindingKey, stagingData)
}

func (r *renderer) BeginFrame() error {
	return r.backend.BeginFrame()
}

func (r *renderer) DrawCall(pipelineKey string, meshProvider bind_group_provider.BindGroupProvider, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil || p.RenderPipeline() == nil {
		return fmt.Errorf("pipeline %q not registered", pipelineKey)
	}
	r.backend.DrawCall(p, meshProvider, instanceCount, bindGroups)
	return nil
}

func (r *renderer) DrawArrays(pipelineKey string, vertexCount, instanceCount uint32, bindGroups []bind_group_provider.BindGroupProvider) error {
	p := r.Pipeline(pipelineKey)
	if p == nil || p.RenderPipeline() == nil {
		return fmt.Errorf("pipeline %q not registered", pipelineKey)
	}
	r.backend.DrawArrays(p, vertexCount, instanceCount, bindGroups)
	return nil
}

func (r *renderer) EndFrame() {
	r.backend.EndFrame()
}

func (r *renderer) Present() {
	r.backend.Present()
}
