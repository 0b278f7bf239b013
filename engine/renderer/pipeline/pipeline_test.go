package pipeline

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const src = `
//@oxy:include camera
//@oxy:include lighting
@group(0) @binding(0) var<uniform> camera: CameraUniform;
@group(1) @binding(0) var<uniform> lighting: Lighting;

@vertex
fn vs_main(@builtin(vertex_index) i: u32) -> @builtin(position) vec4<f32> {
    return camera.view_proj * vec4<f32>(f32(i), 0.0, 0.0, 1.0);
}

@fragment
fn fs_main() -> @location(0) vec4<f32> {
    return vec4<f32>(lighting.color, 1.0);
}
`

func TestMergedLayoutsUnionVisibility(t *testing.T) {
	p := NewPipeline("test",
		WithShaders(
			shader.NewShader("vs", shader.ShaderTypeVertex, src),
			shader.NewShader("fs", shader.ShaderTypeFragment, src),
		),
		WithTopology(wgpu.PrimitiveTopologyLineList),
	)

	layouts := p.BindGroupLayoutDescriptors()
	require.Len(t, layouts, 2)
	for g := range 2 {
		require.Len(t, layouts[g].Entries, 1)
		assert.Equal(t, wgpu.ShaderStageVertex|wgpu.ShaderStageFragment, layouts[g].Entries[0].Visibility)
	}
	assert.Equal(t, uint64(48), layouts[1].Entries[0].Buffer.MinBindingSize)
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, p.Topology())
	assert.True(t, p.DepthTestEnabled())
	assert.False(t, p.BlendEnabled())
	assert.Nil(t, p.RenderPipeline())
}

func TestMergeKeepsStageOnlyGroups(t *testing.T) {
	a := map[int]wgpu.BindGroupLayoutDescriptor{0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 1, Visibility: wgpu.ShaderStageVertex}}}}
	b := map[int]wgpu.BindGroupLayoutDescriptor{
		0: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
		2: {Entries: []wgpu.BindGroupLayoutEntry{{Binding: 0, Visibility: wgpu.ShaderStageFragment}}},
	}
	m := mergeBindGroupLayouts(a, b)
	require.Len(t, m, 2)
	require.Len(t, m[0].Entries, 2)
	assert.Equal(t, uint32(0), m[0].Entries[0].Binding)
	assert.Equal(t, wgpu.ShaderStageVertex, m[0].Entries[1].Visibility)
}
