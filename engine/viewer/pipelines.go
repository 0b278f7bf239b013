package viewer

import (
	_ "embed"
	"fmt"

	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/shader"
	"github.com/cogentcore/webgpu/wgpu"
)

// Pipeline keys.
const (
	PipelineSphere  = "sphere"
	PipelineEdges   = "edges"
	PipelineLabels  = "labels"
	PipelineOverlay = "overlay"
)

var (
	//go:embed shaders/sphere.wgsl
	sphereSource string
	//go:embed shaders/edges.wgsl
	edgesSource string
	//go:embed shaders/labels.wgsl
	labelsSource string
	//go:embed shaders/overlay.wgsl
	overlaySource string
)

// premultipliedBlend composites the premultiplied RGBA of label and overlay textures.
var premultipliedBlend = &wgpu.BlendState{
	Color: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
	Alpha: wgpu.BlendComponent{
		SrcFactor: wgpu.BlendFactorOne,
		DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
		Operation: wgpu.BlendOperationAdd,
	},
}

// buildPipelines parses the embedded shaders and describes the four pipelines in draw order.
func buildPipelines() ([]pipeline.Pipeline, error) {
	stages := func(key, source string) (pipeline.PipelineBuilderOption, error) {
		vs, err := shader.ParseShader(key+"_vs", shader.ShaderTypeVertex, source)
		if err != nil {
			return nil, err
		}
		fs, err := shader.ParseShader(key+"_fs", shader.ShaderTypeFragment, source)
		if err != nil {
			return nil, err
		}
		return pipeline.WithShaders(vs, fs), nil
	}

	specs := []struct {
		key     string
		source  string
		options []pipeline.PipelineBuilderOption
	}{
		{PipelineSphere, sphereSource, []pipeline.PipelineBuilderOption{
			pipeline.WithCullMode(wgpu.CullModeBack),
			pipeline.WithBlendEnabled(true),
		}},
		{PipelineEdges, edgesSource, []pipeline.PipelineBuilderOption{
			pipeline.WithTopology(wgpu.PrimitiveTopologyLineList),
			pipeline.WithBlendEnabled(true),
			pipeline.WithDepthWriteEnabled(false),
		}},
		{PipelineLabels, labelsSource, []pipeline.PipelineBuilderOption{
			pipeline.WithBlendEnabled(true),
			pipeline.WithBlendState(premultipliedBlend),
			pipeline.WithDepthWriteEnabled(false),
		}},
		{PipelineOverlay, overlaySource, []pipeline.PipelineBuilderOption{
			pipeline.WithBlendEnabled(true),
			pipeline.WithBlendState(premultipliedBlend),
			pipeline.WithDepthTestEnabled(false),
			pipeline.WithDepthWriteEnabled(false),
		}},
	}

	out := make([]pipeline.Pipeline, 0, len(specs))
	for _, s := range specs {
		st, err := stages(s.key, s.source)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s shader: %w", s.key, err)
		}
		out = append(out, pipeline.NewPipeline(s.key, append([]pipeline.PipelineBuilderOption{st}, s.options...)...))
	}
	return out, nil
}
