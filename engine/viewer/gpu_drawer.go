package viewer

import (
	"cmp"
	"fmt"
	"image"
	"slices"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/config"
	"github.com/Carmen-Shannon/oxy-ontography/engine/camera"
	"github.com/Carmen-Shannon/oxy-ontography/engine/label"
	"github.com/Carmen-Shannon/oxy-ontography/engine/light"
	"github.com/Carmen-Shannon/oxy-ontography/engine/model"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer/pipeline"
	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
	"github.com/cogentcore/webgpu/wgpu"
)

// gpuDrawer draws frames through a Renderer.
//
// Bind groups per pipeline:
//
//	sphere:  0 camera, 1 node instances, 2 lighting
//	edges:   0 camera, 1 edge vertices + edge style
//	labels:  0 camera, 1 label instances, 2 atlas texture + sampler
//	overlay: 0 overlay texture + sampler
type gpuDrawer struct {
	renderer   renderer.Renderer
	camera     camera.Camera
	rasterizer label.Rasterizer
	cfg        *config.Config

	marker    model.Model
	pipelines map[string]pipeline.Pipeline

	nodes    bind_group_provider.BindGroupProvider
	lighting bind_group_provider.BindGroupProvider
	edges    bind_group_provider.BindGroupProvider
	labels   bind_group_provider.BindGroupProvider
	atlas    bind_group_provider.BindGroupProvider
	overlay  bind_group_provider.BindGroupProvider

	regions     []label.Region
	overlaySize image.Point
	edgeColor   common.Color

	// reused per frame
	nodeData  []model.GPUNodeInstance
	edgeData  []model.GPUEdgeVertex
	labelData []model.GPULabelInstance
}

var _ Drawer = &gpuDrawer{}

// NewGPUDrawer creates a Drawer rendering through r with the given camera.
//
// Parameters:
//   - r: the renderer bound to the window surface
//   - cam: the viewer camera; its bind group provider is initialized by Init
//   - rasterizer: rasterizes the label atlas
//   - cfg: scene colors, lights and label sizes
//
// Returns:
//   - Drawer: the drawer, uninitialized
func NewGPUDrawer(r renderer.Renderer, cam camera.Camera, rasterizer label.Rasterizer, cfg *config.Config) Drawer {
	return &gpuDrawer{
		renderer:   r,
		camera:     cam,
		rasterizer: rasterizer,
		cfg:        cfg,
		pipelines:  make(map[string]pipeline.Pipeline),
		nodes:      bind_group_provider.NewBindGroupProvider("node_instances"),
		lighting:   bind_group_provider.NewBindGroupProvider("lighting"),
		edges:      bind_group_provider.NewBindGroupProvider("edges"),
		labels:     bind_group_provider.NewBindGroupProvider("label_instances"),
		atlas:      bind_group_provider.NewBindGroupProvider("label_atlas"),
		overlay:    bind_group_provider.NewBindGroupProvider("overlay"),
		edgeColor:  cfg.Scene.EdgeColor.Color,
	}
}

func (d *gpuDrawer) Init(sc scene.Scene, vp picking.Viewport) error {
	ps, err := buildPipelines()
	if err != nil {
		return err
	}
	if err := d.renderer.RegisterPipelines(ps...); err != nil {
		return err
	}
	for _, p := range ps {
		d.pipelines[p.PipelineKey()] = p
	}
	layout := func(key string, group int) (wgpu.BindGroupLayoutDescriptor, bool) {
		desc, ok := d.pipelines[key].BindGroupLayoutDescriptors()[group]
		return desc, ok
	}

	sphereCam, _ := layout(PipelineSphere, 0)
	if err := d.renderer.InitBindGroup(d.camera.BindGroupProvider(), sphereCam, nil); err != nil {
		return fmt.Errorf("camera bind group: %w", err)
	}

	d.marker = model.NewMarker(d.cfg.Scene.NodeRadius)
	if err := d.renderer.InitMeshBuffers(d.marker.MeshProvider(), d.marker.VertexData(), d.marker.IndexData(), d.marker.IndexCount()); err != nil {
		return fmt.Errorf("marker mesh: %w", err)
	}

	nodeCount := uint64(max(sc.NodeCount(), 1))
	edgeCount := uint64(max(sc.EdgeCount(), 1))

	nodesLayout, _ := layout(PipelineSphere, 1)
	if err := d.renderer.InitBindGroup(d.nodes, nodesLayout, map[int]uint64{0: nodeCount * model.Stride[model.GPUNodeInstance]()}); err != nil {
		return fmt.Errorf("node instances: %w", err)
	}
	lightingLayout, _ := layout(PipelineSphere, 2)
	if err := d.renderer.InitBindGroup(d.lighting, lightingLayout, nil); err != nil {
		return fmt.Errorf("lighting: %w", err)
	}
	edgesLayout, _ := layout(PipelineEdges, 1)
	if err := d.renderer.InitBindGroup(d.edges, edgesLayout, map[int]uint64{0: 2 * edgeCount * model.Stride[model.GPUEdgeVertex]()}); err != nil {
		return fmt.Errorf("edges: %w", err)
	}
	labelsLayout, _ := layout(PipelineLabels, 1)
	if err := d.renderer.InitBindGroup(d.labels, labelsLayout, map[int]uint64{0: nodeCount * model.Stride[model.GPULabelInstance]()}); err != nil {
		return fmt.Errorf("label instances: %w", err)
	}
	if err := d.initAtlas(sc); err != nil {
		return err
	}

	lights := d.cfg.Lights
	rig := light.Rig{
		Ambient: light.NewLight(light.LightTypeAmbient,
			light.WithColor(lights.AmbientColor.Linear()),
			light.WithIntensity(lights.AmbientIntensity)),
		Directional: light.NewLight(light.LightTypeDirectional,
			light.WithColor(lights.DirectionalColor.Linear()),
			light.WithIntensity(lights.DirectionalIntensity),
			light.WithPosition(vec3(lights.DirectionalPosition))),
	}
	gpuLighting := rig.GPU()
	style := []model.GPUEdgeStyle{{Color: d.edgeColor.Linear().Vec4(1)}}
	d.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: d.lighting, Binding: 0, Data: gpuLighting.Marshal()},
		{Provider: d.edges, Binding: 1, Data: model.Marshal(style)},
	})

	return d.initOverlay(image.NewRGBA(image.Rect(0, 0, max(vp.Width, 1), max(vp.Height, 1))))
}

func (d *gpuDrawer) initAtlas(sc scene.Scene) error {
	nodes := sc.Nodes()
	lines := make([][]string, len(nodes))
	for i, n := range nodes {
		lines[i] = n.LabelLines
	}
	atlas, err := label.NewAtlas(d.rasterizer.RenderAll(lines), int(d.renderer.MaxTextureDimension()))
	if err != nil {
		return fmt.Errorf("label atlas: %w", err)
	}
	d.regions = atlas.Regions

	if err := d.renderer.InitTextureView(d.atlas, 0, staging(atlas.Image)); err != nil {
		return fmt.Errorf("label atlas: %w", err)
	}
	if err := d.renderer.InitSampler(d.atlas, 1, common.LinearClampSampler()); err != nil {
		return fmt.Errorf("label atlas: %w", err)
	}
	desc := d.pipelines[PipelineLabels].BindGroupLayoutDescriptors()[2]
	return d.renderer.InitBindGroup(d.atlas, desc, nil)
}

// initOverlay (re)creates the overlay texture at the size of img.
func (d *gpuDrawer) initOverlay(img *image.RGBA) error {
	d.overlay.Release()
	if err := d.renderer.InitTextureView(d.overlay, 0, staging(img)); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	if err := d.renderer.InitSampler(d.overlay, 1, common.LinearClampSampler()); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	desc := d.pipelines[PipelineOverlay].BindGroupLayoutDescriptors()[0]
	if err := d.renderer.InitBindGroup(d.overlay, desc, nil); err != nil {
		return fmt.Errorf("overlay: %w", err)
	}
	d.overlaySize = img.Rect.Size()
	return nil
}

func (d *gpuDrawer) Resize(vp picking.Viewport) {
	d.renderer.Resize(vp.Width, vp.Height)
}

func (d *gpuDrawer) Draw(f *Frame) error {
	if f.Overlay != nil {
		if f.Overlay.Rect.Size() != d.overlaySize {
			if err := d.initOverlay(f.Overlay); err != nil {
				return err
			}
		} else if f.OverlayChanged {
			if err := d.renderer.WriteTexture(d.overlay, 0, staging(f.Overlay)); err != nil {
				return err
			}
		}
	}

	d.nodeData = d.nodeData[:0]
	for _, n := range f.Nodes {
		d.nodeData = append(d.nodeData, model.GPUNodeInstance{
			Position: n.Position.Array(),
			Scale:    n.Scale,
			Color:    n.Color.Linear().Vec4(n.MarkerOpacity),
		})
	}
	d.edgeData = d.edgeData[:0]
	for _, e := range f.Edges {
		d.edgeData = append(d.edgeData,
			model.GPUEdgeVertex{Position: e.From.Array(), Opacity: e.Opacity},
			model.GPUEdgeVertex{Position: e.To.Array(), Opacity: e.Opacity},
		)
	}
	d.labelData = visibleLabels(d.labelData[:0], f, d.regions, labelSize(d.cfg))
	f.LabelsDrawn = len(d.labelData)

	cameraData := f.Camera.Marshal()
	d.renderer.WriteBuffers([]bind_group_provider.BufferWrite{
		{Provider: d.camera.BindGroupProvider(), Binding: 0, Data: cameraData},
		{Provider: d.nodes, Binding: 0, Data: model.Marshal(d.nodeData)},
		{Provider: d.edges, Binding: 0, Data: model.Marshal(d.edgeData)},
		{Provider: d.labels, Binding: 0, Data: model.Marshal(d.labelData)},
	})

	if err := d.renderer.BeginFrame(); err != nil {
		return fmt.Errorf("failed to begin frame: %w", err)
	}
	cam := d.camera.BindGroupProvider()
	draws := []func() error{
		func() error {
			return d.renderer.DrawCall(PipelineSphere, d.marker.MeshProvider(), uint32(len(d.nodeData)),
				[]bind_group_provider.BindGroupProvider{cam, d.nodes, d.lighting})
		},
		func() error {
			return d.renderer.DrawArrays(PipelineEdges, uint32(len(d.edgeData)), 1,
				[]bind_group_provider.BindGroupProvider{cam, d.edges})
		},
		func() error {
			return d.renderer.DrawArrays(PipelineLabels, 6, uint32(len(d.labelData)),
				[]bind_group_provider.BindGroupProvider{cam, d.labels, d.atlas})
		},
		func() error {
			return d.renderer.DrawArrays(PipelineOverlay, 3, 1,
				[]bind_group_provider.BindGroupProvider{d.overlay})
		},
	}
	var drawErr error
	for _, draw := range draws {
		if err := draw(); err != nil && drawErr == nil {
			drawErr = err
		}
	}
	d.renderer.EndFrame()
	d.renderer.Present()
	return drawErr
}

// visibleLabels appends the label instances that are not fully transparent and lie inside the view frustum,
// sorted back to front so blending composes correctly.
func visibleLabels(dst []model.GPULabelInstance, f *Frame, regions []label.Region, size [2]float32) []model.GPULabelInstance {
	radius := common.Vec3{X: size[0] / 2, Y: size[1] / 2}.Length()
	type candidate struct {
		inst model.GPULabelInstance
		dist float32
	}
	var visible []candidate
	for _, n := range f.Nodes {
		if n.LabelOpacity <= 0 || n.ID >= len(regions) {
			continue
		}
		if !f.Frustum.ContainsSphere(n.LabelAnchor, radius) {
			continue
		}
		r := regions[n.ID]
		visible = append(visible, candidate{
			inst: model.GPULabelInstance{
				Anchor:  n.LabelAnchor.Array(),
				Opacity: n.LabelOpacity,
				UV:      [4]float32{r.U0, r.V0, r.U1, r.V1},
				Size:    size,
			},
			dist: n.LabelAnchor.Sub(f.Eye).Length(),
		})
	}
	slices.SortStableFunc(visible, func(a, b candidate) int { return cmp.Compare(b.dist, a.dist) })
	for _, c := range visible {
		dst = append(dst, c.inst)
	}
	return dst
}

func labelSize(cfg *config.Config) [2]float32 {
	return cfg.Scene.LabelSize
}

func staging(img *image.RGBA) common.TextureStagingData {
	return common.TextureStagingData{
		Pixels: img.Pix,
		Width:  uint32(img.Rect.Dx()),
		Height: uint32(img.Rect.Dy()),
	}
}

func vec3(a [3]float32) common.Vec3 {
	return common.Vec3{X: a[0], Y: a[1], Z: a[2]}
}
