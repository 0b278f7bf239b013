package viewer

import (
	"math/rand/v2"
	"testing"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/config"
	"github.com/Carmen-Shannon/oxy-ontography/engine/label"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDrawer struct {
	inits   int
	resizes []picking.Viewport
	frames  []*Frame
}

func (d *fakeDrawer) Init(sc scene.Scene, vp picking.Viewport) error {
	d.inits++
	return nil
}

func (d *fakeDrawer) Resize(vp picking.Viewport) {
	d.resizes = append(d.resizes, vp)
}

func (d *fakeDrawer) Draw(f *Frame) error {
	d.frames = append(d.frames, f)
	return nil
}

const (
	vpW = 1280
	vpH = 800
)

// A sits at the origin, straight ahead of the default camera; B sits off to the side.
func twoNodeDataset() *ontology.Dataset {
	return ontology.NewDataset(
		[]ontology.Category{
			{Key: "Cat1", Style: ontology.CategoryStyle{Color: common.ColorFromHex(0xff0000), Meaning: "one"}},
			{Key: "Cat2", Style: ontology.CategoryStyle{Color: common.ColorFromHex(0x0000ff), Meaning: "two"}, Center: common.Vec3{X: -4}},
		},
		[]ontology.NodeDescriptor{{Label: "A", Category: "Cat1"}, {Label: "B", Category: "Cat2"}},
		[]ontology.EdgeDescriptor{{From: "A", To: "B"}},
	)
}

func newTestViewer(t *testing.T) (*viewerImpl, *fakeDrawer) {
	t.Helper()
	return newTestViewerWithConfig(t, config.Default())
}

func newTestViewerWithConfig(t *testing.T, cfg *config.Config) (*viewerImpl, *fakeDrawer) {
	t.Helper()
	cfg.Scene.Jitter = [3]float32{}
	d := &fakeDrawer{}
	v, err := NewViewer(twoNodeDataset(), cfg,
		WithDrawer(d),
		WithViewport(vpW, vpH),
		WithRand(rand.New(rand.NewPCG(1, 2))),
	)
	require.NoError(t, err)
	return v.(*viewerImpl), d
}

func frame(t *testing.T, v Viewer) *Frame {
	t.Helper()
	f, err := v.Frame()
	require.NoError(t, err)
	return f
}

func sceneNode(t *testing.T, v Viewer, id int) scene.Node {
	t.Helper()
	n, ok := v.Scene().Node(id)
	require.True(t, ok)
	return n
}

func TestNewViewerInitializesDrawer(t *testing.T) {
	v, d := newTestViewer(t)
	assert.Equal(t, 1, d.inits)
	assert.Equal(t, 2, v.Scene().NodeCount())
	assert.Equal(t, 1, v.Scene().EdgeCount())
	assert.Equal(t, common.Vec3{X: -4}, sceneNode(t, v, 1).Position)
}

func TestFrameWithoutPointerIsIdle(t *testing.T) {
	v, d := newTestViewer(t)
	f := frame(t, v)
	assert.Equal(t, picking.IdleState(), f.Hover)
	assert.False(t, v.Highlighter().Tooltip().Visible)
	require.Len(t, d.frames, 1)
	assert.Len(t, f.Nodes, 2)
	assert.NotNil(t, f.Overlay)
	assert.True(t, f.OverlayChanged)
}

func TestHoverFromPointer(t *testing.T) {
	v, _ := newTestViewer(t)
	v.PointerMoved(vpW/2, vpH/2)
	f := frame(t, v)
	assert.Equal(t, picking.HoveringState(0), f.Hover)
	assert.InDelta(t, 1.25, f.Nodes[0].Scale, 1e-6)
	assert.InDelta(t, 1.0, f.Edges[0].Opacity, 1e-6)
	assert.True(t, v.Highlighter().Tooltip().Visible)

	v.PointerMoved(vpW-5, vpH-5)
	f = frame(t, v)
	assert.Equal(t, picking.IdleState(), f.Hover)
	assert.InDelta(t, 1.0, f.Nodes[0].Scale, 1e-6)
	assert.InDelta(t, 0.6, f.Edges[0].Opacity, 1e-6)
}

func TestPointerLeavingWindowClearsHover(t *testing.T) {
	v, _ := newTestViewer(t)
	v.PointerMoved(vpW/2, vpH/2)
	f := frame(t, v)
	require.Equal(t, picking.HoveringState(0), f.Hover)

	v.PointerLeft()
	f = frame(t, v)
	assert.Equal(t, picking.IdleState(), f.Hover)
	assert.False(t, v.Highlighter().Tooltip().Visible)
	assert.InDelta(t, 1.0, f.Nodes[0].Scale, 1e-6)
}

func TestPointerLeavingWindowEndsDrag(t *testing.T) {
	v, _ := newTestViewer(t)
	v.PointerPressed(common.MouseButtonLeft, vpW/2, vpH/2)
	v.PointerLeft()
	start := v.Camera().Position()

	v.PointerMoved(vpW/2+200, vpH/2)
	frame(t, v)
	assert.Equal(t, start, v.Camera().Position())
}

func TestSpotlightRestIsTunedApartFromHoverReset(t *testing.T) {
	cfg := config.Default()
	cfg.Highlight.EdgeDefault = 0.3
	cfg.Highlight.SpotlightEdgeRest = 0.6
	v, _ := newTestViewerWithConfig(t, cfg)

	v.Spotlight().Click("Cat1")
	v.Spotlight().Click("Cat1")
	_, focused := v.Spotlight().Focused()
	require.False(t, focused)
	assert.InDelta(t, 0.6, v.Scene().Edges()[0].Opacity, 1e-6)

	f := frame(t, v)
	assert.InDelta(t, 0.3, f.Edges[0].Opacity, 1e-6)
}

func TestHoverWinsOverSpotlightOnlyWhereItApplies(t *testing.T) {
	v, _ := newTestViewer(t)
	v.Spotlight().Click("Cat2")

	v.PointerMoved(vpW/2, vpH/2)
	f := frame(t, v)
	a := f.Nodes[0]
	assert.InDelta(t, 1.25, a.Scale, 1e-6)
	assert.InDelta(t, 1.0, a.LabelOpacity, 1e-6)
	assert.InDelta(t, 0.25, a.MarkerOpacity, 1e-6)
	assert.InDelta(t, 1.0, f.Edges[0].Opacity, 1e-6)

	v.PointerMoved(vpW-5, vpH-5)
	f = frame(t, v)
	a = f.Nodes[0]
	assert.InDelta(t, 1.0, a.Scale, 1e-6)
	assert.InDelta(t, 0.25, a.LabelOpacity, 1e-6)
	assert.InDelta(t, 0.1, f.Edges[0].Opacity, 1e-6)
	assert.InDelta(t, 1.0, f.Nodes[1].LabelOpacity, 1e-6)
}

func TestLegendRowClickAppliesImmediately(t *testing.T) {
	v, _ := newTestViewer(t)
	rows := v.Legend().Layout().Rows
	require.Len(t, rows, 2)
	r := rows[0].Rect
	x, y := float32(r.MinX+r.Width()/2), float32(r.MinY+r.Height()/2)

	v.PointerPressed(common.MouseButtonLeft, x, y)
	v.PointerReleased(common.MouseButtonLeft, x, y)
	c, ok := v.Spotlight().Focused()
	require.True(t, ok)
	assert.Equal(t, ontology.CategoryKey("Cat1"), c)
	assert.InDelta(t, 0.25, sceneNode(t, v, 1).MarkerOpacity, 1e-6)
	assert.False(t, v.dragging)

	v.PointerPressed(common.MouseButtonLeft, x, y)
	_, ok = v.Spotlight().Focused()
	assert.False(t, ok)
	assert.InDelta(t, 1.0, sceneNode(t, v, 1).MarkerOpacity, 1e-6)
}

func TestLegendToggleByButtonAndKey(t *testing.T) {
	v, _ := newTestViewer(t)
	tg := v.Legend().Layout().Toggle
	v.PointerPressed(common.MouseButtonLeft, float32(tg.MinX+1), float32(tg.MinY+1))
	assert.False(t, v.Legend().Visible())
	assert.Equal(t, "Show", v.Legend().ButtonText())

	assert.True(t, v.KeyPressed(common.KeyH))
	assert.True(t, v.Legend().Visible())
	assert.False(t, v.KeyPressed(common.KeyF))
}

func TestLegendStartsHiddenFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Legend.Visible = false
	v, _ := newTestViewerWithConfig(t, cfg)
	assert.False(t, v.Legend().Visible())
	assert.Equal(t, "Show", v.Legend().ButtonText())
}

func TestLegendVisibilityLeavesSceneAlone(t *testing.T) {
	v, _ := newTestViewer(t)
	before := frame(t, v)
	v.KeyPressed(common.KeyH)
	after := frame(t, v)
	assert.Equal(t, before.Nodes, after.Nodes)
	assert.Equal(t, before.Edges, after.Edges)
	assert.True(t, after.OverlayChanged)
}

func TestDragOrbitsCamera(t *testing.T) {
	v, _ := newTestViewer(t)
	start := v.Camera().Position()

	v.PointerPressed(common.MouseButtonLeft, vpW/2, vpH/2)
	v.PointerMoved(vpW/2+200, vpH/2)
	v.PointerReleased(common.MouseButtonLeft, vpW/2+200, vpH/2)
	frame(t, v)

	moved := v.Camera().Position()
	assert.NotEqual(t, start, moved)
	assert.InDelta(t, start.Length(), moved.Length(), 1e-3)
}

func TestPressOnPanelDoesNotDrag(t *testing.T) {
	v, _ := newTestViewer(t)
	start := v.Camera().Position()
	p := v.Legend().Layout().Panel

	v.PointerPressed(common.MouseButtonLeft, float32(p.MinX+2), float32(p.MaxY-2))
	v.PointerMoved(float32(p.MinX+200), float32(p.MaxY-2))
	frame(t, v)
	assert.Equal(t, start, v.Camera().Position())
}

func TestScrollZoomsIn(t *testing.T) {
	v, _ := newTestViewer(t)
	start := v.Camera().Position().Length()
	v.Scrolled(3)
	frame(t, v)
	assert.Less(t, v.Camera().Position().Length(), start)
}

func TestResizeDefersSurfaceAndSkipsEmptyViewport(t *testing.T) {
	v, d := newTestViewer(t)

	v.Resize(0, 0)
	f := frame(t, v)
	assert.Empty(t, d.frames)
	assert.Equal(t, picking.Viewport{}, f.Viewport)
	assert.Empty(t, d.resizes)

	v.Resize(800, 600)
	assert.Empty(t, d.resizes)
	frame(t, v)
	require.Equal(t, []picking.Viewport{{Width: 800, Height: 600}}, d.resizes)
	assert.Len(t, d.frames, 1)
	assert.InDelta(t, 800.0/600.0, v.Camera().Aspect(), 1e-6)

	frame(t, v)
	assert.Len(t, d.resizes, 1)
}

func TestBuildPipelinesLayouts(t *testing.T) {
	ps, err := buildPipelines()
	require.NoError(t, err)
	require.Len(t, ps, 4)

	byKey := map[string]int{}
	for i, p := range ps {
		byKey[p.PipelineKey()] = i
	}

	sphere := ps[byKey[PipelineSphere]].BindGroupLayoutDescriptors()
	assert.Len(t, sphere, 3)

	edges := ps[byKey[PipelineEdges]]
	assert.Equal(t, wgpu.PrimitiveTopologyLineList, edges.Topology())
	assert.False(t, edges.DepthWriteEnabled())
	require.Len(t, edges.BindGroupLayoutDescriptors()[1].Entries, 2)

	labels := ps[byKey[PipelineLabels]].BindGroupLayoutDescriptors()
	require.Len(t, labels[2].Entries, 2)
	assert.Equal(t, wgpu.TextureSampleTypeFloat, labels[2].Entries[0].Texture.SampleType)
	assert.Equal(t, wgpu.SamplerBindingTypeFiltering, labels[2].Entries[1].Sampler.Type)

	overlay := ps[byKey[PipelineOverlay]]
	assert.False(t, overlay.DepthTestEnabled())
	assert.Len(t, overlay.BindGroupLayoutDescriptors(), 1)
}

func TestVisibleLabelsCullsAndSortsBackToFront(t *testing.T) {
	cfg := config.Default()
	cfg.Scene.Jitter = [3]float32{}
	v, err := NewViewer(twoNodeDataset(), cfg, WithViewport(vpW, vpH))
	require.NoError(t, err)
	f := frame(t, v)

	behind := scene.Node{ID: 2, LabelAnchor: common.Vec3{X: 20, Y: 16, Z: 24}, LabelOpacity: 1}
	hidden := scene.Node{ID: 1, LabelAnchor: common.Vec3{Y: 1}, LabelOpacity: 0}
	near := scene.Node{ID: 0, LabelAnchor: common.Vec3{Y: 1}, LabelOpacity: 1}
	far := scene.Node{ID: 1, LabelAnchor: common.Vec3{X: -3, Y: 1, Z: -3}, LabelOpacity: 0.5}
	f.Nodes = []scene.Node{near, hidden, far, behind}

	regions := []label.Region{{U1: 0.5, V1: 0.5}, {U0: 0.5, U1: 1, V1: 0.5}, {V0: 0.5, U1: 0.5, V1: 1}}
	got := visibleLabels(nil, f, regions, [2]float32{2.6, 0.7})
	require.Len(t, got, 2)
	assert.Equal(t, float32(0.5), got[0].Opacity)
	assert.Equal(t, [4]float32{0.5, 0, 1, 0.5}, got[0].UV)
	assert.Equal(t, near.LabelAnchor.Array(), got[1].Anchor)
	assert.Equal(t, [2]float32{2.6, 0.7}, got[1].Size)
}
