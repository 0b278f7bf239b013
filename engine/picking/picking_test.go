package picking

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/layout"
	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var centers = map[ontology.CategoryKey]common.Vec3{
	"Left":  {X: -3},
	"Mid":   {},
	"Right": {X: 3},
}

// testScene places A, B, C exactly on the X axis at -3, 0 and 3 with edges A-B and B-C, plus an isolated D far away.
func testScene(t *testing.T) scene.Scene {
	t.Helper()
	placer := layout.NewPlacer(
		layout.WithJitter(0, 0, 0),
		layout.WithCenters(func(c ontology.CategoryKey) common.Vec3 {
			if v, ok := centers[c]; ok {
				return v
			}
			return common.Vec3{Y: 50}
		}),
	)
	return scene.Build(
		[]ontology.NodeDescriptor{{"A", "Left"}, {"B", "Mid"}, {"C", "Right"}, {"D", "Far"}},
		[]ontology.EdgeDescriptor{{"A", "B"}, {"B", "C"}},
		scene.WithPlacer(placer),
		scene.WithLabelWrap(func(s string) []string { return []string{s} }),
	)
}

// downAt is a ray looking straight down onto (x, 0, 0) from above.
func downAt(x float32) common.Ray {
	return common.Ray{Origin: common.Vec3{X: x, Y: 10}, Direction: common.Vec3{Y: -1}}
}

var (
	vp      = Viewport{Width: 800, Height: 600}
	pointer = Pointer{X: 100, Y: 100, Valid: true}
)

func assertDefaults(t *testing.T, s scene.Scene) {
	t.Helper()
	for _, n := range s.Nodes() {
		assert.Equal(t, float32(1), n.Scale, n.Label)
		assert.Equal(t, float32(1), n.LabelOpacity, n.Label)
	}
	for _, e := range s.Edges() {
		assert.Equal(t, float32(scene.DefaultEdgeOpacity), e.Opacity)
	}
}

func TestPickNearest(t *testing.T) {
	h := NewHighlighter(testScene(t))

	assert.Equal(t, HoveringState(1), h.Pick(downAt(0)))
	assert.Equal(t, HoveringState(2), h.Pick(downAt(3.2)))
	assert.Equal(t, IdleState(), h.Pick(downAt(1.5)))

	// Along +X from the far left every marker is hit; A is nearest.
	along := common.Ray{Origin: common.Vec3{X: -10}, Direction: common.Vec3{X: 1}}
	assert.Equal(t, HoveringState(0), h.Pick(along))
}

func TestPickUsesCurrentScale(t *testing.T) {
	s := testScene(t)
	h := NewHighlighter(s)
	assert.Equal(t, IdleState(), h.Pick(downAt(0.4)))
	s.SetNodeScale(1, 1.25)
	assert.Equal(t, HoveringState(1), h.Pick(downAt(0.4)))
}

func TestHoverHighlightsExactlyIncidentEdges(t *testing.T) {
	s := testScene(t)
	h := NewHighlighter(s)

	// Hovering B: both edges touch it.
	require.Equal(t, HoveringState(1), h.Step(downAt(0), pointer, vp))
	for _, e := range s.Edges() {
		assert.Equal(t, float32(1), e.Opacity)
	}

	// Hovering A: only A-B touches it.
	require.Equal(t, HoveringState(0), h.Step(downAt(-3), pointer, vp))
	edges := s.Edges()
	assert.Equal(t, float32(1), edges[0].Opacity)
	assert.Equal(t, float32(0.2), edges[1].Opacity)

	a, _ := s.Node(0)
	b, _ := s.Node(1)
	assert.Equal(t, float32(1.25), a.Scale)
	assert.Equal(t, float32(1), b.Scale, "previous hover undone")

	// Hovering C, the "to" endpoint of B-C.
	require.Equal(t, HoveringState(2), h.Step(downAt(3), pointer, vp))
	edges = s.Edges()
	assert.Equal(t, float32(0.2), edges[0].Opacity)
	assert.Equal(t, float32(1), edges[1].Opacity)
}

func TestIsolatedHoverFadesAllEdges(t *testing.T) {
	s := testScene(t)
	h := NewHighlighter(s)
	d, _ := s.Node(3)
	ray := common.Ray{Origin: d.Position.Add(common.Vec3{Z: 5}), Direction: common.Vec3{Z: -1}}

	require.Equal(t, HoveringState(3), h.Step(ray, pointer, vp))
	for _, e := range s.Edges() {
		assert.Equal(t, float32(0.2), e.Opacity)
	}
}

func TestHoverThenIdleRestoresDefaults(t *testing.T) {
	s := testScene(t)
	h := NewHighlighter(s)

	h.Step(downAt(0), pointer, vp)
	assert.True(t, h.Tooltip().Visible)

	assert.Equal(t, IdleState(), h.Step(downAt(1.5), pointer, vp))
	assertDefaults(t, s)
	assert.False(t, h.Tooltip().Visible)
}

func TestStepIsIdempotent(t *testing.T) {
	s := testScene(t)
	h := NewHighlighter(s)

	h.Step(downAt(-3), pointer, vp)
	nodes, edges, tip := s.Nodes(), s.Edges(), h.Tooltip()
	h.Step(downAt(-3), pointer, vp)
	assert.Equal(t, nodes, s.Nodes())
	assert.Equal(t, edges, s.Edges())
	assert.Equal(t, tip, h.Tooltip())
}

func TestInvalidPointerPicksNothing(t *testing.T) {
	s := testScene(t)
	h := NewHighlighter(s)
	assert.Equal(t, IdleState(), h.Step(downAt(0), Pointer{}, vp))
	assertDefaults(t, s)
}

func TestTooltipContent(t *testing.T) {
	h := NewHighlighter(testScene(t))
	h.Step(downAt(0), Pointer{X: 790, Y: 20, Valid: true}, vp)

	tip := h.Tooltip()
	assert.Equal(t, Tooltip{Visible: true, Title: "B", Meta: "Mid", Hint: DefaultHint, X: 540, Y: 32}, tip)
	assert.Equal(t, "Weak ties shown in bold • Drag to orbit • Scroll to zoom", tip.Hint)
}

func TestClampTooltip(t *testing.T) {
	box := DefaultTooltipBox
	cases := []struct {
		name string
		p    Pointer
		x, y int
	}{
		{"free", Pointer{X: 100, Y: 100}, 112, 112},
		{"right edge", Pointer{X: 790, Y: 100}, 540, 112},
		{"bottom edge", Pointer{X: 100, Y: 590}, 112, 480},
		{"negative", Pointer{X: -50, Y: -50}, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x, y := ClampTooltip(c.p, vp, box)
			assert.Equal(t, c.x, x)
			assert.Equal(t, c.y, y)
		})
	}

	x, y := ClampTooltip(Pointer{X: 10, Y: 10}, Viewport{Width: 100, Height: 50}, box)
	assert.Equal(t, 0, x, "tiny viewport: top left corner stays on screen")
	assert.Equal(t, 0, y)
}

func TestClampTooltipProperty(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("tooltip stays inside a viewport larger than the box", prop.ForAll(
		func(px, py float32, w, h int) bool {
			v := Viewport{Width: w, Height: h}
			x, y := ClampTooltip(Pointer{X: px, Y: py}, v, DefaultTooltipBox)
			return x >= 0 && y >= 0 && x+DefaultTooltipBox.Width <= w && y+DefaultTooltipBox.Height <= h
		},
		gen.Float32Range(-500, 3000),
		gen.Float32Range(-500, 3000),
		gen.IntRange(260, 2560),
		gen.IntRange(120, 1440),
	))
	properties.TestingRun(t)
}

func TestClampTooltipNeverLeavesTinyViewport(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("tooltip origin stays on screen when the box does not fit", prop.ForAll(
		func(px, py float32, w, h int) bool {
			x, y := ClampTooltip(Pointer{X: px, Y: py}, Viewport{Width: w, Height: h}, DefaultTooltipBox)
			return x >= 0 && y >= 0 && x <= max(0, w-DefaultTooltipBox.Width) && y <= max(0, h-DefaultTooltipBox.Height)
		},
		gen.Float32Range(-500, 3000),
		gen.Float32Range(-500, 3000),
		gen.IntRange(1, 259),
		gen.IntRange(1, 119),
	))
	properties.TestingRun(t)
}

func TestPointerToNDC(t *testing.T) {
	x, y := PointerToNDC(Pointer{X: 0, Y: 0}, vp)
	assert.Equal(t, float32(-1), x)
	assert.Equal(t, float32(1), y)

	x, y = PointerToNDC(Pointer{X: 400, Y: 300}, vp)
	assert.Equal(t, float32(0), x)
	assert.Equal(t, float32(0), y)

	x, y = PointerToNDC(Pointer{X: 800, Y: 600}, vp)
	assert.Equal(t, float32(1), x)
	assert.Equal(t, float32(-1), y)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "Idle", IdleState().String())
	assert.Equal(t, "Hovering(4)", HoveringState(4).String())
}
