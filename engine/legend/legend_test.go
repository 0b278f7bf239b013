package legend

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneLine(s string) []string { return []string{s} }

func twoCategoryScene() scene.Scene {
	return scene.Build(
		[]ontology.NodeDescriptor{{Label: "A", Category: "Cat1"}, {Label: "B", Category: "Cat2"}},
		[]ontology.EdgeDescriptor{{From: "A", To: "B"}},
		scene.WithLabelWrap(oneLine),
	)
}

func node(t *testing.T, s scene.Scene, id int) scene.Node {
	t.Helper()
	n, ok := s.Node(id)
	require.True(t, ok)
	return n
}

func TestSpotlightCrossCategoryEdgeIsDimmed(t *testing.T) {
	s := twoCategoryScene()
	sp := NewSpotlight(s)

	sp.Click("Cat1")

	c, ok := sp.Focused()
	require.True(t, ok)
	assert.Equal(t, ontology.CategoryKey("Cat1"), c)
	assert.Equal(t, float32(0.1), s.Edges()[0].Opacity)
	assert.Equal(t, float32(1), node(t, s, 0).MarkerOpacity)
	assert.Equal(t, float32(1), node(t, s, 0).LabelOpacity)
	assert.Equal(t, float32(0.25), node(t, s, 1).MarkerOpacity)
	assert.Equal(t, float32(0.25), node(t, s, 1).LabelOpacity)
}

func TestSpotlightInCategoryEdgeIsEmphasized(t *testing.T) {
	s := scene.Build(
		[]ontology.NodeDescriptor{{Label: "A", Category: "Cat1"}, {Label: "B", Category: "Cat1"}, {Label: "C", Category: "Cat2"}},
		[]ontology.EdgeDescriptor{{From: "A", To: "B"}, {From: "B", To: "C"}},
		scene.WithLabelWrap(oneLine),
	)
	NewSpotlight(s).Click("Cat1")
	edges := s.Edges()
	assert.Equal(t, float32(0.9), edges[0].Opacity)
	assert.Equal(t, float32(0.1), edges[1].Opacity)
}

func TestSpotlightToggleAndReplace(t *testing.T) {
	s := twoCategoryScene()
	sp := NewSpotlight(s)

	sp.Click("Cat1")
	sp.Click("Cat2")
	c, ok := sp.Focused()
	require.True(t, ok)
	assert.Equal(t, ontology.CategoryKey("Cat2"), c)
	assert.Equal(t, float32(0.25), node(t, s, 0).MarkerOpacity)
	assert.Equal(t, float32(1), node(t, s, 1).MarkerOpacity)

	sp.Click("Cat2")
	_, ok = sp.Focused()
	assert.False(t, ok)
	assert.Equal(t, float32(1), node(t, s, 0).MarkerOpacity)
	assert.Equal(t, float32(scene.DefaultEdgeOpacity), s.Edges()[0].Opacity)
}

func TestSpotlightUnfocusRestoresItsOwnEdgeRest(t *testing.T) {
	s := scene.Build(
		[]ontology.NodeDescriptor{{Label: "A", Category: "Cat1"}, {Label: "B", Category: "Cat2"}},
		[]ontology.EdgeDescriptor{{From: "A", To: "B"}},
		scene.WithLabelWrap(oneLine),
		scene.WithEdgeOpacity(0.3),
	)
	sp := NewSpotlight(s, WithRestEdgeOpacity(0.7))

	sp.Click("Cat1")
	assert.Equal(t, float32(0.1), s.Edges()[0].Opacity)

	sp.Click("Cat1")
	_, ok := sp.Focused()
	require.False(t, ok)
	assert.Equal(t, float32(0.7), s.Edges()[0].Opacity)
	assert.Equal(t, float32(0.3), s.DefaultEdgeOpacity())
}

func TestSpotlightEmptyCategoryStillFocuses(t *testing.T) {
	s := twoCategoryScene()
	sp := NewSpotlight(s)

	sp.Click("Nobody")
	c, ok := sp.Focused()
	require.True(t, ok)
	assert.Equal(t, ontology.CategoryKey("Nobody"), c)
	for _, n := range s.Nodes() {
		assert.Equal(t, float32(0.25), n.MarkerOpacity)
	}
	assert.Equal(t, float32(0.1), s.Edges()[0].Opacity)

	sp.Click("Nobody")
	_, ok = sp.Focused()
	assert.False(t, ok)
	assert.Equal(t, float32(1), node(t, s, 0).MarkerOpacity)
}

func TestSpotlightRoundTripIsNoOp(t *testing.T) {
	ds := ontology.Default()
	keys := ds.Keys()

	properties := gopter.NewProperties(gopter.DefaultTestParameters())
	properties.Property("focus then unfocus restores the scene", prop.ForAll(
		func(i int) bool {
			s := scene.FromDataset(ds, scene.WithLabelWrap(oneLine))
			nodes, edges := s.Nodes(), s.Edges()

			sp := NewSpotlight(s)
			sp.Click(keys[i])
			sp.Click(keys[i])

			gotNodes, gotEdges := s.Nodes(), s.Edges()
			for j := range nodes {
				if nodes[j].MarkerOpacity != gotNodes[j].MarkerOpacity || nodes[j].LabelOpacity != gotNodes[j].LabelOpacity {
					return false
				}
			}
			for j := range edges {
				if edges[j].Opacity != gotEdges[j].Opacity {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, len(keys)-1),
	))
	properties.TestingRun(t)
}

func TestLegendRowsAndToggle(t *testing.T) {
	ds := ontology.Default()
	l := NewLegend(ds)

	rows := l.Rows()
	require.Len(t, rows, 6)
	assert.Equal(t, ontology.CategoryKey("Users"), rows[0].Category)
	assert.Equal(t, "#4f9cf7", rows[0].Color.Hex())
	assert.Equal(t, "End customers & their devices/channels", rows[0].Meaning)
	assert.Equal(t, DefaultTitle, l.Title())

	assert.True(t, l.Visible())
	assert.Equal(t, "Hide", l.ButtonText())
	assert.False(t, l.ToggleVisibility())
	assert.Equal(t, "Show", l.ButtonText())
	assert.True(t, l.ToggleVisibility())
}

func TestLegendLayoutAndHitTest(t *testing.T) {
	l := NewLegend(ontology.Default())
	lay := l.Layout()
	require.Len(t, lay.Rows, 6)
	assert.NotEmpty(t, lay.Footer)

	center := func(minX, minY, maxX, maxY int) (int, int) { return (minX + maxX) / 2, (minY + maxY) / 2 }

	x, y := center(lay.Rows[2].Rect.MinX, lay.Rows[2].Rect.MinY, lay.Rows[2].Rect.MaxX, lay.Rows[2].Rect.MaxY)
	assert.Equal(t, Hit{Kind: HitRow, Category: "Data & Tech"}, l.HitTest(x, y))

	x, y = center(lay.Toggle.MinX, lay.Toggle.MinY, lay.Toggle.MaxX, lay.Toggle.MaxY)
	assert.Equal(t, Hit{Kind: HitToggle}, l.HitTest(x, y))

	assert.Equal(t, Hit{Kind: HitPanel}, l.HitTest(lay.Panel.MinX+1, lay.Panel.MaxY-2), "footer is part of the panel")
	assert.Equal(t, Hit{Kind: HitNone}, l.HitTest(lay.Panel.MaxX+5, 5))

	// Hidden: only the title bar remains and rows are no longer clickable.
	l.ToggleVisibility()
	hidden := l.Layout()
	assert.Empty(t, hidden.Rows)
	assert.Empty(t, hidden.Footer)
	assert.Less(t, hidden.Panel.MaxY, lay.Panel.MaxY)
	x, y = center(lay.Rows[2].Rect.MinX, lay.Rows[2].Rect.MinY, lay.Rows[2].Rect.MaxX, lay.Rows[2].Rect.MaxY)
	assert.Equal(t, HitNone, l.HitTest(x, y).Kind)
	assert.Equal(t, hidden.Toggle, lay.Toggle)
}

func TestLegendVisibilityLeavesSceneAlone(t *testing.T) {
	s := twoCategoryScene()
	before := s.Nodes()
	l := NewLegend(ontology.Default())
	l.ToggleVisibility()
	assert.Equal(t, before, s.Nodes())
}
