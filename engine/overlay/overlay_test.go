package overlay

import (
	"image"
	"testing"

	"github.com/Carmen-Shannon/oxy-ontography/engine/legend"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseState(l legend.Legend) State {
	return State{
		Viewport:   picking.Viewport{Width: 800, Height: 600},
		Box:        picking.DefaultTooltipBox,
		Legend:     l.Layout(),
		Title:      l.Title(),
		ButtonText: l.ButtonText(),
	}
}

func alphaIn(img *image.RGBA, r image.Rectangle) int {
	n := 0
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y).A != 0 {
				n++
			}
		}
	}
	return n
}

func TestComposeDrawsLegendOnly(t *testing.T) {
	c := NewCompositor()
	l := legend.NewLegend(ontology.Default(), legend.WithMeasurer(c.Measurer()))
	st := baseState(l)

	img, changed := c.Compose(st)
	require.True(t, changed)
	assert.Equal(t, image.Rect(0, 0, 800, 600), img.Rect)

	p := st.Legend.Panel
	assert.Positive(t, alphaIn(img, image.Rect(p.MinX, p.MinY, p.MaxX, p.MaxY)))
	assert.Zero(t, alphaIn(img, image.Rect(p.MaxX+1, 0, 800, 600)), "nothing outside the panel without a tooltip")
}

func TestComposeSkipsUnchangedState(t *testing.T) {
	c := NewCompositor()
	st := baseState(legend.NewLegend(ontology.Default()))

	_, changed := c.Compose(st)
	require.True(t, changed)
	_, changed = c.Compose(st)
	assert.False(t, changed)

	st.Focused, st.Focus = true, "Users"
	_, changed = c.Compose(st)
	assert.True(t, changed)
}

func TestComposeDrawsTooltip(t *testing.T) {
	c := NewCompositor()
	st := baseState(legend.NewLegend(ontology.Default()))
	st.Tooltip = picking.Tooltip{Visible: true, Title: "Claims", Meta: "Insurers", Hint: picking.DefaultHint, X: 500, Y: 400}

	img, _ := c.Compose(st)
	assert.Positive(t, alphaIn(img, image.Rect(500, 400, 740, 520)))

	st.Tooltip.Visible = false
	img, changed := c.Compose(st)
	require.True(t, changed)
	assert.Zero(t, alphaIn(img, image.Rect(500, 400, 740, 520)), "image is cleared between frames")
}

func TestComposeFollowsViewportSize(t *testing.T) {
	c := NewCompositor()
	st := baseState(legend.NewLegend(ontology.Default()))
	st.Viewport = picking.Viewport{Width: 1024, Height: 768}
	img, _ := c.Compose(st)
	assert.Equal(t, image.Rect(0, 0, 1024, 768), img.Rect)
}
