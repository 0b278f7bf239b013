// Package overlay draws the 2D interface layer, the legend panel and the hover tooltip, into an RGBA image
// that is composited over the 3D view.
package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"reflect"
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/label"
	"github.com/Carmen-Shannon/oxy-ontography/engine/legend"
	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// State is everything the overlay shows for one frame.
type State struct {
	Viewport   picking.Viewport
	Tooltip    picking.Tooltip
	Box        picking.TooltipBox
	Legend     legend.Layout
	Title      string
	ButtonText string
	Focus      ontology.CategoryKey
	Focused    bool
}

// Compositor renders overlay states, redrawing only when the state changes.
type Compositor interface {
	// Compose returns the overlay image for st.
	//
	// Parameters:
	//   - st: the overlay state
	//
	// Returns:
	//   - *image.RGBA: an image the size of st.Viewport, transparent where nothing is drawn
	//   - bool: true if the image differs from the one returned by the previous call
	Compose(st State) (*image.RGBA, bool)

	// Measurer measures text in the overlay body font, for wrapping legend footers.
	Measurer() label.Measurer
}

type compositorImpl struct {
	mu        *sync.Mutex
	body      tinyfont.Fonter
	heading   tinyfont.Fonter
	last      *State
	img       *image.RGBA
	panelFill color.RGBA
	tipFill   color.RGBA
	ink       color.RGBA
	tipInk    color.RGBA
	accent    color.RGBA
}

var _ Compositor = &compositorImpl{}

// NewCompositor creates a new Compositor.
//
// Returns:
//   - Compositor: the compositor
func NewCompositor() Compositor {
	return &compositorImpl{
		mu:        &sync.Mutex{},
		body:      &freesans.Regular9pt7b,
		heading:   &freesans.Regular12pt7b,
		panelFill: common.ColorFromHex(0xffffff).RGBA(0.88),
		tipFill:   common.ColorFromHex(0x000000).RGBA(0.78),
		ink:       common.ColorFromHex(0x111111).RGBA(1),
		tipInk:    common.ColorFromHex(0xffffff).RGBA(1),
		accent:    common.ColorFromHex(0x000000).RGBA(0.12),
	}
}

func (c *compositorImpl) Measurer() label.Measurer {
	return label.MeasureFunc(func(s string) int {
		_, w := tinyfont.LineWidth(c.body, label.Printable(s))
		return int(w)
	})
}

func (c *compositorImpl) Compose(st State) (*image.RGBA, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.last != nil && reflect.DeepEqual(*c.last, st) {
		return c.img, false
	}

	w, h := max(st.Viewport.Width, 1), max(st.Viewport.Height, 1)
	if c.img == nil || c.img.Rect.Dx() != w || c.img.Rect.Dy() != h {
		c.img = image.NewRGBA(image.Rect(0, 0, w, h))
	} else {
		clear(c.img.Pix)
	}

	c.drawLegend(st)
	if st.Tooltip.Visible {
		c.drawTooltip(st)
	}

	last := st
	c.last = &last
	return c.img, true
}

func (c *compositorImpl) drawLegend(st State) {
	lay := st.Legend
	c.fill(lay.Panel, c.panelFill)

	c.text(c.heading, lay.Title.MinX, lay.Title.MaxY-6, st.Title, c.ink)
	c.fill(lay.Toggle, c.accent)
	_, bw := tinyfont.LineWidth(c.body, st.ButtonText)
	c.text(c.body, lay.Toggle.MinX+(lay.Toggle.Width()-int(bw))/2, lay.Toggle.MaxY-6, st.ButtonText, c.ink)

	for _, r := range lay.Rows {
		if st.Focused && r.Category == st.Focus {
			c.fill(r.Rect, c.accent)
		}
		c.fill(r.Swatch, r.Color.RGBA(1))
		c.text(c.heading, r.Swatch.MaxX+8, r.Swatch.MaxY, string(r.Category), c.ink)
		c.text(c.body, r.Swatch.MaxX+8, r.Swatch.MaxY+lay.LineHeight+2, r.Meaning, c.ink)
	}

	for i, line := range lay.Footer {
		c.text(c.body, lay.Panel.MinX+10, lay.FooterTop+(i+1)*lay.LineHeight-4, line, c.ink)
	}
}

func (c *compositorImpl) drawTooltip(st State) {
	const pad, lineHeight = 8, 18
	tip := st.Tooltip
	width := st.Box.Width - 20

	measure := c.Measurer()
	hint := label.Wrap(tip.Hint, width-2*pad, measure)
	lines := 2 + len(hint)
	height := min(st.Box.Height, lines*lineHeight+2*pad)

	box := common.Rect{MinX: tip.X, MinY: tip.Y, MaxX: tip.X + width, MaxY: tip.Y + height}
	c.fill(box, c.tipFill)

	y := box.MinY + pad + lineHeight - 4
	c.text(c.heading, box.MinX+pad, y, tip.Title, c.tipInk)
	y += lineHeight
	c.text(c.body, box.MinX+pad, y, tip.Meta, c.tipInk)
	for _, l := range hint {
		y += lineHeight
		c.text(c.body, box.MinX+pad, y, l, c.tipInk)
	}
}

// fill blends a premultiplied color over r.
func (c *compositorImpl) fill(r common.Rect, col color.RGBA) {
	rect := image.Rect(r.MinX, r.MinY, r.MaxX, r.MaxY).Intersect(c.img.Rect)
	draw.Draw(c.img, rect, image.NewUniform(col), image.Point{}, draw.Over)
}

// text draws s with its baseline at y.
func (c *compositorImpl) text(font tinyfont.Fonter, x, y int, s string, col color.RGBA) {
	tinyfont.WriteLine(label.NewDisplay(c.img), font, int16(x), int16(y), label.Printable(s), col)
}
