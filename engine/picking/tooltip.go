package picking

import "github.com/Carmen-Shannon/oxy-ontography/common"

// DefaultHint is the usage hint shown under the hovered node's details.
const DefaultHint = "Weak ties shown in bold • Drag to orbit • Scroll to zoom"

// Tooltip is the hover info box.
type Tooltip struct {
	Visible bool
	Title   string
	Meta    string
	Hint    string
	X, Y    int
}

// TooltipBox sizes the tooltip placement. Width and Height are the room kept free to the right of and below
// the box origin; Offset separates the box from the pointer.
type TooltipBox struct {
	Width, Height, Offset int
}

// DefaultTooltipBox keeps 260x120 pixels free and sits 12 pixels below and right of the pointer.
var DefaultTooltipBox = TooltipBox{Width: 260, Height: 120, Offset: 12}

// ClampTooltip places the tooltip at the pointer plus the offset, clamped so the box stays inside the viewport:
// x = max(0, min(width-box.Width, px+offset)) and likewise for y.
// On a viewport smaller than the box the top left corner stays on screen.
//
// Parameters:
//   - p: the tracked pointer
//   - vp: the viewport
//   - box: the tooltip box
//
// Returns:
//   - int: box left
//   - int: box top
func ClampTooltip(p Pointer, vp Viewport, box TooltipBox) (int, int) {
	x := max(0, min(vp.Width-box.Width, int(p.X)+box.Offset))
	y := max(0, min(vp.Height-box.Height, int(p.Y)+box.Offset))
	return x, y
}

// Rect returns the area the tooltip occupies.
func (t Tooltip) Rect(box TooltipBox) common.Rect {
	return common.Rect{MinX: t.X, MinY: t.Y, MaxX: t.X + box.Width, MaxY: t.Y + box.Height}
}
