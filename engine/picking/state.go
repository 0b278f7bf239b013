// Package picking resolves the pointer to the node under it and drives hover highlighting and the tooltip.
package picking

import "fmt"

// StateKind distinguishes the hover states.
type StateKind int

const (
	// Idle means the pointer is over no node.
	Idle StateKind = iota
	// Hovering means the pointer is over the node in State.NodeID.
	Hovering
)

// State is the hover state for one frame. It is recomputed every frame and never persisted.
type State struct {
	Kind   StateKind
	NodeID int
}

// IdleState returns the Idle state.
func IdleState() State { return State{Kind: Idle, NodeID: -1} }

// HoveringState returns Hovering(id).
func HoveringState(id int) State { return State{Kind: Hovering, NodeID: id} }

// Hovered returns the hovered node id, or false when idle.
func (s State) Hovered() (int, bool) {
	return s.NodeID, s.Kind == Hovering
}

func (s State) String() string {
	if s.Kind == Hovering {
		return fmt.Sprintf("Hovering(%d)", s.NodeID)
	}
	return "Idle"
}

// Pointer is the single tracked pointer position, in viewport pixels with the origin at the top left.
// It feeds both the picking ray and the tooltip placement.
type Pointer struct {
	X, Y float32
	// Valid is false until the pointer has moved over the viewport at least once.
	Valid bool
}

// Viewport is the drawable area in pixels.
type Viewport struct {
	Width, Height int
}

// PointerToNDC maps a pointer to normalized device coordinates, x right and y up, both in [-1, 1] inside the viewport.
//
// Parameters:
//   - p: the pointer
//   - vp: the viewport
//
// Returns:
//   - float32: NDC x
//   - float32: NDC y
func PointerToNDC(p Pointer, vp Viewport) (float32, float32) {
	w, h := float32(max(vp.Width, 1)), float32(max(vp.Height, 1))
	return p.X/w*2 - 1, -(p.Y/h*2 - 1)
}
