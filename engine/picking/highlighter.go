package picking

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
)

// Highlighter runs the hover state machine over a scene arena.
// Every frame it picks the nearest node under the pointer, resets all hover visuals and re-applies them
// for the new state, so the outcome depends only on the current pointer and never on history.
type Highlighter interface {
	// State returns the state computed by the most recent Step or Pick.
	State() State

	// Tooltip returns the tooltip computed by the most recent Step or Apply.
	Tooltip() Tooltip

	// Box returns the tooltip box used for placement.
	Box() TooltipBox

	// Pick intersects the ray with every marker and returns Hovering for the nearest hit, or Idle.
	// Marker radius follows the marker's current scale. Equal distances resolve to the lowest id.
	// Pick does not touch the scene.
	//
	// Parameters:
	//   - ray: the world-space picking ray
	//
	// Returns:
	//   - State: the picked state
	Pick(ray common.Ray) State

	// Reset restores every hover-controlled visual: marker scale 1, label opacity 1, edge opacity to the
	// scene default, tooltip hidden.
	Reset()

	// Apply applies the visuals of a state on top of the current ones. For Hovering(id) the marker grows,
	// its label is fully opaque, incident edges are emphasized and all others faded, and the tooltip is
	// shown at the clamped pointer position. Idle applies nothing.
	//
	// Parameters:
	//   - state: the state to apply
	//   - pointer: the tracked pointer, used for tooltip placement
	//   - vp: the viewport
	Apply(state State, pointer Pointer, vp Viewport)

	// Step runs Pick, Reset and Apply for one frame. An invalid pointer picks nothing.
	//
	// Parameters:
	//   - ray: the picking ray built from pointer
	//   - pointer: the tracked pointer
	//   - vp: the viewport
	//
	// Returns:
	//   - State: the new state
	Step(ray common.Ray, pointer Pointer, vp Viewport) State
}

type highlighterImpl struct {
	mu           *sync.Mutex
	scene        scene.Scene
	state        State
	tooltip      Tooltip
	box          TooltipBox
	hint         string
	markerRadius float32
	hoverScale   float32
	edgeIncident float32
	edgeOther    float32
}

var _ Highlighter = &highlighterImpl{}

// NewHighlighter creates a new Highlighter over a scene.
//
// Parameters:
//   - sc: the scene arena whose visuals are driven
//   - options: functional options
//
// Returns:
//   - Highlighter: the highlighter, initially Idle
func NewHighlighter(sc scene.Scene, options ...HighlighterBuilderOption) Highlighter {
	if sc == nil {
		panic("picking: scene is required")
	}
	h := &highlighterImpl{
		mu:           &sync.Mutex{},
		scene:        sc,
		state:        IdleState(),
		box:          DefaultTooltipBox,
		hint:         DefaultHint,
		markerRadius: 0.35,
		hoverScale:   1.25,
		edgeIncident: 1.0,
		edgeOther:    0.2,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

func (h *highlighterImpl) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *highlighterImpl) Tooltip() Tooltip {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.tooltip
}

func (h *highlighterImpl) Box() TooltipBox {
	return h.box
}

func (h *highlighterImpl) Pick(ray common.Ray) State {
	best := IdleState()
	var bestDist float32
	for _, n := range h.scene.Nodes() {
		d, ok := ray.IntersectSphere(n.Position, h.markerRadius*n.Scale)
		if !ok {
			continue
		}
		if best.Kind == Idle || d < bestDist {
			best, bestDist = HoveringState(n.ID), d
		}
	}

	h.mu.Lock()
	h.state = best
	h.mu.Unlock()
	return best
}

func (h *highlighterImpl) Reset() {
	for id := range h.scene.NodeCount() {
		h.scene.SetNodeScale(id, 1)
		h.scene.SetLabelOpacity(id, 1)
	}
	def := h.scene.DefaultEdgeOpacity()
	for id := range h.scene.EdgeCount() {
		h.scene.SetEdgeOpacity(id, def)
	}

	h.mu.Lock()
	h.tooltip = Tooltip{}
	h.mu.Unlock()
}

func (h *highlighterImpl) Apply(state State, pointer Pointer, vp Viewport) {
	id, ok := state.Hovered()
	if !ok {
		return
	}
	n, ok := h.scene.Node(id)
	if !ok {
		return
	}

	h.scene.SetNodeScale(id, h.hoverScale)
	h.scene.SetLabelOpacity(id, 1)
	for eid := range h.scene.EdgeCount() {
		h.scene.SetEdgeOpacity(eid, h.edgeOther)
	}
	for _, eid := range h.scene.IncidentEdges(id) {
		h.scene.SetEdgeOpacity(eid, h.edgeIncident)
	}

	x, y := ClampTooltip(pointer, vp, h.box)
	h.mu.Lock()
	h.tooltip = Tooltip{
		Visible: true,
		Title:   n.Label,
		Meta:    string(n.Category),
		Hint:    h.hint,
		X:       x,
		Y:       y,
	}
	h.mu.Unlock()
}

func (h *highlighterImpl) Step(ray common.Ray, pointer Pointer, vp Viewport) State {
	state := IdleState()
	if pointer.Valid {
		state = h.Pick(ray)
	} else {
		h.mu.Lock()
		h.state = state
		h.mu.Unlock()
	}
	h.Reset()
	h.Apply(state, pointer, vp)
	return state
}
