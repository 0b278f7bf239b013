// Package legend implements the color key panel and the category spotlight it controls.
package legend

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/engine/scene"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
)

// Spotlight is the category focus state machine: Unfocused or Focused(C).
// Its effects are written into the scene arena and persist until the focus changes.
type Spotlight interface {
	// Focused returns the focused category, or false when unfocused.
	Focused() (ontology.CategoryKey, bool)

	// Click handles a click on a category's legend row: the focused category toggles focus off,
	// any other category becomes the focus. The new state's effects are applied immediately.
	//
	// Parameters:
	//   - c: the clicked category; it need not have any nodes
	Click(c ontology.CategoryKey)

	// Apply writes the current state's effects into the scene. Focused(C) shows nodes and labels of C fully
	// and dims the rest, and emphasizes only edges with both endpoints in C. Unfocused restores full opacity
	// to every node and label and the rest opacity to every edge.
	Apply()
}

type spotlightImpl struct {
	mu      *sync.Mutex
	scene   scene.Scene
	focus   ontology.CategoryKey
	focused bool

	in, out         float32
	edgeIn, edgeOut float32
	edgeRest        float32
}

var _ Spotlight = &spotlightImpl{}

// NewSpotlight creates a new, unfocused Spotlight over a scene.
//
// Parameters:
//   - sc: the scene arena
//   - options: functional options
//
// Returns:
//   - Spotlight: the spotlight
func NewSpotlight(sc scene.Scene, options ...SpotlightBuilderOption) Spotlight {
	if sc == nil {
		panic("legend: scene is required")
	}
	s := &spotlightImpl{
		mu:       &sync.Mutex{},
		scene:    sc,
		in:       1,
		out:      0.25,
		edgeIn:   0.9,
		edgeOut:  0.1,
		edgeRest: 0.6,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *spotlightImpl) Focused() (ontology.CategoryKey, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus, s.focused
}

func (s *spotlightImpl) Click(c ontology.CategoryKey) {
	s.mu.Lock()
	if s.focused && s.focus == c {
		s.focus, s.focused = "", false
	} else {
		s.focus, s.focused = c, true
	}
	s.mu.Unlock()
	s.Apply()
}

func (s *spotlightImpl) Apply() {
	c, focused := s.Focused()
	nodes := s.scene.Nodes()

	if !focused {
		for _, n := range nodes {
			s.scene.SetMarkerOpacity(n.ID, 1)
			s.scene.SetLabelOpacity(n.ID, 1)
		}
		for id := range s.scene.EdgeCount() {
			s.scene.SetEdgeOpacity(id, s.edgeRest)
		}
		return
	}

	inCat := make([]bool, len(nodes))
	for _, id := range s.scene.NodesInCategory(c) {
		inCat[id] = true
	}
	for _, n := range nodes {
		o := s.out
		if inCat[n.ID] {
			o = s.in
		}
		s.scene.SetMarkerOpacity(n.ID, o)
		s.scene.SetLabelOpacity(n.ID, o)
	}
	for _, e := range s.scene.Edges() {
		o := s.edgeOut
		if inCat[e.FromID] && inCat[e.ToID] {
			o = s.edgeIn
		}
		s.scene.SetEdgeOpacity(e.ID, o)
	}
}
