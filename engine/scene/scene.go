// Package scene owns the runtime arena of placed nodes and resolved edges.
// Picking and the legend spotlight refer to its entries by index and mutate them only through its setters.
package scene

import (
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/google/uuid"
)

// Node is a placed concept: a marker plus the label floating above it.
type Node struct {
	ID            int
	Label         string
	Category      ontology.CategoryKey
	Position      common.Vec3
	LabelAnchor   common.Vec3
	LabelLines    []string
	Color         common.Color
	Scale         float32
	MarkerOpacity float32
	LabelOpacity  float32
}

// Edge is a resolved weak tie. Endpoint positions are captured when the scene is built.
type Edge struct {
	ID      int
	FromID  int
	ToID    int
	From    common.Vec3
	To      common.Vec3
	Opacity float32
}

// Scene is the arena of nodes and edges. Safe for concurrent use.
type Scene interface {
	// BuildID identifies this build. It changes only when a new scene is built.
	BuildID() uuid.UUID

	// NodeCount returns the number of nodes; their ids are exactly 0..NodeCount()-1.
	NodeCount() int

	// EdgeCount returns the number of resolved edges; their ids are exactly 0..EdgeCount()-1.
	EdgeCount() int

	// Node returns a copy of a node.
	//
	// Parameters:
	//   - id: the node id
	//
	// Returns:
	//   - Node: the node
	//   - bool: false if id is out of range
	Node(id int) (Node, bool)

	// Nodes returns a snapshot of all nodes in id order.
	Nodes() []Node

	// Edges returns a snapshot of all edges in id order.
	Edges() []Edge

	// IncidentEdges returns the ids of edges with the node as either endpoint.
	IncidentEdges(id int) []int

	// NodesInCategory returns the ids of nodes in category c.
	NodesInCategory(c ontology.CategoryKey) []int

	// DefaultEdgeOpacity returns the opacity every edge is built with.
	DefaultEdgeOpacity() float32

	// SetNodeScale sets a marker's scale. Out-of-range ids are ignored.
	SetNodeScale(id int, scale float32)

	// SetMarkerOpacity sets a marker's opacity. Out-of-range ids are ignored.
	SetMarkerOpacity(id int, opacity float32)

	// SetLabelOpacity sets a label's opacity. Out-of-range ids are ignored.
	SetLabelOpacity(id int, opacity float32)

	// SetEdgeOpacity sets an edge's opacity. Out-of-range ids are ignored.
	SetEdgeOpacity(id int, opacity float32)
}

type sceneImpl struct {
	mu          *sync.RWMutex
	id          uuid.UUID
	nodes       []Node
	edges       []Edge
	byLabel     map[string]int
	incident    [][]int
	edgeOpacity float32
}

var _ Scene = &sceneImpl{}

func (s *sceneImpl) BuildID() uuid.UUID {
	return s.id
}

func (s *sceneImpl) NodeCount() int {
	return len(s.nodes)
}

func (s *sceneImpl) EdgeCount() int {
	return len(s.edges)
}

func (s *sceneImpl) Node(id int) (Node, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 0 || id >= len(s.nodes) {
		return Node{}, false
	}
	return s.nodes[id], true
}

func (s *sceneImpl) Nodes() []Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.nodes)
}

func (s *sceneImpl) Edges() []Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.edges)
}

func (s *sceneImpl) IncidentEdges(id int) []int {
	if id < 0 || id >= len(s.incident) {
		return nil
	}
	return slices.Clone(s.incident[id])
}

func (s *sceneImpl) NodesInCategory(c ontology.CategoryKey) []int {
	var ids []int
	for _, n := range s.nodes {
		if n.Category == c {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

func (s *sceneImpl) DefaultEdgeOpacity() float32 {
	return s.edgeOpacity
}

func (s *sceneImpl) SetNodeScale(id int, scale float32) {
	s.updateNode(id, func(n *Node) { n.Scale = scale })
}

func (s *sceneImpl) SetMarkerOpacity(id int, opacity float32) {
	s.updateNode(id, func(n *Node) { n.MarkerOpacity = opacity })
}

func (s *sceneImpl) SetLabelOpacity(id int, opacity float32) {
	s.updateNode(id, func(n *Node) { n.LabelOpacity = opacity })
}

func (s *sceneImpl) SetEdgeOpacity(id int, opacity float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= len(s.edges) {
		return
	}
	s.edges[id].Opacity = opacity
}

func (s *sceneImpl) updateNode(id int, fn func(*Node)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 0 || id >= len(s.nodes) {
		return
	}
	fn(&s.nodes[id])
}
