package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/engine/label"
	"github.com/Carmen-Shannon/oxy-ontography/engine/layout"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
	"github.com/google/uuid"
)

// SceneBuilderOption is a functional option for Build.
type SceneBuilderOption func(b *builder)

type builder struct {
	styles      func(ontology.CategoryKey) ontology.CategoryStyle
	placer      layout.Placer
	wrap        func(string) []string
	labelOffset float32
	edgeOpacity float32
}

// DefaultEdgeOpacity is the low-emphasis opacity of an edge nobody is looking at.
const DefaultEdgeOpacity = 0.6

// DefaultLabelOffset is how far above its marker a label is anchored.
const DefaultLabelOffset = 0.75

// WithStyles sets the category style lookup. It must be total; ontology.Dataset.StyleFor is.
func WithStyles(styles func(ontology.CategoryKey) ontology.CategoryStyle) SceneBuilderOption {
	return func(b *builder) {
		if styles != nil {
			b.styles = styles
		}
	}
}

// WithPlacer sets the layout engine used to position markers.
func WithPlacer(p layout.Placer) SceneBuilderOption {
	return func(b *builder) {
		if p != nil {
			b.placer = p
		}
	}
}

// WithLabelWrap sets how label text is broken into lines, typically label.Rasterizer.Wrap.
func WithLabelWrap(wrap func(string) []string) SceneBuilderOption {
	return func(b *builder) {
		if wrap != nil {
			b.wrap = wrap
		}
	}
}

// WithLabelOffset sets the height of the label anchor above the marker.
func WithLabelOffset(offset float32) SceneBuilderOption {
	return func(b *builder) {
		b.labelOffset = offset
	}
}

// WithEdgeOpacity sets the opacity edges are built with.
func WithEdgeOpacity(opacity float32) SceneBuilderOption {
	return func(b *builder) {
		b.edgeOpacity = opacity
	}
}

var (
	defaultRasterizerOnce sync.Once
	defaultRasterizer     label.Rasterizer
)

func defaultWrap(text string) []string {
	defaultRasterizerOnce.Do(func() { defaultRasterizer = label.NewRasterizer() })
	return defaultRasterizer.Wrap(text)
}

// Build constructs the arena from declarative nodes and edges.
//
// Node ids are assigned densely in input order. Colors come from the style lookup and positions from the placer;
// without options every node uses ontology.DefaultStyle and clusters around the origin.
// Each edge resolves its endpoint labels to the FIRST node carrying that label; an edge with an unresolvable
// endpoint is dropped without error. Duplicate labels are undefined behaviour: the nodes are all built, but
// ties can only reach the first of them. ontology.Check reports such duplicates.
//
// Parameters:
//   - nodes: the concepts, in id order
//   - edges: the ties between them, by label
//   - options: functional options
//
// Returns:
//   - Scene: the built arena
func Build(nodes []ontology.NodeDescriptor, edges []ontology.EdgeDescriptor, options ...SceneBuilderOption) Scene {
	b := &builder{
		styles:      func(ontology.CategoryKey) ontology.CategoryStyle { return ontology.DefaultStyle },
		wrap:        defaultWrap,
		labelOffset: DefaultLabelOffset,
		edgeOpacity: DefaultEdgeOpacity,
	}
	for _, opt := range options {
		opt(b)
	}
	if b.placer == nil {
		b.placer = layout.NewPlacer()
	}

	s := &sceneImpl{
		mu:          &sync.RWMutex{},
		id:          uuid.New(),
		nodes:       make([]Node, 0, len(nodes)),
		byLabel:     make(map[string]int, len(nodes)),
		incident:    make([][]int, len(nodes)),
		edgeOpacity: b.edgeOpacity,
	}

	for i, d := range nodes {
		pos := b.placer.Place(d)
		s.nodes = append(s.nodes, Node{
			ID:            i,
			Label:         d.Label,
			Category:      d.Category,
			Position:      pos,
			LabelAnchor:   pos.Add(common.Vec3{Y: b.labelOffset}),
			LabelLines:    b.wrap(d.Label),
			Color:         b.styles(d.Category).Color,
			Scale:         1,
			MarkerOpacity: 1,
			LabelOpacity:  1,
		})
		if _, dup := s.byLabel[d.Label]; !dup {
			s.byLabel[d.Label] = i
		}
	}

	for _, d := range edges {
		from, okFrom := s.byLabel[d.From]
		to, okTo := s.byLabel[d.To]
		if !okFrom || !okTo {
			continue
		}
		id := len(s.edges)
		s.edges = append(s.edges, Edge{
			ID:      id,
			FromID:  from,
			ToID:    to,
			From:    s.nodes[from].Position,
			To:      s.nodes[to].Position,
			Opacity: b.edgeOpacity,
		})
		s.incident[from] = append(s.incident[from], id)
		if to != from {
			s.incident[to] = append(s.incident[to], id)
		}
	}

	return s
}

// FromDataset builds the arena for a dataset, wiring its style table and cluster centers.
// Options are applied after the dataset wiring and may override it.
//
// Parameters:
//   - ds: the dataset
//   - options: functional options
//
// Returns:
//   - Scene: the built arena
func FromDataset(ds *ontology.Dataset, options ...SceneBuilderOption) Scene {
	base := []SceneBuilderOption{
		WithStyles(ds.StyleFor),
		WithPlacer(layout.NewPlacer(layout.WithCenters(ds.CenterFor))),
	}
	return Build(ds.Nodes, ds.Edges, append(base, options...)...)
}
