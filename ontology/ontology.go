// Package ontology holds the static ontography dataset: concept nodes, the weak ties between them,
// and the per-category color key and cluster centers.
package ontology

import (
	"github.com/Carmen-Shannon/oxy-ontography/common"
)

// CategoryKey names a category of concepts, e.g. "Users".
type CategoryKey string

// NodeDescriptor declares one concept to be placed in the scene.
type NodeDescriptor struct {
	Label    string
	Category CategoryKey
}

// EdgeDescriptor declares a weak tie between two nodes, referenced by label.
// An endpoint label that matches no node makes the edge unresolvable; it is then dropped when the scene is built.
type EdgeDescriptor struct {
	From string
	To   string
}

// CategoryStyle is the visual identity of a category.
type CategoryStyle struct {
	Color   common.Color
	Meaning string
}

// Category bundles a key with its style and the center of its spatial cluster.
type Category struct {
	Key    CategoryKey
	Style  CategoryStyle
	Center common.Vec3
}

// DefaultStyle is used for any category missing from the style table.
var DefaultStyle = CategoryStyle{Color: common.ColorFromHex(0x333333)}

// Dataset is the immutable input of the viewer.
type Dataset struct {
	Nodes      []NodeDescriptor
	Edges      []EdgeDescriptor
	Categories []Category

	index map[CategoryKey]int
}

// NewDataset assembles a Dataset. Later categories with an already-seen key are ignored.
//
// Parameters:
//   - categories: the color key in display order
//   - nodes: the concepts in placement order
//   - edges: the ties between concepts
//
// Returns:
//   - *Dataset: the assembled dataset
func NewDataset(categories []Category, nodes []NodeDescriptor, edges []EdgeDescriptor) *Dataset {
	d := &Dataset{
		Nodes: nodes,
		Edges: edges,
		index: make(map[CategoryKey]int, len(categories)),
	}
	for _, c := range categories {
		if _, seen := d.index[c.Key]; seen {
			continue
		}
		d.index[c.Key] = len(d.Categories)
		d.Categories = append(d.Categories, c)
	}
	return d
}

// Category looks up a category by key.
func (d *Dataset) Category(key CategoryKey) (Category, bool) {
	i, ok := d.index[key]
	if !ok {
		return Category{}, false
	}
	return d.Categories[i], true
}

// StyleFor returns the style of a category, or DefaultStyle when the category is unknown.
// It never fails.
func (d *Dataset) StyleFor(key CategoryKey) CategoryStyle {
	if c, ok := d.Category(key); ok {
		return c.Style
	}
	return DefaultStyle
}

// CenterFor returns the cluster center of a category, or the origin when the category is unknown.
func (d *Dataset) CenterFor(key CategoryKey) common.Vec3 {
	if c, ok := d.Category(key); ok {
		return c.Center
	}
	return common.Vec3{}
}

// Keys returns the category keys in display order.
func (d *Dataset) Keys() []CategoryKey {
	keys := make([]CategoryKey, len(d.Categories))
	for i, c := range d.Categories {
		keys[i] = c.Key
	}
	return keys
}
