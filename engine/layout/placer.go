// Package layout places ontology nodes in 3D space around their category's cluster center.
package layout

import (
	"math/rand/v2"
	"sync"

	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/Carmen-Shannon/oxy-ontography/ontology"
)

// CenterLookup resolves a category to its cluster center. It must be total, returning the origin for unknown categories.
type CenterLookup func(ontology.CategoryKey) common.Vec3

// Placer computes marker positions.
type Placer interface {
	// Place returns the cluster center of the node's category displaced by an independent uniform jitter on each axis.
	// Unknown categories cluster around the origin.
	//
	// Parameters:
	//   - node: the node to place
	//
	// Returns:
	//   - common.Vec3: the world position of the node's marker
	Place(node ontology.NodeDescriptor) common.Vec3

	// Jitter returns the half-extents of the displacement box.
	//
	// Returns:
	//   - common.Vec3: the maximum absolute offset on each axis
	Jitter() common.Vec3
}

type placerImpl struct {
	mu      sync.Mutex
	centers CenterLookup
	jitter  common.Vec3
	rng     *rand.Rand
}

var _ Placer = &placerImpl{}

// DefaultJitter keeps horizontal spread wider than vertical and stays below half the distance between the closest cluster centers.
var DefaultJitter = common.Vec3{X: 1.3, Y: 0.7, Z: 1.3}

// NewPlacer creates a new Placer.
//
// Parameters:
//   - options: functional options; without WithCenters every node clusters at the origin
//
// Returns:
//   - Placer: the placer
func NewPlacer(options ...PlacerBuilderOption) Placer {
	p := &placerImpl{
		centers: func(ontology.CategoryKey) common.Vec3 { return common.Vec3{} },
		jitter:  DefaultJitter,
	}
	for _, opt := range options {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return p
}

func (p *placerImpl) Place(node ontology.NodeDescriptor) common.Vec3 {
	p.mu.Lock()
	defer p.mu.Unlock()

	c := p.centers(node.Category)
	return common.Vec3{
		X: c.X + p.spread(p.jitter.X),
		Y: c.Y + p.spread(p.jitter.Y),
		Z: c.Z + p.spread(p.jitter.Z),
	}
}

func (p *placerImpl) Jitter() common.Vec3 {
	return p.jitter
}

// spread returns a uniform sample in [-half, half).
func (p *placerImpl) spread(half float32) float32 {
	return (p.rng.Float32()*2 - 1) * half
}
