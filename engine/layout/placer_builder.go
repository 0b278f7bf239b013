package layout

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-ontography/common"
)

// PlacerBuilderOption configures a Placer.
type PlacerBuilderOption func(*placerImpl)

// WithCenters sets the cluster center lookup, typically ontology.Dataset.CenterFor.
func WithCenters(lookup CenterLookup) PlacerBuilderOption {
	return func(p *placerImpl) {
		if lookup != nil {
			p.centers = lookup
		}
	}
}

// WithJitter sets the half-extents of the uniform displacement on each axis.
// Negative extents are taken as their absolute value.
func WithJitter(x, y, z float32) PlacerBuilderOption {
	return func(p *placerImpl) {
		p.jitter = common.Vec3{X: abs(x), Y: abs(y), Z: abs(z)}
	}
}

// WithRand sets the random source. Seeded sources make placement reproducible.
func WithRand(rng *rand.Rand) PlacerBuilderOption {
	return func(p *placerImpl) {
		p.rng = rng
	}
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
