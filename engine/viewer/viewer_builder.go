package viewer

import (
	"math/rand/v2"

	"github.com/Carmen-Shannon/oxy-ontography/engine/picking"
	"github.com/Carmen-Shannon/oxy-ontography/engine/renderer"
)

// ViewerBuilderOption configures a viewer under construction.
type ViewerBuilderOption func(v *viewerImpl)

// WithRenderer draws frames through r with the GPU drawer.
//
// Parameters:
//   - r: a renderer bound to the window surface
//
// Returns:
//   - ViewerBuilderOption: functional option to set the renderer
func WithRenderer(r renderer.Renderer) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.renderer = r
	}
}

// WithDrawer replaces the GPU drawer. It takes precedence over WithRenderer.
func WithDrawer(d Drawer) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.drawer = d
	}
}

// WithViewport sets the initial viewport, normally the window's framebuffer size.
func WithViewport(width, height int) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.viewport = picking.Viewport{Width: max(width, 0), Height: max(height, 0)}
	}
}

// WithRand seeds node placement. Seeded sources make layouts reproducible.
func WithRand(rng *rand.Rand) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.rng = rng
	}
}
