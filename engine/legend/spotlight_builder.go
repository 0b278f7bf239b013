package legend

// SpotlightBuilderOption is a functional option for NewSpotlight.
type SpotlightBuilderOption func(s *spotlightImpl)

// WithNodeOpacities sets the opacity of nodes inside and outside the focused category.
func WithNodeOpacities(in, out float32) SpotlightBuilderOption {
	return func(s *spotlightImpl) {
		s.in, s.out = in, out
	}
}

// WithEdgeOpacities sets the opacity of edges within the focused category and of all other edges.
func WithEdgeOpacities(in, out float32) SpotlightBuilderOption {
	return func(s *spotlightImpl) {
		s.edgeIn, s.edgeOut = in, out
	}
}

// WithRestEdgeOpacity sets the opacity every edge returns to when the spotlight is unfocused.
func WithRestEdgeOpacity(o float32) SpotlightBuilderOption {
	return func(s *spotlightImpl) {
		s.edgeRest = o
	}
}
