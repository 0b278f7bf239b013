package picking

// HighlighterBuilderOption is a functional option for NewHighlighter.
type HighlighterBuilderOption func(h *highlighterImpl)

// WithMarkerRadius sets the unscaled pick radius of a marker.
func WithMarkerRadius(r float32) HighlighterBuilderOption {
	return func(h *highlighterImpl) {
		h.markerRadius = r
	}
}

// WithHoverScale sets the scale of the hovered marker.
func WithHoverScale(s float32) HighlighterBuilderOption {
	return func(h *highlighterImpl) {
		h.hoverScale = s
	}
}

// WithEdgeEmphasis sets the opacity of edges touching the hovered node and of all other edges.
func WithEdgeEmphasis(incident, other float32) HighlighterBuilderOption {
	return func(h *highlighterImpl) {
		h.edgeIncident = incident
		h.edgeOther = other
	}
}

// WithTooltipBox sets the tooltip placement box.
func WithTooltipBox(box TooltipBox) HighlighterBuilderOption {
	return func(h *highlighterImpl) {
		h.box = box
	}
}

// WithHint sets the hint line of the tooltip.
func WithHint(hint string) HighlighterBuilderOption {
	return func(h *highlighterImpl) {
		h.hint = hint
	}
}
