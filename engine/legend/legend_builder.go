package legend

import "github.com/Carmen-Shannon/oxy-ontography/engine/label"

// LegendBuilderOption is a functional option for NewLegend.
type LegendBuilderOption func(l *legendImpl)

// WithTexts sets the title, edge note and tip. Empty strings keep the defaults.
func WithTexts(title, edgeNote, tip string) LegendBuilderOption {
	return func(l *legendImpl) {
		if title != "" {
			l.title = title
		}
		if edgeNote != "" {
			l.edgeNote = edgeNote
		}
		if tip != "" {
			l.tip = tip
		}
	}
}

// WithMetrics sets the panel geometry.
func WithMetrics(m Metrics) LegendBuilderOption {
	return func(l *legendImpl) {
		l.metrics = m
	}
}

// WithMeasurer sets how footer text is measured for wrapping, normally the overlay font.
func WithMeasurer(m label.Measurer) LegendBuilderOption {
	return func(l *legendImpl) {
		if m != nil {
			l.measurer = m
		}
	}
}

// WithVisible sets the initial visibility.
func WithVisible(visible bool) LegendBuilderOption {
	return func(l *legendImpl) {
		l.visible = visible
	}
}
