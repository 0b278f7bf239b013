package label

import (
	"image/color"

	"tinygo.org/x/tinyfont"
)

// RasterizerBuilderOption configures a Rasterizer.
type RasterizerBuilderOption func(*rasterizerImpl)

// WithFont sets the font. It must be safe for concurrent glyph lookups because RenderAll draws in parallel.
func WithFont(font tinyfont.Fonter) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		if font != nil {
			r.font = font
		}
	}
}

// WithCanvasSize sets the canvas size in pixels.
func WithCanvasSize(width, height int) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		r.width = width
		r.height = height
	}
}

// WithMaxWidth sets the wrap width in pixels.
func WithMaxWidth(maxWidth int) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		r.maxWidth = maxWidth
	}
}

// WithLineHeight sets the distance between consecutive lines in pixels.
func WithLineHeight(lineHeight int) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		r.lineHeight = lineHeight
	}
}

// WithColor sets the text color.
func WithColor(c color.RGBA) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		r.color = c
	}
}

// WithWorkers sets how many labels RenderAll draws concurrently.
func WithWorkers(n int) RasterizerBuilderOption {
	return func(r *rasterizerImpl) {
		if n > 0 {
			r.workers = n
		}
	}
}
