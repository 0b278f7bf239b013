// Package label lays out and rasterizes the text shown next to scene markers and in overlays.
package label

import "strings"

// Measurer reports the rendered pixel width of a single line of text.
type Measurer interface {
	Measure(text string) int
}

// MeasureFunc adapts a function to the Measurer interface.
type MeasureFunc func(text string) int

// Measure calls f(text).
func (f MeasureFunc) Measure(text string) int { return f(text) }

// Wrap breaks text into lines no wider than maxWidth, breaking only between words.
// A single word wider than maxWidth is kept whole on its own line. Runs of whitespace collapse to one space.
//
// Parameters:
//   - text: the text to wrap
//   - maxWidth: maximum line width in pixels
//   - m: measures candidate lines
//
// Returns:
//   - []string: the wrapped lines; empty text yields no lines
func Wrap(text string, maxWidth int, m Measurer) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lines := make([]string, 0, 2)
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if m.Measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = w
			continue
		}
		line = candidate
	}
	return append(lines, line)
}

// LineCenters returns the vertical center of each of n lines stacked lineHeight apart,
// with the block centered on a canvas of the given height.
//
// Parameters:
//   - n: number of lines
//   - lineHeight: distance between consecutive line centers
//   - canvasHeight: height of the canvas the block is centered on
//
// Returns:
//   - []int: y coordinate of each line's center, top to bottom
func LineCenters(n, lineHeight, canvasHeight int) []int {
	if n <= 0 {
		return nil
	}
	top := canvasHeight/2 - (n-1)*lineHeight/2
	centers := make([]int, n)
	for i := range centers {
		centers[i] = top + i*lineHeight
	}
	return centers
}
