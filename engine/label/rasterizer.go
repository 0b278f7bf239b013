package label

import (
	"image"
	"image/color"
	"strings"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/freesans"
)

// Rasterizer turns label text into transparent RGBA canvases with centered, word-wrapped lines.
type Rasterizer interface {
	Measurer

	// Wrap breaks text into lines that fit the configured maximum width.
	//
	// Parameters:
	//   - text: the label text
	//
	// Returns:
	//   - []string: the wrapped lines
	Wrap(text string) []string

	// RenderLines draws pre-wrapped lines onto a new canvas, each line horizontally centered
	// and the block vertically centered.
	//
	// Parameters:
	//   - lines: the lines to draw, top to bottom
	//
	// Returns:
	//   - *image.RGBA: the canvas
	RenderLines(lines []string) *image.RGBA

	// RenderAll draws many labels in parallel on the rasterizer's worker pool.
	//
	// Parameters:
	//   - labels: the pre-wrapped lines of each label
	//
	// Returns:
	//   - []*image.RGBA: one canvas per label, in input order
	RenderAll(labels [][]string) []*image.RGBA

	// CanvasSize returns the size in pixels of every canvas this rasterizer produces.
	//
	// Returns:
	//   - int: width
	//   - int: height
	CanvasSize() (int, int)
}

type rasterizerImpl struct {
	font         tinyfont.Fonter
	width        int
	height       int
	maxWidth     int
	lineHeight   int
	color        color.RGBA
	workers      int
	poolOnce     sync.Once
	pool         worker.DynamicWorkerPool
	baselineDrop int
}

var _ Rasterizer = &rasterizerImpl{}

// NewRasterizer creates a new Rasterizer. The defaults draw black FreeSans 12pt on a 512x128 canvas,
// wrapped at 420 pixels with 28 pixel line spacing.
//
// Parameters:
//   - options: functional options to override the defaults
//
// Returns:
//   - Rasterizer: the rasterizer
func NewRasterizer(options ...RasterizerBuilderOption) Rasterizer {
	r := &rasterizerImpl{
		font:       &freesans.Regular12pt7b,
		width:      512,
		height:     128,
		maxWidth:   420,
		lineHeight: 28,
		color:      color.RGBA{A: 255},
		workers:    4,
	}
	for _, opt := range options {
		opt(r)
	}
	if r.width <= 0 || r.height <= 0 {
		panic("label: canvas size must be positive")
	}
	r.baselineDrop = int(r.font.GetYAdvance()) / 3
	return r
}

func (r *rasterizerImpl) Measure(text string) int {
	_, outbox := tinyfont.LineWidth(r.font, Printable(text))
	return int(outbox)
}

func (r *rasterizerImpl) Wrap(text string) []string {
	return Wrap(text, r.maxWidth, r)
}

func (r *rasterizerImpl) CanvasSize() (int, int) {
	return r.width, r.height
}

func (r *rasterizerImpl) RenderLines(lines []string) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	d := NewDisplay(img)
	for i, y := range LineCenters(len(lines), r.lineHeight, r.height) {
		text := Printable(lines[i])
		x := (r.width - r.Measure(text)) / 2
		tinyfont.WriteLine(d, r.font, int16(x), int16(y+r.baselineDrop), text, r.color)
	}
	return img
}

func (r *rasterizerImpl) RenderAll(labels [][]string) []*image.RGBA {
	out := make([]*image.RGBA, len(labels))
	if len(labels) == 0 {
		return out
	}
	r.poolOnce.Do(func() {
		r.pool = worker.NewDynamicWorkerPool(r.workers, 256, 1*time.Second)
	})

	// The WaitGroup is the batch barrier; pool.Wait only returns once workers go idle.
	var wg sync.WaitGroup
	for i, lines := range labels {
		wg.Add(1)
		r.pool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				out[i] = r.RenderLines(lines)
				return nil, nil
			},
		})
	}
	wg.Wait()
	return out
}

var printableReplacer = strings.NewReplacer(
	"—", "-", // em dash
	"–", "-", // en dash
	"•", "|", // bullet
	"’", "'",
	"“", "\"",
	"”", "\"",
)

// Printable maps text onto the 7-bit glyph range of the bundled fonts.
// Common typographic punctuation gets an ASCII stand-in; anything else outside the range becomes '?'.
func Printable(text string) string {
	text = printableReplacer.Replace(text)
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return '?'
		}
		return r
	}, text)
}
