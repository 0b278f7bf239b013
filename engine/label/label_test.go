package label

import (
	"image"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tenPerRune measures every rune as 10 pixels wide.
var tenPerRune = MeasureFunc(func(s string) int { return 10 * len([]rune(s)) })

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap("   ", 100, tenPerRune))
	assert.Equal(t, []string{"Claims"}, Wrap("Claims", 100, tenPerRune))
	assert.Equal(t, []string{"aaaa bbbb", "cccc"}, Wrap("aaaa bbbb cccc", 90, tenPerRune))
	assert.Equal(t, []string{"a", "bbbbbbbbbbbbbbbb", "c"}, Wrap("a bbbbbbbbbbbbbbbb c", 50, tenPerRune), "overlong word on its own line")
	assert.Equal(t, []string{"a b"}, Wrap("a \t  b", 100, tenPerRune), "whitespace collapses")
}

func TestWrapProperties(t *testing.T) {
	properties := gopter.NewProperties(gopter.DefaultTestParameters())

	words := gen.SliceOf(gen.AlphaString().SuchThat(func(s string) bool { return s != "" }))

	properties.Property("lines fit or hold a single word", prop.ForAll(
		func(ws []string, maxWidth int) bool {
			for _, line := range Wrap(strings.Join(ws, " "), maxWidth, tenPerRune) {
				if tenPerRune(line) > maxWidth && strings.Contains(line, " ") {
					return false
				}
			}
			return true
		},
		words, gen.IntRange(10, 400),
	))

	properties.Property("words survive in order", prop.ForAll(
		func(ws []string, maxWidth int) bool {
			lines := Wrap(strings.Join(ws, " "), maxWidth, tenPerRune)
			return strings.Join(lines, " ") == strings.Join(ws, " ")
		},
		words, gen.IntRange(10, 400),
	))

	properties.TestingRun(t)
}

func TestLineCenters(t *testing.T) {
	assert.Nil(t, LineCenters(0, 28, 128))
	assert.Equal(t, []int{64}, LineCenters(1, 28, 128))
	assert.Equal(t, []int{50, 78}, LineCenters(2, 28, 128))
	assert.Equal(t, []int{36, 64, 92}, LineCenters(3, 28, 128))
}

func TestPrintable(t *testing.T) {
	assert.Equal(t, "Ontography - Color Key", Printable("Ontography — Color Key"))
	assert.Equal(t, "a | b", Printable("a • b"))
	assert.Equal(t, "caf?", Printable("café"))
}

func opaquePixels(img *image.RGBA) int {
	n := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestRenderLines(t *testing.T) {
	r := NewRasterizer()
	w, h := r.CanvasSize()

	empty := r.RenderLines(nil)
	assert.Equal(t, image.Rect(0, 0, w, h), empty.Rect)
	assert.Zero(t, opaquePixels(empty))

	img := r.RenderLines(r.Wrap("Behavioral Signals (Steps/Sleep/HR)"))
	assert.Positive(t, opaquePixels(img))

	// Text is horizontally centered: ink on both halves, none in the outer margins.
	inkAt := func(x0, x1 int) int {
		n := 0
		for y := 0; y < h; y++ {
			for x := x0; x < x1; x++ {
				if img.RGBAAt(x, y).A != 0 {
					n++
				}
			}
		}
		return n
	}
	assert.Positive(t, inkAt(0, w/2))
	assert.Positive(t, inkAt(w/2, w))
	assert.Zero(t, inkAt(0, (w-420)/2-4))
}

func TestWrapUsesFontMetrics(t *testing.T) {
	r := NewRasterizer(WithMaxWidth(120))
	lines := r.Wrap("EMR (Electronic Medical Records)")
	require.Greater(t, len(lines), 1)
	for _, l := range lines {
		if strings.Contains(l, " ") {
			assert.LessOrEqual(t, r.Measure(l), 120, l)
		}
	}
}

func TestRenderAllMatchesSequential(t *testing.T) {
	r := NewRasterizer(WithWorkers(3))
	labels := [][]string{{"Claims"}, {"AI Risk", "Model"}, nil, {"Underwriting"}, {"Genomic Data"}}

	got := r.RenderAll(labels)
	require.Len(t, got, len(labels))
	for i, lines := range labels {
		assert.Equal(t, r.RenderLines(lines).Pix, got[i].Pix, "label %d", i)
	}
	assert.Empty(t, r.RenderAll(nil))
}

func TestNewAtlas(t *testing.T) {
	canvas := func(fill uint8) *image.RGBA {
		img := image.NewRGBA(image.Rect(0, 0, 4, 2))
		for i := range img.Pix {
			img.Pix[i] = fill
		}
		return img
	}

	a, err := NewAtlas([]*image.RGBA{canvas(1), canvas(2), canvas(3)}, 8)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 8, 4), a.Image.Rect)
	assert.Equal(t, Region{U0: 0.5, V0: 0, U1: 1, V1: 0.5}, a.Regions[1])
	assert.Equal(t, Region{U0: 0, V0: 0.5, U1: 0.5, V1: 1}, a.Regions[2])
	assert.Equal(t, uint8(3), a.Image.RGBAAt(1, 3).R)

	_, err = NewAtlas([]*image.RGBA{canvas(1), canvas(1), canvas(1)}, 4)
	assert.Error(t, err, "three 4x2 canvases stack to 4x6")

	_, err = NewAtlas([]*image.RGBA{canvas(1), image.NewRGBA(image.Rect(0, 0, 2, 2))}, 8)
	assert.Error(t, err)

	empty, err := NewAtlas(nil, 8)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 1, 1), empty.Image.Rect)
}
