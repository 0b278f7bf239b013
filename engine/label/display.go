package label

import (
	"image"
	"image/color"

	"tinygo.org/x/drivers"
)

// imageDisplay lets tinyfont draw into an image.RGBA.
type imageDisplay struct {
	img *image.RGBA
}

var _ drivers.Displayer = &imageDisplay{}

// NewDisplay wraps img as a drivers.Displayer. Pixels outside the image are ignored.
func NewDisplay(img *image.RGBA) drivers.Displayer {
	return &imageDisplay{img: img}
}

func (d *imageDisplay) Size() (x, y int16) {
	b := d.img.Bounds()
	return int16(b.Dx()), int16(b.Dy())
}

func (d *imageDisplay) SetPixel(x, y int16, c color.RGBA) {
	p := image.Pt(int(x), int(y)).Add(d.img.Rect.Min)
	if !p.In(d.img.Rect) {
		return
	}
	d.img.SetRGBA(p.X, p.Y, c)
}

func (d *imageDisplay) Display() error { return nil }
