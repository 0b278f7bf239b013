package label

import (
	"fmt"
	"image"
	"image/draw"
)

// Region is the normalized texture rectangle of one canvas inside an Atlas.
type Region struct {
	U0, V0, U1, V1 float32
}

// Atlas packs equally sized label canvases into one texture, row-major in a grid.
type Atlas struct {
	Image   *image.RGBA
	Regions []Region
}

// NewAtlas packs canvases into a grid texture no larger than maxDimension on either side.
// All canvases must share the size of the first one. An empty input yields a 1x1 transparent atlas.
//
// Parameters:
//   - canvases: the label canvases, indexed like the regions returned
//   - maxDimension: the device's maximum 2D texture size
//
// Returns:
//   - *Atlas: the packed atlas
//   - error: error if the canvases differ in size or do not fit
func NewAtlas(canvases []*image.RGBA, maxDimension int) (*Atlas, error) {
	if len(canvases) == 0 {
		return &Atlas{Image: image.NewRGBA(image.Rect(0, 0, 1, 1))}, nil
	}

	cw, ch := canvases[0].Rect.Dx(), canvases[0].Rect.Dy()
	if cw > maxDimension || ch > maxDimension {
		return nil, fmt.Errorf("label canvas %dx%d exceeds texture limit %d", cw, ch, maxDimension)
	}
	cols := min(len(canvases), maxDimension/cw)
	rows := (len(canvases) + cols - 1) / cols
	if rows*ch > maxDimension {
		return nil, fmt.Errorf("%d labels of %dx%d do not fit a %d texture", len(canvases), cw, ch, maxDimension)
	}

	w, h := cols*cw, rows*ch
	a := &Atlas{
		Image:   image.NewRGBA(image.Rect(0, 0, w, h)),
		Regions: make([]Region, len(canvases)),
	}
	for i, c := range canvases {
		if c.Rect.Dx() != cw || c.Rect.Dy() != ch {
			return nil, fmt.Errorf("label %d is %dx%d, want %dx%d", i, c.Rect.Dx(), c.Rect.Dy(), cw, ch)
		}
		x, y := (i%cols)*cw, (i/cols)*ch
		draw.Draw(a.Image, image.Rect(x, y, x+cw, y+ch), c, c.Rect.Min, draw.Src)
		a.Regions[i] = Region{
			U0: float32(x) / float32(w),
			V0: float32(y) / float32(h),
			U1: float32(x+cw) / float32(w),
			V1: float32(y+ch) / float32(h),
		}
	}
	return a, nil
}
