// package common contains plain value types shared across the viewer: vectors, matrices, colors and
// GPU staging data. They are not interface-wrapped.
package common

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"
)

// Color is a linear RGB triple with components in [0, 1].
type Color struct {
	R, G, B float32
}

// ColorFromHex converts a packed 0xRRGGBB value into a Color.
func ColorFromHex(hex uint32) Color {
	return Color{
		R: float32((hex>>16)&0xff) / 255,
		G: float32((hex>>8)&0xff) / 255,
		B: float32(hex&0xff) / 255,
	}
}

// ParseHexColor parses "#rrggbb", "0xrrggbb" or "rrggbb".
//
// Parameters:
//   - s: the textual color
//
// Returns:
//   - Color: the parsed color
//   - error: error if s is not a 6-digit hex color
func ParseHexColor(s string) (Color, error) {
	t := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "#"), "0x")
	if len(t) != 6 {
		return Color{}, fmt.Errorf("invalid color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(t, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return ColorFromHex(uint32(v)), nil
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	r, g, b := c.bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// RGBA returns the color as an 8-bit color.RGBA with the given alpha in [0, 1].
// The channels are premultiplied, as image/color expects.
func (c Color) RGBA(alpha float32) color.RGBA {
	r, g, b := c.bytes()
	a := Clamp(alpha, 0, 1)
	return color.RGBA{
		R: uint8(float32(r) * a),
		G: uint8(float32(g) * a),
		B: uint8(float32(b) * a),
		A: uint8(a*255 + 0.5),
	}
}

// Linear converts an sRGB-encoded color to linear light for shading on an sRGB surface.
func (c Color) Linear() Color {
	conv := func(v float32) float32 {
		if v <= 0.04045 {
			return v / 12.92
		}
		return float32(math.Pow((float64(v)+0.055)/1.055, 2.4))
	}
	return Color{R: conv(c.R), G: conv(c.G), B: conv(c.B)}
}

// Vec4 packs the color with an alpha channel for GPU upload.
func (c Color) Vec4(alpha float32) [4]float32 {
	return [4]float32{c.R, c.G, c.B, alpha}
}

func (c Color) bytes() (uint8, uint8, uint8) {
	conv := func(f float32) uint8 { return uint8(Clamp(f, 0, 1)*255 + 0.5) }
	return conv(c.R), conv(c.G), conv(c.B)
}

// Rect is an axis-aligned pixel rectangle. Max is exclusive.
type Rect struct {
	MinX, MinY, MaxX, MaxY int
}

// Contains reports whether (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Width returns the horizontal extent of r.
func (r Rect) Width() int { return r.MaxX - r.MinX }

// Height returns the vertical extent of r.
func (r Rect) Height() int { return r.MaxY - r.MinY }

// TextureStagingData holds RGBA pixel data for a texture binding pending GPU upload.
type TextureStagingData struct {
	// Pixels is RGBA data, 4 bytes per pixel, row-major.
	Pixels []byte
	// Width is the texture width in pixels.
	Width uint32
	// Height is the texture height in pixels.
	Height uint32
}

// SamplerStagingData holds the configuration for a sampler binding pending GPU creation.
type SamplerStagingData struct {
	// AddressModeU, AddressModeV, AddressModeW specify addressing outside [0, 1].
	AddressModeU, AddressModeV, AddressModeW wgpu.AddressMode
	// MagFilter and MinFilter specify the filtering mode for magnification and minification.
	MagFilter, MinFilter wgpu.FilterMode
	// MipmapFilter specifies the filtering mode for mipmap level selection.
	MipmapFilter wgpu.MipmapFilterMode
	// LodMinClamp and LodMaxClamp bound the sampled level of detail.
	LodMinClamp, LodMaxClamp float32
	// MaxAnisotropy is the anisotropic filtering level; 1 disables it.
	MaxAnisotropy uint16
}

// LinearClampSampler is the sampler used for label and overlay textures.
func LinearClampSampler() SamplerStagingData {
	return SamplerStagingData{
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMaxClamp:   32,
		MaxAnisotropy: 1,
	}
}
