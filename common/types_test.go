package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	for _, in := range []string{"#4f9cf7", "0x4f9cf7", "4F9CF7", " #4f9cf7 "} {
		c, err := ParseHexColor(in)
		require.NoError(t, err, in)
		assert.Equal(t, "#4f9cf7", c.Hex(), in)
	}

	for _, bad := range []string{"", "#fff", "#zzzzzz", "#1234567"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	c := ColorFromHex(0xffffff)
	assert.Equal(t, uint8(255), c.RGBA(1).R)
	half := c.RGBA(0.5)
	assert.Equal(t, uint8(128), half.A)
	assert.Equal(t, uint8(127), half.R)
}

func TestRectContains(t *testing.T) {
	r := Rect{MinX: 10, MinY: 10, MaxX: 20, MaxY: 15}
	assert.True(t, r.Contains(10, 10))
	assert.False(t, r.Contains(20, 12))
	assert.Equal(t, 10, r.Width())
	assert.Equal(t, 5, r.Height())
}

func TestColorLinear(t *testing.T) {
	assert.Equal(t, Color{}, Color{}.Linear())
	assert.InDelta(t, 1.0, ColorFromHex(0xffffff).Linear().G, 1e-6)
	// sRGB mid gray is about 21% linear light
	assert.InDelta(t, 0.2158, ColorFromHex(0x808080).Linear().R, 1e-3)
}
