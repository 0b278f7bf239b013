package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "Ontography", cfg.Window.Title)
	assert.Equal(t, float32(70), cfg.Camera.FOV)
	assert.Equal(t, [3]float32{10, 8, 12}, cfg.Camera.Position)
	assert.Equal(t, "#d0d0d0", cfg.Scene.Background.Hex())
	assert.Equal(t, "#111111", cfg.Scene.EdgeColor.Hex())
	assert.Equal(t, float32(0.35), cfg.Scene.NodeRadius)
	assert.Equal(t, 420, cfg.Label.MaxWidth)
	assert.Equal(t, float32(0.6), cfg.Highlight.EdgeDefault)
	assert.Equal(t, float32(0.6), cfg.Highlight.SpotlightEdgeRest)
	assert.Equal(t, 260, cfg.Tooltip.Width)
	assert.Equal(t, "Weak ties shown in bold • Drag to orbit • Scroll to zoom", cfg.Tooltip.Hint)
	assert.Equal(t, "Ontography — Color Key", cfg.Legend.Title)
	assert.True(t, cfg.Legend.Visible)
}

func TestDecodeRejectsOutOfRangeValues(t *testing.T) {
	src := strings.Replace(string(defaultConfig), "near = 0.1", "near = 0.0", 1)
	_, err := Decode(strings.NewReader(src))
	assert.Error(t, err)

	src = strings.Replace(string(defaultConfig), "edge_default = 0.6", "edge_default = 1.6", 1)
	_, err = Decode(strings.NewReader(src))
	assert.Error(t, err)
}

func TestDecodeRejectsBadColor(t *testing.T) {
	src := strings.Replace(string(defaultConfig), `background = "#d0d0d0"`, `background = "grey"`, 1)
	_, err := Decode(strings.NewReader(src))
	assert.Error(t, err)
}

func TestDecodeIgnoresUnknownKeys(t *testing.T) {
	cfg, err := Decode(strings.NewReader(string(defaultConfig) + "\n[extra]\nfoo = 1\n"))
	require.NoError(t, err)
	assert.Equal(t, 1280, cfg.Window.Width)
}
