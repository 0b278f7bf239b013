// Package config holds the viewer's tunable constants, decoded from an embedded TOML document.
package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log"

	"github.com/BurntSushi/toml"
	"github.com/Carmen-Shannon/oxy-ontography/common"
	"github.com/go-playground/validator/v10"
)

//go:embed assets/viewer.toml
var defaultConfig []byte

var validate = validator.New()

// HexColor is a common.Color that decodes from "#rrggbb" text.
type HexColor struct {
	common.Color
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *HexColor) UnmarshalText(text []byte) error {
	c, err := common.ParseHexColor(string(text))
	if err != nil {
		return err
	}
	h.Color = c
	return nil
}

// Config is the complete set of viewer constants.
type Config struct {
	Window    WindowConfig    `toml:"window"`
	Render    RenderConfig    `toml:"render"`
	Camera    CameraConfig    `toml:"camera"`
	Scene     SceneConfig     `toml:"scene"`
	Lights    LightsConfig    `toml:"lights"`
	Label     LabelConfig     `toml:"label"`
	Highlight HighlightConfig `toml:"highlight"`
	Tooltip   TooltipConfig   `toml:"tooltip"`
	Legend    LegendConfig    `toml:"legend"`
}

type WindowConfig struct {
	Title  string `toml:"title" validate:"required"`
	Width  int    `toml:"width" validate:"gt=0"`
	Height int    `toml:"height" validate:"gt=0"`
}

type RenderConfig struct {
	VSync      bool `toml:"vsync"`
	MSAA       int  `toml:"msaa" validate:"oneof=1 4"`
	FrameLimit int  `toml:"frame_limit" validate:"gte=0"`
	Profiling  bool `toml:"profiling"`
}

type CameraConfig struct {
	FOV         float32    `toml:"fov" validate:"gt=0,lt=180"`
	Near        float32    `toml:"near" validate:"gt=0"`
	Far         float32    `toml:"far" validate:"gtfield=Near"`
	Position    [3]float32 `toml:"position"`
	Target      [3]float32 `toml:"target"`
	Damping     float32    `toml:"damping" validate:"gte=0,lte=1"`
	RotateSpeed float32    `toml:"rotate_speed" validate:"gt=0"`
	ZoomSpeed   float32    `toml:"zoom_speed" validate:"gt=0"`
	MinDistance float32    `toml:"min_distance" validate:"gt=0"`
	MaxDistance float32    `toml:"max_distance" validate:"gtfield=MinDistance"`
}

type SceneConfig struct {
	Background  HexColor   `toml:"background"`
	NodeRadius  float32    `toml:"node_radius" validate:"gt=0"`
	EdgeColor   HexColor   `toml:"edge_color"`
	LabelOffset float32    `toml:"label_offset"`
	LabelSize   [2]float32 `toml:"label_size"`
	Jitter      [3]float32 `toml:"jitter"`
}

type LightsConfig struct {
	AmbientColor         HexColor   `toml:"ambient_color"`
	AmbientIntensity     float32    `toml:"ambient_intensity" validate:"gte=0"`
	DirectionalColor     HexColor   `toml:"directional_color"`
	DirectionalIntensity float32    `toml:"directional_intensity" validate:"gte=0"`
	DirectionalPosition  [3]float32 `toml:"directional_position"`
}

type LabelConfig struct {
	CanvasWidth  int      `toml:"canvas_width" validate:"gt=0"`
	CanvasHeight int      `toml:"canvas_height" validate:"gt=0"`
	MaxWidth     int      `toml:"max_width" validate:"gt=0,ltefield=CanvasWidth"`
	LineHeight   int      `toml:"line_height" validate:"gt=0"`
	Color        HexColor `toml:"color"`
	Workers      int      `toml:"workers" validate:"gt=0"`
}

type HighlightConfig struct {
	HoverScale        float32 `toml:"hover_scale" validate:"gt=0"`
	EdgeDefault       float32 `toml:"edge_default" validate:"gte=0,lte=1"`
	EdgeIncident      float32 `toml:"edge_incident" validate:"gte=0,lte=1"`
	EdgeOther         float32 `toml:"edge_other" validate:"gte=0,lte=1"`
	SpotlightIn       float32 `toml:"spotlight_in" validate:"gte=0,lte=1"`
	SpotlightOut      float32 `toml:"spotlight_out" validate:"gte=0,lte=1"`
	SpotlightEdgeIn   float32 `toml:"spotlight_edge_in" validate:"gte=0,lte=1"`
	SpotlightEdgeOut  float32 `toml:"spotlight_edge_out" validate:"gte=0,lte=1"`
	SpotlightEdgeRest float32 `toml:"spotlight_edge_rest" validate:"gte=0,lte=1"`
}

type TooltipConfig struct {
	Width  int    `toml:"width" validate:"gt=0"`
	Height int    `toml:"height" validate:"gt=0"`
	Offset int    `toml:"offset"`
	Hint   string `toml:"hint"`
}

type LegendConfig struct {
	Title    string `toml:"title" validate:"required"`
	EdgeNote string `toml:"edge_note"`
	Tip      string `toml:"tip"`
	Visible  bool   `toml:"visible"`
}

// Default returns the embedded viewer defaults.
// It panics if the embedded document is invalid, which can only happen on a broken build.
func Default() *Config {
	cfg, err := Decode(bytes.NewReader(defaultConfig))
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Decode parses and validates a TOML viewer configuration.
// Keys the Config does not know are logged and ignored.
//
// Parameters:
//   - r: the TOML source
//
// Returns:
//   - *Config: the decoded configuration
//   - error: error if the document does not parse or a value is out of range
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to decode viewer config: %w", err)
	}
	for _, key := range md.Undecoded() {
		log.Printf("[Config] ignoring unknown key %q", key.String())
	}
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid viewer config: %w", err)
	}
	return &cfg, nil
}
