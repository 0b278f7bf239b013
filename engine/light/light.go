package light

import "github.com/Carmen-Shannon/oxy-ontography/common"

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeAmbient lights every fragment equally regardless of orientation.
	LightTypeAmbient LightType = iota

	// LightTypeDirectional has no falloff. Its position only fixes the direction it shines from,
	// toward the origin.
	LightTypeDirectional
)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	lightType LightType
	position  common.Vec3
	color     common.Color
	intensity float32
}

// Light is a scene light. The viewer uses exactly one ambient and one directional light.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: ambient or directional
	Type() LightType

	// Position returns where a directional light shines from. Zero for ambient lights.
	Position() common.Vec3

	// Direction returns the unit vector from the origin toward a directional light.
	// Ambient lights return the zero vector.
	//
	// Returns:
	//   - common.Vec3: normalized direction
	Direction() common.Vec3

	// Color returns the light color.
	Color() common.Color

	// Intensity returns the scalar multiplier applied to Color.
	Intensity() float32

	// Radiance returns Color scaled by Intensity.
	//
	// Returns:
	//   - [3]float32: linear RGB contribution
	Radiance() [3]float32
}

var _ Light = &lightImpl{}

// NewLight creates a light of the given type, white at full intensity unless configured.
//
// Parameters:
//   - lightType: ambient or directional
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: the configured light
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		lightType: lightType,
		color:     common.Color{R: 1, G: 1, B: 1},
		intensity: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() common.Vec3 {
	return l.position
}

func (l *lightImpl) Direction() common.Vec3 {
	if l.lightType != LightTypeDirectional {
		return common.Vec3{}
	}
	return l.position.Normalize()
}

func (l *lightImpl) Color() common.Color {
	return l.color
}

func (l *lightImpl) Intensity() float32 {
	return l.intensity
}

func (l *lightImpl) Radiance() [3]float32 {
	return [3]float32{l.color.R * l.intensity, l.color.G * l.intensity, l.color.B * l.intensity}
}

// Rig is the fixed lighting setup of the scene.
type Rig struct {
	Ambient     Light
	Directional Light
}

// GPU packs the rig for upload.
//
// Returns:
//   - GPULighting: the uniform ready for Marshal
func (r Rig) GPU() GPULighting {
	var g GPULighting
	if r.Ambient != nil {
		g.Ambient = r.Ambient.Radiance()
	}
	if r.Directional != nil {
		g.Direction = r.Directional.Direction().Array()
		g.Color = r.Directional.Radiance()
	}
	return g
}
