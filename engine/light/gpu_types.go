package light

import (
	_ "embed"
	"encoding/binary"
	"math"
)

// GPULightingSource is the WGSL definition of the Lighting struct. Matches GPULighting (48 bytes).
//
//go:embed assets/lighting.wgsl
var GPULightingSource string

// GPULightingSize is the byte size of a marshaled GPULighting.
const GPULightingSize = 48

// GPULighting is the CPU mirror of the WGSL Lighting uniform. Each vec3 is padded to 16 bytes.
type GPULighting struct {
	Ambient   [3]float32 // offset  0
	Direction [3]float32 // offset 16: toward the light
	Color     [3]float32 // offset 32
}

// Marshal serializes the uniform into little-endian bytes for GPU upload.
//
// Returns:
//   - []byte: GPULightingSize bytes
func (g *GPULighting) Marshal() []byte {
	buf := make([]byte, GPULightingSize)
	put := func(off int, v [3]float32) {
		for i := range 3 {
			binary.LittleEndian.PutUint32(buf[off+i*4:], math.Float32bits(v[i]))
		}
	}
	put(0, g.Ambient)
	put(16, g.Direction)
	put(32, g.Color)
	return buf
}
