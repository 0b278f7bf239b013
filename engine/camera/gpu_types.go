package camera

import (
	_ "embed"
	"encoding/binary"
	"math"

	"github.com/Carmen-Shannon/oxy-ontography/common"
)

// GPUCameraUniformSource is the WGSL definition of the CameraUniform struct.
// Matches GPUCameraUniform layout exactly (144 bytes).
//
//go:embed assets/camera_uniform.wgsl
var GPUCameraUniformSource string

// GPUCameraUniformSize is the byte size of a marshaled GPUCameraUniform.
const GPUCameraUniformSize = 144

// GPUCameraUniform is the CPU mirror of the WGSL CameraUniform struct.
// The view matrix is included so billboards can read the camera's right and up axes.
type GPUCameraUniform struct {
	ViewProj       common.Mat4 // offset   0
	View           common.Mat4 // offset  64
	CameraPosition [3]float32  // offset 128, padded to 144
}

// Marshal serializes the uniform into little-endian bytes for GPU upload.
//
// Returns:
//   - []byte: GPUCameraUniformSize bytes
func (g *GPUCameraUniform) Marshal() []byte {
	buf := make([]byte, GPUCameraUniformSize)
	for i := range 16 {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(g.ViewProj[i]))
		binary.LittleEndian.PutUint32(buf[64+i*4:], math.Float32bits(g.View[i]))
	}
	for i := range 3 {
		binary.LittleEndian.PutUint32(buf[128+i*4:], math.Float32bits(g.CameraPosition[i]))
	}
	return buf
}
