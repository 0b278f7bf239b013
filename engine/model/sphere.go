package model

import "math"

// SphereSegments is the longitude and latitude resolution of node markers.
const SphereSegments = 24

// UVSphere builds a latitude/longitude sphere centered on the origin with outward normals
// and counter-clockwise front faces.
//
// Parameters:
//   - radius: sphere radius
//   - widthSegments: slices around the Y axis, at least 3
//   - heightSegments: stacks from pole to pole, at least 2
//
// Returns:
//   - []GPUVertex: (widthSegments+1) * (heightSegments+1) vertices
//   - []uint32: triangle indices
func UVSphere(radius float32, widthSegments, heightSegments int) ([]GPUVertex, []uint32) {
	widthSegments = max(widthSegments, 3)
	heightSegments = max(heightSegments, 2)

	vertices := make([]GPUVertex, 0, (widthSegments+1)*(heightSegments+1))
	grid := make([][]uint32, heightSegments+1)
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		row := make([]uint32, widthSegments+1)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			n := [3]float32{
				float32(-math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi)),
				float32(math.Cos(v * math.Pi)),
				float32(math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi)),
			}
			row[ix] = uint32(len(vertices))
			vertices = append(vertices, GPUVertex{
				Position: [3]float32{n[0] * radius, n[1] * radius, n[2] * radius},
				Normal:   n,
			})
		}
		grid[iy] = row
	}

	indices := make([]uint32, 0, widthSegments*heightSegments*6)
	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != heightSegments-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return vertices, indices
}

// NewMarker builds the shared node marker model: a sphere of the given radius.
//
// Parameters:
//   - radius: marker radius at scale 1
//
// Returns:
//   - Model: the marker model
func NewMarker(radius float32) Model {
	vertices, indices := UVSphere(radius, SphereSegments, SphereSegments)
	return NewModel(WithName("marker"), WithMesh(vertices, indices))
}
