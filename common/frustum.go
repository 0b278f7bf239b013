package common

// Plane is ax + by + cz + d = 0 with (a, b, c) = Normal and d = Distance.
type Plane struct {
	Normal   Vec3
	Distance float32
}

// Frustum holds the six planes of a view volume with normals pointing inward.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// ExtractFrustum derives the frustum planes from a view-projection matrix (Gribb/Hartmann).
// The near plane follows the WebGPU [0, 1] depth range, so it is row 2 alone rather than row3 + row2.
//
// Parameters:
//   - viewProj: projection * view, column-major
//
// Returns:
//   - Frustum: the normalized planes
func ExtractFrustum(viewProj Mat4) Frustum {
	row := func(r int) [4]float32 {
		return [4]float32{viewProj[r], viewProj[4+r], viewProj[8+r], viewProj[12+r]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	plane := func(a, b [4]float32, sign float32) Plane {
		p := Plane{
			Normal:   Vec3{a[0] + sign*b[0], a[1] + sign*b[1], a[2] + sign*b[2]},
			Distance: a[3] + sign*b[3],
		}
		if l := p.Normal.Length(); l > 0 {
			p.Normal = p.Normal.Scale(1 / l)
			p.Distance /= l
		}
		return p
	}

	var f Frustum
	f.Planes[0] = plane(r3, r0, 1)
	f.Planes[1] = plane(r3, r0, -1)
	f.Planes[2] = plane(r3, r1, 1)
	f.Planes[3] = plane(r3, r1, -1)
	f.Planes[4] = plane(r2, r2, 0)
	f.Planes[5] = plane(r3, r2, -1)
	return f
}

// ContainsSphere reports whether any part of the sphere lies inside the frustum.
func (f Frustum) ContainsSphere(center Vec3, radius float32) bool {
	for _, p := range f.Planes {
		if p.Normal.Dot(center)+p.Distance < -radius {
			return false
		}
	}
	return true
}
