package common

import "math"

// Ray is a half-line starting at Origin travelling along a unit Direction.
type Ray struct {
	Origin    Vec3
	Direction Vec3
}

// RayFromNDC unprojects a normalized device coordinate through the inverse view-projection matrix.
// The ray starts on the near plane (depth 0) and points toward the far plane (depth 1).
//
// Parameters:
//   - invViewProj: inverse of projection * view
//   - ndcX, ndcY: pointer position in [-1, 1], y up
//
// Returns:
//   - Ray: the world-space picking ray
func RayFromNDC(invViewProj Mat4, ndcX, ndcY float32) Ray {
	near := invViewProj.TransformPoint(Vec3{ndcX, ndcY, 0})
	far := invViewProj.TransformPoint(Vec3{ndcX, ndcY, 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

// IntersectSphere returns the distance along r to the first surface hit of the sphere, if any.
// A ray starting inside the sphere reports the exit point.
//
// Parameters:
//   - center: sphere center in world space
//   - radius: sphere radius
//
// Returns:
//   - float32: hit distance along the ray
//   - bool: false if the ray misses or the sphere lies behind the origin
func (r Ray) IntersectSphere(center Vec3, radius float32) (float32, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	sq := float32(math.Sqrt(float64(disc)))
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, false
	}
	return t, true
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}
