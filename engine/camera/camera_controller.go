package camera

import "github.com/Carmen-Shannon/oxy-ontography/common"

// CameraController owns the camera's positional state. Camera reads position and target from it
// and derives the view matrix each frame.
//
// The controller orbits a target on a sphere (radius, azimuth, elevation). Pointer drags and scroll
// steps accumulate as pending motion that Update releases gradually when damping is enabled.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - common.Vec3: the position
	Position() common.Vec3

	// Target returns the look-at point.
	//
	// Returns:
	//   - common.Vec3: the target
	Target() common.Vec3

	// Radius returns the current distance from the target.
	Radius() float32

	// SetPosition moves the camera to p, re-deriving the spherical coordinates around the current target.
	//
	// Parameters:
	//   - p: world-space position
	SetPosition(p common.Vec3)

	// SetTarget sets the orbit pivot and recomputes the position from the spherical coordinates.
	//
	// Parameters:
	//   - t: world-space target
	SetTarget(t common.Vec3)

	// Rotate queues an orbit by a pointer drag. A drag across the full viewport height turns a full circle.
	// Dragging right swings the camera left around the target; dragging down raises it.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	//   - viewportHeight: viewport height in pixels
	Rotate(dx, dy float32, viewportHeight int)

	// Zoom queues a dolly by scroll steps. Positive steps move toward the target.
	//
	// Parameters:
	//   - steps: scroll steps, as reported by the wheel
	Zoom(steps float32)

	// Update applies pending motion. With damping d in (0, 1], a fraction d of the pending orbit is applied
	// and the rest carries to the next call; zero damping applies everything at once.
	//
	// Returns:
	//   - bool: true while motion is still pending
	Update() bool
}
