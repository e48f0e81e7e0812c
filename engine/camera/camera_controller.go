package camera

// CameraController owns the camera pose: an orbit around a look-at target in spherical
// coordinates, plus a view yaw/pitch that normally points at the target.
//
// Orbit edits (azimuth, elevation, zoom) recompute the position from the spherical
// coordinates and re-aim. Pose edits (SetPose, RotateAroundWorldY) write the position
// directly and derive the spherical coordinates from it. SetPitch changes only the view
// direction, which is how a fly-to tilts the camera without moving it.
//
// CameraController satisfies tween.Host.
type CameraController interface {
	// Position returns the camera's world-space position.
	Position() (x, y, z float32)

	// Target returns the orbit / look-at point.
	Target() (x, y, z float32)

	// SetPose writes position and target together and aims the camera at the target.
	// Radius, azimuth and elevation are derived from the new pose without clamping;
	// call Settle to pull them back inside the bounds.
	//
	// Parameters:
	//   - position: the camera position
	//   - target: the look-at point
	SetPose(position, target [3]float32)

	// Settle clamps radius and elevation to their bounds and, if either moved, places the
	// camera back on the orbit and re-aims. A pose already inside the bounds is untouched.
	Settle()

	// PanRight slides position and target together along the horizontal right vector
	// by delta * PanSpeed. Orbit angles, radius and view direction are unchanged.
	//
	// Parameters:
	//   - delta: the pan input; negative moves left
	PanRight(delta float32)

	// PanForward slides position and target together along the view direction projected
	// onto the horizontal plane, by delta * PanSpeed.
	//
	// Parameters:
	//   - delta: the pan input; negative moves back
	PanForward(delta float32)

	// Forward returns the unit view direction built from yaw and pitch.
	Forward() (x, y, z float32)

	// Pitch returns the view pitch in radians; negative looks down.
	Pitch() float32

	// SetPitch writes the view pitch, clamped just short of straight up or down.
	// Position and target are untouched.
	//
	// Parameters:
	//   - pitch: the new pitch in radians
	SetPitch(pitch float32)

	// RotateAroundWorldY rotates the camera position about the world-origin Y axis and
	// re-aims at the unchanged target. Auto-rotate uses it.
	//
	// Parameters:
	//   - angle: rotation in radians, counter-clockwise seen from +Y
	RotateAroundWorldY(angle float32)

	// Zoom moves the camera along the orbit radius by delta * ZoomSpeed, clamped to the
	// radius bounds. Positive delta moves closer.
	//
	// Parameters:
	//   - delta: the zoom input
	Zoom(delta float32)

	// Radius returns the distance from the target.
	Radius() float32

	// Azimuth returns the horizontal orbit angle in radians, measured from +Z.
	Azimuth() float32

	// SetAzimuth sets the horizontal orbit angle and recomputes the position.
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical orbit angle above the target's horizontal plane.
	Elevation() float32

	// SetElevation sets the vertical orbit angle, clamped to the elevation bounds.
	SetElevation(elevation float32)

	// MinElevation returns the lower elevation bound.
	MinElevation() float32

	// MaxElevation returns the upper elevation bound.
	MaxElevation() float32

	// MouseSensitivity returns radians of orbit per pixel of drag.
	MouseSensitivity() float32

	// ZoomSpeed returns the radius change per unit of zoom input.
	ZoomSpeed() float32

	// PanSpeed returns world units of pan per pixel of drag.
	PanSpeed() float32
}
