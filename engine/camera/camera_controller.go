package camera

// CameraController owns the camera's positional state. It orbits a target using
// spherical coordinates (radius, azimuth, elevation). Input is accumulated by Rotate and
// Zoom and applied by Update, optionally damped so motion eases out over several frames.
type CameraController interface {
	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at/pivot point and recomputes position from spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// SetPosition places the camera and derives radius, azimuth and elevation from the
	// offset to the target. Pending input is discarded.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Zoom queues a change of orbit radius. Positive delta zooms in (closer to target).
	//
	// Parameters:
	//   - delta: zoom amount scaled by ZoomSpeed
	Zoom(delta float32)

	// Rotate queues an orbit from a pointer drag.
	//
	// Parameters:
	//   - dx: horizontal drag in pixels, scaled by MouseSensitivity
	//   - dy: vertical drag in pixels, scaled by MouseSensitivity
	Rotate(dx, dy float32)

	// Update applies queued input. With damping the queued input decays by the damping
	// factor each call, so Update must run every frame.
	//
	// Returns:
	//   - bool: true if the position changed
	Update() bool

	// Radius returns the current orbit radius (distance from target).
	Radius() float32

	// SetRadius sets the orbit radius directly, clamped to min/max bounds.
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians, 0 on +Z.
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// DampingFactor returns the fraction of queued input applied per Update, 0 when
	// damping is disabled.
	DampingFactor() float32

	// SetDampingFactor enables damping with factor in (0,1], or disables it with 0.
	SetDampingFactor(factor float32)

	// MouseSensitivity returns the drag sensitivity in radians per pixel.
	MouseSensitivity() float32

	// ZoomSpeed returns the zoom speed multiplier.
	ZoomSpeed() float32
}
