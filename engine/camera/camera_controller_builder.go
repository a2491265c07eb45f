package camera

// CameraControllerOption configures an orbit controller built by NewCameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the starting distance between the camera and the orbit pivot.
//
// Parameters:
//   - radius: orbit distance in world units
//
// Returns:
//   - CameraControllerOption: option applying the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithRadiusLimits clamps how close and how far scrolling may move the camera.
//
// Parameters:
//   - minRadius: nearest orbit distance
//   - maxRadius: farthest orbit distance
//
// Returns:
//   - CameraControllerOption: option applying both limits
func WithRadiusLimits(minRadius, maxRadius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = minRadius
		cc.maxRadius = maxRadius
	}
}

// WithMouseSensitivity is the orbit rate in radians per dragged pixel.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithDampingFactor turns on eased orbiting. Every Update consumes this share of the
// pending drag and scroll, so motion trails off over several frames. Zero applies input
// immediately.
func WithDampingFactor(factor float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.dampingFactor = factor
	}
}
