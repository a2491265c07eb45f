package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-refract/common"
	"github.com/chewxy/math32"
)

// settleEpsilon is the queued motion below which damping snaps to rest.
const settleEpsilon = 1e-5

type cameraControllerImpl struct {
	mu *sync.Mutex

	// position is derived from target and the spherical coordinates
	position [3]float32
	target   [3]float32

	radius    float32
	azimuth   float32
	elevation float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	dampingFactor    float32

	// queued input not yet applied by Update
	azimuthDelta   float32
	elevationDelta float32
	radiusDelta    float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller looking at the origin from +Z at
// radius 5, without damping.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the newly created controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:     &sync.Mutex{},
		radius: 5,

		minRadius:    0.5,
		maxRadius:    100,
		minElevation: -math32.Pi/2 + 0.05,
		maxElevation: math32.Pi/2 - 0.05,

		mouseSensitivity: 0.005,
		zoomSpeed:        0.25,
	}

	for _, option := range options {
		option(cc)
	}

	cc.clamp()
	cc.updatePosition()
	return cc
}

// updatePosition recomputes the camera position from spherical coordinates.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) updatePosition() {
	cosElev := math32.Cos(cc.elevation)
	sinElev := math32.Sin(cc.elevation)
	cosAzim := math32.Cos(cc.azimuth)
	sinAzim := math32.Sin(cc.azimuth)

	cc.position[0] = cc.target[0] + cc.radius*cosElev*sinAzim
	cc.position[1] = cc.target[1] + cc.radius*sinElev
	cc.position[2] = cc.target[2] + cc.radius*cosElev*cosAzim
}

// clamp keeps radius and elevation inside their limits. Caller must hold the mutex.
func (cc *cameraControllerImpl) clamp() {
	cc.radius = common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	cc.elevation = common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) SetPosition(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	dx := x - cc.target[0]
	dy := y - cc.target[1]
	dz := z - cc.target[2]
	cc.radius = math32.Sqrt(dx*dx + dy*dy + dz*dz)
	if cc.radius > 0 {
		cc.elevation = math32.Asin(common.Clamp(dy/cc.radius, -1, 1))
		cc.azimuth = math32.Atan2(dx, dz)
	}
	cc.azimuthDelta, cc.elevationDelta, cc.radiusDelta = 0, 0, 0
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetTarget(x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.target = [3]float32{x, y, z}
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radiusDelta -= delta * cc.zoomSpeed
}

func (cc *cameraControllerImpl) Rotate(dx, dy float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuthDelta -= dx * cc.mouseSensitivity
	cc.elevationDelta += dy * cc.mouseSensitivity
}

func (cc *cameraControllerImpl) Update() bool {
	cc.mu.Lock()
	defer cc.mu.Unlock()

	if cc.azimuthDelta == 0 && cc.elevationDelta == 0 && cc.radiusDelta == 0 {
		return false
	}

	step := float32(1)
	if cc.dampingFactor > 0 {
		step = cc.dampingFactor
	}
	before := cc.position

	cc.azimuth += cc.azimuthDelta * step
	cc.elevation += cc.elevationDelta * step
	cc.radius += cc.radiusDelta * step
	cc.clamp()
	cc.updatePosition()

	keep := 1 - step
	cc.azimuthDelta *= keep
	cc.elevationDelta *= keep
	cc.radiusDelta *= keep
	if math32.Abs(cc.azimuthDelta)+math32.Abs(cc.elevationDelta)+math32.Abs(cc.radiusDelta) < settleEpsilon {
		cc.azimuthDelta, cc.elevationDelta, cc.radiusDelta = 0, 0, 0
	}
	return before != cc.position
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) SetRadius(radius float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = radius
	cc.clamp()
	cc.updatePosition()
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) DampingFactor() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.dampingFactor
}

func (cc *cameraControllerImpl) SetDampingFactor(factor float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.dampingFactor = common.Clamp(factor, 0, 1)
}

func (cc *cameraControllerImpl) MouseSensitivity() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.mouseSensitivity
}

func (cc *cameraControllerImpl) ZoomSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.zoomSpeed
}
