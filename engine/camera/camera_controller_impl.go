package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// maxPitch keeps the view direction off the vertical so LookAt always has a right axis.
const maxPitch = math32.Pi/2 - 0.001

type cameraControllerImpl struct {
	mu *sync.Mutex

	position [3]float32
	target   [3]float32

	// spherical offset of position from target
	radius    float32
	azimuth   float32
	elevation float32

	// view orientation, re-derived by aim()
	yaw   float32
	pitch float32

	minRadius    float32
	maxRadius    float32
	minElevation float32
	maxElevation float32

	mouseSensitivity float32
	zoomSpeed        float32
	panSpeed         float32
}

var _ CameraController = &cameraControllerImpl{}

// NewCameraController creates an orbit controller ten units from the origin, 30° above the
// horizon. Distance is bounded to [1, 20] and elevation to the polar range π/6 .. π/1.5.
//
// Parameters:
//   - options: functional options to configure the controller
//
// Returns:
//   - CameraController: the new controller
func NewCameraController(options ...CameraControllerOption) CameraController {
	cc := &cameraControllerImpl{
		mu:               &sync.Mutex{},
		radius:           10,
		elevation:        math32.Pi / 6,
		minRadius:        1,
		maxRadius:        20,
		minElevation:     math32.Pi/2 - math32.Pi/1.5,
		maxElevation:     math32.Pi/2 - math32.Pi/6,
		mouseSensitivity: 0.005,
		zoomSpeed:        1,
		panSpeed:         0.01,
	}
	for _, option := range options {
		option(cc)
	}
	cc.placeFromSpherical()
	return cc
}

// placeFromSpherical puts the camera at target + spherical offset and re-aims.
// Caller must hold the mutex.
func (cc *cameraControllerImpl) placeFromSpherical() {
	cosE, sinE := math32.Cos(cc.elevation), math32.Sin(cc.elevation)
	cosA, sinA := math32.Cos(cc.azimuth), math32.Sin(cc.azimuth)
	cc.position = common.Add3(cc.target, [3]float32{
		cc.radius * cosE * sinA,
		cc.radius * sinE,
		cc.radius * cosE * cosA,
	})
	cc.aim()
}

// deriveSpherical reads radius, azimuth and elevation back from position and target,
// then re-aims. Caller must hold the mutex.
func (cc *cameraControllerImpl) deriveSpherical() {
	offset := common.Sub3(cc.position, cc.target)
	if r := common.Length3(offset); r > 1e-8 {
		cc.radius = r
		cc.azimuth = math32.Atan2(offset[0], offset[2])
		cc.elevation = math32.Asin(common.Clamp(offset[1]/r, -1, 1))
	}
	cc.aim()
}

// aim points yaw and pitch from position toward target. Coincident points keep the
// previous orientation. Caller must hold the mutex.
func (cc *cameraControllerImpl) aim() {
	dir := common.Normalize3(common.Sub3(cc.target, cc.position))
	if dir == ([3]float32{}) {
		return
	}
	cc.yaw = math32.Atan2(dir[0], dir[2])
	cc.pitch = common.Clamp(math32.Asin(common.Clamp(dir[1], -1, 1)), -maxPitch, maxPitch)
}

func (cc *cameraControllerImpl) Position() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.position[0], cc.position[1], cc.position[2]
}

func (cc *cameraControllerImpl) Target() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.target[0], cc.target[1], cc.target[2]
}

func (cc *cameraControllerImpl) SetPose(position, target [3]float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position, cc.target = position, target
	cc.deriveSpherical()
}

func (cc *cameraControllerImpl) Settle() {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	radius := common.Clamp(cc.radius, cc.minRadius, cc.maxRadius)
	elevation := common.Clamp(cc.elevation, cc.minElevation, cc.maxElevation)
	if radius == cc.radius && elevation == cc.elevation {
		return
	}
	cc.radius, cc.elevation = radius, elevation
	cc.placeFromSpherical()
}

func (cc *cameraControllerImpl) PanRight(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	right := [3]float32{-math32.Cos(cc.yaw), 0, math32.Sin(cc.yaw)}
	cc.translate(common.Scale3(right, delta*cc.panSpeed))
}

func (cc *cameraControllerImpl) PanForward(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	forward := [3]float32{math32.Sin(cc.yaw), 0, math32.Cos(cc.yaw)}
	cc.translate(common.Scale3(forward, delta*cc.panSpeed))
}

// translate moves position and target by offset. The spherical offset between them
// is unchanged, so nothing needs re-deriving. Caller must hold the mutex.
func (cc *cameraControllerImpl) translate(offset [3]float32) {
	cc.position = common.Add3(cc.position, offset)
	cc.target = common.Add3(cc.target, offset)
}

func (cc *cameraControllerImpl) Forward() (x, y, z float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cosP := math32.Cos(cc.pitch)
	return cosP * math32.Sin(cc.yaw), math32.Sin(cc.pitch), cosP * math32.Cos(cc.yaw)
}

func (cc *cameraControllerImpl) Pitch() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.pitch
}

func (cc *cameraControllerImpl) SetPitch(pitch float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.pitch = common.Clamp(pitch, -maxPitch, maxPitch)
}

func (cc *cameraControllerImpl) RotateAroundWorldY(angle float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.position = common.RotateY(cc.position, angle)
	cc.deriveSpherical()
}

func (cc *cameraControllerImpl) Zoom(delta float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.radius = common.Clamp(cc.radius-delta*cc.zoomSpeed, cc.minRadius, cc.maxRadius)
	cc.placeFromSpherical()
}

func (cc *cameraControllerImpl) Radius() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.radius
}

func (cc *cameraControllerImpl) Azimuth() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.azimuth
}

func (cc *cameraControllerImpl) SetAzimuth(azimuth float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.azimuth = azimuth
	cc.placeFromSpherical()
}

func (cc *cameraControllerImpl) Elevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.elevation
}

func (cc *cameraControllerImpl) SetElevation(elevation float32) {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	cc.elevation = common.Clamp(elevation, cc.minElevation, cc.maxElevation)
	cc.placeFromSpherical()
}

func (cc *cameraControllerImpl) MinElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.minElevation
}

func (cc *cameraControllerImpl) MaxElevation() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.maxElevation
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

func (cc *cameraControllerImpl) PanSpeed() float32 {
	cc.mu.Lock()
	defer cc.mu.Unlock()
	return cc.panSpeed
}
