package camera

import "github.com/chewxy/math32"

// CameraControllerOption configures a CameraController in NewCameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadiusBounds limits how far Zoom can move the camera. These are the orbit
// controls' minimum and maximum distance.
//
// Parameters:
//   - lo: the closest allowed distance
//   - hi: the farthest allowed distance
//
// Returns:
//   - CameraControllerOption: the option
func WithRadiusBounds(lo, hi float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = lo
		cc.maxRadius = hi
	}
}

// WithElevationBounds limits SetElevation and Settle, in radians above the horizon.
// ElevationFromPolar converts orbit-control polar limits; note the max polar angle gives
// the low bound.
//
// Parameters:
//   - lo: the lowest allowed elevation
//   - hi: the highest allowed elevation
//
// Returns:
//   - CameraControllerOption: the option
func WithElevationBounds(lo, hi float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = lo
		cc.maxElevation = hi
	}
}

// WithMouseSensitivity sets radians of orbit per pixel of drag.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the radius change per unit of zoom input.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets world units of pan per pixel of drag.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}

// ElevationFromPolar converts a polar angle measured down from +Y to an elevation above
// the horizon.
func ElevationFromPolar(polar float32) float32 {
	return math32.Pi/2 - polar
}
