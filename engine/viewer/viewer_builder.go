package viewer

import (
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/tween"
	"github.com/rs/zerolog"
)

// ViewerBuilderOption is a functional option for configuring a Viewer.
type ViewerBuilderOption func(*viewerImpl)

// WithPoints sets the initial points of interest.
//
// Parameters:
//   - points: the points in navigation order
//
// Returns:
//   - ViewerBuilderOption: functional option to set the points
func WithPoints(points [][3]float32) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.initialPoints = points
	}
}

// WithRig sets the lighting rig. Without it the viewer builds one from light.DefaultLights.
//
// Parameters:
//   - rig: the lighting rig
//
// Returns:
//   - ViewerBuilderOption: functional option to set the rig
func WithRig(rig light.Rig) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.rig = rig
	}
}

// WithTweenOptions passes options through to the fly-to tween.
//
// Parameters:
//   - options: tween options (durations, tilt, standoff, easing)
//
// Returns:
//   - ViewerBuilderOption: functional option to configure the tween
func WithTweenOptions(options ...tween.TweenBuilderOption) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.tweenOptions = append(v.tweenOptions, options...)
	}
}

// WithAutoRotate sets whether idle rotation starts enabled.
//
// Parameters:
//   - enabled: the initial setting
//
// Returns:
//   - ViewerBuilderOption: functional option to set auto-rotate
func WithAutoRotate(enabled bool) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.autoRotate = enabled
	}
}

// WithAutoRotateSpeed sets the idle rotation rate.
//
// Parameters:
//   - radiansPerSecond: rotation about the world Y axis per second
//
// Returns:
//   - ViewerBuilderOption: functional option to set the rotation speed
func WithAutoRotateSpeed(radiansPerSecond float32) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.autoRotateSpeed = radiansPerSecond
	}
}

// WithMarkerRadius sets the pick radius of each marker. Non-positive values are ignored.
//
// Parameters:
//   - radius: sphere radius in world units
//
// Returns:
//   - ViewerBuilderOption: functional option to set the marker radius
func WithMarkerRadius(radius float32) ViewerBuilderOption {
	return func(v *viewerImpl) {
		if radius > 0 {
			v.markerRadius = radius
		}
	}
}

// WithLogger sets the logger for navigation and lighting messages.
//
// Parameters:
//   - logger: the zerolog logger
//
// Returns:
//   - ViewerBuilderOption: functional option to set the logger
func WithLogger(logger zerolog.Logger) ViewerBuilderOption {
	return func(v *viewerImpl) {
		v.logger = logger.With().Str("component", "viewer").Logger()
	}
}
