package tween

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// TweenBuilderOption is a functional option for configuring a Tween.
type TweenBuilderOption func(*tweenImpl)

// WithDuration sets the length of the translate-and-aim phase.
//
// Parameters:
//   - d: phase duration
//
// Returns:
//   - TweenBuilderOption: functional option to set the duration
func WithDuration(d time.Duration) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.duration = d
	}
}

// WithTiltDuration sets the length of the tilt phase.
//
// Parameters:
//   - d: phase duration
//
// Returns:
//   - TweenBuilderOption: functional option to set the tilt duration
func WithTiltDuration(d time.Duration) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.tiltDuration = d
	}
}

// WithTiltAngle sets how far the tilt phase lowers the pitch.
//
// Parameters:
//   - radians: pitch drop in radians
//
// Returns:
//   - TweenBuilderOption: functional option to set the tilt angle
func WithTiltAngle(radians float32) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.tiltAngle = radians
	}
}

// WithStandoff sets the distance the camera keeps from the destination.
//
// Parameters:
//   - distance: standoff in world units
//
// Returns:
//   - TweenBuilderOption: functional option to set the standoff
func WithStandoff(distance float32) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.standoff = distance
	}
}

// WithMinHeight sets the floor below which the end position is raised.
//
// Parameters:
//   - y: minimum end height in world units
//
// Returns:
//   - TweenBuilderOption: functional option to set the minimum height
func WithMinHeight(y float32) TweenBuilderOption {
	return func(t *tweenImpl) {
		t.minHeight = y
	}
}

// WithEasing replaces the easing curve used by both phases. A nil function is ignored.
//
// Parameters:
//   - easing: the easing function
//
// Returns:
//   - TweenBuilderOption: functional option to set the easing
func WithEasing(easing common.EasingFunc) TweenBuilderOption {
	return func(t *tweenImpl) {
		if easing != nil {
			t.easing = easing
		}
	}
}
