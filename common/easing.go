package common

// EasingFunc reparameterizes linear progress in [0, 1] into eased progress in [0, 1].
type EasingFunc func(t float32) float32

// EaseInOutCubic accelerates through the first half of the range and decelerates through
// the second. ease(0) = 0, ease(0.5) = 0.5, ease(1) = 1 and the curve is non-decreasing
// on [0, 1].
//
// Parameters:
//   - t: linear progress in [0, 1]
//
// Returns:
//   - float32: eased progress
func EaseInOutCubic(t float32) float32 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}

// EaseLinear returns t unchanged.
func EaseLinear(t float32) float32 {
	return t
}
