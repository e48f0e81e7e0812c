package light

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// RigBuilderOption is a function that configures a Rig during construction.
type RigBuilderOption func(*rigImpl)

// WithMode sets the mode applied when the rig is created.
//
// Parameters:
//   - mode: the initial lighting mode
//
// Returns:
//   - RigBuilderOption: a function that applies the mode option to a rigImpl
func WithMode(mode Mode) RigBuilderOption {
	return func(r *rigImpl) {
		r.mode = mode
	}
}

// WithHDRAvailable records whether the HDR environment texture is available at creation.
//
// Parameters:
//   - available: true if the environment map loaded
//
// Returns:
//   - RigBuilderOption: a function that applies the HDR option to a rigImpl
func WithHDRAvailable(available bool) RigBuilderOption {
	return func(r *rigImpl) {
		r.hdrAvailable = available
	}
}

// WithModeColors overrides the light colours used in day and night mode.
//
// Parameters:
//   - day: 0xRRGGBB colour for day mode
//   - night: 0xRRGGBB colour for night mode
//
// Returns:
//   - RigBuilderOption: a function that applies the colour option to a rigImpl
func WithModeColors(day, night uint32) RigBuilderOption {
	return func(r *rigImpl) {
		r.dayLightColor = common.HexColor(day)
		r.nightLightColor = common.HexColor(night)
	}
}
