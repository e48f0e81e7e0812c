package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
)

// Mode selects the viewer's lighting preset.
type Mode int

const (
	// ModeDay uses warm yellow lights at full base intensity and the HDR environment.
	ModeDay Mode = iota

	// ModeNight halves light intensity, shifts lights toward orange and drops the environment.
	ModeNight
)

// String returns a human readable name for the mode.
func (m Mode) String() string {
	switch m {
	case ModeDay:
		return "day"
	case ModeNight:
		return "night"
	default:
		return "unknown"
	}
}

// Preset colours and render parameters for each mode.
const (
	DayLightColor   uint32 = 0xffd54f // warm yellow
	NightLightColor uint32 = 0xffa500 // orange-yellow
	DayFallbackSky  uint32 = 0xf0e68c // khaki, used when the HDR environment is unavailable
	NightSky        uint32 = 0x222222

	DayExposure   float32 = 1.2
	NightExposure float32 = 0.5

	DayBloomStrength   float32 = 0.5
	NightBloomStrength float32 = 0.75

	nightIntensityScale float32 = 0.5
)

// Environment is the render-facing state a lighting mode hands to the host renderer.
type Environment struct {
	// Background is the clear colour used when UseEnvironmentMap is false.
	Background [3]float32
	// UseEnvironmentMap is true when the HDR environment texture should be used as both
	// background and image-based lighting.
	UseEnvironmentMap bool
	// Exposure is the tone-mapping exposure.
	Exposure float32
	// BloomStrength is the bloom post-process strength.
	BloomStrength float32
}

// rigImpl is the implementation of the Rig interface.
type rigImpl struct {
	mu *sync.Mutex

	lights          []Light
	baseIntensity   []float32
	mode            Mode
	hdrAvailable    bool
	dayLightColor   [3]float32
	nightLightColor [3]float32
}

// Rig owns the scene's lights and switches them between the day and night presets.
//
// Each light's intensity at construction is recorded as its base intensity; modes
// derive intensity from that base, so toggling back and forth never compounds.
type Rig interface {
	// Lights returns the lights managed by the rig.
	//
	// Returns:
	//   - []Light: the lights in registration order
	Lights() []Light

	// Mode returns the active lighting mode.
	//
	// Returns:
	//   - Mode: the current mode
	Mode() Mode

	// SetMode switches to mode and rewrites light colours and intensities.
	//
	// Parameters:
	//   - mode: the mode to apply
	SetMode(mode Mode)

	// Toggle flips between day and night.
	//
	// Returns:
	//   - Mode: the mode after toggling
	Toggle() Mode

	// SetHDRAvailable records whether the HDR environment texture loaded.
	// Day mode falls back to a flat khaki sky without it.
	//
	// Parameters:
	//   - available: true if the environment map can be used
	SetHDRAvailable(available bool)

	// Environment returns the background, exposure and bloom settings for the active mode.
	//
	// Returns:
	//   - Environment: the render parameters
	Environment() Environment
}

var _ Rig = &rigImpl{}

// NewRig creates a Rig over lights and applies the initial mode (day unless overridden).
//
// Parameters:
//   - lights: the lights to manage
//   - options: functional options to configure the rig
//
// Returns:
//   - Rig: the new rig
func NewRig(lights []Light, options ...RigBuilderOption) Rig {
	r := &rigImpl{
		mu:              &sync.Mutex{},
		lights:          lights,
		baseIntensity:   make([]float32, len(lights)),
		mode:            ModeDay,
		dayLightColor:   common.HexColor(DayLightColor),
		nightLightColor: common.HexColor(NightLightColor),
	}
	for i, l := range lights {
		r.baseIntensity[i] = l.Intensity()
	}
	for _, option := range options {
		option(r)
	}
	r.apply()
	return r
}

// DefaultLights returns the viewer's warm-yellow light set: an ambient fill, a
// shadow-casting directional key light, three point lights around the model center
// and a shadow-casting spot light above the entrance.
//
// Returns:
//   - []Light: the default lights
func DefaultLights() []Light {
	r, g, b := splat(common.HexColor(DayLightColor))
	return []Light{
		NewLight(LightTypeAmbient, WithName("ambient"), WithColor(r, g, b), WithIntensity(0.5)),
		NewLight(LightTypeDirectional, WithName("key"), WithColor(r, g, b), WithIntensity(0.5),
			WithPosition(5, 10, 7), WithDirection(-5, -10, -7), WithCastsShadows(true)),
		NewLight(LightTypePoint, WithName("point_center"), WithColor(r, g, b), WithIntensity(1),
			WithPosition(0, 2, 0), WithRange(10)),
		NewLight(LightTypePoint, WithName("point_right"), WithColor(r, g, b), WithIntensity(1),
			WithPosition(3, 2, 2), WithRange(10)),
		NewLight(LightTypePoint, WithName("point_left"), WithColor(r, g, b), WithIntensity(1),
			WithPosition(-3, 2, -2), WithRange(10)),
		NewLight(LightTypeSpot, WithName("spot"), WithColor(r, g, b), WithIntensity(1),
			WithPosition(0, 5, 5), WithDirection(0, -5, -5), WithRange(200),
			WithSpotCone(40.5, 45), WithCastsShadows(true)),
	}
}

func (r *rigImpl) Lights() []Light {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Light, len(r.lights))
	copy(out, r.lights)
	return out
}

func (r *rigImpl) Mode() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mode
}

func (r *rigImpl) SetMode(mode Mode) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mode = mode
	r.apply()
}

func (r *rigImpl) Toggle() Mode {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mode == ModeNight {
		r.mode = ModeDay
	} else {
		r.mode = ModeNight
	}
	r.apply()
	return r.mode
}

func (r *rigImpl) SetHDRAvailable(available bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hdrAvailable = available
}

func (r *rigImpl) Environment() Environment {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.mode == ModeNight {
		return Environment{
			Background:    common.HexColor(NightSky),
			Exposure:      NightExposure,
			BloomStrength: NightBloomStrength,
		}
	}
	return Environment{
		Background:        common.HexColor(DayFallbackSky),
		UseEnvironmentMap: r.hdrAvailable,
		Exposure:          DayExposure,
		BloomStrength:     DayBloomStrength,
	}
}

// apply rewrites every light's colour and intensity for the current mode.
// Caller must hold the mutex.
func (r *rigImpl) apply() {
	color := r.dayLightColor
	scale := float32(1)
	if r.mode == ModeNight {
		color = r.nightLightColor
		scale = nightIntensityScale
	}
	for i, l := range r.lights {
		l.SetColor(color[0], color[1], color[2])
		l.SetIntensity(r.baseIntensity[i] * scale)
	}
}

func splat(v [3]float32) (float32, float32, float32) {
	return v[0], v[1], v[2]
}
