package light

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intensities(r Rig) []float32 {
	var out []float32
	for _, l := range r.Lights() {
		out = append(out, l.Intensity())
	}
	return out
}

func TestDefaultLights(t *testing.T) {
	lights := DefaultLights()
	require.Len(t, lights, 6)

	assert.Equal(t, LightTypeAmbient, lights[0].Type())
	assert.Equal(t, LightTypeDirectional, lights[1].Type())
	assert.True(t, lights[1].CastsShadows())
	assert.Equal(t, LightTypeSpot, lights[5].Type())
	assert.True(t, lights[5].CastsShadows())
	for _, l := range lights {
		assert.Equal(t, common.HexColor(DayLightColor), l.Color(), l.Name())
	}
}

func TestToggleDoesNotCompound(t *testing.T) {
	r := NewRig(DefaultLights())
	day := intensities(r)
	assert.Equal(t, []float32{0.5, 0.5, 1, 1, 1, 1}, day)

	require.Equal(t, ModeNight, r.Toggle())
	assert.Equal(t, []float32{0.25, 0.25, 0.5, 0.5, 0.5, 0.5}, intensities(r))
	for _, l := range r.Lights() {
		assert.Equal(t, common.HexColor(NightLightColor), l.Color())
	}

	for i := 0; i < 4; i++ {
		r.Toggle()
	}
	assert.Equal(t, ModeNight, r.Mode())
	assert.Equal(t, []float32{0.25, 0.25, 0.5, 0.5, 0.5, 0.5}, intensities(r))

	r.SetMode(ModeDay)
	assert.Equal(t, day, intensities(r))
}

func TestEnvironment(t *testing.T) {
	r := NewRig(nil, WithHDRAvailable(true))
	env := r.Environment()
	assert.True(t, env.UseEnvironmentMap)
	assert.Equal(t, DayExposure, env.Exposure)
	assert.Equal(t, DayBloomStrength, env.BloomStrength)

	r.SetHDRAvailable(false)
	env = r.Environment()
	assert.False(t, env.UseEnvironmentMap)
	assert.Equal(t, common.HexColor(DayFallbackSky), env.Background)

	r.SetMode(ModeNight)
	env = r.Environment()
	assert.False(t, env.UseEnvironmentMap)
	assert.Equal(t, common.HexColor(NightSky), env.Background)
	assert.Equal(t, NightExposure, env.Exposure)
	assert.Equal(t, NightBloomStrength, env.BloomStrength)
}

func TestRigOptions(t *testing.T) {
	r := NewRig([]Light{NewLight(LightTypePoint, WithIntensity(2))},
		WithMode(ModeNight),
		WithModeColors(0x0000ff, 0xff0000),
	)
	assert.Equal(t, ModeNight, r.Mode())
	l := r.Lights()[0]
	assert.Equal(t, float32(1), l.Intensity())
	assert.Equal(t, [3]float32{1, 0, 0}, l.Color())

	r.Toggle()
	assert.Equal(t, [3]float32{0, 0, 1}, l.Color())
	assert.Equal(t, float32(2), l.Intensity())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "day", ModeDay.String())
	assert.Equal(t, "night", ModeNight.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

func TestLightPlacement(t *testing.T) {
	l := NewLight(LightTypeSpot,
		WithPosition(0, 5, 5),
		WithDirection(0, -5, -5),
		WithRange(200),
		WithSpotCone(60, 90),
	)
	assert.Equal(t, "spot", l.Type().String())
	assert.Equal(t, [3]float32{0, 5, 5}, l.Position())
	assert.Equal(t, float32(200), l.Range())

	d := l.Direction()
	assert.InDelta(t, 0, d[0], 1e-6)
	assert.InDelta(t, -0.70710677, d[1], 1e-6)
	assert.InDelta(t, -0.70710677, d[2], 1e-6)

	inner, outer := l.Cone()
	assert.InDelta(t, 0.5, inner, 1e-6)
	assert.InDelta(t, 0, outer, 1e-6)

	def := NewLight(LightTypePoint)
	assert.Equal(t, [3]float32{0, -1, 0}, def.Direction())
	assert.Equal(t, [3]float32{1, 1, 1}, def.Color())
	assert.False(t, def.CastsShadows())
	assert.Equal(t, "unknown", LightType(7).String())
}
