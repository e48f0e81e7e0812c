package light

// LightBuilderOption configures a light in NewLight.
type LightBuilderOption func(*lightImpl)

// WithName labels the light for logs.
func WithName(name string) LightBuilderOption {
	return func(l *lightImpl) {
		l.name = name
	}
}

// WithPosition places a point or spot light.
func WithPosition(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = [3]float32{x, y, z}
	}
}

// WithDirection aims a directional or spot light. The vector is normalized; a zero
// vector leaves the light without a direction.
func WithDirection(x, y, z float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.direction = unit(x, y, z)
	}
}

// WithColor sets the starting colour. A Rig overwrites it with its mode colour.
func WithColor(r, g, b float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.color = [3]float32{r, g, b}
	}
}

// WithIntensity sets the brightness. A Rig records this value as the light's base
// intensity and scales from it.
//
// Parameters:
//   - intensity: brightness multiplier
//
// Returns:
//   - LightBuilderOption: option setting the intensity
func WithIntensity(intensity float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.intensity = intensity
	}
}

// WithRange sets the falloff distance of point and spot lights.
func WithRange(reach float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.reach = reach
	}
}

// WithSpotCone sets a spot light's inner and outer half-angles.
//
// Parameters:
//   - innerDeg: half-angle of full intensity, in degrees
//   - outerDeg: half-angle where intensity reaches zero, in degrees
//
// Returns:
//   - LightBuilderOption: option setting the cone
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.coneInner = cosDegrees(innerDeg)
		l.coneOuter = cosDegrees(outerDeg)
	}
}

// WithCastsShadows marks the light as a shadow caster.
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}
