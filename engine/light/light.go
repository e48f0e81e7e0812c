package light

import (
	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/chewxy/math32"
)

// LightType is the shape of a light's emission.
type LightType int

const (
	// LightTypeAmbient lights every surface equally.
	LightTypeAmbient LightType = iota
	// LightTypeDirectional shines along Direction from infinitely far away.
	LightTypeDirectional
	// LightTypePoint radiates from Position and fades out at Range.
	LightTypePoint
	// LightTypeSpot is a point light limited to a cone around Direction.
	LightTypeSpot
)

func (t LightType) String() string {
	switch t {
	case LightTypeAmbient:
		return "ambient"
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	}
	return "unknown"
}

// Light is one source in the viewer's rig. Placement is fixed at construction; only
// colour and intensity change afterwards, and only the Rig changes them.
//
// Fields that do not apply to a type (Range for directional, Cone for point) keep
// their defaults and are ignored by the renderer.
type Light interface {
	// Name identifies the light in logs.
	Name() string

	// Type returns the emission shape.
	Type() LightType

	// Position returns the world-space origin of point and spot lights.
	Position() [3]float32

	// Direction returns the unit vector the light travels along.
	Direction() [3]float32

	// Color returns the linear RGB colour.
	Color() [3]float32

	// Intensity returns the scalar brightness.
	Intensity() float32

	// Range returns the distance at which point and spot lights reach zero.
	Range() float32

	// Cone returns the cosines of a spot light's inner and outer half-angles.
	//
	// Returns:
	//   - inner: full intensity inside this cosine
	//   - outer: zero intensity outside this cosine
	Cone() (inner, outer float32)

	// CastsShadows reports whether the renderer should build a shadow map for the light.
	CastsShadows() bool

	// SetColor replaces the linear RGB colour.
	SetColor(r, g, b float32)

	// SetIntensity replaces the scalar brightness.
	SetIntensity(intensity float32)
}

type lightImpl struct {
	name         string
	kind         LightType
	position     [3]float32
	direction    [3]float32
	color        [3]float32
	intensity    float32
	reach        float32
	coneInner    float32
	coneOuter    float32
	castsShadows bool
}

var _ Light = &lightImpl{}

// NewLight builds a white, unit-intensity light of kind pointing straight down, with a
// 10 unit range and a 25/35 degree cone.
//
// Parameters:
//   - kind: the emission shape
//   - opts: functional options applied after the defaults
//
// Returns:
//   - Light: the configured light
func NewLight(kind LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		kind:      kind,
		direction: [3]float32{0, -1, 0},
		color:     [3]float32{1, 1, 1},
		intensity: 1,
		reach:     10,
		coneInner: cosDegrees(25),
		coneOuter: cosDegrees(35),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Name() string             { return l.name }
func (l *lightImpl) Type() LightType          { return l.kind }
func (l *lightImpl) Position() [3]float32     { return l.position }
func (l *lightImpl) Direction() [3]float32    { return l.direction }
func (l *lightImpl) Color() [3]float32        { return l.color }
func (l *lightImpl) Intensity() float32       { return l.intensity }
func (l *lightImpl) Range() float32           { return l.reach }
func (l *lightImpl) Cone() (float32, float32) { return l.coneInner, l.coneOuter }
func (l *lightImpl) CastsShadows() bool       { return l.castsShadows }

func (l *lightImpl) SetColor(r, g, b float32) {
	l.color = [3]float32{r, g, b}
}

func (l *lightImpl) SetIntensity(intensity float32) {
	l.intensity = intensity
}

func cosDegrees(deg float32) float32 {
	return math32.Cos(deg * math32.Pi / 180)
}

func unit(x, y, z float32) [3]float32 {
	return common.Normalize3([3]float32{x, y, z})
}
