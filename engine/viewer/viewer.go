package viewer

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/picking"
	"github.com/Carmen-Shannon/oxy-viewer/engine/poi"
	"github.com/Carmen-Shannon/oxy-viewer/engine/tween"
	"github.com/rs/zerolog"
)

const (
	// MarkerColor is the colour of an idle point-of-interest marker.
	MarkerColor uint32 = 0xffffff

	// MarkerHoverColor is the colour of the marker under the cursor.
	MarkerHoverColor uint32 = 0x00ff00

	// DefaultAutoRotateSpeed is the idle rotation rate about the world Y axis, in radians per second.
	DefaultAutoRotateSpeed float32 = 0.06
)

// State is a snapshot of the viewer.
type State struct {
	// Cursor is the index of the current point of interest.
	Cursor int
	// Phase is the fly-to phase.
	Phase tween.Phase
	// Generation identifies the most recent fly-to.
	Generation uint64
	// Mode is the lighting mode.
	Mode light.Mode
	// AutoRotate reports whether idle rotation is enabled.
	AutoRotate bool
	// Hovered is the index of the marker under the cursor, or -1.
	Hovered int
	// Environment holds the render parameters of the lighting mode.
	Environment light.Environment
}

// viewerImpl is the implementation of the Viewer interface.
type viewerImpl struct {
	mu *sync.Mutex

	camera     camera.Camera
	controller camera.CameraController
	points     poi.PointIndex
	tween      tween.Tween
	rig        light.Rig
	logger     zerolog.Logger

	initialPoints   [][3]float32
	tweenOptions    []tween.TweenBuilderOption
	autoRotate      bool
	autoRotateSpeed float32
	markerRadius    float32
	hovered         int
}

// Viewer is the interactive state of the point-of-interest viewer.
//
// It owns the point index, the camera fly-to tween and the lighting rig, and drives the
// camera controller. Every method is meant to be called from one goroutine (the engine
// tick goroutine); window callbacks reach it through Engine.Post.
type Viewer interface {
	// Start navigates to the first point of interest.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - bool: false if there are no points
	Start(now time.Time) bool

	// Next advances the cursor (wrapping) and flies to the new point.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - int: the new cursor
	//   - bool: false if there are no points
	Next(now time.Time) (int, bool)

	// Previous moves the cursor back (wrapping) and flies to the new point.
	//
	// Parameters:
	//   - now: the current time
	//
	// Returns:
	//   - int: the new cursor
	//   - bool: false if there are no points
	Previous(now time.Time) (int, bool)

	// Goto moves the cursor to i and flies to it. Out-of-range indices are ignored.
	//
	// Parameters:
	//   - i: the point index
	//   - now: the current time
	//
	// Returns:
	//   - bool: true if a fly-to started
	Goto(i int, now time.Time) bool

	// Click picks the nearest marker under the cursor and flies to it. Any click counts as
	// user interaction and stops auto-rotation.
	//
	// Parameters:
	//   - x, y: cursor position in pixels from the top-left corner
	//   - width, height: window size in pixels
	//   - now: the current time
	//
	// Returns:
	//   - int: the picked point index, or -1
	//   - bool: true if a marker was hit
	Click(x, y float32, width, height int, now time.Time) (int, bool)

	// Hover records the marker under the cursor for highlighting.
	//
	// Parameters:
	//   - x, y: cursor position in pixels from the top-left corner
	//   - width, height: window size in pixels
	//
	// Returns:
	//   - int: the hovered point index, or -1
	Hover(x, y float32, width, height int) int

	// Orbit rotates the camera around its target by a mouse drag delta. It cancels any
	// fly-to and stops auto-rotation.
	//
	// Parameters:
	//   - dx, dy: drag delta in pixels
	Orbit(dx, dy float32)

	// Pan slides the camera and its target across the ground plane by a mouse drag delta,
	// so the scene follows the cursor. It cancels any fly-to and stops auto-rotation.
	//
	// Parameters:
	//   - dx, dy: drag delta in pixels
	Pan(dx, dy float32)

	// Zoom moves the camera toward (positive) or away from (negative) its target. It cancels
	// any fly-to and stops auto-rotation.
	//
	// Parameters:
	//   - delta: scroll amount
	Zoom(delta float32)

	// ToggleLighting flips between day and night lighting.
	//
	// Returns:
	//   - light.Mode: the new mode
	ToggleLighting() light.Mode

	// SetAutoRotate enables or disables idle rotation.
	//
	// Parameters:
	//   - enabled: the new setting
	SetAutoRotate(enabled bool)

	// ToggleAutoRotate flips idle rotation.
	//
	// Returns:
	//   - bool: the new setting
	ToggleAutoRotate() bool

	// UserInteracted stops idle rotation, as any direct camera manipulation does.
	UserInteracted()

	// ReplacePoints swaps the points of interest. The cursor is kept when still valid and
	// the hover highlight is cleared when its marker no longer exists.
	//
	// Parameters:
	//   - points: the new points
	ReplacePoints(points [][3]float32)

	// Advance steps the fly-to, applies idle rotation when no fly-to is running and
	// refreshes the camera matrices.
	//
	// Parameters:
	//   - now: the frame time
	//   - dt: seconds since the previous Advance
	//
	// Returns:
	//   - State: the state after the step
	Advance(now time.Time, dt float32) State

	// State returns a snapshot of the viewer.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Points returns a copy of the points of interest.
	//
	// Returns:
	//   - [][3]float32: the points in navigation order
	Points() [][3]float32

	// MarkerColors returns the 0xRRGGBB colour of each marker, with the hovered one highlighted.
	//
	// Returns:
	//   - []uint32: one colour per point
	MarkerColors() []uint32

	// Environment returns the render parameters of the active lighting mode.
	//
	// Returns:
	//   - light.Environment: background, exposure and bloom
	Environment() light.Environment

	// Rig returns the lighting rig.
	//
	// Returns:
	//   - light.Rig: the rig
	Rig() light.Rig
}

var _ Viewer = &viewerImpl{}

// ErrNoController is returned by NewViewer when the camera has no controller to drive.
var ErrNoController = errors.New("viewer: camera has no controller")

// NewViewer creates a Viewer driving cam's controller.
//
// Parameters:
//   - cam: the camera; its controller is moved by fly-tos, orbit and zoom
//   - options: functional options to configure the viewer
//
// Returns:
//   - Viewer: the new viewer, idle with the cursor on point 0
//   - error: ErrNoController if cam is nil or has no controller
func NewViewer(cam camera.Camera, options ...ViewerBuilderOption) (Viewer, error) {
	if cam == nil || cam.Controller() == nil {
		return nil, ErrNoController
	}
	v := &viewerImpl{
		mu:              &sync.Mutex{},
		camera:          cam,
		controller:      cam.Controller(),
		logger:          zerolog.Nop(),
		autoRotate:      true,
		autoRotateSpeed: DefaultAutoRotateSpeed,
		markerRadius:    picking.DefaultMarkerRadius,
		hovered:         -1,
	}
	for _, option := range options {
		option(v)
	}
	v.points = poi.NewPointIndex(v.initialPoints)
	v.tween = tween.NewTween(v.controller, v.tweenOptions...)
	if v.rig == nil {
		v.rig = light.NewRig(light.DefaultLights())
	}
	return v, nil
}

func (v *viewerImpl) Start(now time.Time) bool {
	v.logger.Info().Int("points", v.points.Len()).Str("mode", v.rig.Mode().String()).Msg("scene ready")
	return v.Goto(0, now)
}

func (v *viewerImpl) Next(now time.Time) (int, bool) {
	p, ok := v.points.Next()
	if !ok {
		return 0, false
	}
	v.flyTo(v.points.Cursor(), p, now)
	return v.points.Cursor(), true
}

func (v *viewerImpl) Previous(now time.Time) (int, bool) {
	p, ok := v.points.Previous()
	if !ok {
		return 0, false
	}
	v.flyTo(v.points.Cursor(), p, now)
	return v.points.Cursor(), true
}

func (v *viewerImpl) Goto(i int, now time.Time) bool {
	p, ok := v.points.Goto(i)
	if !ok {
		v.logger.Debug().Int("index", i).Int("points", v.points.Len()).Msg("goto out of range ignored")
		return false
	}
	v.flyTo(i, p, now)
	return true
}

func (v *viewerImpl) flyTo(index int, p [3]float32, now time.Time) {
	gen := v.tween.FlyTo(p, now)
	v.logger.Debug().
		Int("index", index).
		Uint64("generation", gen).
		Floats32("destination", p[:]).
		Msg("fly-to started")
}

func (v *viewerImpl) Click(x, y float32, width, height int, now time.Time) (int, bool) {
	v.UserInteracted()
	i, ok := v.pick(x, y, width, height)
	if !ok {
		return -1, false
	}
	v.Goto(i, now)
	return i, true
}

func (v *viewerImpl) Hover(x, y float32, width, height int) int {
	i, ok := v.pick(x, y, width, height)
	if !ok {
		i = -1
	}
	v.mu.Lock()
	v.hovered = i
	v.mu.Unlock()
	return i
}

// pick casts a ray through the cursor and returns the nearest marker it hits.
func (v *viewerImpl) pick(x, y float32, width, height int) (int, bool) {
	if width <= 0 || height <= 0 {
		return -1, false
	}
	v.mu.Lock()
	radius := v.markerRadius
	v.mu.Unlock()

	ndcX, ndcY := picking.ScreenToNDC(x, y, width, height)
	ray := picking.RayFromNDC(v.camera.InverseViewProjectionMatrix(), ndcX, ndcY)
	frustum := v.camera.Frustum()
	return picking.Nearest(ray, v.points.Points(), radius, &frustum)
}

func (v *viewerImpl) Orbit(dx, dy float32) {
	v.UserInteracted()
	v.tween.Cancel()
	s := v.controller.MouseSensitivity()
	v.controller.SetAzimuth(v.controller.Azimuth() - dx*s)
	v.controller.SetElevation(v.controller.Elevation() + dy*s)
	v.camera.Update()
}

func (v *viewerImpl) Pan(dx, dy float32) {
	v.UserInteracted()
	v.tween.Cancel()
	v.controller.PanRight(-dx)
	v.controller.PanForward(dy)
	v.camera.Update()
}

func (v *viewerImpl) Zoom(delta float32) {
	v.UserInteracted()
	v.tween.Cancel()
	v.controller.Zoom(delta)
	v.camera.Update()
}

func (v *viewerImpl) ToggleLighting() light.Mode {
	mode := v.rig.Toggle()
	v.logger.Info().Str("mode", mode.String()).Msg("lighting mode toggled")
	return mode
}

func (v *viewerImpl) SetAutoRotate(enabled bool) {
	v.mu.Lock()
	changed := v.autoRotate != enabled
	v.autoRotate = enabled
	v.mu.Unlock()
	if changed {
		v.logger.Debug().Bool("enabled", enabled).Msg("auto-rotate changed")
	}
}

func (v *viewerImpl) ToggleAutoRotate() bool {
	v.mu.Lock()
	enabled := !v.autoRotate
	v.mu.Unlock()
	v.SetAutoRotate(enabled)
	return enabled
}

func (v *viewerImpl) UserInteracted() {
	v.SetAutoRotate(false)
}

func (v *viewerImpl) ReplacePoints(points [][3]float32) {
	v.points.Replace(points)
	v.mu.Lock()
	if v.hovered >= len(points) {
		v.hovered = -1
	}
	v.mu.Unlock()
	v.logger.Info().Int("points", len(points)).Int("cursor", v.points.Cursor()).Msg("points replaced")
}

func (v *viewerImpl) Advance(now time.Time, dt float32) State {
	phase := v.tween.Advance(now)

	v.mu.Lock()
	rotate := v.autoRotate && phase != tween.PhaseTranslating && phase != tween.PhaseTilting
	speed := v.autoRotateSpeed
	v.mu.Unlock()

	if rotate && dt > 0 {
		v.controller.RotateAroundWorldY(speed * dt)
	}
	v.camera.Update()
	return v.State()
}

func (v *viewerImpl) State() State {
	v.mu.Lock()
	autoRotate, hovered := v.autoRotate, v.hovered
	v.mu.Unlock()

	return State{
		Cursor:      v.points.Cursor(),
		Phase:       v.tween.Phase(),
		Generation:  v.tween.Generation(),
		Mode:        v.rig.Mode(),
		AutoRotate:  autoRotate,
		Hovered:     hovered,
		Environment: v.rig.Environment(),
	}
}

func (v *viewerImpl) Points() [][3]float32 {
	return v.points.Points()
}

func (v *viewerImpl) MarkerColors() []uint32 {
	v.mu.Lock()
	hovered := v.hovered
	v.mu.Unlock()

	colors := make([]uint32, v.points.Len())
	for i := range colors {
		colors[i] = MarkerColor
		if i == hovered {
			colors[i] = MarkerHoverColor
		}
	}
	return colors
}

func (v *viewerImpl) Environment() light.Environment {
	return v.rig.Environment()
}

func (v *viewerImpl) Rig() light.Rig {
	return v.rig
}
