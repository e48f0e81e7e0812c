package viewer

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/light"
	"github.com/Carmen-Shannon/oxy-viewer/engine/tween"
	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tourPoints = [][3]float32{
	{0, 2.5, 2.25},
	{3.10, 0.5, 2},
	{3, 1.5, -4.5},
}

var t0 = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

func newCamera(position, target [3]float32) (camera.Camera, camera.CameraController) {
	ctrl := camera.NewCameraController()
	ctrl.SetPose(position, target)
	cam := camera.NewCamera(camera.WithController(ctrl), camera.WithAspect(1280.0/720.0))
	return cam, ctrl
}

func newTestViewer(t *testing.T, options ...ViewerBuilderOption) (Viewer, camera.CameraController) {
	t.Helper()
	cam, ctrl := newCamera([3]float32{0, 5, 10}, [3]float32{0, 2, 0})
	v, err := NewViewer(cam, options...)
	require.NoError(t, err)
	return v, ctrl
}

func position(c camera.CameraController) [3]float32 {
	x, y, z := c.Position()
	return [3]float32{x, y, z}
}

func target(c camera.CameraController) [3]float32 {
	x, y, z := c.Target()
	return [3]float32{x, y, z}
}

func assertVec(t *testing.T, want, got [3]float32) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-4, "component %d of %v vs %v", i, want, got)
	}
}

func TestNewViewerRequiresController(t *testing.T) {
	_, err := NewViewer(nil)
	assert.ErrorIs(t, err, ErrNoController)

	_, err = NewViewer(camera.NewCamera())
	assert.ErrorIs(t, err, ErrNoController)
}

func TestStartFliesToFirstPoint(t *testing.T) {
	v, ctrl := newTestViewer(t, WithPoints(tourPoints), WithAutoRotate(false))

	require.True(t, v.Start(t0))
	assert.Equal(t, tween.PhaseTranslating, v.State().Phase)

	assert.Equal(t, tween.PhaseTilting, v.Advance(t0.Add(1500*time.Millisecond), 0).Phase)
	assertVec(t, tourPoints[0], target(ctrl))
	wantEnd := tween.EndPosition([3]float32{0, 5, 10}, tourPoints[0], tween.DefaultStandoff, tween.DefaultMinHeight)
	assertVec(t, wantEnd, position(ctrl))
	pitchAfterTranslate := ctrl.Pitch()

	st := v.Advance(t0.Add(2000*time.Millisecond), 0)
	assert.Equal(t, tween.PhaseDone, st.Phase)
	assert.Equal(t, 0, st.Cursor)
	assert.InDelta(t, pitchAfterTranslate-tween.DefaultTiltAngle, ctrl.Pitch(), 1e-5)
}

func TestStartWithoutPoints(t *testing.T) {
	v, _ := newTestViewer(t)
	assert.False(t, v.Start(t0))
	assert.Equal(t, tween.PhaseIdle, v.State().Phase)

	_, ok := v.Next(t0)
	assert.False(t, ok)
	_, ok = v.Previous(t0)
	assert.False(t, ok)
}

func TestNextPreviousWrap(t *testing.T) {
	v, _ := newTestViewer(t, WithPoints(tourPoints))

	i, ok := v.Previous(t0)
	require.True(t, ok)
	assert.Equal(t, 2, i)

	i, ok = v.Next(t0)
	require.True(t, ok)
	assert.Equal(t, 0, i)

	i, _ = v.Next(t0)
	assert.Equal(t, 1, i)
	assert.Equal(t, uint64(3), v.State().Generation)
}

func TestGotoOutOfRangeIsInert(t *testing.T) {
	v, ctrl := newTestViewer(t, WithPoints(tourPoints))
	before := position(ctrl)

	assert.False(t, v.Goto(3, t0))
	assert.False(t, v.Goto(-1, t0))

	st := v.State()
	assert.Equal(t, 0, st.Cursor)
	assert.Equal(t, tween.PhaseIdle, st.Phase)
	assert.Equal(t, uint64(0), st.Generation)
	assert.Equal(t, before, position(ctrl))
}

func TestLatestFlyToWins(t *testing.T) {
	v, ctrl := newTestViewer(t, WithPoints(tourPoints), WithAutoRotate(false))

	require.True(t, v.Goto(1, t0))
	v.Advance(t0.Add(300*time.Millisecond), 0.3)
	require.True(t, v.Goto(2, t0.Add(300*time.Millisecond)))

	st := v.Advance(t0.Add(2500*time.Millisecond), 0)
	assert.Equal(t, uint64(2), st.Generation)
	assert.Equal(t, 2, st.Cursor)
	assertVec(t, tourPoints[2], target(ctrl))
}

func TestAutoRotateWhenIdle(t *testing.T) {
	v, ctrl := newTestViewer(t)

	v.Advance(t0, 1)
	want := [3]float32{10 * math32.Sin(DefaultAutoRotateSpeed), 5, 10 * math32.Cos(DefaultAutoRotateSpeed)}
	assertVec(t, want, position(ctrl))
	assertVec(t, [3]float32{0, 2, 0}, target(ctrl))
}

func TestAutoRotateSuspendedDuringFlyTo(t *testing.T) {
	v, ctrl := newTestViewer(t, WithPoints(tourPoints))
	require.True(t, v.State().AutoRotate)

	v.Start(t0)
	v.Advance(t0.Add(150*time.Millisecond), 1)

	end := tween.EndPosition([3]float32{0, 5, 10}, tourPoints[0], tween.DefaultStandoff, tween.DefaultMinHeight)
	e := common.EaseInOutCubic(0.1)
	assertVec(t, common.Lerp3([3]float32{0, 5, 10}, end, e), position(ctrl))
	assert.True(t, v.State().AutoRotate, "a fly-to suspends rotation without disabling it")
}

func TestOrbitCancelsFlyToAndStopsRotation(t *testing.T) {
	v, ctrl := newTestViewer(t, WithPoints(tourPoints))
	v.Start(t0)
	az := ctrl.Azimuth()

	v.Orbit(10, 0)

	st := v.State()
	assert.Equal(t, tween.PhaseIdle, st.Phase)
	assert.False(t, st.AutoRotate)
	assert.InDelta(t, az-10*ctrl.MouseSensitivity(), ctrl.Azimuth(), 1e-5)
}

func TestPanSlidesCameraAndTarget(t *testing.T) {
	v, ctrl := newTestViewer(t)
	pitch := ctrl.Pitch()

	// the camera looks toward -Z: a drag to the right moves it toward -X
	v.Pan(100, 0)
	assertVec(t, [3]float32{-1, 5, 10}, position(ctrl))
	assertVec(t, [3]float32{-1, 2, 0}, target(ctrl))

	// dragging down moves it forward across the ground
	v.Pan(0, 100)
	assertVec(t, [3]float32{-1, 5, 9}, position(ctrl))
	assertVec(t, [3]float32{-1, 2, -1}, target(ctrl))

	assert.InDelta(t, pitch, ctrl.Pitch(), 1e-6)
	assert.False(t, v.State().AutoRotate)
}

func TestPanCancelsFlyTo(t *testing.T) {
	v, _ := newTestViewer(t, WithPoints(tourPoints))
	v.Start(t0)
	require.Equal(t, tween.PhaseTranslating, v.State().Phase)

	v.Pan(5, 5)

	st := v.State()
	assert.Equal(t, tween.PhaseIdle, st.Phase)
	assert.False(t, st.AutoRotate)
}

func TestZoomCancelsFlyTo(t *testing.T) {
	v, ctrl := newTestViewer(t, WithPoints(tourPoints))
	v.Start(t0)
	r := ctrl.Radius()

	v.Zoom(2)

	assert.Equal(t, tween.PhaseIdle, v.State().Phase)
	assert.InDelta(t, r-2*ctrl.ZoomSpeed(), ctrl.Radius(), 1e-4)
	assert.False(t, v.State().AutoRotate)
}

func TestToggleLighting(t *testing.T) {
	v, _ := newTestViewer(t)
	assert.Equal(t, light.ModeDay, v.State().Mode)

	assert.Equal(t, light.ModeNight, v.ToggleLighting())
	env := v.Environment()
	assert.Equal(t, light.NightExposure, env.Exposure)
	assert.Equal(t, common.HexColor(light.NightSky), env.Background)

	assert.Equal(t, light.ModeDay, v.ToggleLighting())
	assert.Equal(t, light.DayExposure, v.Environment().Exposure)
}

func TestAutoRotateToggles(t *testing.T) {
	v, _ := newTestViewer(t, WithAutoRotate(false))
	assert.True(t, v.ToggleAutoRotate())
	assert.False(t, v.ToggleAutoRotate())
	v.SetAutoRotate(true)
	v.UserInteracted()
	assert.False(t, v.State().AutoRotate)
}

func newPickViewer(t *testing.T, points [][3]float32) (Viewer, camera.CameraController) {
	t.Helper()
	cam, ctrl := newCamera([3]float32{0, 0, 10}, [3]float32{0, 0, 0})
	v, err := NewViewer(cam, WithPoints(points), WithAutoRotate(false))
	require.NoError(t, err)
	return v, ctrl
}

func TestClickPicksMarkerUnderCursor(t *testing.T) {
	v, _ := newPickViewer(t, [][3]float32{{50, 50, 0}, {0, 0, 0}})

	i, ok := v.Click(640, 360, 1280, 720, t0)
	require.True(t, ok)
	assert.Equal(t, 1, i)

	st := v.State()
	assert.Equal(t, 1, st.Cursor)
	assert.Equal(t, tween.PhaseTranslating, st.Phase)
}

func TestClickMissStillCountsAsInteraction(t *testing.T) {
	v, _ := newPickViewer(t, [][3]float32{{0, 0, 0}})
	v.SetAutoRotate(true)

	i, ok := v.Click(10, 10, 1280, 720, t0)
	assert.False(t, ok)
	assert.Equal(t, -1, i)
	assert.False(t, v.State().AutoRotate)
	assert.Equal(t, tween.PhaseIdle, v.State().Phase)

	_, ok = v.Click(640, 360, 0, 0, t0)
	assert.False(t, ok, "zero-size viewport never hits")
}

func TestHoverHighlightsMarker(t *testing.T) {
	v, _ := newPickViewer(t, [][3]float32{{0, 0, 0}, {50, 50, 0}})

	assert.Equal(t, 0, v.Hover(640, 360, 1280, 720))
	assert.Equal(t, []uint32{MarkerHoverColor, MarkerColor}, v.MarkerColors())
	assert.Equal(t, 0, v.State().Hovered)

	assert.Equal(t, -1, v.Hover(5, 5, 1280, 720))
	assert.Equal(t, []uint32{MarkerColor, MarkerColor}, v.MarkerColors())
}

func TestReplacePointsClearsStaleHover(t *testing.T) {
	v, _ := newPickViewer(t, [][3]float32{{50, 50, 0}, {0, 0, 0}})
	require.Equal(t, 1, v.Hover(640, 360, 1280, 720))

	v.ReplacePoints([][3]float32{{1, 1, 1}})
	st := v.State()
	assert.Equal(t, -1, st.Hovered)
	assert.Equal(t, [][3]float32{{1, 1, 1}}, v.Points())
	assert.Len(t, v.MarkerColors(), 1)
}

func TestMarkerRadiusOption(t *testing.T) {
	cam, _ := newCamera([3]float32{0, 0, 10}, [3]float32{0, 0, 0})
	// A marker 0.5 units off-axis is missed by the default radius and hit by a radius of 1.
	points := [][3]float32{{0.5, 0, 0}}

	small, err := NewViewer(cam, WithPoints(points), WithMarkerRadius(-1))
	require.NoError(t, err)
	assert.Equal(t, -1, small.Hover(640, 360, 1280, 720))

	big, err := NewViewer(cam, WithPoints(points), WithMarkerRadius(1))
	require.NoError(t, err)
	assert.Equal(t, 0, big.Hover(640, 360, 1280, 720))
}
