package viewer

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
)

// keyZoomStep is the zoom applied per Up/Down key press.
const keyZoomStep float32 = 1

// inputBinding translates window events into Viewer commands.
// Drag state lives on the window goroutine; commands are posted to the viewer's goroutine.
type inputBinding struct {
	win    window.Window
	post   func(func())
	viewer Viewer
	now    func() time.Time

	orbiting     bool
	panning      bool
	lastX, lastY int32
}

// BindInput installs window callbacks that drive v:
//
//	Left / P        previous point
//	Right / N       next point
//	1 to 9          go to point n-1
//	Space           back to the first point
//	Up / Down       zoom in / out
//	L               toggle day / night lighting
//	R               toggle auto-rotate
//	left click      fly to the marker under the cursor
//	middle drag     orbit
//	right drag      pan
//	scroll          zoom
//	mouse move      hover highlight
//
// Each command is wrapped in a closure and handed to post, which must run it on the
// goroutine that owns v (Engine.Post).
//
// Parameters:
//   - w: the window to read events from
//   - post: schedules work on the viewer's goroutine
//   - v: the viewer to drive
//   - now: the clock used to timestamp fly-tos; nil uses time.Now
func BindInput(w window.Window, post func(func()), v Viewer, now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	b := &inputBinding{win: w, post: post, viewer: v, now: now}

	w.SetKeyDownCallback(b.onKeyDown)
	w.SetLeftMouseDownCallback(b.onLeftMouseDown)
	w.SetMiddleMouseDownCallback(b.onMiddleMouseDown)
	w.SetMiddleMouseUpCallback(b.onMiddleMouseUp)
	w.SetRightMouseDownCallback(b.onRightMouseDown)
	w.SetRightMouseUpCallback(b.onRightMouseUp)
	w.SetMouseMoveCallback(b.onMouseMove)
	w.SetScrollCallback(b.onScroll)
}

func (b *inputBinding) onKeyDown(key uint32) {
	v := b.viewer
	switch {
	case key == common.KeyLeft || key == common.KeyP:
		b.post(func() { v.Previous(b.now()) })
	case key == common.KeyRight || key == common.KeyN:
		b.post(func() { v.Next(b.now()) })
	case key >= common.Key1 && key <= common.Key9:
		i := int(key - common.Key1)
		b.post(func() { v.Goto(i, b.now()) })
	case key == common.KeySpace:
		b.post(func() { v.Goto(0, b.now()) })
	case key == common.KeyUp:
		b.post(func() { v.Zoom(keyZoomStep) })
	case key == common.KeyDown:
		b.post(func() { v.Zoom(-keyZoomStep) })
	case key == common.KeyL:
		b.post(func() { v.ToggleLighting() })
	case key == common.KeyR:
		b.post(func() { v.ToggleAutoRotate() })
	}
}

func (b *inputBinding) onLeftMouseDown(x, y int32) {
	width, height := b.win.Width(), b.win.Height()
	b.post(func() { b.viewer.Click(float32(x), float32(y), width, height, b.now()) })
}

func (b *inputBinding) onMiddleMouseDown(x, y int32) {
	b.orbiting, b.panning = true, false
	b.lastX, b.lastY = x, y
	b.post(b.viewer.UserInteracted)
}

func (b *inputBinding) onMiddleMouseUp(_, _ int32) {
	b.orbiting = false
}

func (b *inputBinding) onRightMouseDown(x, y int32) {
	b.panning, b.orbiting = true, false
	b.lastX, b.lastY = x, y
	b.post(b.viewer.UserInteracted)
}

func (b *inputBinding) onRightMouseUp(_, _ int32) {
	b.panning = false
}

func (b *inputBinding) onMouseMove(x, y int32) {
	if b.orbiting || b.panning {
		dx, dy := float32(x-b.lastX), float32(y-b.lastY)
		b.lastX, b.lastY = x, y
		if dx != 0 || dy != 0 {
			if b.orbiting {
				b.post(func() { b.viewer.Orbit(dx, dy) })
			} else {
				b.post(func() { b.viewer.Pan(dx, dy) })
			}
		}
	}
	width, height := b.win.Width(), b.win.Height()
	b.post(func() { b.viewer.Hover(float32(x), float32(y), width, height) })
}

func (b *inputBinding) onScroll(delta float32) {
	b.post(func() { b.viewer.Zoom(delta) })
}
