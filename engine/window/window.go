package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window is the viewer's OS window: a WebGPU surface source plus the input events the
// viewer binds to. Callbacks fire on the goroutine running ProcessMessages (the locked
// main thread); consumers that touch shared state must hand work off themselves.
//
// Mouse coordinates are framebuffer pixels from the top-left corner, the same units as
// Width and Height, so they can be turned into NDC directly.
type Window interface {
	// SetUpdateCallback registers a function run once per message-loop iteration.
	SetUpdateCallback(callback func())

	// SetResizeCallback registers a function run when the framebuffer size changes.
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback registers the mouse wheel handler. Positive delta scrolls up.
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback registers the key press handler. Key repeats are delivered too.
	// Escape is reserved: it closes the window.
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetLeftMouseDownCallback registers the left button press handler.
	SetLeftMouseDownCallback(callback func(x, y int32))

	// SetMiddleMouseDownCallback registers the middle button press handler.
	SetMiddleMouseDownCallback(callback func(x, y int32))

	// SetMiddleMouseUpCallback registers the middle button release handler.
	SetMiddleMouseUpCallback(callback func(x, y int32))

	// SetRightMouseDownCallback registers the right button press handler.
	SetRightMouseDownCallback(callback func(x, y int32))

	// SetRightMouseUpCallback registers the right button release handler.
	SetRightMouseUpCallback(callback func(x, y int32))

	// SetMouseMoveCallback registers the cursor motion handler.
	SetMouseMoveCallback(callback func(x, y int32))

	// SetTitle replaces the title bar text. Must be called from the main thread.
	SetTitle(title string)

	// SurfaceDescriptor returns the platform surface the renderer draws to, or nil before
	// the window exists.
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning reports whether the window is open and has not been asked to close.
	IsRunning() bool

	// Close destroys the window and shuts GLFW down.
	//
	// Returns:
	//   - error: an error if the window was never created
	Close() error

	// ProcessMessages pumps OS events until the window closes, calling the update
	// callback after each poll. It blocks the calling (main) thread.
	ProcessMessages()

	// Width returns the framebuffer width in pixels.
	Width() int

	// Height returns the framebuffer height in pixels.
	Height() int
}

type engineWindow struct {
	title string

	width, height       int
	minWidth, minHeight int
	maxWidth, maxHeight int

	platform *glfwWindow

	onUpdate          func()
	onResize          func(width, height int)
	onScroll          func(delta float32)
	onKeyDown         func(keyCode uint32)
	onLeftMouseDown   func(x, y int32)
	onMiddleMouseDown func(x, y int32)
	onMiddleMouseUp   func(x, y int32)
	onRightMouseDown  func(x, y int32)
	onRightMouseUp    func(x, y int32)
	onMouseMove       func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow opens a 1280x720 "Oxy Viewer" window, resizable between 600x400 and
// 3840x2160 unless options say otherwise.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the visible window
//   - error: an error if GLFW could not create it
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:     "Oxy Viewer",
		width:     1280,
		height:    720,
		minWidth:  600,
		minHeight: 400,
		maxWidth:  3840,
		maxHeight: 2160,
	}
	for _, opt := range options {
		opt(w)
	}
	if err := openGLFWWindow(w); err != nil {
		return nil, fmt.Errorf("open window %q: %w", w.title, err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) { w.onUpdate = callback }

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) { w.onScroll = callback }

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) { w.onKeyDown = callback }

func (w *engineWindow) SetLeftMouseDownCallback(callback func(x, y int32)) {
	w.onLeftMouseDown = callback
}

func (w *engineWindow) SetMiddleMouseDownCallback(callback func(x, y int32)) {
	w.onMiddleMouseDown = callback
}

func (w *engineWindow) SetMiddleMouseUpCallback(callback func(x, y int32)) {
	w.onMiddleMouseUp = callback
}

func (w *engineWindow) SetRightMouseDownCallback(callback func(x, y int32)) {
	w.onRightMouseDown = callback
}

func (w *engineWindow) SetRightMouseUpCallback(callback func(x, y int32)) {
	w.onRightMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) { w.onMouseMove = callback }

func (w *engineWindow) SetTitle(title string) {
	w.title = title
	if w.platform != nil {
		w.platform.window.SetTitle(title)
	}
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	if w.platform == nil {
		return nil
	}
	return w.platform.surfaceDescriptor()
}

func (w *engineWindow) IsRunning() bool {
	return w.platform != nil && w.platform.open()
}

func (w *engineWindow) Close() error {
	if w.platform == nil {
		return fmt.Errorf("window %q was never opened", w.title)
	}
	w.platform.destroy()
	return nil
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		w.platform.poll()
		if !w.IsRunning() {
			return
		}
		if w.onUpdate != nil {
			w.onUpdate()
		}
		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int { return w.width }

func (w *engineWindow) Height() int { return w.height }
