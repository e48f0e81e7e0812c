package window

import (
	"fmt"
	"runtime"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwWindow struct {
	window  *glfw.Window
	closing bool
}

// openGLFWWindow locks the calling goroutine to its OS thread, creates a window without
// a client API (WebGPU brings its own) and routes GLFW input into w's callbacks.
func openGLFWWindow(w *engineWindow) error {
	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("glfw create window: %w", err)
	}
	win.SetSizeLimits(w.minWidth, w.minHeight, w.maxWidth, w.maxHeight)

	gw := &glfwWindow{window: win}
	w.platform = gw

	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		if key == glfw.KeyEscape {
			gw.closing = true
			win.SetShouldClose(true)
			return
		}
		if w.onKeyDown != nil {
			w.onKeyDown(uint32(key))
		}
	})

	win.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		var handler func(x, y int32)
		switch {
		case button == glfw.MouseButtonLeft && action == glfw.Press:
			handler = w.onLeftMouseDown
		case button == glfw.MouseButtonMiddle && action == glfw.Press:
			handler = w.onMiddleMouseDown
		case button == glfw.MouseButtonMiddle && action == glfw.Release:
			handler = w.onMiddleMouseUp
		case button == glfw.MouseButtonRight && action == glfw.Press:
			handler = w.onRightMouseDown
		case button == glfw.MouseButtonRight && action == glfw.Release:
			handler = w.onRightMouseUp
		}
		if handler != nil {
			handler(gw.cursorPixels(win.GetCursorPos()))
		}
	})

	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(gw.cursorPixels(xpos, ypos))
		}
	})

	// Framebuffer size, not window size: the surface is configured in pixels.
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width, w.height = width, height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})
	w.width, w.height = win.GetFramebufferSize()

	return nil
}

// cursorPixels converts GLFW screen coordinates to framebuffer pixels. The two differ
// on high-DPI displays.
func (gw *glfwWindow) cursorPixels(x, y float64) (int32, int32) {
	ww, wh := gw.window.GetSize()
	fw, fh := gw.window.GetFramebufferSize()
	if ww > 0 && wh > 0 {
		x *= float64(fw) / float64(ww)
		y *= float64(fh) / float64(wh)
	}
	return int32(x), int32(y)
}

func (gw *glfwWindow) surfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(gw.window)
}

func (gw *glfwWindow) open() bool {
	return !gw.closing && !gw.window.ShouldClose()
}

func (gw *glfwWindow) poll() {
	glfw.PollEvents()
}

func (gw *glfwWindow) destroy() {
	gw.closing = true
	gw.window.Destroy()
	glfw.Terminate()
}
