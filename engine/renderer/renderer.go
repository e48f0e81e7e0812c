package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-viewer/common"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Renderer draws the viewer's frame, a pass cleared to the lighting environment's
// background, to the window surface.
//
// Resize and SetClearColor may be called from any goroutine. The frame calls
// (BeginFrame, EndFrame, Present) belong to the render loop.
type Renderer interface {
	// Resize reconfigures the surface for a new framebuffer size.
	Resize(width, height int)

	// SetPresentMode switches between vsync and uncapped. It takes effect at the next Resize.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the background. The GPU receives color * exposure, clamped to [0, 1].
	//
	// Parameters:
	//   - color: linear RGB background
	//   - exposure: tone-mapping exposure of the active lighting mode
	SetClearColor(color [3]float32, exposure float32)

	// ClearColor returns what the next frame clears to, after exposure.
	ClearColor() [3]float32

	// BeginFrame opens a frame. Every successful call must be followed by EndFrame and Present.
	//
	// Returns:
	//   - error: the frame was skipped (surface lost, minimized or not yet configured)
	BeginFrame() error

	// EndFrame submits the frame's commands.
	EndFrame()

	// Present displays the frame.
	Present()

	// Release frees the GPU device and surface.
	Release()
}

type renderer struct {
	mu      *sync.Mutex
	backend RendererBackend

	background [3]float32
	exposure   float32

	softwareAdapter bool
	presentMode     PresentMode
}

var _ Renderer = &renderer{}

// NewRenderer opens a GPU device for the window's surface and configures the surface at
// the window's current size. Defaults: vsync, hardware adapter, dark grey background.
//
// Parameters:
//   - backendType: the GPU API; only BackendTypeWGPU exists
//   - win: the window to draw to
//   - options: functional options for the renderer
//
// Returns:
//   - Renderer: the ready renderer
//   - error: no adapter or device was available
func NewRenderer(backendType RendererBackendType, win window.Window, options ...RendererBuilderOption) (Renderer, error) {
	r := newRenderer(options...)

	switch backendType {
	case BackendTypeWGPU:
		b, err := newWGPURendererBackend(win.SurfaceDescriptor(), r.softwareAdapter)
		if err != nil {
			return nil, fmt.Errorf("wgpu backend: %w", err)
		}
		r.backend = b
	default:
		return nil, fmt.Errorf("unknown renderer backend %d", backendType)
	}

	r.attach(win.Width(), win.Height())
	return r, nil
}

func newRenderer(options ...RendererBuilderOption) *renderer {
	r := &renderer{
		mu:          &sync.Mutex{},
		background:  [3]float32{0.1, 0.1, 0.1},
		exposure:    1,
		presentMode: PresentModeVSync,
	}
	for _, opt := range options {
		opt(r)
	}
	return r
}

// attach pushes the collected settings into a fresh backend and configures the surface.
func (r *renderer) attach(width, height int) {
	r.backend.SetPresentMode(r.presentMode)
	r.backend.SetClearColor(toWGPUColor(ExposedColor(r.background, r.exposure)))
	r.backend.ConfigureSurface(width, height)
}

// ExposedColor scales color by exposure and clamps each channel to [0, 1].
func ExposedColor(color [3]float32, exposure float32) [3]float32 {
	var out [3]float32
	for i, c := range color {
		out[i] = common.Clamp(c*exposure, 0, 1)
	}
	return out
}

func toWGPUColor(c [3]float32) wgpu.Color {
	return wgpu.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2]), A: 1}
}

func (r *renderer) Resize(width, height int) {
	r.backend.ConfigureSurface(width, height)
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.mu.Lock()
	r.presentMode = mode
	r.mu.Unlock()
	r.backend.SetPresentMode(mode)
}

func (r *renderer) SetClearColor(color [3]float32, exposure float32) {
	r.mu.Lock()
	r.background, r.exposure = color, exposure
	c := ExposedColor(color, exposure)
	r.mu.Unlock()
	r.backend.SetClearColor(toWGPUColor(c))
}

func (r *renderer) ClearColor() [3]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return ExposedColor(r.background, r.exposure)
}

func (r *renderer) BeginFrame() error { return r.backend.BeginFrame() }

func (r *renderer) EndFrame() { r.backend.EndFrame() }

func (r *renderer) Present() { r.backend.Present() }

func (r *renderer) Release() { r.backend.Release() }
