package renderer

import "github.com/cogentcore/webgpu/wgpu"

// RendererBackendType selects the GPU API behind a Renderer.
type RendererBackendType int

const (
	// BackendTypeWGPU draws through WebGPU (wgpu-native).
	BackendTypeWGPU RendererBackendType = iota
)

// PresentMode is how finished frames reach the display.
type PresentMode int

const (
	// PresentModeVSync waits for vertical blank: no tearing, frame rate capped at the refresh rate.
	PresentModeVSync PresentMode = iota
	// PresentModeUncapped presents immediately and may tear.
	PresentModeUncapped
)

// RendererBackend is the GPU-facing half of a Renderer: surface configuration and the
// per-frame clear pass.
type RendererBackend interface {
	// ConfigureSurface (re)builds the swapchain at width x height. Zero sizes, as
	// reported while minimized, keep the previous configuration.
	ConfigureSurface(width, height int)

	// SetPresentMode takes effect at the next ConfigureSurface.
	SetPresentMode(mode PresentMode)

	// SetClearColor sets the colour the frame pass clears to.
	SetClearColor(color wgpu.Color)

	// BeginFrame acquires the next swapchain image and opens the clear pass.
	BeginFrame() error

	// EndFrame closes the pass and submits it.
	EndFrame()

	// Present shows the frame and returns the swapchain image.
	Present()

	// Release frees every GPU object the backend created.
	Release()
}
