package renderer

// RendererBuilderOption configures a renderer in NewRenderer.
type RendererBuilderOption func(*renderer)

// WithPresentMode picks vsync or uncapped presentation.
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}

// WithClearColor sets the first frame's background and exposure, normally those of the
// lighting rig's starting mode.
//
// Parameters:
//   - color: linear RGB background
//   - exposure: multiplier applied to color
//
// Returns:
//   - RendererBuilderOption: option setting the clear colour
func WithClearColor(color [3]float32, exposure float32) RendererBuilderOption {
	return func(r *renderer) {
		r.background = color
		r.exposure = exposure
	}
}

// WithForceSoftwareRenderer requests the fallback (CPU) adapter. It needs a software
// Vulkan driver such as lavapipe or SwiftShader.
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.softwareAdapter = force
	}
}
