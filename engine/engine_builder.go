package engine

import (
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/rs/zerolog"
)

// EngineBuilderOption configures an engine in NewEngine.
type EngineBuilderOption func(*engine)

// WithWindow sets the window whose message loop Run drives. Run requires one.
func WithWindow(w window.Window) EngineBuilderOption {
	return func(e *engine) {
		e.window = w
	}
}

// WithRenderer sets the renderer drawn by the render loop and resized with the window.
func WithRenderer(r renderer.Renderer) EngineBuilderOption {
	return func(e *engine) {
		e.renderer = r
	}
}

// WithCamera sets the camera whose aspect ratio follows the window.
func WithCamera(c camera.Camera) EngineBuilderOption {
	return func(e *engine) {
		e.camera = c
	}
}

// WithLogger sets the engine's logger. The profiler logs through it too.
func WithLogger(logger zerolog.Logger) EngineBuilderOption {
	return func(e *engine) {
		e.logger = logger.With().Str("component", "engine").Logger()
	}
}

// WithTickRate sets how many times per second the tick callback runs.
//
// Parameters:
//   - hz: ticks per second; values <= 0 mean 60
//
// Returns:
//   - EngineBuilderOption: option setting the tick interval
func WithTickRate(hz float64) EngineBuilderOption {
	return func(e *engine) {
		if hz <= 0 {
			hz = 60
		}
		e.tickInterval = rateInterval(hz)
	}
}

// WithRenderFrameLimit caps the render loop.
//
// Parameters:
//   - fps: maximum frames per second; values <= 0 leave rendering uncapped
//
// Returns:
//   - EngineBuilderOption: option setting the frame interval
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.frameInterval = 0
		if fps > 0 {
			e.frameInterval = rateInterval(fps)
		}
	}
}

// WithProfiling turns on the once-a-second frame stats log line.
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profiling = enabled
	}
}

func rateInterval(hz float64) time.Duration {
	return time.Duration(float64(time.Second) / hz)
}
