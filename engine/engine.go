package engine

import (
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/profiler"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/Carmen-Shannon/oxy-viewer/engine/window"
	"github.com/rs/zerolog"
)

// Engine runs the viewer's three loops: the window message loop on the calling (main)
// thread, a fixed-rate tick goroutine that owns all viewer state, and a render goroutine
// that draws as fast as the present mode (or the frame limit) allows.
//
// Anything that needs to touch viewer state from another goroutine, such as window
// callbacks or the manifest watcher, goes through Post.
type Engine interface {
	// Window returns the window the engine was built with, or nil.
	Window() window.Window

	// SetTickCallback registers the per-tick function. dt is in seconds.
	SetTickCallback(callback func(dt float32))

	// SetRenderCallback registers the function run before each frame is drawn.
	SetRenderCallback(callback func(dt float32))

	// Post queues fn for the tick goroutine. Queued work runs in order, before the
	// tick callback of the next tick. A nil fn is ignored.
	Post(fn func())

	// Run blocks in the window message loop until the window closes or Quit is called,
	// then stops the tick and render goroutines and closes the window.
	Run()

	// Quit asks Run to return. Safe to call more than once and from any goroutine.
	Quit()
}

type engine struct {
	window   window.Window
	renderer renderer.Renderer
	camera   camera.Camera
	logger   zerolog.Logger
	profiler *profiler.Profiler

	tickInterval  time.Duration
	frameInterval time.Duration // 0 renders uncapped
	profiling     bool

	onTick   func(dt float32)
	onRender func(dt float32)

	mu     sync.Mutex
	posted []func()

	quit     chan struct{}
	quitOnce sync.Once
	wg       sync.WaitGroup
}

var _ Engine = &engine{}

// NewEngine builds an engine ticking at 60 Hz with an uncapped render loop. When both a
// window and a renderer or camera are given, window resizes reconfigure the surface and
// (on the tick goroutine) the camera aspect.
//
// Parameters:
//   - options: functional options for the engine
//
// Returns:
//   - Engine: the engine, not yet running
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		logger:       zerolog.Nop(),
		tickInterval: time.Second / 60,
		quit:         make(chan struct{}),
	}
	for _, opt := range options {
		opt(e)
	}
	if e.profiling {
		e.profiler = profiler.NewProfiler(e.logger)
	}
	if e.window != nil {
		e.window.SetResizeCallback(e.resized)
	}
	return e
}

func (e *engine) Window() window.Window { return e.window }

func (e *engine) SetTickCallback(callback func(dt float32)) { e.onTick = callback }

func (e *engine) SetRenderCallback(callback func(dt float32)) { e.onRender = callback }

func (e *engine) Post(fn func()) {
	if fn == nil {
		return
	}
	e.mu.Lock()
	e.posted = append(e.posted, fn)
	e.mu.Unlock()
}

func (e *engine) Run() {
	// Close must happen on the main thread, so a Quit from elsewhere is noticed by the
	// message loop's update callback.
	closed := false
	closeWindow := func() {
		if !closed {
			closed = true
			if err := e.window.Close(); err != nil {
				e.logger.Warn().Err(err).Msg("close window")
			}
		}
	}
	e.window.SetUpdateCallback(func() {
		select {
		case <-e.quit:
			closeWindow()
		default:
		}
	})

	e.wg.Add(2)
	go e.tickLoop()
	go e.renderLoop()

	e.window.ProcessMessages()
	e.Quit()
	e.wg.Wait()
	closeWindow()
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() { close(e.quit) })
}

func (e *engine) resized(width, height int) {
	if e.renderer != nil {
		e.renderer.Resize(width, height)
	}
	if e.camera != nil && height > 0 {
		aspect := float32(width) / float32(height)
		e.Post(func() { e.camera.SetAspect(aspect) })
	}
}

// runPosted runs the work queued so far. Work posted while it runs waits for the next tick.
func (e *engine) runPosted() {
	e.mu.Lock()
	batch := e.posted
	e.posted = nil
	e.mu.Unlock()

	for _, fn := range batch {
		fn()
	}
}

func (e *engine) tickLoop() {
	defer e.wg.Done()

	ticker := time.NewTicker(e.tickInterval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-e.quit:
			return
		case now := <-ticker.C:
			dt := float32(now.Sub(last).Seconds())
			last = now

			e.runPosted()
			if e.onTick != nil {
				e.onTick(dt)
			}
			if e.profiler != nil {
				e.profiler.Tick()
			}
		}
	}
}

// renderLoop draws frames until quit. A panic in the renderer or render callback is
// logged and shuts the viewer down instead of crashing it.
func (e *engine) renderLoop() {
	defer e.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error().Interface("panic", r).Msg("render loop stopped")
			e.Quit()
		}
	}()

	last := time.Now()
	for {
		select {
		case <-e.quit:
			return
		default:
		}

		start := time.Now()
		dt := float32(start.Sub(last).Seconds())
		last = start

		if e.onRender != nil {
			e.onRender(dt)
		}
		e.drawFrame()
		if e.profiler != nil {
			e.profiler.Frame()
		}

		if e.frameInterval > 0 {
			if wait := e.frameInterval - time.Since(start); wait > 0 {
				time.Sleep(wait)
			}
		}
	}
}

func (e *engine) drawFrame() {
	if e.renderer == nil {
		return
	}
	if err := e.renderer.BeginFrame(); err != nil {
		e.logger.Trace().Err(err).Msg("frame skipped")
		return
	}
	e.renderer.EndFrame()
	e.renderer.Present()
}
