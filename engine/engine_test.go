package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-viewer/engine/camera"
	"github.com/Carmen-Shannon/oxy-viewer/engine/renderer"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow runs its message loop until Close is called.
type fakeWindow struct {
	mu     sync.Mutex
	update func()
	resize func(int, int)
	closed bool
	closes int
}

func (f *fakeWindow) SetUpdateCallback(cb func())                   { f.update = cb }
func (f *fakeWindow) SetResizeCallback(cb func(int, int))           { f.resize = cb }
func (f *fakeWindow) SetScrollCallback(func(float32))               {}
func (f *fakeWindow) SetKeyDownCallback(func(uint32))               {}
func (f *fakeWindow) SetLeftMouseDownCallback(func(int32, int32))   {}
func (f *fakeWindow) SetMiddleMouseDownCallback(func(int32, int32)) {}
func (f *fakeWindow) SetMiddleMouseUpCallback(func(int32, int32))   {}
func (f *fakeWindow) SetRightMouseDownCallback(func(int32, int32))  {}
func (f *fakeWindow) SetRightMouseUpCallback(func(int32, int32))    {}
func (f *fakeWindow) SetMouseMoveCallback(func(int32, int32))       {}
func (f *fakeWindow) SetTitle(string)                               {}
func (f *fakeWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor    { return nil }
func (f *fakeWindow) Width() int                                    { return 800 }
func (f *fakeWindow) Height() int                                   { return 600 }

func (f *fakeWindow) IsRunning() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed
}

func (f *fakeWindow) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	f.closes++
	return nil
}

func (f *fakeWindow) ProcessMessages() {
	for f.IsRunning() {
		if f.update != nil {
			f.update()
		}
		time.Sleep(time.Millisecond)
	}
}

type fakeRenderer struct {
	mu            sync.Mutex
	width, height int
	frames        int
	failNextBegin bool
}

func (f *fakeRenderer) SetPresentMode(renderer.PresentMode) {}
func (f *fakeRenderer) SetClearColor([3]float32, float32)   {}
func (f *fakeRenderer) ClearColor() [3]float32              { return [3]float32{} }
func (f *fakeRenderer) EndFrame()                           {}
func (f *fakeRenderer) Release()                            {}

func (f *fakeRenderer) Resize(w, h int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.width, f.height = w, h
}

func (f *fakeRenderer) BeginFrame() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failNextBegin {
		f.failNextBegin = false
		return assert.AnError
	}
	return nil
}

func (f *fakeRenderer) Present() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames++
}

func (f *fakeRenderer) Frames() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames
}

func TestPostRunsBeforeTickInOrder(t *testing.T) {
	e := NewEngine(WithTickRate(500)).(*engine)

	var mu sync.Mutex
	var order []string
	record := func(s string) {
		mu.Lock()
		order = append(order, s)
		mu.Unlock()
	}

	ticked := make(chan struct{}, 1)
	e.SetTickCallback(func(float32) {
		record("tick")
		select {
		case ticked <- struct{}{}:
		default:
		}
	})

	e.Post(func() { record("a") })
	e.Post(func() { record("b") })
	e.Post(nil)

	e.wg.Add(1)
	go e.tickLoop()

	select {
	case <-ticked:
	case <-time.After(2 * time.Second):
		t.Fatal("tick callback never fired")
	}
	e.Quit()
	e.wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(order), 3)
	assert.Equal(t, []string{"a", "b", "tick"}, order[:3])
}

func TestQuitIsIdempotent(t *testing.T) {
	e := NewEngine()
	assert.NotPanics(t, func() {
		e.Quit()
		e.Quit()
	})
}

func TestBuilderOptions(t *testing.T) {
	e := NewEngine(WithTickRate(0), WithRenderFrameLimit(30)).(*engine)
	assert.Equal(t, time.Second/60, e.tickInterval)
	assert.Equal(t, time.Second/30, e.frameInterval)
	assert.Nil(t, e.profiler)
	assert.Nil(t, e.Window())

	e = NewEngine(WithTickRate(120), WithRenderFrameLimit(-1), WithProfiling(true)).(*engine)
	assert.Equal(t, time.Second/120, e.tickInterval)
	assert.Zero(t, e.frameInterval)
	assert.NotNil(t, e.profiler)
}

func TestResizeReachesRendererAndCamera(t *testing.T) {
	win := &fakeWindow{}
	r := &fakeRenderer{}
	cc := camera.NewCameraController()
	cc.SetPose([3]float32{0, 0, 10}, [3]float32{})
	cam := camera.NewCamera(camera.WithController(cc))
	e := NewEngine(WithWindow(win), WithRenderer(r), WithCamera(cam)).(*engine)

	before := cam.ProjectionMatrix()
	require.NotNil(t, win.resize)
	win.resize(1600, 800)

	assert.Equal(t, 1600, r.width)
	assert.Equal(t, 800, r.height)
	assert.Equal(t, before, cam.ProjectionMatrix(), "aspect is applied on the tick goroutine")

	e.runPosted()
	after := cam.ProjectionMatrix()
	assert.InDelta(t, before[0]/2, after[0], 1e-6)

	win.resize(100, 0)
	assert.Empty(t, e.posted)
}

func TestRunStopsOnQuit(t *testing.T) {
	win := &fakeWindow{}
	r := &fakeRenderer{failNextBegin: true}
	e := NewEngine(WithWindow(win), WithRenderer(r), WithTickRate(200))

	var ticks int
	e.SetTickCallback(func(float32) {
		ticks++
		if ticks == 3 {
			e.Quit()
		}
	})

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Quit")
	}
	assert.False(t, win.IsRunning())
	assert.Equal(t, 1, win.closes)
	assert.GreaterOrEqual(t, ticks, 3)
	assert.Positive(t, r.Frames())
}

func TestRenderPanicQuits(t *testing.T) {
	win := &fakeWindow{}
	e := NewEngine(WithWindow(win))
	e.SetRenderCallback(func(float32) { panic("boom") })

	done := make(chan struct{})
	go func() {
		e.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after a render panic")
	}
	assert.Equal(t, 1, win.closes)
}
