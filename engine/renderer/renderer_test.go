package renderer

import (
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	sizes   [][2]int
	mode    PresentMode
	clear   wgpu.Color
	calls   []string
	release int
}

func (f *fakeBackend) ConfigureSurface(w, h int)       { f.sizes = append(f.sizes, [2]int{w, h}) }
func (f *fakeBackend) SetPresentMode(mode PresentMode) { f.mode = mode }
func (f *fakeBackend) SetClearColor(c wgpu.Color)      { f.clear = c }
func (f *fakeBackend) EndFrame()                       { f.calls = append(f.calls, "end") }
func (f *fakeBackend) Present()                        { f.calls = append(f.calls, "present") }
func (f *fakeBackend) Release()                        { f.release++ }

func (f *fakeBackend) BeginFrame() error {
	f.calls = append(f.calls, "begin")
	return nil
}

func newTestRenderer(options ...RendererBuilderOption) (*renderer, *fakeBackend) {
	fb := &fakeBackend{}
	r := newRenderer(options...)
	r.backend = fb
	r.attach(1280, 720)
	return r, fb
}

func TestExposedColor(t *testing.T) {
	c := ExposedColor([3]float32{0.5, 0.25, 1}, 1.2)
	assert.InDelta(t, 0.6, c[0], 1e-6)
	assert.InDelta(t, 0.3, c[1], 1e-6)
	assert.Equal(t, float32(1), c[2], "channels clamp at 1")

	dark := ExposedColor([3]float32{0.5, 0.5, 0.5}, 0)
	assert.Equal(t, [3]float32{}, dark)
}

func TestAttachAppliesOptions(t *testing.T) {
	r, fb := newTestRenderer(
		WithPresentMode(PresentModeUncapped),
		WithClearColor([3]float32{0.5, 0, 1}, 0.5),
		WithForceSoftwareRenderer(true),
	)
	assert.True(t, r.softwareAdapter)
	assert.Equal(t, PresentModeUncapped, fb.mode)
	assert.Equal(t, [][2]int{{1280, 720}}, fb.sizes)
	assert.Equal(t, wgpu.Color{R: 0.25, G: 0, B: 0.5, A: 1}, fb.clear)
}

func TestDefaults(t *testing.T) {
	r, fb := newTestRenderer()
	assert.Equal(t, PresentModeVSync, fb.mode)
	assert.False(t, r.softwareAdapter)
	assert.InDelta(t, 0.1, r.ClearColor()[0], 1e-6)
}

func TestSetClearColorReachesBackend(t *testing.T) {
	r, fb := newTestRenderer()
	r.SetClearColor([3]float32{0.8, 0.8, 0.8}, 1.5)

	assert.Equal(t, [3]float32{1, 1, 1}, r.ClearColor())
	assert.Equal(t, wgpu.Color{R: 1, G: 1, B: 1, A: 1}, fb.clear)
}

func TestFramePassThrough(t *testing.T) {
	r, fb := newTestRenderer()
	require.NoError(t, r.BeginFrame())
	r.EndFrame()
	r.Present()
	r.Resize(640, 480)
	r.SetPresentMode(PresentModeUncapped)
	r.Release()

	assert.Equal(t, []string{"begin", "end", "present"}, fb.calls)
	assert.Equal(t, [2]int{640, 480}, fb.sizes[len(fb.sizes)-1])
	assert.Equal(t, PresentModeUncapped, fb.mode)
	assert.Equal(t, 1, fb.release)
}
