package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/cogentcore/webgpu/wgpu"
)

var errSurfaceNotConfigured = errors.New("surface not configured")

// wgpuFrame is the GPU state alive between BeginFrame and Present.
type wgpuFrame struct {
	texture *wgpu.Texture
	view    *wgpu.TextureView
	encoder *wgpu.CommandEncoder
	pass    *wgpu.RenderPassEncoder
}

// submit ends the pass and queues it. The encoder is spent either way.
func (f *wgpuFrame) submit(queue *wgpu.Queue) error {
	f.pass.End()
	f.pass = nil
	defer func() {
		f.encoder.Release()
		f.encoder = nil
	}()

	cmd, err := f.encoder.Finish(nil)
	if err != nil {
		return err
	}
	defer cmd.Release()
	queue.Submit(cmd)
	return nil
}

func (f *wgpuFrame) release() {
	if f.encoder != nil {
		f.encoder.Release()
	}
	if f.view != nil {
		f.view.Release()
	}
	if f.texture != nil {
		f.texture.Release()
	}
}

type wgpuRendererBackend struct {
	mu *sync.Mutex

	instance *wgpu.Instance
	surface  *wgpu.Surface
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue

	configured  bool
	presentMode wgpu.PresentMode
	clear       wgpu.Color

	frame *wgpuFrame
}

var _ RendererBackend = &wgpuRendererBackend{}

// newWGPURendererBackend creates the instance, surface, adapter and device. The
// surface is not configured until the first ConfigureSurface.
func newWGPURendererBackend(sd *wgpu.SurfaceDescriptor, softwareAdapter bool) (*wgpuRendererBackend, error) {
	if sd == nil {
		return nil, errors.New("window has no surface")
	}
	// wgpu-native expects surface calls from the thread that created it.
	runtime.LockOSThread()

	b := &wgpuRendererBackend{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		clear:       wgpu.Color{A: 1},
	}
	b.surface = b.instance.CreateSurface(sd)

	adapter, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: softwareAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request adapter (software=%t): %w", softwareAdapter, err)
	}
	b.adapter = adapter

	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "oxy-viewer"})
	if err != nil {
		b.Release()
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = device
	b.queue = device.GetQueue()
	return b, nil
}

func (b *wgpuRendererBackend) ConfigureSurface(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	caps := b.surface.GetCapabilities(b.adapter)
	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   caps.AlphaModes[0],
	})
	b.configured = true
}

func (b *wgpuRendererBackend) SetPresentMode(mode PresentMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if mode == PresentModeUncapped {
		b.presentMode = wgpu.PresentModeImmediate
		return
	}
	b.presentMode = wgpu.PresentModeFifo
}

func (b *wgpuRendererBackend) SetClearColor(color wgpu.Color) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clear = color
}

func (b *wgpuRendererBackend) BeginFrame() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.configured {
		return errSurfaceNotConfigured
	}
	// wgpu-native rejects a second acquire before Present.
	if b.frame != nil {
		return errors.New("previous frame not presented")
	}

	f := &wgpuFrame{}
	var err error
	if f.texture, err = b.surface.GetCurrentTexture(); err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	if f.view, err = f.texture.CreateView(nil); err != nil {
		f.release()
		return fmt.Errorf("surface view: %w", err)
	}
	if f.encoder, err = b.device.CreateCommandEncoder(nil); err != nil {
		f.release()
		return fmt.Errorf("command encoder: %w", err)
	}
	f.pass = f.encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       f.view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: b.clear,
		}},
	})
	b.frame = f
	return nil
}

func (b *wgpuRendererBackend) EndFrame() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil || b.frame.pass == nil {
		return
	}
	if err := b.frame.submit(b.queue); err != nil {
		// Nothing to present; drop the frame so the next BeginFrame can acquire.
		b.frame.release()
		b.frame = nil
	}
}

func (b *wgpuRendererBackend) Present() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame == nil {
		return
	}
	b.surface.Present()
	b.frame.release()
	b.frame = nil
}

func (b *wgpuRendererBackend) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.frame != nil {
		b.frame.release()
		b.frame = nil
	}
	if b.queue != nil {
		b.queue.Release()
	}
	if b.device != nil {
		b.device.Release()
	}
	if b.adapter != nil {
		b.adapter.Release()
	}
	if b.surface != nil {
		b.surface.Release()
	}
	if b.instance != nil {
		b.instance.Release()
	}
	b.queue, b.device, b.adapter, b.surface, b.instance = nil, nil, nil, nil, nil
	b.configured = false
}
