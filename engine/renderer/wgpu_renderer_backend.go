package renderer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/cogentcore/webgpu/wgpu"
)

var errReleased = errors.New("backend released")

// wgpuRendererBackendImpl owns a headless WebGPU device. No surface is created; the
// device exists only to report limits and back planned buffers.
type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
}

type wgpuRendererBackend interface {
	Device() *wgpu.Device
	Queue() *wgpu.Queue
	Adapter() *wgpu.Adapter

	// Limits returns the adapter's supported limits as planner limits.
	//
	// Returns:
	//   - capacity.HardwareLimits: the adapter limits
	Limits() capacity.HardwareLimits

	// CreateBuffer creates a GPU buffer with COPY_DST added to the given usage.
	//
	// Parameters:
	//   - label: the debug label of the buffer
	//   - size: the buffer size in bytes
	//   - usage: the buffer usage flags
	//
	// Returns:
	//   - *wgpu.Buffer: the created buffer
	//   - error: error if the device rejects the descriptor
	CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error)

	// WriteBuffer queues a write of data into buf at the given offset.
	//
	// Parameters:
	//   - buf: the destination buffer
	//   - offset: the byte offset inside buf
	//   - data: the bytes to write
	//
	// Returns:
	//   - error: error if the backend was released
	WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error

	// Release frees the device, adapter and instance.
	Release()
}

var _ RendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(forceFallbackAdapter bool, power PowerPreference, limits *capacity.HardwareLimits) (wgpuRendererBackend, error) {
	w := &wgpuRendererBackendImpl{
		mu:       &sync.Mutex{},
		instance: wgpu.CreateInstance(nil),
	}

	a, err := w.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		PowerPreference:      wgpuPowerPreference(power),
	})
	if err != nil {
		w.instance.Release()
		return nil, fmt.Errorf("failed to request adapter: %w", err)
	}
	w.adapter = a

	// Request the adapter's full limits so planned blocks can use every slot it reports,
	// or the caller's limits when planning against a narrower profile.
	required := a.GetLimits().Limits
	if limits != nil {
		required = applyLimits(wgpu.DefaultLimits(), *limits)
	}

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Scenepack Device",
		RequiredLimits: &wgpu.RequiredLimits{
			Limits: required,
		},
	})
	if err != nil {
		a.Release()
		w.instance.Release()
		return nil, fmt.Errorf("failed to request device: %w", err)
	}
	w.device = d
	w.queue = d.GetQueue()

	return w, nil
}

func (b *wgpuRendererBackendImpl) Device() *wgpu.Device {
	return b.device
}

func (b *wgpuRendererBackendImpl) Queue() *wgpu.Queue {
	return b.queue
}

func (b *wgpuRendererBackendImpl) Adapter() *wgpu.Adapter {
	return b.adapter
}

func (b *wgpuRendererBackendImpl) Limits() capacity.HardwareLimits {
	b.mu.Lock()
	defer b.mu.Unlock()
	return LimitsFromWGPU(b.adapter.GetLimits().Limits)
}

func (b *wgpuRendererBackendImpl) CreateBuffer(label string, size uint64, usage wgpu.BufferUsage) (*wgpu.Buffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.device == nil {
		return nil, errReleased
	}
	return b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label:            label,
		Size:             size,
		Usage:            usage | wgpu.BufferUsageCopyDst,
		MappedAtCreation: false,
	})
}

func (b *wgpuRendererBackendImpl) WriteBuffer(buf *wgpu.Buffer, offset uint64, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.queue == nil {
		return errReleased
	}
	b.queue.WriteBuffer(buf, offset, data)
	return nil
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.queue != nil {
		b.queue.Release()
		b.queue = nil
	}
	if b.device != nil {
		b.device.Release()
		b.device = nil
	}
	if b.adapter != nil {
		b.adapter.Release()
		b.adapter = nil
	}
	if b.instance != nil {
		b.instance.Release()
		b.instance = nil
	}
}

func wgpuPowerPreference(p PowerPreference) wgpu.PowerPreference {
	switch p {
	case PowerPreferenceLowPower:
		return wgpu.PowerPreferenceLowPower
	case PowerPreferenceHighPerformance:
		return wgpu.PowerPreferenceHighPerformance
	default:
		return wgpu.PowerPreferenceUndefined
	}
}
