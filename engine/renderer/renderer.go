// Package renderer backs scene plans with WebGPU buffers on a headless device.
package renderer

import (
	"fmt"
	"sync"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/model"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/planner"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
	"github.com/cogentcore/webgpu/wgpu"
)

// renderer is the implementation of the Renderer interface.
type renderer struct {
	mu *sync.Mutex

	layoutCache map[vertex.Key]wgpu.VertexBufferLayout
	buffers     []*wgpu.Buffer
	arenas      []planner.Arena

	backendType RendererBackendType
	backend     RendererBackend

	// Pre-creation config collected from builder options
	forceFallbackAdapter bool
	powerPreference      PowerPreference
	requiredLimits       *capacity.HardwareLimits
}

// Renderer owns a WebGPU device and the buffers that back one scene plan.
//
// It is both the planner's LimitsSource and its BufferBuilder: limits come from the
// adapter, and Build creates one buffer per arena laid out by planner.ArenaBuilder.
// Vertex buffer layouts are cached by vertex key.
type Renderer interface {
	capacity.LimitsSource
	planner.BufferBuilder

	// Upload writes data into the region a binding describes.
	//
	// Parameters:
	//   - binding: the binding returned by Build
	//   - data: the bytes to write, at most binding.Size
	//
	// Returns:
	//   - error: error if the binding is unknown or data does not fit
	Upload(binding planner.BufferBinding, data []byte) error

	// UploadPlan stages a plan's initial data and writes it into the built buffers.
	//
	// Parameters:
	//   - plan: the plan the bindings were built from
	//   - scene: the scene the plan was made for
	//   - bindings: the bindings returned by plan.Bind
	//
	// Returns:
	//   - error: error if packing or any write fails
	UploadPlan(plan *planner.Plan, scene *model.SceneDescription, bindings []planner.BufferBinding) error

	// Buffers returns the buffers created by the last Build call, indexed by BufferBinding.Buffer.
	//
	// Returns:
	//   - []*wgpu.Buffer: the buffers
	Buffers() []*wgpu.Buffer

	// Arenas returns the arena layout of the last Build call, parallel to Buffers.
	//
	// Returns:
	//   - []planner.Arena: the arenas
	Arenas() []planner.Arena

	// VertexLayout returns the cached buffer layout for a vertex key, building it on first use.
	//
	// Parameters:
	//   - key: the vertex key of a planned primitive
	//
	// Returns:
	//   - wgpu.VertexBufferLayout: the padded interleaved layout
	//   - error: error if the key is malformed or a format has no WebGPU equivalent
	VertexLayout(key vertex.Key) (wgpu.VertexBufferLayout, error)

	// Backend returns the RendererBackend that this Renderer is using.
	//
	// Returns:
	//   - RendererBackend: the backend in use
	Backend() RendererBackend

	// Release frees the buffers and the device.
	Release()
}

var _ Renderer = &renderer{}

// NewRenderer creates a Renderer on a headless device of the given backend type.
//
// Parameters:
//   - backendType: the GPU backend
//   - options: functional options applied before the device is requested
//
// Returns:
//   - Renderer: the renderer
//   - error: error if no adapter or device is available
func NewRenderer(backendType RendererBackendType, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		mu:          &sync.Mutex{},
		layoutCache: make(map[vertex.Key]wgpu.VertexBufferLayout),
		backendType: backendType,
	}

	// Apply options first so config flags (e.g. forceFallbackAdapter) are
	// available before the backend requests a GPU adapter.
	for _, opt := range options {
		opt(r)
	}

	switch backendType {
	case BackendTypeWGPU:
		fallthrough
	default:
		b, err := newWGPURendererBackend(r.forceFallbackAdapter, r.powerPreference, r.requiredLimits)
		if err != nil {
			return nil, err
		}
		r.backend = b
	}
	return r, nil
}

func (r *renderer) Limits() capacity.HardwareLimits {
	if r.requiredLimits != nil {
		return *r.requiredLimits
	}
	return r.backend.Limits()
}

func (r *renderer) Build(entries []allocation.Entry) ([]planner.BufferBinding, error) {
	arenas := planner.NewArenaBuilder(r.Limits())
	bindings, err := arenas.Build(entries)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.releaseBuffers()

	r.arenas = arenas.Arenas()
	for i, a := range r.arenas {
		// WebGPU buffer sizes must be a multiple of 4 and non-zero.
		size := max(common.CeilDiv(a.Size, 4)*4, 4)
		label := fmt.Sprintf("%s/%s arena %d", a.Usage, a.Visibility, i)

		buf, err := r.backend.CreateBuffer(label, size, BufferUsage(a.Usage))
		if err != nil {
			r.releaseBuffers()
			return nil, fmt.Errorf("failed to create %s: %w", label, err)
		}
		r.buffers = append(r.buffers, buf)
		common.Logger().Debug("arena created", "label", label, "bytes", size)
	}
	return bindings, nil
}

func (r *renderer) Upload(binding planner.BufferBinding, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if binding.Buffer < 0 || binding.Buffer >= len(r.buffers) {
		return fmt.Errorf("buffer %d: %w", binding.Buffer, common.ErrSlotOutOfRange)
	}
	if uint64(len(data)) > binding.Size {
		return fmt.Errorf("upload of %d bytes into a %d byte binding", len(data), binding.Size)
	}
	// Queue writes must be 4-byte sized; arenas keep every binding 4-byte aligned.
	if rem := len(data) % 4; rem != 0 {
		padded := make([]byte, len(data)+4-rem)
		copy(padded, data)
		data = padded
	}
	return r.backend.WriteBuffer(r.buffers[binding.Buffer], binding.Offset, data)
}

func (r *renderer) UploadPlan(plan *planner.Plan, scene *model.SceneDescription, bindings []planner.BufferBinding) error {
	if len(bindings) != len(plan.Ledger) {
		return fmt.Errorf("plan %s: %d bindings for %d entries", plan.ID, len(bindings), len(plan.Ledger))
	}

	writes, err := plan.Stage(scene)
	if err != nil {
		return fmt.Errorf("plan %s: %w", plan.ID, err)
	}

	var total int
	for _, w := range writes {
		b := bindings[w.Entry]
		if w.Offset > b.Size {
			return fmt.Errorf("entry %d: write at %d past a %d byte binding", w.Entry, w.Offset, b.Size)
		}
		region := planner.BufferBinding{Buffer: b.Buffer, Offset: b.Offset + w.Offset, Size: b.Size - w.Offset}
		if err := r.Upload(region, w.Data); err != nil {
			return fmt.Errorf("entry %d: %w", w.Entry, err)
		}
		total += len(w.Data)
	}
	common.Logger().Debug("plan uploaded", "plan", plan.ID, "writes", len(writes), "bytes", total)
	return nil
}

func (r *renderer) Buffers() []*wgpu.Buffer {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*wgpu.Buffer, len(r.buffers))
	copy(out, r.buffers)
	return out
}

func (r *renderer) Arenas() []planner.Arena {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]planner.Arena, len(r.arenas))
	copy(out, r.arenas)
	return out
}

func (r *renderer) VertexLayout(key vertex.Key) (wgpu.VertexBufferLayout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if layout, ok := r.layoutCache[key]; ok {
		return layout, nil
	}

	def, err := vertex.Decode(key)
	if err != nil {
		return wgpu.VertexBufferLayout{}, err
	}
	layout, err := VertexBufferLayout(def)
	if err != nil {
		return wgpu.VertexBufferLayout{}, fmt.Errorf("vertex key %s: %w", key, err)
	}
	r.layoutCache[key] = layout
	return layout, nil
}

func (r *renderer) Backend() RendererBackend {
	return r.backend
}

func (r *renderer) Release() {
	r.mu.Lock()
	r.releaseBuffers()
	r.mu.Unlock()
	r.backend.Release()
}

// releaseBuffers frees every arena buffer. The caller holds mu.
func (r *renderer) releaseBuffers() {
	for _, b := range r.buffers {
		b.Release()
	}
	r.buffers = nil
	r.arenas = nil
}
