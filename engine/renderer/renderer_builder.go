package renderer

import (
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/vertex"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithForceSoftwareRenderer forces WGPU to use a CPU/software fallback adapter instead of
// hardware GPU acceleration. This requires a software Vulkan ICD to be installed on the system
// (e.g. SwiftShader or lavapipe). Useful on CI machines without a GPU.
//
// Parameters:
//   - force: true to force the software fallback adapter, false to use hardware (default)
//
// Returns:
//   - RendererBuilderOption: a function that applies the force software renderer option to a renderer
func WithForceSoftwareRenderer(force bool) RendererBuilderOption {
	return func(r *renderer) {
		r.forceFallbackAdapter = force
	}
}

// WithPowerPreference selects between integrated and discrete adapters.
//
// Parameters:
//   - p: the adapter power preference
//
// Returns:
//   - RendererBuilderOption: a function that applies the power preference to a renderer
func WithPowerPreference(p PowerPreference) RendererBuilderOption {
	return func(r *renderer) {
		r.powerPreference = p
	}
}

// WithRequiredLimits requests a device with the given limits instead of the adapter's full
// limits, and reports them from Limits. Use it to plan and build against a narrower profile
// than the local adapter supports.
//
// Parameters:
//   - limits: the limits to request
//
// Returns:
//   - RendererBuilderOption: a function that applies the limits option to a renderer
func WithRequiredLimits(limits capacity.HardwareLimits) RendererBuilderOption {
	return func(r *renderer) {
		r.requiredLimits = &limits
	}
}

// WithVertexLayouts pre-builds the buffer layouts of the given vertex keys. Keys whose
// layout cannot be built are skipped and fail again on VertexLayout.
//
// Parameters:
//   - keys: the vertex keys to cache
//
// Returns:
//   - RendererBuilderOption: a function that fills the layout cache of a renderer
func WithVertexLayouts(keys ...vertex.Key) RendererBuilderOption {
	return func(r *renderer) {
		for _, k := range keys {
			def, err := vertex.Decode(k)
			if err != nil {
				continue
			}
			if layout, err := VertexBufferLayout(def); err == nil {
				r.layoutCache[k] = layout
			}
		}
	}
}
