package renderer

import (
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	"github.com/cogentcore/webgpu/wgpu"
)

// WGPULimits adapts a WebGPU limits struct to a capacity.LimitsSource.
type WGPULimits wgpu.Limits

var _ capacity.LimitsSource = WGPULimits{}

// Limits converts the WebGPU limits to planner limits.
func (l WGPULimits) Limits() capacity.HardwareLimits {
	return LimitsFromWGPU(wgpu.Limits(l))
}

// LimitsFromWGPU extracts the planner's limits from a WebGPU limits struct.
//
// Parameters:
//   - l: the WebGPU limits
//
// Returns:
//   - capacity.HardwareLimits: the planner limits
func LimitsFromWGPU(l wgpu.Limits) capacity.HardwareLimits {
	return capacity.HardwareLimits{
		MaxSampledImagesPerStage:        l.MaxSampledTexturesPerShaderStage,
		MaxUniformBufferRange:           l.MaxUniformBufferBindingSize,
		MaxStorageBufferRange:           l.MaxStorageBufferBindingSize,
		MaxStorageBuffersPerStage:       l.MaxStorageBuffersPerShaderStage,
		MaxUniformBuffersPerStage:       l.MaxUniformBuffersPerShaderStage,
		MinUniformBufferOffsetAlignment: uint64(l.MinUniformBufferOffsetAlignment),
		MinStorageBufferOffsetAlignment: uint64(l.MinStorageBufferOffsetAlignment),
	}
}

// applyLimits writes the planner's limits over a WebGPU limits struct, leaving the
// fields the planner does not track untouched.
func applyLimits(base wgpu.Limits, h capacity.HardwareLimits) wgpu.Limits {
	base.MaxSampledTexturesPerShaderStage = h.MaxSampledImagesPerStage
	base.MaxUniformBufferBindingSize = h.MaxUniformBufferRange
	base.MaxStorageBufferBindingSize = h.MaxStorageBufferRange
	base.MaxStorageBuffersPerShaderStage = h.MaxStorageBuffersPerStage
	base.MaxUniformBuffersPerShaderStage = h.MaxUniformBuffersPerStage
	if h.MinUniformBufferOffsetAlignment != 0 {
		base.MinUniformBufferOffsetAlignment = uint32(h.MinUniformBufferOffsetAlignment)
	}
	if h.MinStorageBufferOffsetAlignment != 0 {
		base.MinStorageBufferOffsetAlignment = uint32(h.MinStorageBufferOffsetAlignment)
	}
	return base
}

// BufferUsage maps an allocation usage to WebGPU buffer usage flags.
// Host-visible entries are written every frame through the queue, so every usage
// carries COPY_DST.
//
// Parameters:
//   - u: the allocation usage
//
// Returns:
//   - wgpu.BufferUsage: the buffer usage flags
func BufferUsage(u allocation.Usage) wgpu.BufferUsage {
	switch u {
	case allocation.UsageVertex:
		return wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst
	case allocation.UsageIndex:
		return wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst
	case allocation.UsageUniform:
		return wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst
	case allocation.UsageStorage:
		return wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst
	default:
		return wgpu.BufferUsageCopyDst
	}
}
