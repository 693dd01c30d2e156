// Package vulkan maps planner types onto Vulkan: device limits, buffer usage and memory
// flags, and vertex input descriptions for a packed vertex definition.
package vulkan

import (
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
	vk "github.com/goki/vulkan"
)

// PhysicalDeviceLimits adapts Vulkan device limits to a capacity.LimitsSource.
// The value must already be dereferenced.
type PhysicalDeviceLimits vk.PhysicalDeviceLimits

var _ capacity.LimitsSource = PhysicalDeviceLimits{}

// Limits converts the Vulkan limits to planner limits.
func (l PhysicalDeviceLimits) Limits() capacity.HardwareLimits {
	return capacity.HardwareLimits{
		MaxSampledImagesPerStage:        l.MaxPerStageDescriptorSampledImages,
		MaxUniformBufferRange:           uint64(l.MaxUniformBufferRange),
		MaxStorageBufferRange:           uint64(l.MaxStorageBufferRange),
		MaxStorageBuffersPerStage:       l.MaxPerStageDescriptorStorageBuffers,
		MaxUniformBuffersPerStage:       l.MaxPerStageDescriptorUniformBuffers,
		MinUniformBufferOffsetAlignment: uint64(l.MinUniformBufferOffsetAlignment),
		MinStorageBufferOffsetAlignment: uint64(l.MinStorageBufferOffsetAlignment),
	}
}

// DeviceLimits queries a physical device's limits.
//
// Parameters:
//   - device: the physical device
//
// Returns:
//   - PhysicalDeviceLimits: the dereferenced device limits
func DeviceLimits(device vk.PhysicalDevice) PhysicalDeviceLimits {
	properties := vk.PhysicalDeviceProperties{}
	vk.GetPhysicalDeviceProperties(device, &properties)
	properties.Deref()
	properties.Limits.Deref()
	return PhysicalDeviceLimits(properties.Limits)
}

// BufferUsageFlags maps an allocation usage to Vulkan buffer usage flags. Every usage
// is a transfer destination so staging copies and host writes can fill it.
func BufferUsageFlags(u allocation.Usage) vk.BufferUsageFlags {
	var bit vk.BufferUsageFlagBits
	switch u {
	case allocation.UsageVertex:
		bit = vk.BufferUsageVertexBufferBit
	case allocation.UsageIndex:
		bit = vk.BufferUsageIndexBufferBit
	case allocation.UsageUniform:
		bit = vk.BufferUsageUniformBufferBit
	case allocation.UsageStorage:
		bit = vk.BufferUsageStorageBufferBit
	}
	return vk.BufferUsageFlags(bit | vk.BufferUsageTransferDstBit)
}

// MemoryPropertyFlags maps an allocation visibility to the memory properties its
// backing allocation needs.
func MemoryPropertyFlags(v allocation.Visibility) vk.MemoryPropertyFlags {
	if v == allocation.VisibilityHostVisible {
		return vk.MemoryPropertyFlags(vk.MemoryPropertyHostVisibleBit | vk.MemoryPropertyHostCoherentBit)
	}
	return vk.MemoryPropertyFlags(vk.MemoryPropertyDeviceLocalBit)
}
