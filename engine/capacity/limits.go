// Package capacity resolves, from device limits, which buffer class a resource block
// uses and how many elements one block may hold.
package capacity

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
)

// HardwareLimits is the subset of device limits the planner depends on.
// It is queried once from the device before planning.
type HardwareLimits struct {
	MaxSampledImagesPerStage        uint32
	MaxUniformBufferRange           uint64
	MaxStorageBufferRange           uint64
	MaxStorageBuffersPerStage       uint32
	MaxUniformBuffersPerStage       uint32
	MinUniformBufferOffsetAlignment uint64
	MinStorageBufferOffsetAlignment uint64
}

// LimitsSource provides device limits to the planner.
type LimitsSource interface {
	// Limits returns the device limits.
	//
	// Returns:
	//   - HardwareLimits: the limits snapshot
	Limits() HardwareLimits
}

// Limits lets a plain HardwareLimits value act as its own LimitsSource.
func (h HardwareLimits) Limits() HardwareLimits {
	return h
}

var _ LimitsSource = HardwareLimits{}

// UsageClass is the buffer class a resource block is bound as.
type UsageClass uint8

const (
	UsageUniform UsageClass = iota
	UsageStorage
)

func (u UsageClass) String() string {
	switch u {
	case UsageUniform:
		return "uniform"
	case UsageStorage:
		return "storage"
	default:
		return fmt.Sprintf("class(%d)", uint8(u))
	}
}

// Usage returns the ledger usage tag for the class.
func (u UsageClass) Usage() allocation.Usage {
	if u == UsageStorage {
		return allocation.UsageStorage
	}
	return allocation.UsageUniform
}

// RangeFor returns the byte range ceiling of a single bound buffer of the given class.
func (h HardwareLimits) RangeFor(u UsageClass) uint64 {
	if u == UsageStorage {
		return h.MaxStorageBufferRange
	}
	return h.MaxUniformBufferRange
}

// AlignmentFor returns the minimum dynamic offset alignment of the given class.
func (h HardwareLimits) AlignmentFor(u UsageClass) uint64 {
	if u == UsageStorage {
		return h.MinStorageBufferOffsetAlignment
	}
	return h.MinUniformBufferOffsetAlignment
}
