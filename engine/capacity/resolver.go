package capacity

import (
	"errors"
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

var errZeroElementSize = errors.New("element byte size is zero")

// Settings is the derived layout of one resource block.
type Settings struct {
	Usage        UsageClass
	ElementRange uint32
	MinAlignment uint64
	TotalSize    uint64
}

// ChooseUsage picks the storage class when the device exposes at least one per-stage
// storage buffer and its uniform range is smaller than its storage range. Otherwise it
// falls back to the uniform class.
//
// Parameters:
//   - limits: the device limits
//
// Returns:
//   - UsageClass: the chosen class
//   - error: common.ErrNoSuitableBufferClass if the fallback has no per-stage uniform slot
func ChooseUsage(limits HardwareLimits) (UsageClass, error) {
	if limits.MaxStorageBuffersPerStage >= 1 && limits.MaxUniformBufferRange < limits.MaxStorageBufferRange {
		return UsageStorage, nil
	}
	if limits.MaxUniformBuffersPerStage == 0 {
		return UsageUniform, common.ErrNoSuitableBufferClass
	}
	return UsageUniform, nil
}

// ElementRange returns how many elements one block may hold: the smaller of the sampler
// budget divided by the samplers each element binds and the class's byte range divided by
// the element size. An itemsPerElement of zero means elements bind no samplers.
//
// Parameters:
//   - usage: the buffer class of the block
//   - itemsPerElement: sampler slots each element consumes
//   - elementByteSize: the byte size of one element record
//   - limits: the device limits
//
// Returns:
//   - uint32: the element range, possibly 0
//   - error: error if elementByteSize is zero
func ElementRange(usage UsageClass, itemsPerElement uint32, elementByteSize uint64, limits HardwareLimits) (uint32, error) {
	if elementByteSize == 0 {
		return 0, errZeroElementSize
	}

	byteBound := limits.RangeFor(usage) / elementByteSize
	if byteBound > math.MaxUint32 {
		byteBound = math.MaxUint32
	}
	if itemsPerElement == 0 {
		return uint32(byteBound), nil
	}

	samplerBound := limits.MaxSampledImagesPerStage / itemsPerElement
	return common.MinOf(samplerBound, uint32(byteBound)), nil
}

// ComputeSettings combines ElementRange with the class's alignment and total block size.
//
// Parameters:
//   - usage: the buffer class of the block
//   - itemsPerElement: sampler slots each element consumes
//   - elementByteSize: the byte size of one element record
//   - limits: the device limits
//
// Returns:
//   - Settings: the block settings
//   - error: error if elementByteSize is zero
func ComputeSettings(usage UsageClass, itemsPerElement uint32, elementByteSize uint64, limits HardwareLimits) (Settings, error) {
	n, err := ElementRange(usage, itemsPerElement, elementByteSize, limits)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to compute %s settings: %w", usage, err)
	}
	return Settings{
		Usage:        usage,
		ElementRange: n,
		MinAlignment: limits.AlignmentFor(usage),
		TotalSize:    uint64(n) * elementByteSize,
	}, nil
}

// Resolver computes block settings against one limits snapshot, optionally holding back
// sampler slots for global bindings.
type Resolver interface {
	// Limits returns the limits snapshot with reserved samplers already deducted.
	//
	// Returns:
	//   - HardwareLimits: the effective limits
	Limits() HardwareLimits

	// SamplerBudget returns the sampler slots left after the reservation.
	//
	// Returns:
	//   - uint32: the remaining per-stage sampled image slots
	SamplerBudget() uint32

	// ChooseUsage picks the buffer class for resource blocks.
	//
	// Returns:
	//   - UsageClass: the chosen class
	//   - error: common.ErrNoSuitableBufferClass if no class is usable
	ChooseUsage() (UsageClass, error)

	// Settings resolves the buffer class and derives the block settings for an element type.
	//
	// Parameters:
	//   - itemsPerElement: sampler slots each element consumes
	//   - elementByteSize: the byte size of one element record
	//
	// Returns:
	//   - Settings: the block settings
	//   - error: error if no class is usable or elementByteSize is zero
	Settings(itemsPerElement uint32, elementByteSize uint64) (Settings, error)
}

type resolverImpl struct {
	limits           HardwareLimits
	reservedSamplers uint32
}

var _ Resolver = &resolverImpl{}

// NewResolver snapshots the limits of src and applies the given options.
//
// Parameters:
//   - src: the device limits source
//   - options: resolver options
//
// Returns:
//   - Resolver: the resolver
func NewResolver(src LimitsSource, options ...ResolverBuilderOption) Resolver {
	r := &resolverImpl{}
	for _, opt := range options {
		opt(r)
	}

	r.limits = src.Limits()
	r.limits.MaxSampledImagesPerStage = common.SaturatingSub(r.limits.MaxSampledImagesPerStage, r.reservedSamplers)
	return r
}

func (r *resolverImpl) Limits() HardwareLimits {
	return r.limits
}

func (r *resolverImpl) SamplerBudget() uint32 {
	return r.limits.MaxSampledImagesPerStage
}

func (r *resolverImpl) ChooseUsage() (UsageClass, error) {
	return ChooseUsage(r.limits)
}

func (r *resolverImpl) Settings(itemsPerElement uint32, elementByteSize uint64) (Settings, error) {
	usage, err := r.ChooseUsage()
	if err != nil {
		return Settings{}, err
	}
	return ComputeSettings(usage, itemsPerElement, elementByteSize, r.limits)
}
