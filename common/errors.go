package common

import (
	"errors"
	"fmt"
)

// Planning errors. Every failure aborts the whole load pass; callers discard the
// partially built ledger and retry only after changing the scene or the limits.
var (
	// ErrUnsupportedFormat is returned when an accessor's (kind, component count) pair
	// has no entry in the attribute format catalog.
	ErrUnsupportedFormat = errors.New("unsupported attribute format")

	// ErrMissingBufferView is returned when an accessor that must be copied has no buffer view.
	ErrMissingBufferView = errors.New("accessor has no buffer view")

	// ErrNoSuitableBufferClass is returned when the device exposes neither a usable
	// storage buffer class nor a uniform buffer class.
	ErrNoSuitableBufferClass = errors.New("no suitable buffer class")

	// ErrCapacityExceeded is returned when required bytes or slots exceed every hardware tier.
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidEmbeddedDataLength is returned when inline buffer data is shorter than its declared length.
	ErrInvalidEmbeddedDataLength = errors.New("invalid embedded data length")

	// ErrSlotOutOfRange is returned when a slot resolves past the last bucket of a container.
	ErrSlotOutOfRange = errors.New("slot out of range")

	// ErrMissingAttribute is returned when a primitive lacks a required attribute (POSITION).
	ErrMissingAttribute = errors.New("missing required attribute")

	// ErrInvalidAccessor is returned when an accessor reference points outside the scene.
	ErrInvalidAccessor = errors.New("invalid accessor")
)

// UnsupportedFormatError names the attribute and the offending (kind, count) pair.
// It matches ErrUnsupportedFormat with errors.Is.
type UnsupportedFormatError struct {
	Attribute string
	Kind      string
	Count     int
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("%s: %s %s x%d", ErrUnsupportedFormat, e.Attribute, e.Kind, e.Count)
}

// Is reports whether target is ErrUnsupportedFormat.
func (e *UnsupportedFormatError) Is(target error) bool {
	return target == ErrUnsupportedFormat
}

// CapacityError describes which resource overflowed its hardware budget.
// It matches ErrCapacityExceeded with errors.Is.
type CapacityError struct {
	Resource  string
	Required  uint64
	Available uint64
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s requires %d, only %d available", ErrCapacityExceeded, e.Resource, e.Required, e.Available)
}

// Is reports whether target is ErrCapacityExceeded.
func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacityExceeded
}
