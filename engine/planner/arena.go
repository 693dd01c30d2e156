package planner

import (
	"github.com/Carmen-Shannon/oxy-scenepack/engine/allocation"
	"github.com/Carmen-Shannon/oxy-scenepack/engine/capacity"
)

// defaultAlignment is the offset alignment of vertex and index entries.
const defaultAlignment = 4

// Arena is one backing buffer shared by every entry of the same usage and visibility.
type Arena struct {
	Usage      allocation.Usage
	Visibility allocation.Visibility
	Size       uint64
}

type arenaKey struct {
	usage      allocation.Usage
	visibility allocation.Visibility
}

// ArenaBuilder is a BufferBuilder that packs entries into one arena per usage and
// visibility, aligning each entry to the device's offset alignment for its class.
// It allocates nothing; renderer builders use its layout to create real buffers.
type ArenaBuilder struct {
	limits capacity.HardwareLimits
	arenas []Arena
}

var _ BufferBuilder = &ArenaBuilder{}

// NewArenaBuilder creates an arena builder for the given device limits.
func NewArenaBuilder(limits capacity.HardwareLimits) *ArenaBuilder {
	return &ArenaBuilder{limits: limits}
}

// Alignment returns the offset alignment entries of the given usage need.
func (b *ArenaBuilder) Alignment(u allocation.Usage) uint64 {
	var a uint64
	switch u {
	case allocation.UsageUniform:
		a = b.limits.MinUniformBufferOffsetAlignment
	case allocation.UsageStorage:
		a = b.limits.MinStorageBufferOffsetAlignment
	}
	if a == 0 {
		a = defaultAlignment
	}
	return a
}

// Build lays every entry out in its arena, in ledger order.
func (b *ArenaBuilder) Build(entries []allocation.Entry) ([]BufferBinding, error) {
	b.arenas = b.arenas[:0]
	index := make(map[arenaKey]int)
	bindings := make([]BufferBinding, len(entries))

	for i, e := range entries {
		k := arenaKey{usage: e.Usage, visibility: e.Visibility}
		arena, ok := index[k]
		if !ok {
			arena = len(b.arenas)
			index[k] = arena
			b.arenas = append(b.arenas, Arena{Usage: e.Usage, Visibility: e.Visibility})
		}

		offset := alignUp(b.arenas[arena].Size, b.Alignment(e.Usage))
		bindings[i] = BufferBinding{Buffer: arena, Offset: offset, Size: e.Size}
		b.arenas[arena].Size = offset + e.Size
	}
	return bindings, nil
}

// Arenas returns the arenas laid out by the last Build call.
func (b *ArenaBuilder) Arenas() []Arena {
	out := make([]Arena, len(b.arenas))
	copy(out, b.arenas)
	return out
}

func alignUp(n, align uint64) uint64 {
	if align <= 1 {
		return n
	}
	return (n + align - 1) / align * align
}
