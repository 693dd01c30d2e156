// Package allocation holds the append-only ledger of buffer allocation requests and
// the bucket allocator that spreads logical items over fixed-capacity blocks.
package allocation

import "fmt"

// Usage is the buffer class an allocation request is destined for.
type Usage uint8

const (
	UsageVertex Usage = iota
	UsageIndex
	UsageUniform
	UsageStorage
)

func (u Usage) String() string {
	switch u {
	case UsageVertex:
		return "vertex"
	case UsageIndex:
		return "index"
	case UsageUniform:
		return "uniform"
	case UsageStorage:
		return "storage"
	default:
		return fmt.Sprintf("usage(%d)", uint8(u))
	}
}

// Visibility is the memory visibility the backing buffer needs.
type Visibility uint8

const (
	// VisibilityDeviceLocal is device memory filled through staging copies.
	VisibilityDeviceLocal Visibility = iota
	// VisibilityHostVisible is device memory the host writes directly every frame.
	VisibilityHostVisible
)

func (v Visibility) String() string {
	switch v {
	case VisibilityDeviceLocal:
		return "device-local"
	case VisibilityHostVisible:
		return "host-visible"
	default:
		return fmt.Sprintf("visibility(%d)", uint8(v))
	}
}

// Entry is one pending allocation request.
type Entry struct {
	Usage       Usage
	Visibility  Visibility
	Size        uint64
	ElementSize uint64
}

// Ledger is an ordered, append-only list of allocation requests for one planning pass.
// Indices returned by Insert are stable for the ledger's lifetime.
//
// A Ledger is not safe for concurrent use.
type Ledger struct {
	entries []Entry
}

// NewLedger creates an empty ledger.
//
// Returns:
//   - *Ledger: the new ledger
func NewLedger() *Ledger {
	return &Ledger{}
}

// Insert appends an entry to the ledger.
//
// Parameters:
//   - e: the allocation request
//
// Returns:
//   - int: the ledger length before the append, which is the entry's index
func (l *Ledger) Insert(e Entry) int {
	idx := len(l.entries)
	l.entries = append(l.entries, e)
	return idx
}

// Len returns the number of entries in the ledger.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entry returns the entry at index i.
//
// Parameters:
//   - i: the ledger index
//
// Returns:
//   - Entry: the entry
//   - bool: false if i is out of range
func (l *Ledger) Entry(i int) (Entry, bool) {
	if i < 0 || i >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[i], true
}

// Snapshot returns a copy of every entry in insertion order. The ledger is not modified.
//
// Returns:
//   - []Entry: the copied entries
func (l *Ledger) Snapshot() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// TotalBytes sums the size of every entry with the given usage.
func (l *Ledger) TotalBytes(u Usage) uint64 {
	var total uint64
	for _, e := range l.entries {
		if e.Usage == u {
			total += e.Size
		}
	}
	return total
}
