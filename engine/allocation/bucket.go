package allocation

import (
	"fmt"
	"sort"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

// Slot addresses one logical item inside a bucket container. The zero value is the
// reserved default slot.
type Slot struct {
	index uint32
	set   bool
}

// DefaultSlot returns the reserved default slot, always bucket 0 offset 0.
func DefaultSlot() Slot {
	return Slot{}
}

// IndexSlot returns the slot of logical item i.
func IndexSlot(i uint32) Slot {
	return Slot{index: i, set: true}
}

// IsDefault reports whether the slot is the reserved default slot.
func (s Slot) IsDefault() bool {
	return !s.set
}

// Index returns the logical item index and false for the default slot.
func (s Slot) Index() (uint32, bool) {
	return s.index, s.set
}

func (s Slot) String() string {
	if !s.set {
		return "default"
	}
	return fmt.Sprintf("#%d", s.index)
}

// Container is a set of fixed-capacity buckets, one ledger entry each.
// It always holds at least one bucket.
type Container struct {
	Count    uint32
	Capacity uint32
	Buckets  []int
}

// Location is where a slot lives inside a container.
type Location struct {
	Bucket int
	Ledger int
	Offset uint32
}

// Partition spreads count items over buckets of the given capacity, inserting one ledger
// entry per bucket. Each entry is sized capacity*template.ElementSize and copies the
// template's usage, visibility and element size. A count of zero still produces one bucket.
//
// Parameters:
//   - l: the ledger that receives the bucket entries
//   - count: the number of logical items
//   - capacity: the number of items one bucket holds, must be non-zero
//   - template: the usage, visibility and element size shared by every bucket
//
// Returns:
//   - Container: the buckets in insertion order
//   - error: error if capacity is zero
func Partition(l *Ledger, count, capacity uint32, template Entry) (Container, error) {
	if capacity == 0 {
		return Container{}, fmt.Errorf("%w: bucket capacity is zero", common.ErrCapacityExceeded)
	}

	full := count / capacity
	remainder := count % capacity
	buckets := int(full)
	if remainder > 0 {
		buckets++
	}
	if buckets == 0 {
		buckets = 1
	}

	c := Container{
		Count:    count,
		Capacity: capacity,
		Buckets:  make([]int, 0, buckets),
	}
	entry := template
	entry.Size = uint64(capacity) * template.ElementSize
	for range buckets {
		c.Buckets = append(c.Buckets, l.Insert(entry))
	}
	return c, nil
}

// PartitionReserved partitions count items plus the reserved default slot, so every
// IndexSlot(i) with i < count is locatable.
//
// Parameters:
//   - l: the ledger that receives the bucket entries
//   - count: the number of logical items, excluding the default slot
//   - capacity: the number of items one bucket holds, must be non-zero
//   - template: the usage, visibility and element size shared by every bucket
//
// Returns:
//   - Container: the buckets in insertion order, Count excludes the default slot
//   - error: error if capacity is zero
func PartitionReserved(l *Ledger, count, capacity uint32, template Entry) (Container, error) {
	c, err := Partition(l, count+1, capacity, template)
	if err != nil {
		return Container{}, err
	}
	c.Count = count
	return c, nil
}

// Locate maps a slot to its bucket, ledger index and offset within the bucket.
// Logical item i occupies internal position i+1; position 0 belongs to the default slot.
//
// Parameters:
//   - s: the slot to resolve
//
// Returns:
//   - Location: the bucket, ledger index and intra-bucket offset
//   - error: common.ErrSlotOutOfRange if the slot lies past the last bucket
func (c Container) Locate(s Slot) (Location, error) {
	if len(c.Buckets) == 0 || c.Capacity == 0 {
		return Location{}, fmt.Errorf("%w: empty container", common.ErrSlotOutOfRange)
	}

	i, ok := s.Index()
	if !ok {
		return Location{Bucket: 0, Ledger: c.Buckets[0], Offset: 0}, nil
	}

	shifted := uint64(i) + 1
	bucket := shifted / uint64(c.Capacity)
	if bucket >= uint64(len(c.Buckets)) {
		return Location{}, fmt.Errorf("%w: %s needs bucket %d of %d", common.ErrSlotOutOfRange, s, bucket, len(c.Buckets))
	}
	return Location{
		Bucket: int(bucket),
		Ledger: c.Buckets[bucket],
		Offset: uint32(shifted % uint64(c.Capacity)),
	}, nil
}

// BucketMatch lists the requested slots that live in one bucket.
type BucketMatch struct {
	Bucket  int
	Ledger  int
	Slots   []Slot
	Offsets []uint32
	Count   int
}

// Matches groups slots by the bucket that holds them. Buckets with no matching slot are
// omitted; matches are ordered by bucket and keep the request order within a bucket.
//
// Parameters:
//   - slots: the slots to look up
//
// Returns:
//   - []BucketMatch: one match per bucket that holds at least one slot
//   - error: common.ErrSlotOutOfRange if any slot lies past the last bucket
func (c Container) Matches(slots []Slot) ([]BucketMatch, error) {
	byBucket := make(map[int]*BucketMatch)
	for _, s := range slots {
		loc, err := c.Locate(s)
		if err != nil {
			return nil, err
		}
		m, ok := byBucket[loc.Bucket]
		if !ok {
			m = &BucketMatch{Bucket: loc.Bucket, Ledger: loc.Ledger}
			byBucket[loc.Bucket] = m
		}
		m.Slots = append(m.Slots, s)
		m.Offsets = append(m.Offsets, loc.Offset)
		m.Count++
	}

	out := make([]BucketMatch, 0, len(byBucket))
	for _, m := range byBucket {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out, nil
}

// Reserved returns the number of logical slots the container's buckets hold in total.
func (c Container) Reserved() uint64 {
	return uint64(len(c.Buckets)) * uint64(c.Capacity)
}
