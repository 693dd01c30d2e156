package allocation

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-scenepack/common"
)

func TestPartitionBucketCount(t *testing.T) {
	tests := []struct {
		name     string
		capacity uint32
		count    uint32
		want     int
	}{
		{"empty still gets one", 16, 0, 1},
		{"under one bucket", 3, 2, 1},
		{"spills into second", 3, 4, 2},
		{"exact multiple", 2, 4, 2},
		{"exact single", 5, 5, 1},
		{"many", 7, 50, 8},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger()
			c, err := Partition(l, tc.count, tc.capacity, Entry{Usage: UsageStorage, ElementSize: 4})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(c.Buckets) != tc.want {
				t.Errorf("buckets: got %d, want %d", len(c.Buckets), tc.want)
			}
			if c.Reserved() < uint64(tc.count) {
				t.Errorf("reserved %d < count %d", c.Reserved(), tc.count)
			}
			if l.Len() != tc.want {
				t.Errorf("ledger len: got %d, want %d", l.Len(), tc.want)
			}
		})
	}
}

func TestPartitionEntriesFollowTemplate(t *testing.T) {
	l := NewLedger()
	l.Insert(Entry{Usage: UsageVertex, Size: 1})

	template := Entry{Usage: UsageUniform, Visibility: VisibilityHostVisible, ElementSize: 64}
	c, err := Partition(l, 5, 2, template)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{1, 2, 3}
	for i, idx := range c.Buckets {
		if idx != want[i] {
			t.Errorf("bucket %d: got ledger %d, want %d", i, idx, want[i])
		}
		e, _ := l.Entry(idx)
		if e.Size != 128 || e.ElementSize != 64 || e.Usage != UsageUniform || e.Visibility != VisibilityHostVisible {
			t.Errorf("bucket %d entry: %+v", i, e)
		}
	}
}

func TestPartitionZeroCapacity(t *testing.T) {
	if _, err := Partition(NewLedger(), 3, 0, Entry{}); err == nil {
		t.Error("expected error for zero capacity")
	}
}

func TestLocate(t *testing.T) {
	l := NewLedger()
	l.Insert(Entry{})
	c, err := Partition(l, 9, 4, Entry{ElementSize: 8})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		slot Slot
		want Location
	}{
		{"default", DefaultSlot(), Location{Bucket: 0, Ledger: 1, Offset: 0}},
		{"first item", IndexSlot(0), Location{Bucket: 0, Ledger: 1, Offset: 1}},
		{"end of bucket 0", IndexSlot(2), Location{Bucket: 0, Ledger: 1, Offset: 3}},
		{"start of bucket 1", IndexSlot(3), Location{Bucket: 1, Ledger: 2, Offset: 0}},
		{"bucket 2", IndexSlot(8), Location{Bucket: 2, Ledger: 3, Offset: 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := c.Locate(tc.slot)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestLocateOutOfRange(t *testing.T) {
	c, _ := Partition(NewLedger(), 4, 4, Entry{})
	// item 3 shifts to position 4, which needs a second bucket
	if _, err := c.Locate(IndexSlot(3)); !errors.Is(err, common.ErrSlotOutOfRange) {
		t.Errorf("got %v, want ErrSlotOutOfRange", err)
	}
}

func TestPartitionReservedCoversEveryItem(t *testing.T) {
	for _, capacity := range []uint32{1, 2, 3, 4, 16} {
		for count := uint32(0); count < 20; count++ {
			c, err := PartitionReserved(NewLedger(), count, capacity, Entry{})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c.Count != count {
				t.Fatalf("count: got %d, want %d", c.Count, count)
			}
			for i := range count {
				if _, err := c.Locate(IndexSlot(i)); err != nil {
					t.Errorf("B=%d N=%d item %d: %v", capacity, count, i, err)
				}
			}
		}
	}
}

func TestMatches(t *testing.T) {
	// 8 positions over 3 buckets: [default 0 1] [2 3 4] [5 6]
	c, _ := PartitionReserved(NewLedger(), 7, 3, Entry{})
	slots := []Slot{IndexSlot(5), DefaultSlot(), IndexSlot(0), IndexSlot(6)}

	got, err := c.Matches(slots)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches: got %d buckets, want 2", len(got))
	}

	if got[0].Bucket != 0 || got[0].Count != 2 {
		t.Errorf("bucket 0: got %+v", got[0])
	}
	if !got[0].Slots[0].IsDefault() || got[0].Offsets[1] != 1 {
		t.Errorf("bucket 0 order: got %v %v", got[0].Slots, got[0].Offsets)
	}
	if got[1].Bucket != 2 || got[1].Count != 2 {
		t.Errorf("bucket 2: got %+v", got[1])
	}
	if got[1].Offsets[0] != 0 || got[1].Offsets[1] != 1 {
		t.Errorf("bucket 2 offsets: got %v, want [0 1]", got[1].Offsets)
	}
}

func TestMatchesOutOfRange(t *testing.T) {
	c, _ := PartitionReserved(NewLedger(), 2, 4, Entry{})
	if _, err := c.Matches([]Slot{IndexSlot(10)}); !errors.Is(err, common.ErrSlotOutOfRange) {
		t.Errorf("got %v, want ErrSlotOutOfRange", err)
	}
}
