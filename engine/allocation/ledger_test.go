package allocation

import "testing"

func TestLedgerInsertReturnsPriorLength(t *testing.T) {
	l := NewLedger()
	for want := range 5 {
		got := l.Insert(Entry{Usage: UsageVertex, Size: uint64(want * 10)})
		if got != want {
			t.Fatalf("insert %d: got index %d", want, got)
		}
		if l.Len() != want+1 {
			t.Fatalf("len: got %d, want %d", l.Len(), want+1)
		}
	}
}

func TestLedgerSnapshotIsCopy(t *testing.T) {
	l := NewLedger()
	l.Insert(Entry{Usage: UsageIndex, Size: 6, ElementSize: 2})
	l.Insert(Entry{Usage: UsageUniform, Size: 64, ElementSize: 64})

	snap := l.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("snapshot len: got %d, want 2", len(snap))
	}
	snap[0].Size = 999

	e, ok := l.Entry(0)
	if !ok || e.Size != 6 {
		t.Errorf("ledger mutated through snapshot: %+v", e)
	}
	if snap[1].Usage != UsageUniform {
		t.Errorf("order: got %s, want uniform", snap[1].Usage)
	}
}

func TestLedgerEntryOutOfRange(t *testing.T) {
	l := NewLedger()
	if _, ok := l.Entry(0); ok {
		t.Error("empty ledger returned an entry")
	}
	if _, ok := l.Entry(-1); ok {
		t.Error("negative index returned an entry")
	}
}

func TestLedgerTotalBytes(t *testing.T) {
	l := NewLedger()
	l.Insert(Entry{Usage: UsageVertex, Size: 100})
	l.Insert(Entry{Usage: UsageIndex, Size: 12})
	l.Insert(Entry{Usage: UsageVertex, Size: 50})

	if got := l.TotalBytes(UsageVertex); got != 150 {
		t.Errorf("vertex: got %d, want 150", got)
	}
	if got := l.TotalBytes(UsageStorage); got != 0 {
		t.Errorf("storage: got %d, want 0", got)
	}
}
