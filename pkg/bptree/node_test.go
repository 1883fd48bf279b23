package bptree

import "testing"

func TestNodeAccessorsRoundTrip(t *testing.T) {
	store := &NodeStore{}
	h, ok := store.Allocate()
	if !ok {
		t.Fatalf("failed to allocate block")
	}
	words := store.words(h)

	setNumKeys(words, 3)
	if got := numKeys(words); got != 3 {
		t.Errorf("numKeys = %d, want 3", got)
	}

	setKeyAt(words, 0, 10)
	setKeyAt(words, 1, 20)
	setKeyAt(words, 2, 30)
	for i, want := range []uint64{10, 20, 30} {
		if got := keyAt(words, i); got != want {
			t.Errorf("keyAt(%d) = %d, want %d", i, got, want)
		}
	}

	setFieldAt(words, 1, 999)
	if got := fieldAt(words, 1); got != 999 {
		t.Errorf("fieldAt(1) = %d, want 999", got)
	}

	setNextLeaf(words, nullHandle)
	if got := nextLeaf(words); got != nullHandle {
		t.Errorf("nextLeaf = %d, want nullHandle", got)
	}
	sibling, ok := store.Allocate()
	if !ok {
		t.Fatalf("failed to allocate sibling block")
	}
	setNextLeaf(words, sibling)
	if got := nextLeaf(words); got != sibling {
		t.Errorf("nextLeaf = %d, want %d", got, sibling)
	}
}

func TestNodeStoreFreeListReuse(t *testing.T) {
	store := &NodeStore{}
	a, ok := store.Allocate()
	if !ok {
		t.Fatalf("allocate a failed")
	}
	b, ok := store.Allocate()
	if !ok {
		t.Fatalf("allocate b failed")
	}
	if store.BlockCount() != 2 {
		t.Fatalf("BlockCount = %d, want 2", store.BlockCount())
	}
	store.Free(a)
	if store.BlockCount() != 1 {
		t.Fatalf("BlockCount after free = %d, want 1", store.BlockCount())
	}
	c, ok := store.Allocate()
	if !ok {
		t.Fatalf("allocate c failed")
	}
	if store.BlockCount() != 2 {
		t.Fatalf("BlockCount after reallocate = %d, want 2", store.BlockCount())
	}
	// c should reuse a's freed slot, not alias b's live block.
	if c == b {
		t.Fatalf("reallocated handle collides with a live block")
	}
}
