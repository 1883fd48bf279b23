// pkg/bptree/cursor.go
package bptree

// Cursor is a stable reference to a (leaf, position) record that
// survives inserts, deletes, splits, rotations, and merges elsewhere in
// the tree. Every Tree keeps a singly-linked registry of its live
// cursors so mutations can walk the list and fix up positions; naming
// below (First, Seek-equivalent FindCursor, Next, Get/Value access,
// Close) follows pkg/btree/cursor.go, though the underlying mechanism
// here is registry-and-invalidation rather than a page-pin stack, since
// this tree holds no page references to release.
type Cursor struct {
	tree    *Tree
	next    *Cursor
	leaf    handle
	pos     int
	invalid bool
}

func (t *Tree) makeCursor(leaf handle, pos int) *Cursor {
	c := &Cursor{tree: t, next: t.cursors, leaf: leaf, pos: pos}
	t.cursors = c
	t.numCursors++
	return c
}

// First returns a cursor on the leftmost record in key order.
func (t *Tree) First() *Cursor {
	return t.makeCursor(t.leaves, 0)
}

// FindCursor returns a cursor positioned at k, or at the position k
// would occupy if it were inserted (so Get on the result may report
// ErrNotFound when k is absent).
func (t *Tree) FindCursor(k uint64) *Cursor {
	t.ensurePath()
	leaf := t.findLeaf(k)
	words := t.store.words(leaf)
	i := leafScan(words, numKeys(words), k)
	return t.makeCursor(leaf, i)
}

// Tree returns the cursor's owning tree, or nil if the tree has been
// closed.
func (c *Cursor) Tree() *Tree {
	return c.tree
}

// Get reports the key and value at the cursor's current position, or
// ErrNotFound if the cursor is invalidated or past the end of the tree.
// Both bounds — invalid/nil-leaf and pos within the leaf's live key
// count — are checked before any slot is read; the original find()
// skips the second check and can read one slot past the end of a leaf.
func (c *Cursor) Get() (key, value uint64, err error) {
	if c.invalid || c.leaf == nullHandle {
		return 0, 0, ErrNotFound
	}
	words := c.tree.store.words(c.leaf)
	if c.pos >= numKeys(words) {
		return 0, 0, ErrNotFound
	}
	return keyAt(words, c.pos), fieldAt(words, c.pos), nil
}

// Update replaces the value at the cursor's current position in place.
func (c *Cursor) Update(value uint64) error {
	if c.invalid || c.leaf == nullHandle {
		return ErrNotFound
	}
	words := c.tree.store.words(c.leaf)
	if c.pos >= numKeys(words) {
		return ErrNotFound
	}
	setFieldAt(words, c.pos, value)
	return nil
}

// Next advances the cursor to the following record in key order. A
// cursor sitting on an invalidated position (its record was deleted)
// clears the flag and stays put, now denoting the record that slid into
// that slot, rather than skipping it. Next past the last record returns
// ErrNotFound and leaves the cursor parked at the tree's end.
func (c *Cursor) Next() error {
	if c.leaf == nullHandle {
		return ErrNotFound
	}
	if c.invalid {
		c.invalid = false
	} else {
		c.pos++
	}
	words := c.tree.store.words(c.leaf)
	if c.pos < numKeys(words) {
		return nil
	}
	nxt := nextLeaf(words)
	c.leaf = nxt
	c.pos = 0
	if nxt == nullHandle {
		return ErrNotFound
	}
	return nil
}

// Close unregisters the cursor from its tree. The source's free_cursor
// decrements the tree's cursor count after the cursor has already been
// freed, a use-after-free on the tree handle when no other cursor keeps
// it alive; Go's cursor has no manual free step, so there's no
// equivalent hazard, but Close still decrements the count and detaches
// the cursor from its owner before clearing the owner reference, not
// after, to keep the order of operations the intended one.
func (c *Cursor) Close() {
	t := c.tree
	if t == nil {
		return
	}
	pp := &t.cursors
	for *pp != nil {
		if *pp == c {
			*pp = c.next
			break
		}
		pp = &(*pp).next
	}
	t.numCursors--
	c.tree = nil
}

// fixCursorsOnInsert bumps every cursor on leaf at or past slot i by one,
// keeping it pointed at the same record after an insertion shifts the
// suffix right. A cursor invalidated at slot i is not bumped: the new
// record refills its slot, so the flag is cleared and the cursor now
// names that record.
func (t *Tree) fixCursorsOnInsert(leaf handle, i int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == leaf && c.invalid && c.pos == i {
			c.invalid = false
		} else if c.leaf == leaf && c.pos >= i {
			c.pos++
		}
	}
}

// fixCursorsOnSplit applies the same insertion bump (including the
// refill of an invalidated cursor at slot i), then relocates any cursor
// that landed at or past lhalf onto the new sibling.
func (t *Tree) fixCursorsOnSplit(leaf, sibling handle, i int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == leaf {
			if c.invalid && c.pos == i {
				c.invalid = false
			} else if c.pos >= i {
				c.pos++
			}
			if c.pos >= lhalf {
				c.leaf = sibling
				c.pos -= lhalf
			}
		}
	}
}

// fixCursorsOnDelete invalidates a cursor sitting exactly on the removed
// slot i and shifts cursors past it left by one.
func (t *Tree) fixCursorsOnDelete(leaf handle, i int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == leaf {
			switch {
			case c.pos == i:
				c.invalid = true
			case c.pos > i:
				c.pos--
			}
		}
	}
}

// fixCursorsRotateLeft follows one record moving from rpeer's front into
// leaf's back during a left rotation. leafNewCount is leaf's key count
// after the rotation.
func (t *Tree) fixCursorsRotateLeft(leaf, rpeer handle, leafNewCount int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == rpeer {
			if c.pos == 0 {
				c.leaf = leaf
				c.pos = leafNewCount - 1
			} else {
				c.pos--
			}
		}
	}
}

// fixCursorsRotateRight follows one record moving from lpeer's back into
// leaf's front during a right rotation. lpeerNewCount is lpeer's key
// count after the rotation, which also equals the moved record's
// original position.
func (t *Tree) fixCursorsRotateRight(lpeer, leaf handle, lpeerNewCount int) {
	for c := t.cursors; c != nil; c = c.next {
		switch {
		case c.leaf == leaf:
			c.pos++
		case c.leaf == lpeer && c.pos == lpeerNewCount:
			c.leaf = leaf
			c.pos = 0
		}
	}
}

// fixCursorsMerge follows every cursor on peer onto leaf, offsetting by
// leaf's key count from just before the merge. The source's equivalent
// routine calls printf on every merge as an unconditional debug trace;
// that never belonged on the default mutation path and is dropped here.
func (t *Tree) fixCursorsMerge(leaf, peer handle, leafPreMergeCount int) {
	for c := t.cursors; c != nil; c = c.next {
		if c.leaf == peer {
			c.leaf = leaf
			c.pos += leafPreMergeCount
		}
	}
}
