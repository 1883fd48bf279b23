// pkg/bptree/delete.go
package bptree

// Delete removes k, returning ErrNotFound if it is absent. Any cursor
// positioned exactly on the removed record is invalidated rather than
// silently re-pointed; cursors past it shift left by one.
func (t *Tree) Delete(k uint64) error {
	t.ensurePath()
	leaf := t.findLeaf(k)
	words := t.store.words(leaf)
	nk := numKeys(words)
	i := leafScan(words, nk, k)
	if i >= nk || keyAt(words, i) != k {
		return ErrNotFound
	}

	if nk-i-1 > 0 {
		copy(words[key0+i:key0+nk-1], words[key0+i+1:key0+nk])
		copy(words[field0+i:field0+nk-1], words[field0+i+1:field0+nk])
	}
	setNumKeys(words, nk-1)
	t.numRecs--
	t.fixCursorsOnDelete(leaf, i)

	if t.depth > 0 && nk-1 < lhalf {
		t.leafUnderflow(leaf)
	}
	return nil
}

// leafUnderflow restores the minimum-key invariant for a leaf that has
// just dropped below lhalf keys: rotate one record in from the right
// sibling if it can spare one, else from the left sibling, else merge
// with a neighbor and shrink the common ancestor that held the splitter.
func (t *Tree) leafUnderflow(leaf handle) {
	d := t.depth - 1
	parent := t.path[d].node
	pos := t.path[d].pos
	nk := t.path[d].numKeys
	pw := t.store.words(parent)

	var rpeer handle = nullHandle
	if pos < nk {
		rpeer = childAt(pw, pos+1)
		rw := t.store.words(rpeer)
		if numKeys(rw) > lhalf {
			lw := t.store.words(leaf)
			setKeyAt(lw, lhalf-1, keyAt(rw, 0))
			setFieldAt(lw, lhalf-1, fieldAt(rw, 0))
			rnk := numKeys(rw)
			copy(rw[key0:key0+rnk-1], rw[key0+1:key0+rnk])
			copy(rw[field0:field0+rnk-1], rw[field0+1:field0+rnk])
			setNumKeys(lw, lhalf)
			setNumKeys(rw, rnk-1)
			setKeyAt(pw, pos, keyAt(rw, 0))
			t.fixCursorsRotateLeft(leaf, rpeer, lhalf)
			return
		}
	}
	if pos > 0 {
		lpeer := childAt(pw, pos-1)
		lw2 := t.store.words(lpeer)
		lnk := numKeys(lw2)
		if lnk > lhalf {
			leafw := t.store.words(leaf)
			lnkLeaf := numKeys(leafw)
			copy(leafw[key0+1:key0+lnkLeaf+1], leafw[key0:key0+lnkLeaf])
			copy(leafw[field0+1:field0+lnkLeaf+1], leafw[field0:field0+lnkLeaf])
			setKeyAt(leafw, 0, keyAt(lw2, lnk-1))
			setFieldAt(leafw, 0, fieldAt(lw2, lnk-1))
			setNumKeys(leafw, lnkLeaf+1)
			setNumKeys(lw2, lnk-1)
			setKeyAt(pw, pos-1, keyAt(leafw, 0))
			t.fixCursorsRotateRight(lpeer, leaf, lnk-1)
			return
		}
		t.mergeLeafNodes(lpeer, leaf)
		t.shrinkIndexAncestors(d, pos)
		return
	}
	t.mergeLeafNodes(leaf, rpeer)
	t.shrinkIndexAncestors(d, pos+1)
}

// mergeLeafNodes appends r's records onto l, inherits r's successor in
// the leaf chain, fixes up any cursor on r to point into l, and frees r.
func (t *Tree) mergeLeafNodes(l, r handle) {
	lw := t.store.words(l)
	rw := t.store.words(r)
	nkl := numKeys(lw)
	nkr := numKeys(rw)
	copy(lw[key0+nkl:key0+nkl+nkr], rw[key0:key0+nkr])
	copy(lw[field0+nkl:field0+nkl+nkr], rw[field0:field0+nkr])
	setNumKeys(lw, nkl+nkr)
	setNextLeaf(lw, nextLeaf(rw))
	t.fixCursorsMerge(l, r, nkl)
	t.store.Free(r)
}

// shrinkIndexAncestors removes the key at pos-1 and the child at pos
// from the ancestor recorded at path level d (the parent that just had
// one of its children merged away), then recurses upward through
// further underflow handling or a root collapse as needed.
func (t *Tree) shrinkIndexAncestors(d, pos int) {
	inode := t.path[d].node
	nk := t.path[d].numKeys
	iw := t.store.words(inode)
	if nk-pos > 0 {
		copy(iw[key0+pos-1:key0+nk-1], iw[key0+pos:key0+nk])
		copy(iw[field0+pos:field0+nk], iw[field0+pos+1:field0+nk+1])
	}
	nk--
	setNumKeys(iw, nk)

	if d == 0 {
		if nk == 0 {
			t.root = childAt(iw, 0)
			t.depth--
			t.store.Free(inode)
			if t.depth == 0 {
				t.path = nil
			}
		}
		return
	}
	if nk < lhalf {
		merged, newPos := t.indexUnderflow(d-1, inode)
		if merged {
			t.shrinkIndexAncestors(d-1, newPos)
		}
	}
}

// indexUnderflow restores the minimum-key invariant for the internal
// node at path level d+1 (inode), mirroring leafUnderflow one level up:
// rotate through the parent from the right sibling if the combined key
// count allows it, else from the left, else merge with a neighbor. It
// reports whether a merge occurred and, if so, the parent slot the
// caller must remove via shrinkIndexAncestors.
func (t *Tree) indexUnderflow(d int, inode handle) (merged bool, posOut int) {
	parent := t.path[d].node
	pos := t.path[d].pos
	nkp := t.path[d].numKeys
	pw := t.store.words(parent)
	iw := t.store.words(inode)
	nki := numKeys(iw)

	var rpeer handle = nullHandle
	if pos < nkp {
		rpeer = childAt(pw, pos+1)
		rw := t.store.words(rpeer)
		nkr := numKeys(rw)
		if nki+nkr > order-2 {
			setKeyAt(iw, nki, keyAt(pw, pos))
			setKeyAt(pw, pos, keyAt(rw, 0))
			setChildAt(iw, nki+1, childAt(rw, 0))
			copy(rw[key0:key0+nkr-1], rw[key0+1:key0+nkr])
			copy(rw[field0:field0+nkr], rw[field0+1:field0+nkr+1])
			setNumKeys(iw, nki+1)
			setNumKeys(rw, nkr-1)
			return false, 0
		}
	}
	if pos > 0 {
		lpeer := childAt(pw, pos-1)
		lw := t.store.words(lpeer)
		nkl := numKeys(lw)
		if nkl+nki > order-2 {
			copy(iw[key0+1:key0+nki+1], iw[key0:key0+nki])
			copy(iw[field0+1:field0+nki+2], iw[field0:field0+nki+1])
			setKeyAt(iw, 0, keyAt(pw, pos-1))
			setKeyAt(pw, pos-1, keyAt(lw, nkl-1))
			setChildAt(iw, 0, childAt(lw, nkl))
			setNumKeys(iw, nki+1)
			setNumKeys(lw, nkl-1)
			return false, 0
		}
		t.mergeIndexNodes(lpeer, inode, keyAt(pw, pos-1))
		return true, pos
	}
	t.mergeIndexNodes(inode, rpeer, keyAt(pw, pos))
	return true, pos + 1
}

// mergeIndexNodes combines r into l via splitter (the parent key that
// separated them) and frees r.
func (t *Tree) mergeIndexNodes(l, r handle, splitter uint64) {
	lw := t.store.words(l)
	rw := t.store.words(r)
	nkl := numKeys(lw)
	nkr := numKeys(rw)
	setKeyAt(lw, nkl, splitter)
	copy(lw[key0+nkl+1:key0+nkl+1+nkr], rw[key0:key0+nkr])
	copy(lw[field0+nkl+1:field0+nkl+1+nkr+1], rw[field0:field0+nkr+1])
	setNumKeys(lw, nkl+nkr+1)
	t.store.Free(r)
}
