// pkg/bptree/search.go
package bptree

// leafScan returns the lowest index i in [0, nk] with words.key[i] >= k:
// the position an exact match occupies, or the position a new record
// with key k would be inserted at.
func leafScan(words []uint64, nk int, k uint64) int {
	i := 0
	for i < nk && k > keyAt(words, i) {
		i++
	}
	return i
}

// internalScan returns the lowest index i in [0, nk] with words.key[i] >
// k: the child slot whose subtree may contain k. Unlike leafScan this
// uses strict inequality, since an index key equal to k routes into the
// child to its right (keys are splitters, not records).
func internalScan(words []uint64, nk int, k uint64) int {
	i := 0
	for i < nk && k >= keyAt(words, i) {
		i++
	}
	return i
}

// pathFrame records one level of a root-to-leaf descent: the node
// visited, the child slot taken, the node's key count as observed
// during descent (pre-mutation), and a sibling block reserved for it by
// the current operation's preallocation pass, if any.
type pathFrame struct {
	node    handle
	pos     int
	numKeys int
	split   handle
}

// ensurePath grows the path array to the tree's current depth. Go's
// allocator has no recoverable-failure contract the way the source's
// malloc-based path_reserved does (make either succeeds or the process
// dies), so unlike the original this never reports out-of-memory; only
// Insert's node-store allocation, a real syscall that can genuinely
// fail, surfaces ErrOutOfMemory.
func (t *Tree) ensurePath() {
	if len(t.path) < t.depth {
		t.path = make([]pathFrame, t.depth)
	}
}

// findLeaf descends from the root to the leaf that would hold k,
// recording one pathFrame per internal level visited.
func (t *Tree) findLeaf(k uint64) handle {
	node := t.root
	for d := 0; d < t.depth; d++ {
		words := t.store.words(node)
		nk := numKeys(words)
		i := internalScan(words, nk, k)
		t.path[d] = pathFrame{node: node, pos: i, numKeys: nk}
		node = childAt(words, i)
	}
	return node
}
