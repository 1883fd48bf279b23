// pkg/bptree/tree.go
package bptree

// Tree is a handle onto one in-memory B+ tree index. It owns the node
// store backing every block, the head of the ascending-key leaf chain,
// and the registry of outstanding cursors. A Tree is not safe for
// concurrent use; callers needing concurrent access must serialize their
// own calls, the same single-actor assumption the source makes.
type Tree struct {
	store *NodeStore

	root   handle
	leaves handle
	depth  int

	path    []pathFrame
	newRoot handle

	cursors    *Cursor
	numRecs    uint64
	numCursors uint64
}

// New creates an empty tree: a single, empty leaf acting as both root
// and leaf chain head. Returns nil if the node store cannot allocate
// that first block.
func New() *Tree {
	store := &NodeStore{}
	root, ok := store.Allocate()
	if !ok {
		return nil
	}
	words := store.words(root)
	setNumKeys(words, 0)
	setNextLeaf(words, nullHandle)
	return &Tree{
		store:   store,
		root:    root,
		leaves:  root,
		depth:   0,
		newRoot: nullHandle,
	}
}

// Close releases every block owned by the tree and detaches any cursors
// still open on it (their Tree() will report nil and further Get/Update
// calls return ErrNotFound).
func (t *Tree) Close() {
	for c := t.cursors; c != nil; c = c.next {
		c.tree = nil
		c.leaf = nullHandle
	}
	t.cursors = nil
	t.numCursors = 0
	t.freeSubtree(0, t.root)
	t.path = nil
}

func (t *Tree) freeSubtree(d int, h handle) {
	if d < t.depth {
		words := t.store.words(h)
		nk := numKeys(words)
		for i := 0; i <= nk; i++ {
			t.freeSubtree(d+1, childAt(words, i))
		}
	}
	t.store.Free(h)
}

// Depth reports the number of internal levels above the leaves (0 when
// the root is itself a leaf).
func (t *Tree) Depth() int {
	return t.depth
}

// Stats summarizes the live storage backing a tree, for the external
// get_active_storage-equivalent interface.
type Stats struct {
	Records uint64
	Blocks  uint64
	Cursors uint64
}

// Stats reports current record, block, and cursor counts.
func (t *Tree) Stats() Stats {
	return Stats{Records: t.numRecs, Blocks: t.store.BlockCount(), Cursors: t.numCursors}
}

// Find looks up k and returns its value, or ErrNotFound.
func (t *Tree) Find(k uint64) (uint64, error) {
	t.ensurePath()
	leaf := t.findLeaf(k)
	words := t.store.words(leaf)
	nk := numKeys(words)
	i := leafScan(words, nk, k)
	if i < nk && keyAt(words, i) == k {
		return fieldAt(words, i), nil
	}
	return 0, ErrNotFound
}

// Enumerate walks every record in ascending key order via the leaf
// chain, without materializing a cursor.
func (t *Tree) Enumerate(f func(key, value uint64)) {
	for h := t.leaves; h != nullHandle; {
		words := t.store.words(h)
		nk := numKeys(words)
		for i := 0; i < nk; i++ {
			f(keyAt(words, i), fieldAt(words, i))
		}
		h = nextLeaf(words)
	}
}
