// pkg/bptree/node.go
package bptree

// Fan-out constants. A node holds at most order-1 keys; a split leaves
// lhalf keys behind and promotes rhalf (minus a splitter for index
// nodes) into a new sibling.
const (
	order = 256
	lhalf = order / 2
	rhalf = order / 2
)

// numKeys reports the live key count recorded in a node's header slot.
func numKeys(words []uint64) int {
	return int(uint8(words[headerSlot]))
}

func setNumKeys(words []uint64, n int) {
	words[headerSlot] = uint64(uint8(n))
}

func keyAt(words []uint64, i int) uint64 {
	return words[key0+i]
}

func setKeyAt(words []uint64, i int, k uint64) {
	words[key0+i] = k
}

// fieldAt reads slot i of a node's field array: a value for a leaf, a
// child handle for an internal node.
func fieldAt(words []uint64, i int) uint64 {
	return words[field0+i]
}

func setFieldAt(words []uint64, i int, v uint64) {
	words[field0+i] = v
}

func childAt(words []uint64, i int) handle {
	return handle(fieldAt(words, i))
}

func setChildAt(words []uint64, i int, h handle) {
	setFieldAt(words, i, uint64(h))
}

// nextLeaf reads a leaf's successor in the ascending-key leaf chain.
func nextLeaf(words []uint64) handle {
	return handle(words[nextSlot])
}

func setNextLeaf(words []uint64, h handle) {
	words[nextSlot] = uint64(h)
}
