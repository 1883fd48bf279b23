// Package bptree implements an in-memory B+ tree mapping uint64 keys to
// uint64 values, with point lookup, insert/update, delete, ordered
// enumeration, and cursors that survive structural mutation.
package bptree

import "errors"

// The two failure kinds observable besides success (a nil error). Other
// failures (a violated invariant, structural corruption) are programming
// bugs that the package does not check for or report; a second Close of
// a cursor is a no-op.
var (
	// ErrNotFound is returned by lookups, deletes of absent keys, and
	// cursor access past the end of the tree or at a deleted record.
	ErrNotFound = errors.New("bptree: key not found")

	// ErrOutOfMemory is returned only by Insert, when the node store
	// cannot satisfy the preallocation pass for a pending split.
	ErrOutOfMemory = errors.New("bptree: out of memory")
)
