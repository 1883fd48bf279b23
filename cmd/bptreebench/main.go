// cmd/bptreebench/main.go
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"bptree/pkg/bptree"
)

// bptreebench fills a tree with random key/value pairs up to a target
// record budget, verifies every inserted key reads back correctly by
// regenerating the same pseudo-random sequence, then drains the tree
// through a cursor in ascending order, reporting live storage stats as
// it goes. It mirrors original_source/main.c's fill/verify/drain loop,
// out of scope for the index itself and built only against the public
// bptree API.
func main() {
	budget := flag.Uint64("budget", 1_000_000, "number of records to fill before verifying and draining")
	seed := flag.Int64("seed", 314159, "seed for the fill/verify key sequence")
	flag.Parse()

	if err := run(*budget, *seed); err != nil {
		fmt.Fprintf(os.Stderr, "bptreebench: %v\n", err)
		os.Exit(1)
	}
}

func run(budget uint64, seed int64) error {
	tr := bptree.New()
	if tr == nil {
		return fmt.Errorf("failed to create tree")
	}
	defer tr.Close()

	fill := rand.New(rand.NewSource(seed))
	var filled uint64
	for filled < budget {
		k := fill.Uint64()
		v := fill.Uint64()
		if err := tr.Insert(k, v); err != nil {
			return fmt.Errorf("insert #%d: %w", filled, err)
		}
		filled++
		if filled%100000 == 0 {
			s := tr.Stats()
			fmt.Printf("filled %d records, %d blocks, %d cursors\n", s.Records, s.Blocks, s.Cursors)
		}
	}

	verify := rand.New(rand.NewSource(seed))
	for i := uint64(0); i < filled; i++ {
		k := verify.Uint64()
		wantV := verify.Uint64()
		gotV, err := tr.Find(k)
		if err != nil {
			return fmt.Errorf("verify #%d: key %d: %w", i, k, err)
		}
		if gotV != wantV {
			return fmt.Errorf("verify #%d: key %d: got value %d, want %d", i, k, gotV, wantV)
		}
	}
	fmt.Printf("verified %d records\n", filled)

	c := tr.First()
	var drained uint64
	for {
		k, _, err := c.Get()
		if err != nil {
			break
		}
		if err := tr.Delete(k); err != nil {
			c.Close()
			return fmt.Errorf("drain #%d: delete %d: %w", drained, k, err)
		}
		drained++
		if err := c.Next(); err != nil {
			break
		}
	}
	c.Close()

	final := tr.Stats()
	fmt.Printf("drained %d records, final stats: %+v\n", drained, final)
	return nil
}
