// Package parallel implements the fork/join worker-pool model of spec.md
// §5: every sharded loop in this repository (FFT butterfly passes,
// Pippenger bucket accumulation and signed-digit recoding, GLV splitting,
// the big-coset point table, the pseudo-vanishing division) goes through
// Run, so the concurrency story lives in one place instead of being
// hand-rolled per call site. The grand-product loop and the permutation
// and widget quotient-evaluation loops run serially.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// MinParallelSize is the smallest index-range length worth sharding; below
// it the fork/join overhead exceeds the benefit and Run executes serially.
const MinParallelSize = 1 << 12

// NumWorkers is the fixed worker-pool size: the host's hardware
// concurrency, matching spec.md §5's "fixed worker pool sized to the
// hardware concurrency count".
var NumWorkers = runtime.GOMAXPROCS(0)

// Run partitions [0, n) into up to NumWorkers contiguous shards and calls
// fn(start, end) on each shard concurrently, blocking until every shard
// has completed (a full barrier, per spec.md §5's "join at the end of
// each for_each_thread block"). There is no cross-shard ordering
// guarantee and none is required: every caller partitions disjoint index
// ranges with no shared mutable state across shards.
func Run(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < MinParallelSize || NumWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := NumWorkers
	if workers > n {
		workers = n
	}
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		start := w * chunk
		end := start + chunk
		if start >= n {
			break
		}
		if end > n {
			end = n
		}
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait()
}
