// Package conc provides the explicit data-parallel loop used by bulk
// volume operations.
package conc

import (
	"runtime"
	"sync"
)

// Workers controls the number of goroutines used by Parallel. It might
// be useful to lower in tests where parallelism slows things down in
// aggregate.
var Workers = runtime.GOMAXPROCS(0)

// Parallel invokes fn for every i in [0,n), partitioning the range into
// contiguous blocks, one per worker goroutine. fn receives the worker
// index alongside i so callers can accumulate into per-worker buffers
// without synchronization; within one worker invocation order follows i.
// Parallel returns once all workers finish.
func Parallel(n int, fn func(worker, i int)) {
	if n <= 0 {
		return
	}
	workers := Workers
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(0, i)
		}
		return
	}

	block := n / workers
	extra := n % workers
	var wg sync.WaitGroup
	wg.Add(workers)
	from := 0
	for w := 0; w < workers; w++ {
		size := block
		if w < extra {
			size++
		}
		go func(w, from, to int) {
			defer wg.Done()
			for i := from; i < to; i++ {
				fn(w, i)
			}
		}(w, from, from+size)
		from += size
	}
	wg.Wait()
}
