package gopool

import (
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

var (
	// Init a instance pool when importing ants.
	defaultPool, _   = ants.NewPool(ants.DefaultAntsPoolSize, ants.WithExpiryDuration(10*time.Second))
	minNumberPerTask = 5
)

// Submit submits a task to pool.
func Submit(task func()) error {
	return defaultPool.Submit(task)
}

// Running returns the number of the currently running goroutines.
func Running() int {
	return defaultPool.Running()
}

// Cap returns the capacity of this default pool.
func Cap() int {
	return defaultPool.Cap()
}

// Free returns the available goroutines to work.
func Free() int {
	return defaultPool.Free()
}

// Release Closes the default pool.
func Release() {
	defaultPool.Release()
}

// Reboot reboots the default pool.
func Reboot() {
	defaultPool.Reboot()
}

// Threads returns how many workers should share the given number of tasks.
func Threads(tasks int) int {
	threads := tasks / minNumberPerTask
	if threads > runtime.NumCPU() {
		threads = runtime.NumCPU()
	} else if threads == 0 {
		threads = 1
	}
	return threads
}

// ForEach calls fn for every index in [0, n) on the default pool and returns
// once all calls have finished. Indices are handed out to Threads(n) workers.
// If a worker cannot be submitted, the remaining workers still drain every
// index and the submission error is returned.
func ForEach(n int, fn func(i int)) error {
	if n <= 0 {
		return nil
	}
	var (
		wg      sync.WaitGroup
		next    atomic.Int64
		workers = Threads(n)
		err     error
	)
	work := func() {
		defer wg.Done()
		for {
			i := int(next.Add(1) - 1)
			if i >= n {
				return
			}
			fn(i)
		}
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		if serr := Submit(work); serr != nil {
			wg.Done()
			err = serr
			break
		}
	}
	if err != nil {
		// Nothing may have been scheduled: finish on the caller's goroutine.
		wg.Add(1)
		work()
	}
	wg.Wait()
	return err
}
