// Package parallel provides the static-share loop helpers used by the
// transforms and the gridder. Work is split into one contiguous share per
// worker so that, for a fixed worker count, the assignment of items to
// workers never changes between runs.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Resolve maps the user-facing thread count to an effective worker count.
// Values <= 0 select the runtime default.
func Resolve(nthreads int) int {
	if nthreads <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return nthreads
}

// Share returns the half-open range [lo,hi) of items owned by worker tid
// out of nworkers when n items are split into contiguous shares.
func Share(nworkers, tid, n int) (lo, hi int) {
	base := n / nworkers
	rest := n % nworkers
	lo = tid*base + min(tid, rest)
	hi = lo + base
	if tid < rest {
		hi++
	}
	return lo, hi
}

// Run executes body(tid, lo, hi) on nworkers goroutines, each owning its
// static share of n items. With a single worker the body runs on the
// calling goroutine.
func Run(nworkers, n int, body func(tid, lo, hi int)) {
	if nworkers > n {
		nworkers = n
	}
	if nworkers <= 1 {
		body(0, 0, n)
		return
	}
	var g errgroup.Group
	for tid := 0; tid < nworkers; tid++ {
		tid := tid
		lo, hi := Share(nworkers, tid, n)
		g.Go(func() error {
			body(tid, lo, hi)
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors
}

// RunErr is Run for bodies that can fail; the first error wins.
func RunErr(nworkers, n int, body func(tid, lo, hi int) error) error {
	if nworkers > n {
		nworkers = n
	}
	if nworkers <= 1 {
		return body(0, 0, n)
	}
	var g errgroup.Group
	for tid := 0; tid < nworkers; tid++ {
		tid := tid
		lo, hi := Share(nworkers, tid, n)
		g.Go(func() error { return body(tid, lo, hi) })
	}
	return g.Wait()
}
