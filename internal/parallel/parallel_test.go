package parallel

import (
	"sync/atomic"
	"testing"
)

func TestShareCoversAll(t *testing.T) {
	t.Parallel()

	for _, nw := range []int{1, 2, 3, 7, 16} {
		for _, n := range []int{0, 1, 5, 16, 100, 101} {
			prev := 0
			for tid := 0; tid < nw; tid++ {
				lo, hi := Share(nw, tid, n)
				if lo != prev {
					t.Fatalf("nw=%d n=%d tid=%d: gap at %d..%d", nw, n, tid, prev, lo)
				}
				if hi < lo {
					t.Fatalf("nw=%d n=%d tid=%d: negative share", nw, n, tid)
				}
				prev = hi
			}
			if prev != n {
				t.Fatalf("nw=%d n=%d: shares cover %d items", nw, n, prev)
			}
		}
	}
}

func TestRunVisitsEachItemOnce(t *testing.T) {
	t.Parallel()

	const n = 1000
	var counts [n]int32
	Run(8, n, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			atomic.AddInt32(&counts[i], 1)
		}
	})
	for i, c := range counts {
		if c != 1 {
			t.Fatalf("item %d visited %d times", i, c)
		}
	}
}

func TestRunSingleWorkerInline(t *testing.T) {
	t.Parallel()

	called := 0
	Run(1, 10, func(tid, lo, hi int) {
		called++
		if tid != 0 || lo != 0 || hi != 10 {
			t.Fatalf("unexpected share %d %d %d", tid, lo, hi)
		}
	})
	if called != 1 {
		t.Fatal("body must run exactly once")
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	if Resolve(4) != 4 {
		t.Fatal("explicit thread count must pass through")
	}
	if Resolve(0) < 1 || Resolve(-1) < 1 {
		t.Fatal("default thread count must be positive")
	}
}
