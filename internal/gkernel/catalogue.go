package gkernel

import "sync"

// Entry describes one catalogue kernel: support, polynomial degree,
// oversampling factor, shape parameter and the aliasing error it reaches.
type Entry struct {
	W       int
	D       int
	Ofactor float64
	Beta    float64
	Eps     float64
}

// Catalogue lists the compiled kernels, most accurate last within each
// oversampling family. The eps values are conservative measurements for
// the exponential-of-semicircle kernel at the given shape parameters.
var Catalogue = buildCatalogue()

func buildCatalogue() []Entry {
	var db []Entry
	// moderate oversampling: cheaper FFT, wider support needed
	lowEps := []float64{3e-3, 1e-3, 4e-4, 1e-4, 4e-5, 1e-5, 4e-6, 1e-6, 4e-7, 1e-7, 4e-8, 1e-8, 4e-9}
	for i, w := 0, 4; w <= 16; i, w = i+1, w+1 {
		db = append(db, Entry{W: w, D: degreeFor(w), Ofactor: 1.5, Beta: 1.9, Eps: lowEps[i]})
	}
	// full oversampling: one decade per extra tap
	for w := 4; w <= 16; w++ {
		eps := pow10(1 - w)
		if eps < 1e-14 {
			eps = 1e-14
		}
		db = append(db, Entry{W: w, D: degreeFor(w), Ofactor: 2.0, Beta: 2.3, Eps: eps})
	}
	return db
}

func degreeFor(w int) int {
	d := w + 2
	if d > 18 {
		d = 18
	}
	return d
}

func pow10(e int) float64 {
	v := 1.0
	for i := 0; i < -e; i++ {
		v /= 10
	}
	for i := 0; i < e; i++ {
		v *= 10
	}
	return v
}

// Available returns the catalogue indices whose error is <= eps. If no
// entry qualifies, the most accurate one is returned so very small
// tolerances degrade gracefully instead of failing.
func Available(eps float64) []int {
	var idx []int
	best, bestEps := -1, 2.0
	for i, e := range Catalogue {
		if e.Eps <= eps {
			idx = append(idx, i)
		}
		if e.Eps < bestEps {
			best, bestEps = i, e.Eps
		}
	}
	if len(idx) == 0 {
		idx = append(idx, best)
	}
	return idx
}

var (
	kernelMu    sync.Mutex
	kernelCache = map[int]*Kernel{}
)

// Select returns the tabulated kernel for a catalogue index, memoised
// because tabulation is pure and entries are shared across calls.
func Select(idx int) *Kernel {
	kernelMu.Lock()
	defer kernelMu.Unlock()
	if k, ok := kernelCache[idx]; ok {
		return k
	}
	e := Catalogue[idx]
	k := NewKernel(e.W, e.D, e.Beta, e.Ofactor, e.Eps)
	kernelCache[idx] = k
	return k
}
