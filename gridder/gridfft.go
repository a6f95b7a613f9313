package gridder

import (
	"github.com/cwbudde/algo-nufft/fft"
	"github.com/cwbudde/algo-nufft/internal/fft1d"
	"github.com/cwbudde/algo-nufft/internal/parallel"
	"github.com/cwbudde/algo-nufft/nd"
)

func goodSizeComplex(n int) (int, error) { return fft1d.GoodSizeComplex(n) }

// complex2hartley folds a complex grid into its real Hartley equivalent:
// 0.5*(Re(g[u,v])+Im(g[u,v])+Re(g[-u,-v])-Im(g[-u,-v])).
func (p *params) complex2hartley(grid []complex128, rgrid []float64) {
	nu, nv := p.nu, p.nv
	parallel.Run(parallel.Resolve(p.nthreads), nu, func(_, lo, hi int) {
		for u := lo; u < hi; u++ {
			xu := 0
			if u != 0 {
				xu = nu - u
			}
			for v := 0; v < nv; v++ {
				xv := 0
				if v != 0 {
					xv = nv - v
				}
				g1 := grid[u*nv+v]
				g2 := grid[xu*nv+xv]
				rgrid[u*nv+v] = 0.5 * (real(g1) + imag(g1) + real(g2) - imag(g2))
			}
		}
	})
}

// hartley2complex is the inverse folding.
func (p *params) hartley2complex(rgrid []float64, grid []complex128) {
	nu, nv := p.nu, p.nv
	parallel.Run(parallel.Resolve(p.nthreads), nu, func(_, lo, hi int) {
		for u := lo; u < hi; u++ {
			xu := 0
			if u != 0 {
				xu = nu - u
			}
			for v := 0; v < nv; v++ {
				xv := 0
				if v != 0 {
					xv = nv - v
				}
				v1 := 0.5 * rgrid[u*nv+v]
				v2 := 0.5 * rgrid[xu*nv+xv]
				grid[u*nv+v] = complex(v1+v2, v1-v2)
			}
		}
	})
}

// hartley2D runs the 2-D Hartley transform of the grid. When the
// interesting band along v is narrow (2*vlim < nv) only the low and high
// strips are transformed along u, skipping frequencies the crop discards.
func (p *params) hartley2D(rgrid []float64, firstFast bool) {
	nu, nv, vlim := p.nu, p.nv, p.vlim
	arr := nd.FromSlice(rgrid, nu, nv)
	if 2*vlim < nv {
		if !firstFast {
			mustHartley(arr, []int{1}, p.nthreads)
		}
		lo := arr.Sub([]int{0, 0}, []int{nu, vlim})
		mustHartley(lo, []int{0}, p.nthreads)
		hi := arr.Sub([]int{0, nv - vlim}, []int{nu, nv})
		mustHartley(hi, []int{0}, p.nthreads)
		if firstFast {
			mustHartley(arr, []int{1}, p.nthreads)
		}
	} else {
		mustHartley(arr, []int{0, 1}, p.nthreads)
	}

	// convert the separable transform into the genuine 2-D Hartley
	parallel.Run(parallel.Resolve(p.nthreads), (nu+1)/2-1, func(_, lo, hi int) {
		for i := lo + 1; i < hi+1; i++ {
			for j := 1; j < (nv+1)/2; j++ {
				a := rgrid[i*nv+j]
				b := rgrid[(nu-i)*nv+j]
				c := rgrid[i*nv+nv-j]
				d := rgrid[(nu-i)*nv+nv-j]
				rgrid[i*nv+j] = 0.5 * (a + b + c - d)
				rgrid[(nu-i)*nv+j] = 0.5 * (a + b + d - c)
				rgrid[i*nv+nv-j] = 0.5 * (a + c + d - b)
				rgrid[(nu-i)*nv+nv-j] = 0.5 * (b + c + d - a)
			}
		}
	})
}

func mustHartley(arr nd.Array[float64], axes []int, nthreads int) {
	if _, err := fft.SeparableHartley(arr, arr, axes, fft.NormNone, nthreads); err != nil {
		panic(err)
	}
}

func mustC2C(arr nd.Array[complex128], axes []int, forward bool, nthreads int) {
	if _, err := fft.C2C(arr, arr, axes, forward, fft.NormNone, nthreads); err != nil {
		panic(err)
	}
}

// fftGridC transforms the complex grid in place, using the same split
// strategy as hartley2D when the v band is narrow.
func (p *params) fftGridC(grid []complex128, forward bool) {
	nu, nv, vlim := p.nu, p.nv, p.vlim
	arr := nd.FromSlice(grid, nu, nv)
	// for the forward (image->grid) direction the fast side runs first
	fastFirst := p.uvSideFast == forward
	if 2*vlim < nv {
		if fastFirst {
			mustC2C(arr, []int{1}, forward, p.nthreads)
		}
		lo := arr.Sub([]int{0, 0}, []int{nu, vlim})
		mustC2C(lo, []int{0}, forward, p.nthreads)
		hi := arr.Sub([]int{0, nv - vlim}, []int{nu, nv})
		mustC2C(hi, []int{0}, forward, p.nthreads)
		if !fastFirst {
			mustC2C(arr, []int{1}, forward, p.nthreads)
		}
	} else {
		mustC2C(arr, []int{0, 1}, forward, p.nthreads)
	}
}
