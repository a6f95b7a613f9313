package gridder

import (
	"math"

	"github.com/cwbudde/algo-nufft/internal/parallel"
)

// grid2dirty finishes the non-w gridding path: Hartley transform of the
// real grid, then crop and kernel correction into the dirty image.
func (p *params) grid2dirty(rgrid []float64) {
	p.tm.Push("FFT")
	p.hartley2D(rgrid, p.uvSideFast)
	p.tm.PopPush("grid correction")
	p.grid2dirtyPost(rgrid)
	p.tm.Pop()
}

// grid2dirtyPost crops the oversampled grid to the image size and applies
// the separable deapodisation weights.
func (p *params) grid2dirtyPost(rgrid []float64) {
	nx, ny, nu, nv := p.nx, p.ny, p.nu, p.nv
	cfu := p.krn.Corfunc(nx/2+1, 1/float64(nu), p.nthreads)
	cfv := p.krn.Corfunc(ny/2+1, 1/float64(nv), p.nthreads)
	parallel.Run(parallel.Resolve(p.nthreads), nx, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			icfu := abs(nx/2 - i)
			i2 := nu - nx/2 + i
			if i2 >= nu {
				i2 -= nu
			}
			for j := 0; j < ny; j++ {
				icfv := abs(ny/2 - j)
				j2 := nv - ny/2 + j
				if j2 >= nv {
					j2 -= nv
				}
				p.dirtyOut[i*ny+j] = rgrid[i2*nv+j2] * cfu[icfu] * cfv[icfv]
			}
		}
	})
}

// grid2dirtyWScreenAdd transforms one w-plane of the complex grid and
// accumulates it into the dirty image under the adjoint w-screen.
func (p *params) grid2dirtyWScreenAdd(grid []complex128, w float64) {
	p.tm.Push("FFT")
	p.fftGridC(grid, false)
	p.tm.PopPush("wscreen+grid correction")
	nx, ny, nu, nv := p.nx, p.ny, p.nu, p.nv
	x0 := -0.5 * float64(nx) * p.pixX
	y0 := -0.5 * float64(ny) * p.pixY
	parallel.Run(parallel.Resolve(p.nthreads), nx/2+1, func(_, lo, hi int) {
		cp := make([]float64, ny/2+1)
		sp := make([]float64, ny/2+1)
		for i := lo; i < hi; i++ {
			fx := x0 + float64(i)*p.pixX
			fx *= fx
			ix := nu - nx/2 + i
			if ix >= nu {
				ix -= nu
			}
			i2 := nx - i
			ix2 := nu - nx/2 + i2
			if ix2 >= nu {
				ix2 -= nu
			}
			for j := 0; j <= ny/2; j++ {
				fy := y0 + float64(j)*p.pixY
				sp[j], cp[j] = math.Sincos(phase(fx, fy*fy, w, true))
			}
			for j, jx := 0, nv-ny/2; j < ny; j++ {
				j2 := min(j, ny-j)
				re, im := cp[j2], sp[j2]
				g := grid[ix*nv+jx]
				p.dirtyOut[i*ny+j] += real(g)*re - imag(g)*im
				if i > 0 && i < i2 {
					g2 := grid[ix2*nv+jx]
					p.dirtyOut[i2*ny+j] += real(g2)*re - imag(g2)*im
				}
				if jx++; jx >= nv {
					jx -= nv
				}
			}
		}
	})
	p.tm.Pop()
}

// dirty2grid starts the non-w degridding path: correction-weighted embed
// of the dirty image into the big grid, then the Hartley transform.
func (p *params) dirty2grid(dirty, rgrid []float64) {
	p.tm.Push("grid correction")
	p.dirty2gridPre(dirty, rgrid)
	p.tm.PopPush("FFT")
	p.hartley2D(rgrid, !p.uvSideFast)
	p.tm.Pop()
}

// dirty2gridPre zeroes the border band and writes the corrected image
// into the wrapped corner positions of the grid.
func (p *params) dirty2gridPre(dirty, rgrid []float64) {
	nx, ny, nu, nv := p.nx, p.ny, p.nu, p.nv
	cfu := p.krn.Corfunc(nx/2+1, 1/float64(nu), p.nthreads)
	cfv := p.krn.Corfunc(ny/2+1, 1/float64(nv), p.nthreads)
	parallel.Run(parallel.Resolve(p.nthreads), nu, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			lo2, hi2 := 0, nv
			if i < nx/2 || i >= nu-nx/2 {
				lo2, hi2 = ny/2, nv-ny/2+1
			}
			for j := lo2; j < hi2; j++ {
				rgrid[i*nv+j] = 0
			}
		}
	})
	parallel.Run(parallel.Resolve(p.nthreads), nx, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			icfu := abs(nx/2 - i)
			i2 := nu - nx/2 + i
			if i2 >= nu {
				i2 -= nu
			}
			for j := 0; j < ny; j++ {
				icfv := abs(ny/2 - j)
				j2 := nv - ny/2 + j
				if j2 >= nv {
					j2 -= nv
				}
				rgrid[i2*nv+j2] = dirty[i*ny+j] * cfu[icfu] * cfv[icfv]
			}
		}
	})
}

// dirty2gridWScreen embeds the (already globally corrected) dirty image
// under the w-screen for one plane and forward-transforms the grid.
func (p *params) dirty2gridWScreen(dirty []float64, grid []complex128, w float64) {
	p.tm.Push("wscreen+grid correction")
	nx, ny, nu, nv := p.nx, p.ny, p.nu, p.nv
	parallel.Run(parallel.Resolve(p.nthreads), nu, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			lo2, hi2 := 0, nv
			if i < nx/2 || i >= nu-nx/2 {
				lo2, hi2 = ny/2, nv-ny/2+1
			}
			for j := lo2; j < hi2; j++ {
				grid[i*nv+j] = 0
			}
		}
	})
	x0 := -0.5 * float64(nx) * p.pixX
	y0 := -0.5 * float64(ny) * p.pixY
	parallel.Run(parallel.Resolve(p.nthreads), nx/2+1, func(_, lo, hi int) {
		cp := make([]float64, ny/2+1)
		sp := make([]float64, ny/2+1)
		for i := lo; i < hi; i++ {
			fx := x0 + float64(i)*p.pixX
			fx *= fx
			ix := nu - nx/2 + i
			if ix >= nu {
				ix -= nu
			}
			i2 := nx - i
			ix2 := nu - nx/2 + i2
			if ix2 >= nu {
				ix2 -= nu
			}
			for j := 0; j <= ny/2; j++ {
				fy := y0 + float64(j)*p.pixY
				sp[j], cp[j] = math.Sincos(phase(fx, fy*fy, w, false))
			}
			for j, jx := 0, nv-ny/2; j < ny; j++ {
				j2 := min(j, ny-j)
				ws := complex(cp[j2], sp[j2])
				grid[ix*nv+jx] = complex(dirty[i*ny+j], 0) * ws
				if i > 0 && i < i2 {
					grid[ix2*nv+jx] = complex(dirty[i2*ny+j], 0) * ws
				}
				if jx++; jx >= nv {
					jx -= nv
				}
			}
		}
	})
	p.tm.PopPush("FFT")
	p.fftGridC(grid, true)
	p.tm.Pop()
}

// applyGlobalCorrections multiplies the dirty image by the u/v kernel
// corrections and the w-direction correction of the stacking scheme.
func (p *params) applyGlobalCorrections(dirty []float64) {
	p.tm.Push("global corrections")
	nx, ny := p.nx, p.ny
	x0 := -0.5 * float64(nx) * p.pixX
	y0 := -0.5 * float64(ny) * p.pixY
	cfu := p.krn.Corfunc(nx/2+1, 1/float64(p.nu), p.nthreads)
	cfv := p.krn.Corfunc(ny/2+1, 1/float64(p.nv), p.nthreads)
	parallel.Run(parallel.Resolve(p.nthreads), nx/2+1, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			fx := x0 + float64(i)*p.pixX
			fx *= fx
			for j := 0; j <= ny/2; j++ {
				fy := y0 + float64(j)*p.pixY
				fy *= fy
				fct := 0.0
				tmp := 1 - fx - fy
				if tmp >= 0 {
					nm1 := (-fx - fy) / (math.Sqrt(tmp) + 1) // accurate form of sqrt(1-x-y)-1
					fct = p.krn.Corfac(nm1 * p.dw)
					if p.divideByN {
						fct /= nm1 + 1
					}
				} else {
					// beyond the horizon
					if p.divideByN {
						fct = 0
					} else {
						nm1 := math.Sqrt(-tmp) - 1
						fct = p.krn.Corfac(nm1 * p.dw)
					}
				}
				fct *= cfu[nx/2-i] * cfv[ny/2-j]
				i2, j2 := nx-i, ny-j
				dirty[i*ny+j] *= fct
				if i > 0 && i < i2 {
					dirty[i2*ny+j] *= fct
					if j > 0 && j < j2 {
						dirty[i2*ny+j2] *= fct
					}
				}
				if j > 0 && j < j2 {
					dirty[i*ny+j2] *= fct
				}
			}
		}
	})
	p.tm.Pop()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
