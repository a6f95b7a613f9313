// Package gridder implements the radio-interferometric gridder: a
// non-uniform to uniform resampler that spreads visibilities onto an
// oversampled Fourier grid with a tabulated separable kernel (and back),
// with optional w-stacking for non-coplanar arrays.
package gridder

import (
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-nufft/internal/cpu"
	"github.com/cwbudde/algo-nufft/internal/gkernel"
	"github.com/cwbudde/algo-nufft/internal/timers"
)

// params is the ephemeral state of one gridding or degridding call.
// It is created per top-level call and dropped at its end; there is no
// hidden global state.
type params struct {
	gridding bool
	tm       *timers.Stack

	uvwFlat  []float64 // nrow*3
	freqFlat []float64 // nchan
	bl0rows  int
	bl0chans int
	msIn     []complex128 // gridding input, nrow*nchan
	msOut    []complex128 // degridding output
	dirtyIn  []float64    // degridding input, nx*ny
	dirtyOut []float64    // gridding output
	wgt      []float64
	mask     []uint8

	pixX, pixY float64
	nx, ny     int
	eps        float64
	doWgrid    bool
	nthreads   int
	verbosity  int
	negateV    bool
	divideByN  bool
	report     io.Writer

	bl           baselines
	ranges       []visRange
	wminD, wmaxD float64
	nvis         int
	wmin, dw     float64
	nplanes      int
	nm1min       float64
	active       []bool

	nu, nv  int
	ofactor float64

	krn *gkernel.Kernel

	supp, nsafe    int
	ushift, vshift float64
	maxiu0, maxiv0 int
	vlim           int
	uvSideFast     bool
}

func fmod1(v float64) float64 { return v - math.Floor(v) }

// getpix maps an effective (u,v) coordinate in wavelengths to grid units
// and the first grid cell of its kernel footprint.
func (p *params) getpix(uIn, vIn float64) (u, v float64, iu0, iv0 int) {
	u = fmod1(uIn*p.pixX) * float64(p.nu)
	iu0 = int(u+p.ushift) - p.nu
	if iu0 > p.maxiu0 {
		iu0 = p.maxiu0
	}
	v = fmod1(vIn*p.pixY) * float64(p.nv)
	iv0 = int(v+p.vshift) - p.nv
	if iv0 > p.maxiv0 {
		iv0 = p.maxiv0
	}
	return u, v, iu0, iv0
}

// phase returns the w-screen phase angle at image-plane position
// (x,y) = (l^2, m^2 pre-squared by the callers).
func phase(x, y, w float64, adjoint bool) float64 {
	tmp := 1 - x - y
	if tmp <= 0 {
		return 0 // no phase factor beyond the horizon
	}
	nm1 := (-x - y) / (math.Sqrt(tmp) + 1) // accurate form of sqrt(1-x-y)-1
	phs := 2 * math.Pi * w * nm1
	if adjoint {
		phs = -phs
	}
	return phs
}

// chooseKernel runs the cost model over the catalogue entries that reach
// the target accuracy, fixing nu, nv and the kernel index.
func (p *params) chooseKernel() int {
	p.tm.Push("parameter calculation")
	defer p.tm.Pop()
	x0 := -0.5 * float64(p.nx) * p.pixX
	y0 := -0.5 * float64(p.ny) * p.pixY
	p.nm1min = math.Sqrt(math.Max(1-x0*x0-y0*y0, 0)) - 1
	if x0*x0+y0*y0 > 1 {
		p.nm1min = -math.Sqrt(math.Abs(1-x0*x0-y0*y0)) - 1
	}
	idx := gkernel.Available(p.eps)
	const (
		nrefFFT    = 2048.0
		costrefFFT = 0.0693
	)
	vlen := cpu.VectorLen(cpu.DetectFeatures())
	mincost := math.MaxFloat64
	minnu, minnv, minidx := 0, 0, idx[0]
	for _, i := range idx {
		krn := gkernel.Catalogue[i]
		supp := krn.W
		nvec := (supp + vlen - 1) / vlen
		nu := 2 * mustGoodSize(int(float64(p.nx)*krn.Ofactor*0.5)+1)
		nv := 2 * mustGoodSize(int(float64(p.ny)*krn.Ofactor*0.5)+1)
		logterm := math.Log(float64(nu)*float64(nv)) / math.Log(nrefFFT*nrefFFT)
		fftcost := float64(nu) / nrefFFT * float64(nv) / nrefFFT * logterm * costrefFFT
		gridcost := 2.2e-10 * float64(p.nvis) *
			(float64(supp*nvec*vlen) + float64((2*nvec+1)*(supp+3)*vlen))
		if p.doWgrid {
			dw := 0.5 / krn.Ofactor / math.Abs(p.nm1min)
			nplanes := int((p.wmaxD-p.wminD)/dw + float64(supp))
			fftcost *= float64(nplanes)
			gridcost *= float64(supp)
		}
		if cost := fftcost + gridcost; cost < mincost {
			mincost, minnu, minnv, minidx = cost, nu, nv, i
		}
	}
	p.nu, p.nv = minnu, minnv
	return minidx
}

func mustGoodSize(n int) int {
	m, err := goodSizeComplex(n)
	if err != nil {
		panic(err)
	}
	return m
}

func (p *params) reportRun() {
	if p.verbosity == 0 || p.report == nil {
		return
	}
	mode := "Degridding"
	if p.gridding {
		mode = "Gridding"
	}
	fmt.Fprintf(p.report, "%s: nthreads=%d, dirty=(%dx%d), grid=(%dx%d", mode,
		p.nthreads, p.nx, p.ny, p.nu, p.nv)
	if p.doWgrid {
		fmt.Fprintf(p.report, "x%d", p.nplanes)
	}
	factor := 2.0
	if p.doWgrid {
		factor = 3
	}
	fmt.Fprintf(p.report, "), nvis=%d, supp=%d, eps=%g\n", p.nvis, p.supp, p.eps*factor)
	fmt.Fprintf(p.report, "  w=[%g; %g], min(n-1)=%g, dw=%g, nranges=%d\n",
		p.wminD, p.wmaxD, p.nm1min, p.dw, len(p.ranges))
}

// run drives the whole call: scan, plan, range construction, then the
// gridding or degridding pipeline.
func (p *params) run() error {
	name := "degridding"
	if p.gridding {
		name = "gridding"
	}
	p.tm = timers.New(name)

	p.tm.Push("Baseline construction")
	var err error
	p.bl, err = newBaselines(p.uvwFlat, p.freqFlat, p.negateV)
	if err != nil {
		return err
	}
	p.tm.Pop()

	// adjust for increased error when gridding in 2 or 3 dimensions
	if p.doWgrid {
		p.eps /= 3
	} else {
		p.eps /= 2
	}
	if !p.gridding {
		for i := range p.msOut {
			p.msOut[i] = 0
		}
	}
	p.scanData()
	if p.nvis == 0 {
		if p.gridding {
			for i := range p.dirtyOut {
				p.dirtyOut[i] = 0
			}
		}
		return nil
	}
	kidx := p.chooseKernel()
	p.ofactor = math.Min(float64(p.nu)/float64(p.nx), float64(p.nv)/float64(p.ny))
	p.krn = gkernel.Select(kidx)
	p.supp = p.krn.Support()
	p.nsafe = (p.supp + 1) / 2
	p.ushift = float64(p.supp)*(-0.5) + 1 + float64(p.nu)
	p.vshift = float64(p.supp)*(-0.5) + 1 + float64(p.nv)
	p.maxiu0 = p.nu + p.nsafe - p.supp
	p.maxiv0 = p.nv + p.nsafe - p.supp
	p.vlim = min(p.nv/2, int(float64(p.nv)*p.bl.vmax*p.pixY+0.5*float64(p.supp)+1))
	p.uvSideFast = true
	if vlim2 := (p.ny+1)/2 + (p.supp+1)/2; vlim2 < p.vlim {
		p.vlim = vlim2
		p.uvSideFast = false
	}
	if p.nu < 2*p.nsafe || p.nv < 2*p.nsafe || p.nu&1 != 0 || p.nv&1 != 0 {
		return ErrInternal
	}
	p.countRanges()
	p.reportRun()

	if p.gridding {
		p.x2dirty()
	} else {
		p.dirty2x()
	}
	if p.verbosity > 0 && p.report != nil {
		p.tm.Report(p.report)
	}
	return nil
}

// x2dirty is the gridding pipeline: visibilities to dirty image.
func (p *params) x2dirty() {
	if p.doWgrid {
		p.tm.Push("zeroing dirty image")
		for i := range p.dirtyOut {
			p.dirtyOut[i] = 0
		}
		p.tm.PopPush("allocating grid")
		grid := make([]complex128, p.nu*p.nv)
		p.tm.Pop()
		for pl := 0; pl < p.nplanes; pl++ {
			w := p.wmin + float64(pl)*p.dw
			p.tm.Push("zeroing grid")
			for i := range grid {
				grid[i] = 0
			}
			p.tm.Pop()
			p.x2gridC(grid, pl, w)
			p.grid2dirtyWScreenAdd(grid, w)
		}
		p.applyGlobalCorrections(p.dirtyOut)
		return
	}
	p.tm.Push("allocating grid")
	grid := make([]complex128, p.nu*p.nv)
	p.tm.Pop()
	p.x2gridC(grid, 0, -1)
	p.tm.Push("allocating rgrid")
	rgrid := make([]float64, p.nu*p.nv)
	p.tm.PopPush("complex2hartley")
	p.complex2hartley(grid, rgrid)
	p.tm.Pop()
	p.grid2dirty(rgrid)
}

// dirty2x is the degridding pipeline: dirty image to visibilities.
func (p *params) dirty2x() {
	if p.doWgrid {
		p.tm.Push("copying dirty image")
		tdirty := make([]float64, len(p.dirtyIn))
		copy(tdirty, p.dirtyIn)
		p.tm.Pop()
		p.applyGlobalCorrections(tdirty)
		p.tm.Push("allocating grid")
		grid := make([]complex128, p.nu*p.nv)
		p.tm.Pop()
		for pl := 0; pl < p.nplanes; pl++ {
			w := p.wmin + float64(pl)*p.dw
			p.dirty2gridWScreen(tdirty, grid, w)
			p.grid2xC(grid, pl, w)
		}
		return
	}
	p.tm.Push("allocating rgrid")
	rgrid := make([]float64, p.nu*p.nv)
	p.tm.Pop()
	p.dirty2grid(p.dirtyIn, rgrid)
	p.tm.Push("allocating grid")
	grid := make([]complex128, p.nu*p.nv)
	p.tm.PopPush("hartley2complex")
	p.hartley2complex(rgrid, grid)
	p.tm.Pop()
	p.grid2xC(grid, 0, -1)
}
