package gridder

import (
	"math"

	"github.com/cwbudde/algo-nufft/internal/parallel"
)

const speedOfLight = 299792458.0

// uvwCoord is one baseline coordinate triple in metres.
type uvwCoord struct {
	u, v, w float64
}

func (c uvwCoord) scale(f float64) uvwCoord { return uvwCoord{c.u * f, c.v * f, c.w * f} }

func (c uvwCoord) flip() uvwCoord { return uvwCoord{-c.u, -c.v, -c.w} }

// fixW flips the coordinate into the w>=0 half-space, reporting whether a
// flip happened (the matching visibility must then be conjugated).
func (c uvwCoord) fixW() (uvwCoord, bool) {
	if c.w < 0 {
		return c.flip(), true
	}
	return c, false
}

// baselines maps (row, channel) pairs to effective coordinates in
// wavelengths: coord[row] * freq[chan]/c.
type baselines struct {
	coord      []uvwCoord
	fOverC     []float64
	nrow       int
	nchan      int
	umax, vmax float64
}

func newBaselines(uvw []float64, freq []float64, negateV bool) (baselines, error) {
	nrow := len(uvw) / 3
	bl := baselines{
		coord:  make([]uvwCoord, nrow),
		fOverC: make([]float64, len(freq)),
		nrow:   nrow,
		nchan:  len(freq),
	}
	fcmax := 0.0
	for i, f := range freq {
		if f <= 0 {
			return baselines{}, errFreq
		}
		bl.fOverC[i] = f / speedOfLight
		fcmax = math.Max(fcmax, math.Abs(bl.fOverC[i]))
	}
	vfac := 1.0
	if negateV {
		vfac = -1
	}
	for i := 0; i < nrow; i++ {
		bl.coord[i] = uvwCoord{uvw[3*i], vfac * uvw[3*i+1], uvw[3*i+2]}
		bl.umax = math.Max(bl.umax, math.Abs(uvw[3*i]))
		bl.vmax = math.Max(bl.vmax, math.Abs(uvw[3*i+1]))
	}
	bl.umax *= fcmax
	bl.vmax *= fcmax
	return bl, nil
}

func (bl *baselines) effective(row, chan_ int) uvwCoord {
	return bl.coord[row].scale(bl.fOverC[chan_])
}

// scanData marks the active samples (non-zero datum, non-zero weight, not
// masked) and accumulates the w range and visibility count.
func (p *params) scanData() {
	p.tm.Push("Initial scan")
	nrow, nchan := p.bl.nrow, p.bl.nchan
	p.active = make([]bool, nrow*nchan)
	p.wminD, p.wmaxD = math.MaxFloat64, -math.MaxFloat64

	type scanAcc struct {
		wmin, wmax float64
		nvis       int
	}
	nw := parallel.Resolve(p.nthreads)
	accs := make([]scanAcc, nw)
	parallel.Run(nw, nrow, func(tid, lo, hi int) {
		acc := scanAcc{wmin: math.MaxFloat64, wmax: -math.MaxFloat64}
		for irow := lo; irow < hi; irow++ {
			for ichan := 0; ichan < nchan; ichan++ {
				idx := irow*nchan + ichan
				if p.msIn != nil && p.msIn[idx] == 0 {
					continue
				}
				if p.wgt != nil && p.wgt[idx] == 0 {
					continue
				}
				if p.mask != nil && p.mask[idx] == 0 {
					continue
				}
				acc.nvis++
				p.active[idx] = true
				w := math.Abs(p.bl.effective(irow, ichan).w)
				acc.wmin = math.Min(acc.wmin, w)
				acc.wmax = math.Max(acc.wmax, w)
			}
		}
		accs[tid] = acc
	})
	for _, acc := range accs {
		p.wminD = math.Min(p.wminD, acc.wmin)
		p.wmaxD = math.Max(p.wmaxD, acc.wmax)
		p.nvis += acc.nvis
	}
	p.tm.Pop()
}
