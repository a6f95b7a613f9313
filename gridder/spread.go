package gridder

import (
	"sync"

	"github.com/cwbudde/algo-nufft/internal/parallel"
)

// tileBuf is the thread-local accumulation buffer of the spreading and
// degridding loops. It covers one tile plus the kernel halo; flushing to
// the shared grid happens row-wise under the per-row mutex so the
// critical section never holds more than one tile's worth of values.
type tileBuf struct {
	p          *params
	su, sv     int
	iu0, iv0   int // start index of the current visibility
	bu0, bv0   int // start index of the current buffer
	bufr, bufi []float64
	ku, kv     []float64
	w0, xdw    float64
	wgrid      bool
}

func newTileBuf(p *params, w0 float64, wgrid bool) *tileBuf {
	side := 2*p.nsafe + (1 << logsquare)
	t := &tileBuf{
		p:  p,
		su: side, sv: side,
		iu0: -1000000, iv0: -1000000,
		bu0: -1000000, bv0: -1000000,
		bufr:  make([]float64, side*side),
		bufi:  make([]float64, side*side),
		ku:    make([]float64, p.supp),
		kv:    make([]float64, p.supp),
		w0:    w0,
		wgrid: wgrid,
	}
	if wgrid {
		t.xdw = 1 / p.dw
	}
	return t
}

// position evaluates the kernel taps for one sample (one batched call per
// axis) and reports whether the footprint has left the current buffer.
func (t *tileBuf) position(c uvwCoord) (moved bool) {
	p := t.p
	iu0old, iv0old := t.iu0, t.iv0
	u, v, iu0, iv0 := p.getpix(c.u, c.v)
	t.iu0, t.iv0 = iu0, iv0
	w := float64(p.supp)
	x0 := 2 * (float64(iu0) - u) / w
	y0 := 2 * (float64(iv0) - v) / w
	p.krn.EvalBatch(x0, t.ku)
	p.krn.EvalBatch(y0, t.kv)
	if t.wgrid {
		wk := p.krn.EvalSingle(2 * t.xdw * (t.w0 - c.w) / w)
		for i := range t.ku {
			t.ku[i] *= wk
		}
	}
	if iu0 == iu0old && iv0 == iv0old {
		return false
	}
	return iu0 < t.bu0 || iv0 < t.bv0 || iu0+p.supp > t.bu0+t.su || iv0+p.supp > t.bv0+t.sv
}

// rebase aligns the buffer origin to the tile containing the current
// footprint.
func (t *tileBuf) rebase() {
	t.bu0 = (((t.iu0 + t.p.nsafe) >> logsquare) << logsquare) - t.p.nsafe
	t.bv0 = (((t.iv0 + t.p.nsafe) >> logsquare) << logsquare) - t.p.nsafe
}

// offset is the buffer index of the first footprint cell.
func (t *tileBuf) offset() int { return (t.iu0-t.bu0)*t.sv + (t.iv0 - t.bv0) }

// spreader owns a tileBuf that flushes into the shared grid.
type spreader struct {
	tileBuf
	grid  []complex128
	locks []sync.Mutex
}

func newSpreader(p *params, grid []complex128, locks []sync.Mutex, w0 float64, wgrid bool) *spreader {
	return &spreader{tileBuf: *newTileBuf(p, w0, wgrid), grid: grid, locks: locks}
}

func (s *spreader) prep(c uvwCoord) int {
	if s.position(c) {
		s.flush()
		s.rebase()
	}
	return s.offset()
}

// flush adds the buffer into the shared grid, one row at a time under
// that row's mutex, and clears it.
func (s *spreader) flush() {
	if s.bu0 < -s.p.nsafe {
		return // nothing written into the buffer yet
	}
	nu, nv := s.p.nu, s.p.nv
	idxu := (s.bu0 + nu) % nu
	idxv0 := (s.bv0 + nv) % nv
	for iu := 0; iu < s.su; iu++ {
		idxv := idxv0
		s.locks[idxu].Lock()
		for iv := 0; iv < s.sv; iv++ {
			k := iu*s.sv + iv
			s.grid[idxu*nv+idxv] += complex(s.bufr[k], s.bufi[k])
			s.bufr[k] = 0
			s.bufi[k] = 0
			if idxv++; idxv >= nv {
				idxv = 0
			}
		}
		s.locks[idxu].Unlock()
		if idxu++; idxu >= nu {
			idxu = 0
		}
	}
}

// x2gridC spreads all matching ranges into the grid for plane p0.
func (p *params) x2gridC(grid []complex128, p0 int, w0 float64) {
	p.tm.Push("gridding proper")
	locks := make([]sync.Mutex, p.nu)
	haveWgt := p.wgt != nil
	wgrid := p.doWgrid
	nchan := p.bl.nchan
	supp := p.supp

	nw := parallel.Resolve(p.nthreads)
	parallel.Run(nw, len(p.ranges), func(_, lo, hi int) {
		hlp := newSpreader(p, grid, locks, w0, wgrid)
		for irng := lo; irng < hi; irng++ {
			rng := p.ranges[irng]
			if wgrid && (int(rng.minplane)+supp <= p0 || int(rng.minplane) > p0) {
				continue
			}
			row := int(rng.row)
			for ch := int(rng.chBegin); ch < int(rng.chEnd); ch++ {
				coord := p.bl.effective(row, ch)
				coord, flip := coord.fixW()
				ofs := hlp.prep(coord)
				v := p.msIn[row*nchan+ch]
				if flip {
					v = complex(real(v), -imag(v))
				}
				if haveWgt {
					v *= complex(p.wgt[row*nchan+ch], 0)
				}
				vr, vi := real(v), imag(v)
				for cu := 0; cu < supp; cu++ {
					f := hlp.ku[cu]
					base := ofs + cu*hlp.sv
					for cv := 0; cv < supp; cv++ {
						fct := f * hlp.kv[cv]
						hlp.bufr[base+cv] += vr * fct
						hlp.bufi[base+cv] += vi * fct
					}
				}
			}
		}
		hlp.flush()
	})
	p.tm.Pop()
}

// degridder owns a tileBuf loaded from the stable shared grid; reads need
// no locks because the grid does not change during degridding.
type degridder struct {
	tileBuf
	grid []complex128
}

func newDegridder(p *params, grid []complex128, w0 float64, wgrid bool) *degridder {
	return &degridder{tileBuf: *newTileBuf(p, w0, wgrid), grid: grid}
}

func (d *degridder) prep(c uvwCoord) int {
	if d.position(c) {
		d.rebase()
		d.load()
	}
	return d.offset()
}

func (d *degridder) load() {
	nu, nv := d.p.nu, d.p.nv
	idxu := (d.bu0 + nu) % nu
	idxv0 := (d.bv0 + nv) % nv
	for iu := 0; iu < d.su; iu++ {
		idxv := idxv0
		for iv := 0; iv < d.sv; iv++ {
			g := d.grid[idxu*nv+idxv]
			d.bufr[iu*d.sv+iv] = real(g)
			d.bufi[iu*d.sv+iv] = imag(g)
			if idxv++; idxv >= nv {
				idxv = 0
			}
		}
		if idxu++; idxu >= nu {
			idxu = 0
		}
	}
}

// grid2xC interpolates all matching ranges out of the grid for plane p0.
func (p *params) grid2xC(grid []complex128, p0 int, w0 float64) {
	p.tm.Push("degridding proper")
	haveWgt := p.wgt != nil
	wgrid := p.doWgrid
	nchan := p.bl.nchan
	supp := p.supp

	nw := parallel.Resolve(p.nthreads)
	parallel.Run(nw, len(p.ranges), func(_, lo, hi int) {
		hlp := newDegridder(p, grid, w0, wgrid)
		for irng := lo; irng < hi; irng++ {
			rng := p.ranges[irng]
			if wgrid && (int(rng.minplane)+supp <= p0 || int(rng.minplane) > p0) {
				continue
			}
			row := int(rng.row)
			for ch := int(rng.chBegin); ch < int(rng.chEnd); ch++ {
				coord := p.bl.effective(row, ch)
				coord, flip := coord.fixW()
				ofs := hlp.prep(coord)
				var rr, ri float64
				for cu := 0; cu < supp; cu++ {
					var tr, ti float64
					base := ofs + cu*hlp.sv
					for cv := 0; cv < supp; cv++ {
						tr += hlp.kv[cv] * hlp.bufr[base+cv]
						ti += hlp.kv[cv] * hlp.bufi[base+cv]
					}
					rr += hlp.ku[cu] * tr
					ri += hlp.ku[cu] * ti
				}
				r := complex(rr, ri)
				if flip {
					r = complex(rr, -ri)
				}
				if haveWgt {
					r *= complex(p.wgt[row*nchan+ch], 0)
				}
				p.msOut[row*nchan+ch] += r
			}
		}
	})
	p.tm.Pop()
}
