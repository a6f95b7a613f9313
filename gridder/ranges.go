package gridder

import (
	"math"
	"sort"

	"github.com/cwbudde/algo-nufft/internal/parallel"
)

// logsquare fixes the tile edge at 1<<logsquare grid cells. The tile size
// trades buffer locality against flush frequency; 16 is the tuned value.
const logsquare = 4

// visRange is one work unit of the gridding loop: a contiguous channel
// range of one row that lands in a single (tile_u, tile_v, w-plane) cell.
type visRange struct {
	row            uint32
	tileU, tileV   uint16
	minplane       uint16
	chBegin, chEnd uint16
}

// uvwIdx is the packed sort key ordering tiles deterministically.
func (r visRange) uvwIdx() uint64 {
	return uint64(r.tileU)<<32 + uint64(r.tileV)<<16 + uint64(r.minplane)
}

// rangeLess is the global range ordering: packed tile key first, then
// row and channel so equal-tile ranges are totally ordered and the
// floating-point reduction order is reproducible.
func rangeLess(a, b visRange) bool {
	ka, kb := a.uvwIdx(), b.uvwIdx()
	if ka != kb {
		return ka < kb
	}
	if a.row != b.row {
		return a.row < b.row
	}
	return a.chBegin < b.chBegin
}

// countRanges partitions the active samples into visRange records and
// sorts them into the global deterministic order. The active mask
// is released afterwards.
func (p *params) countRanges() {
	p.tm.Push("range count")
	nrow, nchan := p.bl.nrow, p.bl.nchan

	if p.doWgrid {
		p.dw = 0.5 / p.ofactor / math.Abs(p.nm1min)
		p.nplanes = int((p.wmaxD-p.wminD)/p.dw + float64(p.supp))
		p.wmin = (p.wminD+p.wmaxD)*0.5 - 0.5*float64(p.nplanes-1)*p.dw
	} else {
		p.dw = 0
		p.nplanes = 0
		p.wmin = 0
	}

	nw := parallel.Resolve(p.nthreads)
	local := make([][]visRange, nw)
	parallel.Run(nw, nrow, func(tid, lo, hi int) {
		var my []visRange
		for irow := lo; irow < hi; irow++ {
			on := false
			var iulast, ivlast, plast int
			chan0 := 0
			for ichan := 0; ichan < nchan; ichan++ {
				if p.active[irow*nchan+ichan] {
					uvw := p.bl.effective(irow, ichan)
					uvw, _ = uvw.fixW()
					_, _, iu0, iv0 := p.getpix(uvw.u, uvw.v)
					iu0 = (iu0 + p.nsafe) >> logsquare
					iv0 = (iv0 + p.nsafe) >> logsquare
					iw := 0
					if p.doWgrid {
						iw = int(1 + (math.Abs(uvw.w)-0.5*float64(p.supp)*p.dw-p.wmin)/p.dw)
						if iw < 0 {
							iw = 0
						}
					}
					switch {
					case !on:
						on = true
						iulast, ivlast, plast, chan0 = iu0, iv0, iw, ichan
					case iu0 != iulast || iv0 != ivlast || iw != plast:
						my = append(my, visRange{
							row: uint32(irow), tileU: uint16(iulast), tileV: uint16(ivlast),
							minplane: uint16(plast), chBegin: uint16(chan0), chEnd: uint16(ichan),
						})
						iulast, ivlast, plast, chan0 = iu0, iv0, iw, ichan
					}
				} else if on {
					my = append(my, visRange{
						row: uint32(irow), tileU: uint16(iulast), tileV: uint16(ivlast),
						minplane: uint16(plast), chBegin: uint16(chan0), chEnd: uint16(ichan),
					})
					on = false
				}
			}
			if on {
				my = append(my, visRange{
					row: uint32(irow), tileU: uint16(iulast), tileV: uint16(ivlast),
					minplane: uint16(plast), chBegin: uint16(chan0), chEnd: uint16(nchan),
				})
			}
		}
		local[tid] = my
	})

	p.active = nil
	p.tm.PopPush("range merging")
	total := 0
	for _, l := range local {
		total += len(l)
	}
	p.ranges = make([]visRange, 0, total)
	for _, l := range local {
		p.ranges = append(p.ranges, l...)
	}
	sort.Slice(p.ranges, func(i, j int) bool { return rangeLess(p.ranges[i], p.ranges[j]) })
	p.tm.Pop()
}
