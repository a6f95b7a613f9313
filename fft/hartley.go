package fft

import (
	"github.com/cwbudde/algo-nufft/internal/fft1d"
	"github.com/cwbudde/algo-nufft/internal/parallel"
	"github.com/cwbudde/algo-nufft/nd"
)

// SeparableHartley applies the 1-D Hartley transform (Re+Im of the
// forward FFT) independently along each requested axis.
func SeparableHartley[Fl Float](a, out nd.Array[Fl], axes []int, inorm, nthreads int) (nd.Array[Fl], error) {
	if a.Data == nil {
		return nd.Array[Fl]{}, errNilArray
	}
	axes, err := checkAxes(a.NDim(), axes)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	fct, err := normFactor(inorm, a.Shape, axes, 1, 0)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	if out, err = prepRealOut(a, out); err != nil {
		return nd.Array[Fl]{}, err
	}

	for _, ax := range axes {
		if err := hartleyAxis(out, ax, nthreads); err != nil {
			return nd.Array[Fl]{}, err
		}
	}
	scaleReal(out, fct)
	return out, nil
}

// hartleyAxis replaces every line along ax with Re+Im of its forward FFT.
func hartleyAxis[Fl Float](arr nd.Array[Fl], ax, nthreads int) error {
	n := arr.Shape[ax]
	rp, err := realPlanFor[Fl](n)
	if err != nil {
		return err
	}
	lines := arr.LineCount(ax)
	nw := parallel.Resolve(nthreads)
	parallel.Run(nw, lines, func(_, lo, hi int) {
		line := make([]Fl, n)
		packed := make([]Fl, n)
		hart := make([]Fl, n)
		scratch := make([]fft1d.Cmplx[Fl], rp.Bufsize())
		for li := lo; li < hi; li++ {
			base := arr.LineOffset(li, ax)
			arr.GatherLine(line, base, ax)
			rp.Forward(line, packed, scratch, 1)
			hart[0] = packed[0]
			for k := 1; k <= (n-1)/2; k++ {
				re, im := packed[2*k-1], packed[2*k]
				hart[k] = re + im
				hart[n-k] = re - im
			}
			if n&1 == 0 {
				hart[n/2] = packed[n-1]
			}
			arr.ScatterLine(hart, base, ax)
		}
	})
	return nil
}

// GenuineHartley computes one forward N-D FFT over the requested axes and
// takes Re+Im element-wise, using the index reflection to recover the
// redundant half of the real-input spectrum.
func GenuineHartley[Fl Float](a, out nd.Array[Fl], axes []int, inorm, nthreads int) (nd.Array[Fl], error) {
	if a.Data == nil {
		return nd.Array[Fl]{}, errNilArray
	}
	axes, err := checkAxes(a.NDim(), axes)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	fct, err := normFactor(inorm, a.Shape, axes, 1, 0)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	if out, err = prepRealOut(a, out); err != nil {
		return nd.Array[Fl]{}, err
	}

	var zero Fl
	switch any(zero).(type) {
	case float32:
		err = genuineHartleyImpl[Fl, complex64](a, out, axes, fct, nthreads)
	case float64:
		err = genuineHartleyImpl[Fl, complex128](a, out, axes, fct, nthreads)
	default:
		err = ErrUnsupportedDatatype
	}
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	return out, nil
}

func genuineHartleyImpl[Fl Float, C Complex](a, out nd.Array[Fl], axes []int, fct float64, nthreads int) error {
	spec, err := R2C[Fl, C](a, nd.Array[C]{}, axes, true, NormNone, nthreads)
	if err != nil {
		return err
	}
	last := axes[len(axes)-1]
	n := a.Shape[last]
	h := n / 2

	transformed := make([]bool, a.NDim())
	for _, ax := range axes {
		transformed[ax] = true
	}

	odo := newOdometer(out.Shape)
	for {
		idx := odo.idx
		j := idx[last]
		var v C
		sign := 1.0
		if j <= h {
			ofs := 0
			for d, i := range idx {
				ofs += i * spec.Stride[d]
			}
			v = spec.Data[ofs]
		} else {
			ofs := 0
			for d, i := range idx {
				m := i
				if transformed[d] {
					if d == last {
						m = n - j
					} else if i != 0 {
						m = out.Shape[d] - i
					}
				}
				ofs += m * spec.Stride[d]
			}
			v = spec.Data[ofs]
			sign = -1
		}
		re, im := parts(v)
		out.Data[out.Offset(idx...)] = Fl(fct * (re + sign*im))
		if !odo.next() {
			break
		}
	}
	return nil
}
