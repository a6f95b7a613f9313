// Package fft is the multi-dimensional transform facade. It applies
// cached 1-D plans along selected axes of strided N-D views, with
// real/complex, Hartley and DCT/DST variants.
//
// All operations share the same conventions: axes == nil selects every
// axis in natural order, inorm in {0,1,2} scales by 1, 1/sqrt(N) or 1/N
// with N the product of the logical lengths along the requested axes, and
// a zero-valued out makes the callee allocate. A supplied out must either
// alias the input exactly (where the operation allows it) or be disjoint;
// partially overlapping views are a caller error the facade cannot
// detect.
package fft

import (
	"github.com/cwbudde/algo-nufft/internal/fft1d"
	"github.com/cwbudde/algo-nufft/internal/fftypes"
	"github.com/cwbudde/algo-nufft/internal/parallel"
	"github.com/cwbudde/algo-nufft/nd"
)

// Complex is the element constraint for complex-valued transforms.
type Complex = fftypes.Complex

// Float is the element constraint for real-valued transforms.
type Float = fftypes.Float

// GoodSize returns the smallest length >= n that the engine handles with
// fast radix passes only: composites of {2,3,5,7,11}, or {2,3,5} when
// real is set.
func GoodSize(n int, real bool) (int, error) {
	if n < 0 {
		return 0, errShape
	}
	var (
		m   int
		err error
	)
	if real {
		m, err = fft1d.GoodSizeReal(n)
	} else {
		m, err = fft1d.GoodSizeComplex(n)
	}
	if err != nil {
		return 0, ErrOverflow
	}
	return m, nil
}

// C2C computes the complex transform of a along the requested axes and
// returns the result. out may alias a exactly for an in-place transform.
func C2C[T Complex](a, out nd.Array[T], axes []int, forward bool, inorm, nthreads int) (nd.Array[T], error) {
	var zero T
	switch any(zero).(type) {
	case complex64:
		return c2cImpl[T, float32](a, out, axes, forward, inorm, nthreads)
	case complex128:
		return c2cImpl[T, float64](a, out, axes, forward, inorm, nthreads)
	default:
		return nd.Array[T]{}, ErrUnsupportedDatatype
	}
}

func c2cImpl[T Complex, F Float](a, out nd.Array[T], axes []int, forward bool, inorm, nthreads int) (nd.Array[T], error) {
	if a.Data == nil {
		return nd.Array[T]{}, errNilArray
	}
	axes, err := checkAxes(a.NDim(), axes)
	if err != nil {
		return nd.Array[T]{}, err
	}
	fct, err := normFactor(inorm, a.Shape, axes, 1, 0)
	if err != nil {
		return nd.Array[T]{}, err
	}
	if out, err = prepComplexOut(a, out); err != nil {
		return nd.Array[T]{}, err
	}
	if err := transformComplexAxes[T, F](out, axes, forward, fct, nthreads); err != nil {
		return nd.Array[T]{}, err
	}
	return out, nil
}

// C2CSym computes the complex transform of a purely real input, filling
// the full complex output including the conjugate-symmetric half.
func C2CSym[Fl Float, C Complex](a nd.Array[Fl], out nd.Array[C], axes []int, forward bool, inorm, nthreads int) (nd.Array[C], error) {
	if a.Data == nil {
		return nd.Array[C]{}, errNilArray
	}
	if err := matchPrecision[Fl, C](); err != nil {
		return nd.Array[C]{}, err
	}
	if out.Data == nil {
		out = nd.New[C](a.Shape...)
	} else if !nd.SameShape(a, out) {
		return nd.Array[C]{}, errShape
	}
	// widen to complex, then run the ordinary transform in place
	lines := a.LineCount(0)
	n := a.Shape[0]
	for line := 0; line < lines; line++ {
		sb := a.LineOffset(line, 0)
		db := out.LineOffset(line, 0)
		for i := 0; i < n; i++ {
			out.Data[db+i*out.Stride[0]] = cmplxAt[C](float64(a.Data[sb+i*a.Stride[0]]), 0)
		}
	}
	return C2C(out, out, axes, forward, inorm, nthreads)
}

// R2C computes the transform of a real input; along the last requested
// axis the output keeps only the n/2+1 non-redundant bins.
func R2C[Fl Float, C Complex](a nd.Array[Fl], out nd.Array[C], axes []int, forward bool, inorm, nthreads int) (nd.Array[C], error) {
	if a.Data == nil {
		return nd.Array[C]{}, errNilArray
	}
	if err := matchPrecision[Fl, C](); err != nil {
		return nd.Array[C]{}, err
	}
	axes, err := checkAxes(a.NDim(), axes)
	if err != nil {
		return nd.Array[C]{}, err
	}
	last := axes[len(axes)-1]
	n := a.Shape[last]
	if n < 1 {
		return nd.Array[C]{}, errShortLength
	}
	outShape := append([]int(nil), a.Shape...)
	outShape[last] = n/2 + 1
	if out.Data == nil {
		out = nd.New[C](outShape...)
	} else {
		if out.NDim() != len(outShape) {
			return nd.Array[C]{}, errShape
		}
		for d, s := range outShape {
			if out.Shape[d] != s {
				return nd.Array[C]{}, errShape
			}
		}
	}
	fct, err := normFactor(inorm, a.Shape, axes, 1, 0)
	if err != nil {
		return nd.Array[C]{}, err
	}

	if err := realForwardAxis(a, out, last, fct, nthreads); err != nil {
		return nd.Array[C]{}, err
	}
	if err := c2cSubset[C](out, axes[:len(axes)-1], true, nthreads); err != nil {
		return nd.Array[C]{}, err
	}
	if !forward {
		conjView(out)
	}
	return out, nil
}

// realForwardAxis fills out's half-spectrum lines from a's real lines
// along axis, scaling by fct.
func realForwardAxis[Fl Float, C Complex](a nd.Array[Fl], out nd.Array[C], axis int, fct float64, nthreads int) error {
	n := a.Shape[axis]
	rp, err := realPlanFor[Fl](n)
	if err != nil {
		return err
	}
	lines := a.LineCount(axis)
	nw := parallel.Resolve(nthreads)
	parallel.Run(nw, lines, func(_, lo, hi int) {
		line := make([]Fl, n)
		packed := make([]Fl, n)
		scratch := make([]fft1d.Cmplx[Fl], rp.Bufsize())
		half := make([]C, n/2+1)
		for li := lo; li < hi; li++ {
			a.GatherLine(line, a.LineOffset(li, axis), axis)
			rp.Forward(line, packed, scratch, Fl(fct))
			unpackHalf(half, packed, n)
			out.ScatterLine(half, out.LineOffset(li, axis), axis)
		}
	})
	return nil
}

// unpackHalf expands the FFTPACK layout into explicit complex bins.
func unpackHalf[C Complex, Fl Float](dst []C, packed []Fl, n int) {
	dst[0] = cmplxAt[C](float64(packed[0]), 0)
	for k := 1; k <= (n-1)/2; k++ {
		dst[k] = cmplxAt[C](float64(packed[2*k-1]), float64(packed[2*k]))
	}
	if n&1 == 0 {
		dst[n/2] = cmplxAt[C](float64(packed[n-1]), 0)
	}
}

// packHalf is the inverse of unpackHalf; conj mirrors the spectrum.
func packHalf[C Complex, Fl Float](dst []Fl, src []C, n int, conj bool) {
	re, _ := parts(src[0])
	dst[0] = Fl(re)
	for k := 1; k <= (n-1)/2; k++ {
		re, im := parts(src[k])
		if conj {
			im = -im
		}
		dst[2*k-1] = Fl(re)
		dst[2*k] = Fl(im)
	}
	if n&1 == 0 {
		re, _ = parts(src[n/2])
		dst[n-1] = Fl(re)
	}
}

// C2R expands a Hermitian half-spectrum back to a real signal of length
// lastsize along the last requested axis. lastsize==0 selects 2n-1.
func C2R[C Complex, Fl Float](a nd.Array[C], out nd.Array[Fl], axes []int, lastsize int, forward bool, inorm, nthreads int) (nd.Array[Fl], error) {
	if a.Data == nil {
		return nd.Array[Fl]{}, errNilArray
	}
	if err := matchPrecision[Fl, C](); err != nil {
		return nd.Array[Fl]{}, err
	}
	axes, err := checkAxes(a.NDim(), axes)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	last := axes[len(axes)-1]
	nc := a.Shape[last]
	if lastsize == 0 {
		lastsize = 2*nc - 1
	}
	if lastsize/2+1 != nc {
		return nd.Array[Fl]{}, errLastsize
	}
	outShape := append([]int(nil), a.Shape...)
	outShape[last] = lastsize
	if out.Data == nil {
		out = nd.New[Fl](outShape...)
	} else {
		if out.NDim() != len(outShape) {
			return nd.Array[Fl]{}, errShape
		}
		for d, s := range outShape {
			if out.Shape[d] != s {
				return nd.Array[Fl]{}, errShape
			}
		}
	}
	fct, err := normFactor(inorm, outShape, axes, 1, 0)
	if err != nil {
		return nd.Array[Fl]{}, err
	}

	src := a
	if len(axes) > 1 {
		tmp := nd.New[C](a.Shape...)
		copyView(tmp, a)
		if err := c2cSubset[C](tmp, axes[:len(axes)-1], forward, nthreads); err != nil {
			return nd.Array[Fl]{}, err
		}
		src = tmp
	}

	n := lastsize
	rp, err := realPlanFor[Fl](n)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	lines := out.LineCount(last)
	nw := parallel.Resolve(nthreads)
	parallel.Run(nw, lines, func(_, lo, hi int) {
		half := make([]C, nc)
		packed := make([]Fl, n)
		line := make([]Fl, n)
		scratch := make([]fft1d.Cmplx[Fl], rp.Bufsize())
		for li := lo; li < hi; li++ {
			src.GatherLine(half, src.LineOffset(li, last), last)
			packHalf(packed, half, n, forward)
			rp.Backward(packed, line, scratch, Fl(fct))
			out.ScatterLine(line, out.LineOffset(li, last), last)
		}
	})
	return out, nil
}

// c2cSubset runs an unnormalised in-place complex transform over a subset
// of axes, dispatching on the element precision.
func c2cSubset[C Complex](arr nd.Array[C], axes []int, forward bool, nthreads int) error {
	if len(axes) == 0 {
		return nil
	}
	var zero C
	switch any(zero).(type) {
	case complex64:
		return transformComplexAxes[C, float32](arr, axes, forward, 1, nthreads)
	case complex128:
		return transformComplexAxes[C, float64](arr, axes, forward, 1, nthreads)
	default:
		return ErrUnsupportedDatatype
	}
}

// conjView conjugates a complex view in place.
func conjView[C Complex](arr nd.Array[C]) {
	lines := arr.LineCount(0)
	st := arr.Stride[0]
	for line := 0; line < lines; line++ {
		base := arr.LineOffset(line, 0)
		for i := 0; i < arr.Shape[0]; i++ {
			arr.Data[base+i*st] = conjOf(arr.Data[base+i*st])
		}
	}
}

// R2RFFTPack transforms real data to or from the packed Hermitian layout
// along each requested axis. real2hermitian selects the direction of the
// packing, forward the sign of the transform.
func R2RFFTPack[Fl Float](a, out nd.Array[Fl], axes []int, real2hermitian, forward bool, inorm, nthreads int) (nd.Array[Fl], error) {
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
		n := out.Shape[ax]
		rp, err := realPlanFor[Fl](n)
		if err != nil {
			return nd.Array[Fl]{}, err
		}
		lines := out.LineCount(ax)
		nw := parallel.Resolve(nthreads)
		parallel.Run(nw, lines, func(_, lo, hi int) {
			line := make([]Fl, n)
			work := make([]Fl, n)
			scratch := make([]fft1d.Cmplx[Fl], rp.Bufsize())
			for li := lo; li < hi; li++ {
				base := out.LineOffset(li, ax)
				out.GatherLine(line, base, ax)
				if real2hermitian {
					rp.Forward(line, work, scratch, 1)
					if !forward {
						negateImags(work, n)
					}
				} else {
					copy(work, line)
					if forward {
						negateImags(work, n)
					}
					rp.Backward(work, work, scratch, 1)
				}
				out.ScatterLine(work, base, ax)
			}
		})
	}
	scaleReal(out, fct)
	return out, nil
}

// negateImags flips the sign of the imaginary slots of a packed line.
func negateImags[Fl Float](packed []Fl, n int) {
	for k := 1; 2*k <= n-1; k++ {
		packed[2*k] = -packed[2*k]
	}
}

// matchPrecision rejects mixed-precision real/complex pairs.
func matchPrecision[Fl Float, C Complex]() error {
	var f Fl
	var c C
	switch any(f).(type) {
	case float32:
		if _, ok := any(c).(complex64); ok {
			return nil
		}
	case float64:
		if _, ok := any(c).(complex128); ok {
			return nil
		}
	}
	return ErrUnsupportedDatatype
}
