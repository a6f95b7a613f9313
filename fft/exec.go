package fft

import (
	"github.com/cwbudde/algo-nufft/internal/fft1d"
	"github.com/cwbudde/algo-nufft/internal/fftypes"
	"github.com/cwbudde/algo-nufft/internal/parallel"
	"github.com/cwbudde/algo-nufft/nd"
)

// checkAxes validates and normalises the axis list. nil or empty means
// all axes in natural order.
func checkAxes(ndim int, axes []int) ([]int, error) {
	if len(axes) == 0 {
		all := make([]int, ndim)
		for i := range all {
			all[i] = i
		}
		return all, nil
	}
	seen := make([]bool, ndim)
	for _, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			return nil, errAxis
		}
		seen[ax] = true
	}
	return axes, nil
}

// sameData reports whether two buffers start at the same element. The
// comparison goes through interfaces so it also answers false for
// distinct element types.
func sameData[T, U fftypes.Numeric](a []T, b []U) bool {
	if len(a) == 0 || len(b) == 0 {
		return false
	}
	return any(&a[0]) == any(&b[0])
}

// prepComplexOut returns the output view for a same-shape complex
// operation, allocating when out carries no buffer. When out aliases the
// input the transform simply runs in place; otherwise the input is copied
// over first.
func prepComplexOut[T fftypes.Complex](a, out nd.Array[T]) (nd.Array[T], error) {
	if out.Data == nil {
		out = nd.New[T](a.Shape...)
	} else if !nd.SameShape(a, out) {
		return nd.Array[T]{}, errShape
	}
	if !sameData(a.Data, out.Data) {
		copyView(out, a)
	}
	return out, nil
}

// prepRealOut is prepComplexOut for real element types.
func prepRealOut[F fftypes.Float](a, out nd.Array[F]) (nd.Array[F], error) {
	if out.Data == nil {
		out = nd.New[F](a.Shape...)
	} else if !nd.SameShape(a, out) {
		return nd.Array[F]{}, errShape
	}
	if !sameData(a.Data, out.Data) {
		copyView(out, a)
	}
	return out, nil
}

// copyView copies src into dst element-wise; shapes must match.
func copyView[T fftypes.Numeric](dst, src nd.Array[T]) {
	lines := src.LineCount(0)
	n := src.Shape[0]
	sst, dst0 := src.Stride[0], dst.Stride[0]
	for line := 0; line < lines; line++ {
		sb := src.LineOffset(line, 0)
		db := dst.LineOffset(line, 0)
		for i := 0; i < n; i++ {
			dst.Data[db+i*dst0] = src.Data[sb+i*sst]
		}
	}
}

// transformComplexAxis runs the cached 1-D plan over every line of arr
// along axis, in place, scaling by fct. Lines are assigned to workers in
// static contiguous shares, so the result is deterministic for a fixed
// thread count.
func transformComplexAxis[T fftypes.Complex, F fftypes.Float](
	arr nd.Array[T], axis int, fwd bool, fct float64, nthreads int,
) error {
	n := arr.Shape[axis]
	plan, err := planFor[F](n)
	if err != nil {
		return err
	}
	lines := arr.LineCount(axis)
	nw := parallel.Resolve(nthreads)
	parallel.Run(nw, lines, func(_, lo, hi int) {
		line := make([]T, n)
		eng := make([]fft1d.Cmplx[F], n)
		scratch := make([]fft1d.Cmplx[F], plan.Bufsize())
		for li := lo; li < hi; li++ {
			base := arr.LineOffset(li, axis)
			arr.GatherLine(line, base, axis)
			toEngine(eng, line)
			plan.Exec(eng, scratch, F(fct), fwd)
			fromEngine(line, eng)
			arr.ScatterLine(line, base, axis)
		}
	})
	return nil
}

// transformComplexAxes applies transformComplexAxis along each requested
// axis, folding the scale factor into the final one.
func transformComplexAxes[T fftypes.Complex, F fftypes.Float](
	arr nd.Array[T], axes []int, fwd bool, fct float64, nthreads int,
) error {
	for i, ax := range axes {
		f := 1.0
		if i == len(axes)-1 {
			f = fct
		}
		if err := transformComplexAxis[T, F](arr, ax, fwd, f, nthreads); err != nil {
			return err
		}
	}
	if len(axes) == 0 {
		scaleComplex(arr, fct)
	}
	return nil
}

// odometer iterates the multi-index of a shape in row-major order.
type odometer struct {
	shape []int
	idx   []int
}

func newOdometer(shape []int) *odometer {
	return &odometer{shape: shape, idx: make([]int, len(shape))}
}

func (o *odometer) next() bool {
	for d := len(o.idx) - 1; d >= 0; d-- {
		o.idx[d]++
		if o.idx[d] < o.shape[d] {
			return true
		}
		o.idx[d] = 0
	}
	return false
}
