package fft

import (
	"math"

	"github.com/cwbudde/algo-nufft/internal/fftypes"
	"github.com/cwbudde/algo-nufft/nd"
)

// Normalisation modes.
const (
	NormNone  = 0 // factor 1
	NormOrtho = 1 // factor 1/sqrt(N)
	NormFull  = 2 // factor 1/N
)

// normFactor returns the scale for inorm over the logical length N, where
// N is the product of fct*(shape[axis]+delta) over the requested axes.
func normFactor(inorm int, shape, axes []int, fct, delta int) (float64, error) {
	if inorm < 0 || inorm > 2 {
		return 0, errNorm
	}
	if inorm == NormNone {
		return 1, nil
	}
	n := 1.0
	for _, ax := range axes {
		n *= float64(fct * (shape[ax] + delta))
	}
	if inorm == NormFull {
		return 1 / n, nil
	}
	return 1 / math.Sqrt(n), nil
}

// scaleReal multiplies every element of a real view in place.
func scaleReal[F fftypes.Float](a nd.Array[F], fct float64) {
	if fct == 1 {
		return
	}
	f := F(fct)
	n := a.LineCount(0)
	st := a.Stride[0]
	for line := 0; line < n; line++ {
		base := a.LineOffset(line, 0)
		for i := 0; i < a.Shape[0]; i++ {
			a.Data[base+i*st] *= f
		}
	}
}

// scaleComplex multiplies every element of a complex view in place.
func scaleComplex[T fftypes.Complex](a nd.Array[T], fct float64) {
	if fct == 1 {
		return
	}
	f := cmplxAt[T](fct, 0)
	n := a.LineCount(0)
	st := a.Stride[0]
	for line := 0; line < n; line++ {
		base := a.LineOffset(line, 0)
		for i := 0; i < a.Shape[0]; i++ {
			a.Data[base+i*st] *= f
		}
	}
}
