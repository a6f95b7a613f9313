package fft

import (
	"github.com/cwbudde/algo-nufft/internal/fft1d"
	"github.com/cwbudde/algo-nufft/internal/fftypes"
)

// The engine computes on fft1d.Cmplx values so the butterflies stay
// generic over the scalar type. The facade converts gathered lines at the
// boundary; the type switches run once per line, the loops are concrete.

func toEngine[T fftypes.Complex, F fftypes.Float](dst []fft1d.Cmplx[F], src []T) {
	switch s := any(src).(type) {
	case []complex64:
		d := any(dst).([]fft1d.Cmplx[float32])
		for i, v := range s {
			d[i] = fft1d.Cmplx[float32]{R: real(v), I: imag(v)}
		}
	case []complex128:
		d := any(dst).([]fft1d.Cmplx[float64])
		for i, v := range s {
			d[i] = fft1d.Cmplx[float64]{R: real(v), I: imag(v)}
		}
	default:
		panic(ErrInternal)
	}
}

func fromEngine[T fftypes.Complex, F fftypes.Float](dst []T, src []fft1d.Cmplx[F]) {
	switch d := any(dst).(type) {
	case []complex64:
		s := any(src).([]fft1d.Cmplx[float32])
		for i, v := range s {
			d[i] = complex(v.R, v.I)
		}
	case []complex128:
		s := any(src).([]fft1d.Cmplx[float64])
		for i, v := range s {
			d[i] = complex(v.R, v.I)
		}
	default:
		panic(ErrInternal)
	}
}

// cmplxAt builds a user-facing complex value from scalar components.
func cmplxAt[T fftypes.Complex](re, im float64) T {
	var zero T
	switch any(zero).(type) {
	case complex64:
		return any(complex(float32(re), float32(im))).(T)
	case complex128:
		return any(complex(re, im)).(T)
	default:
		panic(ErrInternal)
	}
}

// parts splits a user-facing complex value into float64 components.
func parts[T fftypes.Complex](v T) (re, im float64) {
	switch c := any(v).(type) {
	case complex64:
		return float64(real(c)), float64(imag(c))
	case complex128:
		return real(c), imag(c)
	default:
		panic(ErrInternal)
	}
}

// conjOf returns the complex conjugate of a user-facing value.
func conjOf[T fftypes.Complex](v T) T {
	re, im := parts(v)
	return cmplxAt[T](re, -im)
}
