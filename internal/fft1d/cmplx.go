// Package fft1d implements the composable one-dimensional FFT engine: a
// tree of radix passes assembled by a plan, sharing one table of roots of
// unity per transform length.
package fft1d

import (
	"math"

	"github.com/cwbudde/algo-nufft/internal/fftypes"
)

// Float is the scalar constraint for the engine.
type Float = fftypes.Float

// Cmplx is the engine's complex value. Keeping the components explicit
// lets every butterfly stay generic over the scalar type while the
// compiler monomorphises the arithmetic.
type Cmplx[F Float] struct {
	R, I F
}

// CmplxOf builds a Cmplx from float64 components, demoting as needed.
func CmplxOf[F Float](re, im float64) Cmplx[F] {
	return Cmplx[F]{F(re), F(im)}
}

// Add returns a+b.
func (a Cmplx[F]) Add(b Cmplx[F]) Cmplx[F] { return Cmplx[F]{a.R + b.R, a.I + b.I} }

// Sub returns a-b.
func (a Cmplx[F]) Sub(b Cmplx[F]) Cmplx[F] { return Cmplx[F]{a.R - b.R, a.I - b.I} }

// Mul returns the complex product a*b.
func (a Cmplx[F]) Mul(b Cmplx[F]) Cmplx[F] {
	return Cmplx[F]{a.R*b.R - a.I*b.I, a.R*b.I + a.I*b.R}
}

// Conj returns the complex conjugate.
func (a Cmplx[F]) Conj() Cmplx[F] { return Cmplx[F]{a.R, -a.I} }

// Scale returns a scaled by the real factor f.
func (a Cmplx[F]) Scale(f F) Cmplx[F] { return Cmplx[F]{a.R * f, a.I * f} }

// SpecialMul returns a*conj(b) in the forward direction and a*b in the
// inverse direction. All twiddle application goes through this helper so
// that direction handling lives in one place.
func (a Cmplx[F]) SpecialMul(b Cmplx[F], fwd bool) Cmplx[F] {
	if fwd {
		return Cmplx[F]{a.R*b.R + a.I*b.I, a.I*b.R - a.R*b.I}
	}
	return Cmplx[F]{a.R*b.R - a.I*b.I, a.R*b.I + a.I*b.R}
}

// pm computes the sum and difference of two values.
func pm[F Float](c, d Cmplx[F]) (Cmplx[F], Cmplx[F]) { return c.Add(d), c.Sub(d) }

// rot90 rotates by -90 degrees in the forward direction, +90 inverse.
func rot90[F Float](a Cmplx[F], fwd bool) Cmplx[F] {
	if fwd {
		return Cmplx[F]{a.I, -a.R}
	}
	return Cmplx[F]{-a.I, a.R}
}

// rot45 rotates by -45 degrees in the forward direction, +45 inverse.
func rot45[F Float](a Cmplx[F], fwd bool) Cmplx[F] {
	const hsqt2 = 0.707106781186547524400844362104849
	h := F(hsqt2)
	if fwd {
		return Cmplx[F]{h * (a.R + a.I), h * (a.I - a.R)}
	}
	return Cmplx[F]{h * (a.R - a.I), h * (a.I + a.R)}
}

// rot135 rotates by -135 degrees in the forward direction, +135 inverse.
func rot135[F Float](a Cmplx[F], fwd bool) Cmplx[F] {
	const hsqt2 = 0.707106781186547524400844362104849
	h := F(hsqt2)
	if fwd {
		return Cmplx[F]{h * (a.I - a.R), h * (-a.R - a.I)}
	}
	return Cmplx[F]{h * (-a.R - a.I), h * (a.R - a.I)}
}

// Roots is the shared table of N-th roots of unity e^(2*pi*i*k/N),
// k = 0..N-1, computed in double precision and demoted to the working
// scalar. It is immutable after construction; the passes of one plan
// index it by the stride factor len(table)/N_pass.
type Roots[F Float] struct {
	data []Cmplx[F]
}

// NewRoots computes the table for length n.
func NewRoots[F Float](n int) *Roots[F] {
	data := make([]Cmplx[F], n)
	for k := range data {
		s, c := math.Sincos(2 * math.Pi * float64(k) / float64(n))
		data[k] = Cmplx[F]{F(c), F(s)}
	}
	return &Roots[F]{data: data}
}

// Size returns the table length.
func (r *Roots[F]) Size() int { return len(r.data) }

// At returns the k-th root.
func (r *Roots[F]) At(k int) Cmplx[F] { return r.data[k] }
