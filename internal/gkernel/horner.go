// Package gkernel provides the tabulated gridding kernel: a piecewise
// polynomial approximation of the exponential-of-semicircle function in
// Horner form, its Fourier-domain correction function, and the catalogue
// the planner selects from.
package gkernel

import (
	"math"

	"github.com/cwbudde/algo-nufft/internal/cpu"
	"github.com/cwbudde/algo-nufft/internal/parallel"
)

// coeffs computes the monomial coefficients of the degree-D Chebyshev
// interpolant of f on each of the W equal sub-intervals of [-1,1].
// The result has shape (D+1, W), highest degree first.
func coeffs(w, d int, f func(float64) float64) []float64 {
	coeff := make([]float64, w*(d+1))
	chebroot := make([]float64, d+1)
	for i := 0; i <= d; i++ {
		chebroot[i] = math.Cos((2*float64(i) + 1) * math.Pi / (2*float64(d) + 2))
	}
	y := make([]float64, d+1)
	lcf := make([]float64, d+1)
	c := make([]float64, (d+1)*(d+1))
	lcf2 := make([]float64, d+1)
	for i := 0; i < w; i++ {
		l := -1 + 2*float64(i)/float64(w)
		r := -1 + 2*float64(i+1)/float64(w)
		// function values at the Chebyshev nodes of this sub-interval
		for j := 0; j <= d; j++ {
			y[j] = f(chebroot[j]*(r-l)*0.5 + (r+l)*0.5)
		}
		// Chebyshev coefficients
		for j := 0; j <= d; j++ {
			lcf[j] = 0
			for k := 0; k <= d; k++ {
				lcf[j] += 2 / float64(d+1) * y[k] * math.Cos(float64(j)*(2*float64(k)+1)*math.Pi/(2*float64(d)+2))
			}
		}
		lcf[0] *= 0.5
		// convert to the monomial basis
		for j := range c {
			c[j] = 0
		}
		c[0] = 1
		c[1*(d+1)+1] = 1
		for j := 2; j <= d; j++ {
			c[j*(d+1)] = -c[(j-2)*(d+1)]
			for k := 1; k <= j; k++ {
				c[j*(d+1)+k] = 2*c[(j-1)*(d+1)+k-1] - c[(j-2)*(d+1)+k]
			}
		}
		for j := 0; j <= d; j++ {
			lcf2[j] = 0
		}
		for j := 0; j <= d; j++ {
			for k := 0; k <= d; k++ {
				lcf2[k] += c[j*(d+1)+k] * lcf[j]
			}
		}
		for j := 0; j <= d; j++ {
			coeff[j*w+i] = lcf2[d-j]
		}
	}
	return coeff
}

// Kernel is a tabulated piecewise-polynomial kernel of support W and
// degree D, with coefficients padded to the SIMD lane width so that one
// batched Horner evaluation yields all W taps.
type Kernel struct {
	W, D    int
	Beta    float64
	Ofactor float64
	Eps     float64
	stride  int // W padded to a lane multiple
	coeff   []float64
	corr    *Correction
	fn      func(float64) float64
}

// NewKernel tabulates the exponential-of-semicircle kernel
// exp(beta*W*(sqrt(1-x^2)-1)) for one catalogue entry.
func NewKernel(w, d int, beta, ofactor, eps float64) *Kernel {
	f := func(x float64) float64 {
		t := 1 - x*x
		if t <= 0 {
			return 0
		}
		return math.Exp(float64(w) * beta * (math.Sqrt(t) - 1))
	}
	vlen := cpu.VectorLen(cpu.DetectFeatures())
	stride := (w + vlen - 1) / vlen * vlen
	raw := coeffs(w, d, f)
	k := &Kernel{
		W: w, D: d, Beta: beta, Ofactor: ofactor, Eps: eps,
		stride: stride,
		coeff:  make([]float64, (d+1)*stride),
		fn:     f,
	}
	for j := 0; j <= d; j++ {
		copy(k.coeff[j*stride:j*stride+w], raw[j*w:(j+1)*w])
	}
	k.corr = NewCorrection(w, f)
	return k
}

// Support returns the kernel support W.
func (k *Kernel) Support() int { return k.W }

// EvalBatch writes the kernel values at x, x+2/W, ..., x+2(W-1)/W into
// out (length >= W). x must lie in [-1, -1+2/W].
func (k *Kernel) EvalBatch(x float64, out []float64) {
	x = (x+1)*float64(k.W) - 1
	st := k.stride
	for i := 0; i < k.W; i++ {
		v := k.coeff[i]
		for j := 1; j <= k.D; j++ {
			v = v*x + k.coeff[j*st+i]
		}
		out[i] = v
	}
}

// EvalSingle evaluates the kernel at a single x in [-1,1].
func (k *Kernel) EvalSingle(x float64) float64 {
	nth := int((x + 1) * float64(k.W) * 0.5)
	if nth < 0 {
		nth = 0
	}
	if nth > k.W-1 {
		nth = k.W - 1
	}
	x = (x+1)*float64(k.W) - 2*float64(nth) - 1
	st := k.stride
	v := k.coeff[nth]
	for j := 1; j <= k.D; j++ {
		v = v*x + k.coeff[j*st+nth]
	}
	return v
}

// Exact evaluates the untabulated kernel function, for accuracy checks.
func (k *Kernel) Exact(x float64) float64 { return k.fn(x) }

// Corfac evaluates the deapodisation correction at v.
func (k *Kernel) Corfac(v float64) float64 { return k.corr.Corfac(v) }

// Corfunc tabulates correction factors at i*dx for i = 0..n-1.
func (k *Kernel) Corfunc(n int, dx float64, nthreads int) []float64 {
	return k.corr.Factors(n, dx, nthreads)
}

// Correction is the continuous Fourier transform of a gridding kernel,
// evaluated by Gauss-Legendre quadrature following eqs. (3.8)-(3.10) of
// Barnett et al. 2018.
type Correction struct {
	supp   int
	x, wgt []float64
}

// NewCorrection prepares the quadrature for a kernel of support w.
func NewCorrection(w int, f func(float64) float64) *Correction {
	p := int(1.5*float64(w)) + 2
	q := newGLQuad(2 * p)
	c := &Correction{supp: w, x: q.x, wgt: make([]float64, len(q.w))}
	for i := range c.wgt {
		c.wgt[i] = q.w[i] * f(q.x[i])
	}
	return c
}

// Corfac returns the correction factor at grid-frequency position v.
func (c *Correction) Corfac(v float64) float64 {
	tmp := 0.0
	for i := range c.x {
		tmp += c.wgt[i] * math.Cos(math.Pi*float64(c.supp)*v*c.x[i])
	}
	return 2 / (float64(c.supp) * tmp)
}

// Factors tabulates Corfac(i*dx) for i = 0..n-1.
func (c *Correction) Factors(n int, dx float64, nthreads int) []float64 {
	res := make([]float64, n)
	parallel.Run(parallel.Resolve(nthreads), n, func(_, lo, hi int) {
		for i := lo; i < hi; i++ {
			res[i] = c.Corfac(float64(i) * dx)
		}
	})
	return res
}
