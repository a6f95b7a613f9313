package fft1d

// RealPlan transforms real sequences to and from the FFTPACK halfcomplex
// layout [re0, re1, im1, re2, im2, ...]. Even lengths run a half-size
// complex plan on pairs of samples and repack the Hermitian spectrum with
// precomputed weights; odd lengths go through the full-length complex
// engine.
type RealPlan[F Float] struct {
	n    int
	half *Plan[F]   // even n
	full *Plan[F]   // odd n
	w    []Cmplx[F] // e^(-2*pi*i*k/n), k = 0..n/2
}

// NewRealPlan builds the plan for length n.
func NewRealPlan[F Float](n int) (*RealPlan[F], error) {
	if n < 1 {
		return nil, ErrZeroLength
	}
	p := &RealPlan[F]{n: n}
	if n == 1 {
		return p, nil
	}
	var err error
	if n&1 == 0 {
		h := n / 2
		if p.half, err = NewPlan[F](h); err != nil {
			return nil, err
		}
		roots := NewRoots[F](n)
		p.w = make([]Cmplx[F], h+1)
		for k := range p.w {
			p.w[k] = roots.At(k).Conj()
		}
		return p, nil
	}
	if p.full, err = NewPlan[F](n); err != nil {
		return nil, err
	}
	return p, nil
}

// Len returns the transform length.
func (p *RealPlan[F]) Len() int { return p.n }

// Bufsize returns the complex scratch requirement of Forward/Backward.
func (p *RealPlan[F]) Bufsize() int {
	switch {
	case p.n == 1:
		return 0
	case p.n&1 == 0:
		return p.n/2 + p.half.Bufsize()
	default:
		return p.n + p.full.Bufsize()
	}
}

// Forward computes the unnormalised DFT of data and stores the packed
// halfcomplex spectrum scaled by fct into out. data and out may alias.
func (p *RealPlan[F]) Forward(data, out []F, scratch []Cmplx[F], fct F) {
	n := p.n
	if n == 1 {
		out[0] = data[0] * fct
		return
	}
	if n&1 == 1 {
		c := scratch[:n]
		for j := 0; j < n; j++ {
			c[j] = Cmplx[F]{data[j], 0}
		}
		p.full.Exec(c, scratch[n:], fct, true)
		out[0] = c[0].R
		for k := 1; k <= (n-1)/2; k++ {
			out[2*k-1] = c[k].R
			out[2*k] = c[k].I
		}
		return
	}

	h := n / 2
	z := scratch[:h]
	for j := 0; j < h; j++ {
		z[j] = Cmplx[F]{data[2*j], data[2*j+1]}
	}
	p.half.Exec(z, scratch[h:], 1, true)

	// X[k] = (Z[k]+conj(Z[h-k]))/2 - i/2 * w[k] * (Z[k]-conj(Z[h-k]))
	z0 := z[0]
	out[0] = (z0.R + z0.I) * fct
	out[n-1] = (z0.R - z0.I) * fct
	halfFct := fct * F(0.5)
	for k := 1; k <= h/2; k++ {
		zk, zm := z[k], z[h-k].Conj()
		a := zk.Add(zm)
		b := zk.Sub(zm).Mul(p.w[k])
		// -i*b folds the quarter turn into the component assignment
		xk := Cmplx[F]{(a.R + b.I) * halfFct, (a.I - b.R) * halfFct}
		out[2*k-1] = xk.R
		out[2*k] = xk.I
		if k != h-k {
			// mirrored bin: conj symmetry of a, antisymmetry of b
			zk, zm = z[h-k], z[k].Conj()
			a = zk.Add(zm)
			b = zk.Sub(zm).Mul(p.w[h-k])
			xm := Cmplx[F]{(a.R + b.I) * halfFct, (a.I - b.R) * halfFct}
			out[2*(h-k)-1] = xm.R
			out[2*(h-k)] = xm.I
		}
	}
}

// Backward synthesises the real sequence from a packed halfcomplex
// spectrum, scaled by fct. Unnormalised: Backward(Forward(x)) == n*x.
func (p *RealPlan[F]) Backward(packed, out []F, scratch []Cmplx[F], fct F) {
	n := p.n
	if n == 1 {
		out[0] = packed[0] * fct
		return
	}
	if n&1 == 1 {
		c := scratch[:n]
		c[0] = Cmplx[F]{packed[0], 0}
		for k := 1; k <= (n-1)/2; k++ {
			c[k] = Cmplx[F]{packed[2*k-1], packed[2*k]}
			c[n-k] = c[k].Conj()
		}
		p.full.Exec(c, scratch[n:], fct, false)
		for j := 0; j < n; j++ {
			out[j] = c[j].R
		}
		return
	}

	h := n / 2
	x := func(k int) Cmplx[F] {
		switch k {
		case 0:
			return Cmplx[F]{packed[0], 0}
		case h:
			return Cmplx[F]{packed[n-1], 0}
		default:
			return Cmplx[F]{packed[2*k-1], packed[2*k]}
		}
	}

	// Z[k] = (X[k]+conj(X[h-k])) + i*conj(w[k])*(X[k]-conj(X[h-k]))
	z := scratch[:h]
	for k := 0; k < h; k++ {
		xk, xm := x(k), x(h-k).Conj()
		a := xk.Add(xm)
		b := xk.Sub(xm).Mul(p.w[k].Conj())
		z[k] = Cmplx[F]{a.R - b.I, a.I + b.R}
	}
	p.half.Exec(z, scratch[h:], fct, false)
	for j := 0; j < h; j++ {
		out[2*j] = z[j].R
		out[2*j+1] = z[j].I
	}
}
