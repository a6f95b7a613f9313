package fft1d

// Fixed-radix Cooley-Tukey butterflies. Each pass is written twice: once
// for the boundary case ido==1 (no twiddles to apply) and once for the
// strided case. Direction is threaded through the fwd flag, which negates
// the imaginary parts of the internal rotation constants and flips the
// twiddle conjugation in SpecialMul.

// passUnit is the length-1 identity pass.
type passUnit[F Float] struct{}

func (passUnit[F]) bufsize() int    { return 0 }
func (passUnit[F]) needsCopy() bool { return false }

func (passUnit[F]) exec(cc, _, _ []Cmplx[F], _ bool) []Cmplx[F] { return cc }

// pass2 is the radix-2 butterfly.
type pass2[F Float] struct {
	l1, ido int
	wa      []Cmplx[F]
}

func newPass2[F Float](l1, ido int, roots *Roots[F]) *pass2[F] {
	return &pass2[F]{l1: l1, ido: ido, wa: twiddles(l1, ido, 2, roots)}
}

func (p *pass2[F]) bufsize() int    { return 0 }
func (p *pass2[F]) needsCopy() bool { return p.l1 > 1 }

func (p *pass2[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }

func (p *pass2[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido := p.l1, p.ido
	const ip = 2
	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	if l1 == 1 {
		// in-place: the butterfly fits without a copy buffer
		t1, t2 := pm(cc[cci(0, 0, 0)], cc[cci(0, 1, 0)])
		cc[cci(0, 0, 0)], cc[cci(0, 1, 0)] = t1, t2
		for i := 1; i < ido; i++ {
			u1, u2 := cc[cci(i, 0, 0)], cc[cci(i, 1, 0)]
			cc[cci(i, 0, 0)] = u1.Add(u2)
			cc[cci(i, 1, 0)] = u1.Sub(u2).SpecialMul(p.wAt(0, i), fwd)
		}
		return cc
	}
	if ido == 1 {
		for k := 0; k < l1; k++ {
			ch[chi(0, k, 0)], ch[chi(0, k, 1)] = pm(cc[cci(0, 0, k)], cc[cci(0, 1, k)])
		}
		return ch
	}
	for k := 0; k < l1; k++ {
		ch[chi(0, k, 0)], ch[chi(0, k, 1)] = pm(cc[cci(0, 0, k)], cc[cci(0, 1, k)])
		for i := 1; i < ido; i++ {
			u1, u2 := cc[cci(i, 0, k)], cc[cci(i, 1, k)]
			ch[chi(i, k, 0)] = u1.Add(u2)
			ch[chi(i, k, 1)] = u1.Sub(u2).SpecialMul(p.wAt(0, i), fwd)
		}
	}
	return ch
}

// pass3 is the radix-3 butterfly.
type pass3[F Float] struct {
	l1, ido int
	wa      []Cmplx[F]
}

func newPass3[F Float](l1, ido int, roots *Roots[F]) *pass3[F] {
	return &pass3[F]{l1: l1, ido: ido, wa: twiddles(l1, ido, 3, roots)}
}

func (p *pass3[F]) bufsize() int    { return 0 }
func (p *pass3[F]) needsCopy() bool { return true }

func (p *pass3[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }

func (p *pass3[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido := p.l1, p.ido
	const ip = 3
	tw1r := F(-0.5)
	tw1i := F(0.8660254037844386467637231707529362)
	if fwd {
		tw1i = -tw1i
	}
	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	bfly := func(t0, t1, t2 Cmplx[F]) (Cmplx[F], Cmplx[F], Cmplx[F]) {
		s, d := pm(t1, t2)
		ca := t0.Add(s.Scale(tw1r))
		cb := Cmplx[F]{-d.I * tw1i, d.R * tw1i}
		o1, o2 := pm(ca, cb)
		return t0.Add(s), o1, o2
	}

	for k := 0; k < l1; k++ {
		c0, c1, c2 := bfly(cc[cci(0, 0, k)], cc[cci(0, 1, k)], cc[cci(0, 2, k)])
		ch[chi(0, k, 0)], ch[chi(0, k, 1)], ch[chi(0, k, 2)] = c0, c1, c2
		for i := 1; i < ido; i++ {
			c0, c1, c2 := bfly(cc[cci(i, 0, k)], cc[cci(i, 1, k)], cc[cci(i, 2, k)])
			ch[chi(i, k, 0)] = c0
			ch[chi(i, k, 1)] = c1.SpecialMul(p.wAt(0, i), fwd)
			ch[chi(i, k, 2)] = c2.SpecialMul(p.wAt(1, i), fwd)
		}
	}
	return ch
}

// pass4 is the radix-4 butterfly.
type pass4[F Float] struct {
	l1, ido int
	wa      []Cmplx[F]
}

func newPass4[F Float](l1, ido int, roots *Roots[F]) *pass4[F] {
	return &pass4[F]{l1: l1, ido: ido, wa: twiddles(l1, ido, 4, roots)}
}

func (p *pass4[F]) bufsize() int    { return 0 }
func (p *pass4[F]) needsCopy() bool { return true }

func (p *pass4[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }

func (p *pass4[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido := p.l1, p.ido
	const ip = 4
	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	for k := 0; k < l1; k++ {
		{
			t2, t1 := pm(cc[cci(0, 0, k)], cc[cci(0, 2, k)])
			t3, t4 := pm(cc[cci(0, 1, k)], cc[cci(0, 3, k)])
			t4 = rot90(t4, fwd)
			ch[chi(0, k, 0)], ch[chi(0, k, 2)] = pm(t2, t3)
			ch[chi(0, k, 1)], ch[chi(0, k, 3)] = pm(t1, t4)
		}
		for i := 1; i < ido; i++ {
			t2, t1 := pm(cc[cci(i, 0, k)], cc[cci(i, 2, k)])
			t3, t4 := pm(cc[cci(i, 1, k)], cc[cci(i, 3, k)])
			t4 = rot90(t4, fwd)
			ch[chi(i, k, 0)] = t2.Add(t3)
			ch[chi(i, k, 1)] = t1.Add(t4).SpecialMul(p.wAt(0, i), fwd)
			ch[chi(i, k, 2)] = t2.Sub(t3).SpecialMul(p.wAt(1, i), fwd)
			ch[chi(i, k, 3)] = t1.Sub(t4).SpecialMul(p.wAt(2, i), fwd)
		}
	}
	return ch
}

// pass5 is the radix-5 butterfly.
type pass5[F Float] struct {
	l1, ido int
	wa      []Cmplx[F]
}

func newPass5[F Float](l1, ido int, roots *Roots[F]) *pass5[F] {
	return &pass5[F]{l1: l1, ido: ido, wa: twiddles(l1, ido, 5, roots)}
}

func (p *pass5[F]) bufsize() int    { return 0 }
func (p *pass5[F]) needsCopy() bool { return true }

func (p *pass5[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }

func (p *pass5[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido := p.l1, p.ido
	const ip = 5
	sgn := F(1)
	if fwd {
		sgn = -1
	}
	tw1r := F(0.3090169943749474241022934171828191)
	tw1i := sgn * F(0.9510565162951535721164393333793821)
	tw2r := F(-0.8090169943749474241022934171828191)
	tw2i := sgn * F(0.5877852522924731291687059546390728)

	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	part := func(t0, t1, t2, t3, t4 Cmplx[F], twar, twbr, twai, twbi F) (Cmplx[F], Cmplx[F]) {
		ca := Cmplx[F]{t0.R + twar*t1.R + twbr*t2.R, t0.I + twar*t1.I + twbr*t2.I}
		cb := Cmplx[F]{-(twai*t4.I + twbi*t3.I), twai*t4.R + twbi*t3.R}
		return pm(ca, cb)
	}

	for k := 0; k < l1; k++ {
		for i := 0; i < ido; i++ {
			t0 := cc[cci(i, 0, k)]
			t1, t4 := pm(cc[cci(i, 1, k)], cc[cci(i, 4, k)])
			t2, t3 := pm(cc[cci(i, 2, k)], cc[cci(i, 3, k)])
			o0 := Cmplx[F]{t0.R + t1.R + t2.R, t0.I + t1.I + t2.I}
			o1, o4 := part(t0, t1, t2, t3, t4, tw1r, tw2r, tw1i, tw2i)
			o2, o3 := part(t0, t1, t2, t3, t4, tw2r, tw1r, tw2i, -tw1i)
			if i == 0 {
				ch[chi(0, k, 0)], ch[chi(0, k, 1)], ch[chi(0, k, 2)] = o0, o1, o2
				ch[chi(0, k, 3)], ch[chi(0, k, 4)] = o3, o4
				continue
			}
			ch[chi(i, k, 0)] = o0
			ch[chi(i, k, 1)] = o1.SpecialMul(p.wAt(0, i), fwd)
			ch[chi(i, k, 2)] = o2.SpecialMul(p.wAt(1, i), fwd)
			ch[chi(i, k, 3)] = o3.SpecialMul(p.wAt(2, i), fwd)
			ch[chi(i, k, 4)] = o4.SpecialMul(p.wAt(3, i), fwd)
		}
	}
	return ch
}

// pass7 is the radix-7 butterfly.
type pass7[F Float] struct {
	l1, ido int
	wa      []Cmplx[F]
}

func newPass7[F Float](l1, ido int, roots *Roots[F]) *pass7[F] {
	return &pass7[F]{l1: l1, ido: ido, wa: twiddles(l1, ido, 7, roots)}
}

func (p *pass7[F]) bufsize() int    { return 0 }
func (p *pass7[F]) needsCopy() bool { return true }

func (p *pass7[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }

func (p *pass7[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido := p.l1, p.ido
	const ip = 7
	sgn := F(1)
	if fwd {
		sgn = -1
	}
	tw1r := F(0.6234898018587335305250048840042398)
	tw1i := sgn * F(0.7818314824680298087084445266740578)
	tw2r := F(-0.2225209339563144042889025644967948)
	tw2i := sgn * F(0.9749279121818236070181316829939312)
	tw3r := F(-0.9009688679024191262361023195074451)
	tw3i := sgn * F(0.433883739117558120475768332848359)

	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	for k := 0; k < l1; k++ {
		for i := 0; i < ido; i++ {
			t1 := cc[cci(i, 0, k)]
			t2, t7 := pm(cc[cci(i, 1, k)], cc[cci(i, 6, k)])
			t3, t6 := pm(cc[cci(i, 2, k)], cc[cci(i, 5, k)])
			t4, t5 := pm(cc[cci(i, 3, k)], cc[cci(i, 4, k)])
			o0 := Cmplx[F]{t1.R + t2.R + t3.R + t4.R, t1.I + t2.I + t3.I + t4.I}

			part := func(x1, x2, x3, y1, y2, y3 F) (Cmplx[F], Cmplx[F]) {
				ca := Cmplx[F]{
					t1.R + x1*t2.R + x2*t3.R + x3*t4.R,
					t1.I + x1*t2.I + x2*t3.I + x3*t4.I,
				}
				cb := Cmplx[F]{
					-(y1*t7.I + y2*t6.I + y3*t5.I),
					y1*t7.R + y2*t6.R + y3*t5.R,
				}
				return pm(ca, cb)
			}
			o1, o6 := part(tw1r, tw2r, tw3r, tw1i, tw2i, tw3i)
			o2, o5 := part(tw2r, tw3r, tw1r, tw2i, -tw3i, -tw1i)
			o3, o4 := part(tw3r, tw1r, tw2r, tw3i, -tw1i, tw2i)

			if i == 0 {
				ch[chi(0, k, 0)], ch[chi(0, k, 1)], ch[chi(0, k, 2)] = o0, o1, o2
				ch[chi(0, k, 3)], ch[chi(0, k, 4)] = o3, o4
				ch[chi(0, k, 5)], ch[chi(0, k, 6)] = o5, o6
				continue
			}
			ch[chi(i, k, 0)] = o0
			ch[chi(i, k, 1)] = o1.SpecialMul(p.wAt(0, i), fwd)
			ch[chi(i, k, 2)] = o2.SpecialMul(p.wAt(1, i), fwd)
			ch[chi(i, k, 3)] = o3.SpecialMul(p.wAt(2, i), fwd)
			ch[chi(i, k, 4)] = o4.SpecialMul(p.wAt(3, i), fwd)
			ch[chi(i, k, 5)] = o5.SpecialMul(p.wAt(4, i), fwd)
			ch[chi(i, k, 6)] = o6.SpecialMul(p.wAt(5, i), fwd)
		}
	}
	return ch
}

// pass8 is the radix-8 butterfly.
type pass8[F Float] struct {
	l1, ido int
	wa      []Cmplx[F]
}

func newPass8[F Float](l1, ido int, roots *Roots[F]) *pass8[F] {
	return &pass8[F]{l1: l1, ido: ido, wa: twiddles(l1, ido, 8, roots)}
}

func (p *pass8[F]) bufsize() int    { return 0 }
func (p *pass8[F]) needsCopy() bool { return true }

func (p *pass8[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }

func (p *pass8[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido := p.l1, p.ido
	const ip = 8
	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	for k := 0; k < l1; k++ {
		{
			a1, a5 := pm(cc[cci(0, 1, k)], cc[cci(0, 5, k)])
			a3, a7 := pm(cc[cci(0, 3, k)], cc[cci(0, 7, k)])
			a1, a3 = pm(a1, a3)
			a3 = rot90(a3, fwd)

			a7 = rot90(a7, fwd)
			a5, a7 = pm(a5, a7)
			a5 = rot45(a5, fwd)
			a7 = rot135(a7, fwd)

			a0, a4 := pm(cc[cci(0, 0, k)], cc[cci(0, 4, k)])
			a2, a6 := pm(cc[cci(0, 2, k)], cc[cci(0, 6, k)])
			ch[chi(0, k, 0)], ch[chi(0, k, 4)] = pm(a0.Add(a2), a1)
			ch[chi(0, k, 2)], ch[chi(0, k, 6)] = pm(a0.Sub(a2), a3)
			a6 = rot90(a6, fwd)
			ch[chi(0, k, 1)], ch[chi(0, k, 5)] = pm(a4.Add(a6), a5)
			ch[chi(0, k, 3)], ch[chi(0, k, 7)] = pm(a4.Sub(a6), a7)
		}
		for i := 1; i < ido; i++ {
			a1, a5 := pm(cc[cci(i, 1, k)], cc[cci(i, 5, k)])
			a3, a7 := pm(cc[cci(i, 3, k)], cc[cci(i, 7, k)])
			a7 = rot90(a7, fwd)
			a1, a3 = pm(a1, a3)
			a3 = rot90(a3, fwd)
			a5, a7 = pm(a5, a7)
			a5 = rot45(a5, fwd)
			a7 = rot135(a7, fwd)
			a0, a4 := pm(cc[cci(i, 0, k)], cc[cci(i, 4, k)])
			a2, a6 := pm(cc[cci(i, 2, k)], cc[cci(i, 6, k)])
			a0, a2 = pm(a0, a2)
			ch[chi(i, k, 0)] = a0.Add(a1)
			ch[chi(i, k, 4)] = a0.Sub(a1).SpecialMul(p.wAt(3, i), fwd)
			ch[chi(i, k, 2)] = a2.Add(a3).SpecialMul(p.wAt(1, i), fwd)
			ch[chi(i, k, 6)] = a2.Sub(a3).SpecialMul(p.wAt(5, i), fwd)
			a6 = rot90(a6, fwd)
			a4, a6 = pm(a4, a6)
			ch[chi(i, k, 1)] = a4.Add(a5).SpecialMul(p.wAt(0, i), fwd)
			ch[chi(i, k, 5)] = a4.Sub(a5).SpecialMul(p.wAt(4, i), fwd)
			ch[chi(i, k, 3)] = a6.Add(a7).SpecialMul(p.wAt(2, i), fwd)
			ch[chi(i, k, 7)] = a6.Sub(a7).SpecialMul(p.wAt(6, i), fwd)
		}
	}
	return ch
}

// pass11 is the radix-11 butterfly.
type pass11[F Float] struct {
	l1, ido int
	wa      []Cmplx[F]
}

func newPass11[F Float](l1, ido int, roots *Roots[F]) *pass11[F] {
	return &pass11[F]{l1: l1, ido: ido, wa: twiddles(l1, ido, 11, roots)}
}

func (p *pass11[F]) bufsize() int    { return 0 }
func (p *pass11[F]) needsCopy() bool { return true }

func (p *pass11[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }

func (p *pass11[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido := p.l1, p.ido
	const ip = 11
	sgn := F(1)
	if fwd {
		sgn = -1
	}
	tw1r := F(0.8412535328311811688618116489193677)
	tw1i := sgn * F(0.5406408174555975821076359543186917)
	tw2r := F(0.4154150130018864255292741492296232)
	tw2i := sgn * F(0.9096319953545183714117153830790285)
	tw3r := F(-0.1423148382732851404437926686163697)
	tw3i := sgn * F(0.9898214418809327323760920377767188)
	tw4r := F(-0.6548607339452850640569250724662936)
	tw4i := sgn * F(0.7557495743542582837740358439723444)
	tw5r := F(-0.9594929736144973898903680570663277)
	tw5i := sgn * F(0.2817325568414296977114179153466169)

	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	for k := 0; k < l1; k++ {
		for i := 0; i < ido; i++ {
			t1 := cc[cci(i, 0, k)]
			t2, t11 := pm(cc[cci(i, 1, k)], cc[cci(i, 10, k)])
			t3, t10 := pm(cc[cci(i, 2, k)], cc[cci(i, 9, k)])
			t4, t9 := pm(cc[cci(i, 3, k)], cc[cci(i, 8, k)])
			t5, t8 := pm(cc[cci(i, 4, k)], cc[cci(i, 7, k)])
			t6, t7 := pm(cc[cci(i, 5, k)], cc[cci(i, 6, k)])
			o0 := Cmplx[F]{
				t1.R + t2.R + t3.R + t4.R + t5.R + t6.R,
				t1.I + t2.I + t3.I + t4.I + t5.I + t6.I,
			}

			part := func(x1, x2, x3, x4, x5, y1, y2, y3, y4, y5 F) (Cmplx[F], Cmplx[F]) {
				ca := Cmplx[F]{
					t1.R + x1*t2.R + x2*t3.R + x3*t4.R + x4*t5.R + x5*t6.R,
					t1.I + x1*t2.I + x2*t3.I + x3*t4.I + x4*t5.I + x5*t6.I,
				}
				cb := Cmplx[F]{
					-(y1*t11.I + y2*t10.I + y3*t9.I + y4*t8.I + y5*t7.I),
					y1*t11.R + y2*t10.R + y3*t9.R + y4*t8.R + y5*t7.R,
				}
				return pm(ca, cb)
			}
			o1, o10 := part(tw1r, tw2r, tw3r, tw4r, tw5r, tw1i, tw2i, tw3i, tw4i, tw5i)
			o2, o9 := part(tw2r, tw4r, tw5r, tw3r, tw1r, tw2i, tw4i, -tw5i, -tw3i, -tw1i)
			o3, o8 := part(tw3r, tw5r, tw2r, tw1r, tw4r, tw3i, -tw5i, -tw2i, tw1i, tw4i)
			o4, o7 := part(tw4r, tw3r, tw1r, tw5r, tw2r, tw4i, -tw3i, tw1i, tw5i, -tw2i)
			o5, o6 := part(tw5r, tw1r, tw4r, tw2r, tw3r, tw5i, -tw1i, tw4i, -tw2i, tw3i)

			out := [ip]Cmplx[F]{o0, o1, o2, o3, o4, o5, o6, o7, o8, o9, o10}
			if i == 0 {
				for m := 0; m < ip; m++ {
					ch[chi(0, k, m)] = out[m]
				}
				continue
			}
			ch[chi(i, k, 0)] = out[0]
			for m := 1; m < ip; m++ {
				ch[chi(i, k, m)] = out[m].SpecialMul(p.wAt(m-1, i), fwd)
			}
		}
	}
	return ch
}
