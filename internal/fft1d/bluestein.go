package fft1d

// passBlue computes a prime-radix DFT with the Bluestein chirp-z
// algorithm: multiply by the chirp, convolve with the transformed chirp
// through a pair of good-size FFTs, multiply by the chirp again. The
// convolution length ip2 is the smallest good size >= 2*ip-1 and the
// inner transform is a full sub-plan over that length.
type passBlue[F Float] struct {
	l1, ido, ip int
	ip2         int
	sub         pass[F]
	subNeedsCpy bool
	subBufsize  int
	wa          []Cmplx[F]
	bk          []Cmplx[F]
	bkf         []Cmplx[F]
}

func newPassBlue[F Float](l1, ido, ip int, roots *Roots[F]) *passBlue[F] {
	ip2, err := GoodSizeComplex(2*ip - 1)
	if err != nil {
		panic(err)
	}
	p := &passBlue[F]{
		l1: l1, ido: ido, ip: ip, ip2: ip2,
		sub: makeRootPass[F](ip2),
		wa:  twiddles(l1, ido, ip, roots),
		bk:  make([]Cmplx[F], ip),
		bkf: make([]Cmplx[F], ip2/2+1),
	}
	p.subNeedsCpy = p.sub.needsCopy()
	p.subBufsize = p.sub.bufsize()

	// chirp b_k = exp(i*pi*k^2/ip); k^2 mod 2*ip accumulated via odd numbers
	roots2 := roots
	if roots.Size()%(2*ip) != 0 {
		roots2 = NewRoots[F](2 * ip)
	}
	rfct2 := roots2.Size() / (2 * ip)
	p.bk[0] = CmplxOf[F](1, 0)
	coeff := 0
	for m := 1; m < ip; m++ {
		coeff += 2*m - 1
		if coeff >= 2*ip {
			coeff -= 2 * ip
		}
		p.bk[m] = roots2.At(coeff * rfct2)
	}

	// forward transform of the zero-padded chirp, normalisation folded in
	tbkf := make([]Cmplx[F], ip2)
	tbkf2 := make([]Cmplx[F], ip2)
	xn2 := F(1) / F(ip2)
	tbkf[0] = p.bk[0].Scale(xn2)
	for m := 1; m < ip; m++ {
		v := p.bk[m].Scale(xn2)
		tbkf[m] = v
		tbkf[ip2-m] = v
	}
	buf := make([]Cmplx[F], p.subBufsize)
	res := p.sub.exec(tbkf, tbkf2, buf, true)
	copy(p.bkf, res[:ip2/2+1])
	return p
}

func (p *passBlue[F]) bufsize() int    { return 2*p.ip2 + p.subBufsize }
func (p *passBlue[F]) needsCopy() bool { return p.l1 > 1 }

func (p *passBlue[F]) exec(cc, ch, buf []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido, ip, ip2 := p.l1, p.ido, p.ip, p.ip2
	akf := buf[:ip2]
	akf2 := buf[ip2 : 2*ip2]
	subbuf := buf[2*ip2:]

	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }
	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }

	for k := 0; k < l1; k++ {
		for i := 0; i < ido; i++ {
			for m := 0; m < ip; m++ {
				akf[m] = cc[cci(i, m, k)].SpecialMul(p.bk[m], fwd)
			}
			for m := ip; m < ip2; m++ {
				akf[m] = Cmplx[F]{}
			}

			res := p.sub.exec(akf, akf2, subbuf, true)

			// pointwise convolution with the transformed chirp
			res[0] = res[0].SpecialMul(p.bkf[0], !fwd)
			for m := 1; m < (ip2+1)/2; m++ {
				res[m] = res[m].SpecialMul(p.bkf[m], !fwd)
				res[ip2-m] = res[ip2-m].SpecialMul(p.bkf[m], !fwd)
			}
			if ip2&1 == 0 {
				res[ip2/2] = res[ip2/2].SpecialMul(p.bkf[ip2/2], !fwd)
			}

			other := akf
			if sameBuf(res, akf) {
				other = akf2
			}
			res = p.sub.exec(res, other, subbuf, false)

			if l1 > 1 {
				if i == 0 {
					for m := 0; m < ip; m++ {
						ch[chi(0, k, m)] = res[m].SpecialMul(p.bk[m], fwd)
					}
				} else {
					ch[chi(i, k, 0)] = res[0].SpecialMul(p.bk[0], fwd)
					for m := 1; m < ip; m++ {
						ch[chi(i, k, m)] = res[m].SpecialMul(p.bk[m].Mul(p.wAt(m-1, i)), fwd)
					}
				}
			} else {
				if i == 0 {
					for m := 0; m < ip; m++ {
						cc[cci(0, m, 0)] = res[m].SpecialMul(p.bk[m], fwd)
					}
				} else {
					cc[cci(i, 0, 0)] = res[0].SpecialMul(p.bk[0], fwd)
					for m := 1; m < ip; m++ {
						cc[cci(i, m, 0)] = res[m].SpecialMul(p.bk[m].Mul(p.wAt(m-1, i)), fwd)
					}
				}
			}
		}
	}
	if l1 > 1 {
		return ch
	}
	return cc
}

func (p *passBlue[F]) wAt(x, i int) Cmplx[F] { return p.wa[i-1+x*(p.ido-1)] }
