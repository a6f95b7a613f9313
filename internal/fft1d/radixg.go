package fft1d

// passG handles any odd radix ip >= 5 that has no dedicated butterfly and
// is below the Bluestein threshold. It evaluates the DFT as a short
// convolution against a cosine/sine table of the radix-ip roots.
type passG[F Float] struct {
	l1, ido, ip int
	wa          []Cmplx[F]
	csarr       []Cmplx[F]
}

func newPassG[F Float](l1, ido, ip int, roots *Roots[F]) *passG[F] {
	if ip&1 == 0 || ip < 5 {
		panic("fft1d: generic pass needs an odd radix >= 5")
	}
	n := ip * l1 * ido
	rfct := roots.Size() / n
	if roots.Size() != n*rfct {
		panic("fft1d: twiddle table size is not a multiple of the pass length")
	}
	csarr := make([]Cmplx[F], ip)
	for i := 0; i < ip; i++ {
		csarr[i] = roots.At(rfct * ido * l1 * i)
	}
	return &passG[F]{l1: l1, ido: ido, ip: ip, wa: twiddles(l1, ido, ip, roots), csarr: csarr}
}

func (p *passG[F]) bufsize() int    { return 0 }
func (p *passG[F]) needsCopy() bool { return true }

func (p *passG[F]) exec(cc, ch, _ []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido, ip := p.l1, p.ido, p.ip
	ipph := (ip + 1) / 2
	idl1 := ido * l1

	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }
	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }
	cxi := func(a, b, c int) int { return a + ido*(b+l1*c) }

	cs := func(idx int) Cmplx[F] {
		w := p.csarr[idx]
		if fwd {
			return w.Conj()
		}
		return w
	}

	for k := 0; k < l1; k++ {
		for i := 0; i < ido; i++ {
			ch[chi(i, k, 0)] = cc[cci(i, 0, k)]
		}
	}
	for j, jc := 1, ip-1; j < ipph; j, jc = j+1, jc-1 {
		for k := 0; k < l1; k++ {
			for i := 0; i < ido; i++ {
				ch[chi(i, k, j)], ch[chi(i, k, jc)] = pm(cc[cci(i, j, k)], cc[cci(i, jc, k)])
			}
		}
	}
	for k := 0; k < l1; k++ {
		for i := 0; i < ido; i++ {
			tmp := ch[chi(i, k, 0)]
			for j := 1; j < ipph; j++ {
				tmp = tmp.Add(ch[chi(i, k, j)])
			}
			cc[cxi(i, k, 0)] = tmp
		}
	}
	for l, lc := 1, ip-1; l < ipph; l, lc = l+1, lc-1 {
		// j=0,1,2
		wal := cs(l)
		wal2 := cs(2 * l)
		for ik := 0; ik < idl1; ik++ {
			h0, h1, h2 := ch[ik], ch[ik+idl1], ch[ik+2*idl1]
			cc[ik+l*idl1] = Cmplx[F]{
				h0.R + wal.R*h1.R + wal2.R*h2.R,
				h0.I + wal.R*h1.I + wal2.R*h2.I,
			}
			hm1, hm2 := ch[ik+(ip-1)*idl1], ch[ik+(ip-2)*idl1]
			cc[ik+lc*idl1] = Cmplx[F]{
				-wal.I*hm1.I - wal2.I*hm2.I,
				wal.I*hm1.R + wal2.I*hm2.R,
			}
		}

		iwal := 2 * l
		j, jc := 3, ip-3
		for ; j < ipph-1; j, jc = j+2, jc-2 {
			iwal += l
			if iwal > ip {
				iwal -= ip
			}
			xwal := cs(iwal)
			iwal += l
			if iwal > ip {
				iwal -= ip
			}
			xwal2 := cs(iwal)
			for ik := 0; ik < idl1; ik++ {
				hj, hj1 := ch[ik+j*idl1], ch[ik+(j+1)*idl1]
				cl := cc[ik+l*idl1]
				cc[ik+l*idl1] = Cmplx[F]{
					cl.R + hj.R*xwal.R + hj1.R*xwal2.R,
					cl.I + hj.I*xwal.R + hj1.I*xwal2.R,
				}
				hjc, hjc1 := ch[ik+jc*idl1], ch[ik+(jc-1)*idl1]
				clc := cc[ik+lc*idl1]
				cc[ik+lc*idl1] = Cmplx[F]{
					clc.R - hjc.I*xwal.I - hjc1.I*xwal2.I,
					clc.I + hjc.R*xwal.I + hjc1.R*xwal2.I,
				}
			}
		}
		for ; j < ipph; j, jc = j+1, jc-1 {
			iwal += l
			if iwal > ip {
				iwal -= ip
			}
			xwal := cs(iwal)
			for ik := 0; ik < idl1; ik++ {
				hj := ch[ik+j*idl1]
				cl := cc[ik+l*idl1]
				cc[ik+l*idl1] = Cmplx[F]{cl.R + hj.R*xwal.R, cl.I + hj.I*xwal.R}
				hjc := ch[ik+jc*idl1]
				clc := cc[ik+lc*idl1]
				cc[ik+lc*idl1] = Cmplx[F]{clc.R - hjc.I*xwal.I, clc.I + hjc.R*xwal.I}
			}
		}
	}

	// shuffling and twiddling
	if ido == 1 {
		for j, jc := 1, ip-1; j < ipph; j, jc = j+1, jc-1 {
			for ik := 0; ik < idl1; ik++ {
				cc[ik+j*idl1], cc[ik+jc*idl1] = pm(cc[ik+j*idl1], cc[ik+jc*idl1])
			}
		}
		return cc
	}
	for j, jc := 1, ip-1; j < ipph; j, jc = j+1, jc-1 {
		for k := 0; k < l1; k++ {
			cc[cxi(0, k, j)], cc[cxi(0, k, jc)] = pm(cc[cxi(0, k, j)], cc[cxi(0, k, jc)])
			for i := 1; i < ido; i++ {
				x1, x2 := pm(cc[cxi(i, k, j)], cc[cxi(i, k, jc)])
				cc[cxi(i, k, j)] = x1.SpecialMul(p.wa[(j-1)*(ido-1)+i-1], fwd)
				cc[cxi(i, k, jc)] = x2.SpecialMul(p.wa[(jc-1)*(ido-1)+i-1], fwd)
			}
		}
	}
	return cc
}
