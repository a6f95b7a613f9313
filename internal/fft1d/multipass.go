package fft1d

// multipass decomposes a composite radix into a chain of child passes
// with growing l1 and shrinking ido, threading the data through the
// primary and copy buffers. For embedded use (l1 or ido > 1) each
// sub-transform is gathered into a contiguous scratch block first and the
// wiring twiddles are applied on the way out.
type multipass[F Float] struct {
	l1, ido, ip int
	passes      []pass[F]
	bufsz       int
	needCpy     bool
	wa          []Cmplx[F]
}

func newMultipass[F Float](l1, ido, ip int, roots *Roots[F]) *multipass[F] {
	mp := &multipass[F]{l1: l1, ido: ido, ip: ip, wa: make([]Cmplx[F], (ip-1)*(ido-1))}
	n := ip * l1 * ido
	rfct := roots.Size() / n
	if roots.Size() != n*rfct {
		panic("fft1d: twiddle table size is not a multiple of the pass length")
	}
	for j := 1; j < ip; j++ {
		for i := 1; i < ido; i++ {
			mp.wa[(j-1)+(i-1)*(ip-1)] = roots.At(rfct * j * l1 * i)
		}
	}

	l1l := 1
	for _, fct := range factorize(ip) {
		mp.passes = append(mp.passes, makePass(l1l, ip/(fct*l1l), fct, roots))
		l1l *= fct
	}
	for _, ps := range mp.passes {
		mp.bufsz = max(mp.bufsz, ps.bufsize())
		mp.needCpy = mp.needCpy || ps.needsCopy()
	}
	if l1 != 1 || ido != 1 {
		mp.needCpy = true
		mp.bufsz += 2 * ip
	}
	return mp
}

func (p *multipass[F]) bufsize() int    { return p.bufsz }
func (p *multipass[F]) needsCopy() bool { return p.needCpy }

func (p *multipass[F]) wAt(x, i int) Cmplx[F] { return p.wa[(i-1)*(p.ip-1)+x] }

func (p *multipass[F]) exec(cc, ch, buf []Cmplx[F], fwd bool) []Cmplx[F] {
	l1, ido, ip := p.l1, p.ido, p.ip
	if l1 == 1 && ido == 1 {
		p1, p2 := cc, ch
		for _, ps := range p.passes {
			res := ps.exec(p1, p2, buf, fwd)
			if sameBuf(res, p2) {
				p1, p2 = p2, p1
			}
		}
		return p1
	}

	cc2 := buf[:ip]
	ch2 := buf[ip : 2*ip]
	buf2 := buf[2*ip:]
	chi := func(a, b, c int) int { return a + ido*(b+l1*c) }
	cci := func(a, b, c int) int { return a + ido*(b+ip*c) }

	for k := 0; k < l1; k++ {
		for i := 0; i < ido; i++ {
			for m := 0; m < ip; m++ {
				cc2[m] = cc[cci(i, m, k)]
			}

			p1, p2 := cc2, ch2
			for _, ps := range p.passes {
				res := ps.exec(p1, p2, buf2, fwd)
				if sameBuf(res, p2) {
					p1, p2 = p2, p1
				}
			}

			if i == 0 {
				for m := 0; m < ip; m++ {
					ch[chi(0, k, m)] = p1[m]
				}
			} else {
				ch[chi(i, k, 0)] = p1[0]
				for m := 1; m < ip; m++ {
					ch[chi(i, k, m)] = p1[m].SpecialMul(p.wAt(m-1, i), fwd)
				}
			}
		}
	}
	return ch
}
