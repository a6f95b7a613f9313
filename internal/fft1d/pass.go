package fft1d

// pass is one node of the plan tree. Passes are pure: their only state is
// read-only twiddle/chirp data installed at construction time.
//
// exec transforms l1 sub-transforms of radix ip with inner stride ido.
// cc holds the input, ch is a copy buffer of the same size, buf is extra
// scratch of at least bufsize() elements. The returned slice is whichever
// of the three holds the result.
type pass[F Float] interface {
	bufsize() int
	needsCopy() bool
	exec(cc, ch, buf []Cmplx[F], fwd bool) []Cmplx[F]
}

// factorize returns the radix decomposition of n in execution order:
// powers of eight and four first, a single factor of two moved to the
// front, then odd factors in ascending order, large primes last.
func factorize(n int) []int {
	var factors []int
	for n&7 == 0 {
		factors = append(factors, 8)
		n >>= 3
	}
	for n&3 == 0 {
		factors = append(factors, 4)
		n >>= 2
	}
	if n&1 == 0 {
		n >>= 1
		factors = append(factors, 2)
		factors[0], factors[len(factors)-1] = factors[len(factors)-1], factors[0]
	}
	for divisor := 3; divisor*divisor <= n; divisor += 2 {
		for n%divisor == 0 {
			factors = append(factors, divisor)
			n /= divisor
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// primeFactors returns the plain ascending prime factorization of n.
func primeFactors(n int) []int {
	var factors []int
	for n&1 == 0 {
		factors = append(factors, 2)
		n >>= 1
	}
	for divisor := 3; divisor*divisor <= n; divisor += 2 {
		for n%divisor == 0 {
			factors = append(factors, divisor)
			n /= divisor
		}
	}
	if n > 1 {
		factors = append(factors, n)
	}
	return factors
}

// bluesteinThreshold is the smallest prime radix handled by the chirp-z
// pass instead of the generic convolution pass.
const bluesteinThreshold = 110

// twiddles fills the standard (ip-1)*(ido-1) twiddle layout used by the
// fixed-radix passes: wa[(j-1)*(ido-1)+i-1] = roots[rfct*j*l1*i].
func twiddles[F Float](l1, ido, ip int, roots *Roots[F]) []Cmplx[F] {
	n := ip * l1 * ido
	rfct := roots.Size() / n
	if roots.Size() != n*rfct {
		panic("fft1d: twiddle table size is not a multiple of the pass length")
	}
	wa := make([]Cmplx[F], (ip-1)*(ido-1))
	for j := 1; j < ip; j++ {
		for i := 1; i < ido; i++ {
			wa[(j-1)*(ido-1)+i-1] = roots.At(rfct * j * l1 * i)
		}
	}
	return wa
}

// makePass builds the pass for one radix step. Composite ip becomes a
// multipass, large primes go through Bluestein, odd primes >= 5 without a
// dedicated butterfly use the generic convolution pass.
func makePass[F Float](l1, ido, ip int, roots *Roots[F]) pass[F] {
	if ip == 1 {
		return passUnit[F]{}
	}
	if len(factorize(ip)) > 1 {
		return newMultipass(l1, ido, ip, roots)
	}
	switch ip {
	case 2:
		return newPass2(l1, ido, roots)
	case 3:
		return newPass3(l1, ido, roots)
	case 4:
		return newPass4(l1, ido, roots)
	case 5:
		return newPass5(l1, ido, roots)
	case 7:
		return newPass7(l1, ido, roots)
	case 8:
		return newPass8(l1, ido, roots)
	case 11:
		return newPass11(l1, ido, roots)
	default:
		if ip < bluesteinThreshold {
			return newPassG(l1, ido, ip, roots)
		}
		return newPassBlue(l1, ido, ip, roots)
	}
}

// makeRootPass builds the top-level pass for a full length-n transform.
func makeRootPass[F Float](n int) pass[F] {
	return makePass(1, 1, n, NewRoots[F](n))
}

// sameBuf reports whether two non-empty slices share their first element.
func sameBuf[F Float](a, b []Cmplx[F]) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}
