package fft1d

import (
	"errors"
	"math"
)

// ErrSizeOverflow is returned when a requested size is so large that the
// candidate search would overflow the machine int.
var ErrSizeOverflow = errors.New("fft1d: requested size overflows the size arithmetic")

// GoodSizeComplex returns the smallest composite of 2, 3, 5, 7 and 11
// that is >= n. Sizes up to 12 are returned unchanged.
func GoodSizeComplex(n int) (int, error) {
	if n <= 12 {
		return n, nil
	}
	if n > (math.MaxInt-1)/11 {
		return 0, ErrSizeOverflow
	}

	bestfac := 2 * n
	for f11 := 1; f11 < bestfac; f11 *= 11 {
		for f117 := f11; f117 < bestfac; f117 *= 7 {
			for f1175 := f117; f1175 < bestfac; f1175 *= 5 {
				x := f1175
				for x < n {
					x *= 2
				}
				for {
					if x < n {
						x *= 3
					} else if x > n {
						if x < bestfac {
							bestfac = x
						}
						if x&1 == 1 {
							break
						}
						x >>= 1
					} else {
						return n, nil
					}
				}
			}
		}
	}
	return bestfac, nil
}

// GoodSizeReal returns the smallest composite of 2, 3 and 5 that is
// >= n. Sizes up to 6 are returned unchanged.
func GoodSizeReal(n int) (int, error) {
	if n <= 6 {
		return n, nil
	}
	if n > (math.MaxInt-1)/11 {
		return 0, ErrSizeOverflow
	}

	bestfac := 2 * n
	for f5 := 1; f5 < bestfac; f5 *= 5 {
		x := f5
		for x < n {
			x *= 2
		}
		for {
			if x < n {
				x *= 3
			} else if x > n {
				if x < bestfac {
					bestfac = x
				}
				if x&1 == 1 {
					break
				}
				x >>= 1
			} else {
				return n, nil
			}
		}
	}
	return bestfac, nil
}
