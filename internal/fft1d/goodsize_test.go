package fft1d

import "testing"

func TestGoodSizeLiterals(t *testing.T) {
	t.Parallel()

	cases := []struct {
		n    int
		real bool
		want int
	}{
		{1, false, 1},
		{11, false, 11},
		{12, false, 12},
		{13, false, 14},
		{1000, false, 1000},
		{1001, false, 1008},
		{1001, true, 1024},
		{17, true, 18},
		{6, true, 6},
	}
	for _, c := range cases {
		var (
			got int
			err error
		)
		if c.real {
			got, err = GoodSizeReal(c.n)
		} else {
			got, err = GoodSizeComplex(c.n)
		}
		if err != nil {
			t.Fatalf("good size of %d: %v", c.n, err)
		}
		if got != c.want {
			t.Errorf("good size of %d (real=%v) = %d, want %d", c.n, c.real, got, c.want)
		}
	}
}

func hasOnlyFactors(n int, primes []int) bool {
	for _, p := range primes {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}

func TestGoodSizeProperties(t *testing.T) {
	t.Parallel()

	prev := 0
	for n := 1; n <= 5000; n++ {
		m, err := GoodSizeComplex(n)
		if err != nil {
			t.Fatal(err)
		}
		if m < n {
			t.Fatalf("good_size(%d) = %d < n", n, m)
		}
		if m < prev {
			t.Fatalf("good_size not monotone at %d: %d < %d", n, m, prev)
		}
		if n > 12 && !hasOnlyFactors(m, []int{2, 3, 5, 7, 11}) {
			t.Fatalf("good_size(%d) = %d has disallowed factors", n, m)
		}
		prev = m

		r, err := GoodSizeReal(n)
		if err != nil {
			t.Fatal(err)
		}
		if r < n || (n > 6 && !hasOnlyFactors(r, []int{2, 3, 5})) {
			t.Fatalf("good_size_real(%d) = %d invalid", n, r)
		}
	}
}

func TestGoodSizeOverflow(t *testing.T) {
	t.Parallel()

	huge := int(^uint(0)>>1)/11 + 2
	if _, err := GoodSizeComplex(huge); err != ErrSizeOverflow {
		t.Fatalf("expected overflow error, got %v", err)
	}
}
