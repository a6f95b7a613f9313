package fft1d

import (
	"fmt"
	"math"
	"math/rand"
	"testing"
)

// naiveDFT is the O(n^2) reference transform.
func naiveDFT(in []Cmplx[float64], fwd bool) []Cmplx[float64] {
	n := len(in)
	out := make([]Cmplx[float64], n)
	sign := 1.0
	if fwd {
		sign = -1
	}
	for k := 0; k < n; k++ {
		var accR, accI float64
		for j := 0; j < n; j++ {
			s, c := math.Sincos(sign * 2 * math.Pi * float64(k) * float64(j) / float64(n))
			accR += in[j].R*c - in[j].I*s
			accI += in[j].R*s + in[j].I*c
		}
		out[k] = Cmplx[float64]{accR, accI}
	}
	return out
}

func randomData(n int, seed int64) []Cmplx[float64] {
	rng := rand.New(rand.NewSource(seed))
	data := make([]Cmplx[float64], n)
	for i := range data {
		data[i] = Cmplx[float64]{rng.Float64()*2 - 1, rng.Float64()*2 - 1}
	}
	return data
}

func assertClose(t *testing.T, got, want []Cmplx[float64], tol float64) {
	t.Helper()
	norm := 0.0
	for _, v := range want {
		norm = math.Max(norm, math.Hypot(v.R, v.I))
	}
	if norm == 0 {
		norm = 1
	}
	for i := range want {
		dr := got[i].R - want[i].R
		di := got[i].I - want[i].I
		if math.Hypot(dr, di) > tol*norm {
			t.Fatalf("element %d: got (%g,%g), want (%g,%g)", i, got[i].R, got[i].I, want[i].R, want[i].I)
		}
	}
}

// Sizes chosen to cover every pass variant: unit, fixed radices 2..11,
// the generic odd pass, multipass combinations and the Bluestein sizes.
var testSizes = []int{
	1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 20, 21, 22,
	24, 25, 27, 30, 32, 33, 40, 49, 55, 60, 64, 77, 81, 96, 100, 104,
	105, 113, 121, 125, 127, 128, 211, 225, 226, 243, 256, 360, 512,
	1000, 1008,
}

func TestPlanMatchesReference(t *testing.T) {
	t.Parallel()

	for _, n := range testSizes {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			plan, err := NewPlan[float64](n)
			if err != nil {
				t.Fatalf("NewPlan(%d): %v", n, err)
			}
			if plan.Len() != n {
				t.Fatalf("Len() = %d, want %d", plan.Len(), n)
			}

			in := randomData(n, int64(n))
			want := naiveDFT(in, true)

			data := append([]Cmplx[float64](nil), in...)
			plan.ExecAlloc(data, 1, true)
			assertClose(t, data, want, 1e-11*float64(n))

			// inverse of the reference spectrum recovers the input
			inv := append([]Cmplx[float64](nil), want...)
			plan.ExecAlloc(inv, 1/float64(n), false)
			assertClose(t, inv, in, 1e-11*float64(n))
		})
	}
}

func TestPlanRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range testSizes {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			plan, err := NewPlan[float64](n)
			if err != nil {
				t.Fatal(err)
			}
			in := randomData(n, 17*int64(n)+1)
			data := append([]Cmplx[float64](nil), in...)
			scratch := make([]Cmplx[float64], plan.Bufsize())
			plan.Exec(data, scratch, 1, true)
			plan.Exec(data, scratch, 1/float64(n), false)
			assertClose(t, data, in, 1e-12*float64(n)*10)
		})
	}
}

func TestPlanLinearity(t *testing.T) {
	t.Parallel()

	for _, n := range []int{8, 12, 35, 60, 113, 128} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			plan, err := NewPlan[float64](n)
			if err != nil {
				t.Fatal(err)
			}
			x := randomData(n, 1)
			y := randomData(n, 2)
			alpha := Cmplx[float64]{2.5, 1.3}
			beta := Cmplx[float64]{-1.7, 0.8}

			combined := make([]Cmplx[float64], n)
			for i := range combined {
				combined[i] = x[i].Mul(alpha).Add(y[i].Mul(beta))
			}
			plan.ExecAlloc(combined, 1, true)

			fx := append([]Cmplx[float64](nil), x...)
			fy := append([]Cmplx[float64](nil), y...)
			plan.ExecAlloc(fx, 1, true)
			plan.ExecAlloc(fy, 1, true)
			want := make([]Cmplx[float64], n)
			for i := range want {
				want[i] = fx[i].Mul(alpha).Add(fy[i].Mul(beta))
			}
			assertClose(t, combined, want, 1e-11*float64(n))
		})
	}
}

func TestPlanParseval(t *testing.T) {
	t.Parallel()

	for _, n := range []int{16, 55, 100, 121, 127} {
		n := n
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			t.Parallel()

			plan, err := NewPlan[float64](n)
			if err != nil {
				t.Fatal(err)
			}
			x := randomData(n, int64(3*n))
			var inPow float64
			for _, v := range x {
				inPow += v.R*v.R + v.I*v.I
			}
			plan.ExecAlloc(x, 1/math.Sqrt(float64(n)), true)
			var outPow float64
			for _, v := range x {
				outPow += v.R*v.R + v.I*v.I
			}
			if math.Abs(inPow-outPow) > 1e-10*inPow {
				t.Fatalf("Parseval violated: in %g, out %g", inPow, outPow)
			}
		})
	}
}

func TestPlanImpulse(t *testing.T) {
	t.Parallel()

	plan, err := NewPlan[float64](4)
	if err != nil {
		t.Fatal(err)
	}
	data := []Cmplx[float64]{{1, 0}, {0, 0}, {0, 0}, {0, 0}}
	plan.ExecAlloc(data, 1, true)
	for i, v := range data {
		if math.Abs(v.R-1) > 1e-15 || math.Abs(v.I) > 1e-15 {
			t.Fatalf("bin %d: got (%g,%g), want (1,0)", i, v.R, v.I)
		}
	}
	plan.ExecAlloc(data, 0.25, false)
	want := []Cmplx[float64]{{1, 0}, {0, 0}, {0, 0}, {0, 0}}
	assertClose(t, data, want, 1e-14)
}

func TestPlanZeroLength(t *testing.T) {
	t.Parallel()

	if _, err := NewPlan[float64](0); err != ErrZeroLength {
		t.Fatalf("NewPlan(0) error = %v, want ErrZeroLength", err)
	}
	if _, err := NewRealPlan[float64](0); err != ErrZeroLength {
		t.Fatalf("NewRealPlan(0) error = %v, want ErrZeroLength", err)
	}
}

func TestPlanFloat32(t *testing.T) {
	t.Parallel()

	for _, n := range []int{8, 12, 60, 113} {
		plan, err := NewPlan[float32](n)
		if err != nil {
			t.Fatal(err)
		}
		in64 := randomData(n, int64(n))
		in := make([]Cmplx[float32], n)
		for i, v := range in64 {
			in[i] = Cmplx[float32]{float32(v.R), float32(v.I)}
		}
		want := naiveDFT(in64, true)
		plan.ExecAlloc(in, 1, true)
		for i := range in {
			dr := float64(in[i].R) - want[i].R
			di := float64(in[i].I) - want[i].I
			if math.Hypot(dr, di) > 1e-3*float64(n) {
				t.Fatalf("n=%d bin %d: got (%g,%g), want (%g,%g)", n, i, in[i].R, in[i].I, want[i].R, want[i].I)
			}
		}
	}
}
