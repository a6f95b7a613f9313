package fft

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/cwbudde/algo-nufft/nd"
)

func randComplex(n int, seed int64) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, n)
	for i := range out {
		out[i] = complex(rng.Float64()*2-1, rng.Float64()*2-1)
	}
	return out
}

func randReal(n int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, n)
	for i := range out {
		out[i] = rng.Float64()*2 - 1
	}
	return out
}

func assertComplexClose(t *testing.T, got, want []complex128, tol float64) {
	t.Helper()
	for i := range want {
		if cmplx.Abs(got[i]-want[i]) > tol {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func assertRealClose(t *testing.T, got, want []float64, tol float64) {
	t.Helper()
	for i := range want {
		if math.Abs(got[i]-want[i]) > tol {
			t.Fatalf("element %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestC2CImpulse(t *testing.T) {
	t.Parallel()

	a := nd.FromSlice([]complex128{1, 0, 0, 0}, 4)
	res, err := C2C(a, nd.Array[complex128]{}, nil, true, NormNone, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertComplexClose(t, res.Data, []complex128{1, 1, 1, 1}, 1e-14)

	back, err := C2C(res, nd.Array[complex128]{}, nil, false, NormFull, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertComplexClose(t, back.Data, []complex128{1, 0, 0, 0}, 1e-14)
}

func TestC2CRoundTrip2D(t *testing.T) {
	t.Parallel()

	for _, shape := range [][2]int{{4, 6}, {15, 8}, {13, 21}, {32, 32}} {
		shape := shape
		t.Run(fmt.Sprintf("%dx%d", shape[0], shape[1]), func(t *testing.T) {
			t.Parallel()

			n := shape[0] * shape[1]
			orig := randComplex(n, int64(n))
			a := nd.FromSlice(append([]complex128(nil), orig...), shape[0], shape[1])
			if _, err := C2C(a, a, nil, true, NormNone, 2); err != nil {
				t.Fatal(err)
			}
			if _, err := C2C(a, a, nil, false, NormFull, 2); err != nil {
				t.Fatal(err)
			}
			assertComplexClose(t, a.Data, orig, 1e-12*float64(n))
		})
	}
}

func TestC2CSingleAxis(t *testing.T) {
	t.Parallel()

	// transforming only axis 1 of a 2x3 array must keep rows independent
	a := nd.FromSlice([]complex128{1, 2, 3, 4, 5, 6}, 2, 3)
	res, err := C2C(a, nd.Array[complex128]{}, []int{1}, true, NormNone, 1)
	if err != nil {
		t.Fatal(err)
	}
	if cmplx.Abs(res.At(0, 0)-6) > 1e-13 || cmplx.Abs(res.At(1, 0)-15) > 1e-13 {
		t.Fatalf("row sums wrong: %v, %v", res.At(0, 0), res.At(1, 0))
	}
}

func TestC2CParallelMatchesSerial(t *testing.T) {
	t.Parallel()

	a := nd.FromSlice(randComplex(64*33, 7), 64, 33)
	serial, err := C2C(a, nd.Array[complex128]{}, nil, true, NormNone, 1)
	if err != nil {
		t.Fatal(err)
	}
	par, err := C2C(a, nd.Array[complex128]{}, nil, true, NormNone, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i := range serial.Data {
		if serial.Data[i] != par.Data[i] {
			t.Fatalf("parallel result differs at %d", i)
		}
	}
}

func TestC2CParseval(t *testing.T) {
	t.Parallel()

	orig := randComplex(120, 3)
	a := nd.FromSlice(append([]complex128(nil), orig...), 120)
	res, err := C2C(a, nd.Array[complex128]{}, nil, true, NormOrtho, 1)
	if err != nil {
		t.Fatal(err)
	}
	var pin, pout float64
	for i := range orig {
		pin += real(orig[i])*real(orig[i]) + imag(orig[i])*imag(orig[i])
		pout += real(res.Data[i])*real(res.Data[i]) + imag(res.Data[i])*imag(res.Data[i])
	}
	if math.Abs(pin-pout) > 1e-10*pin {
		t.Fatalf("Parseval violated: %g vs %g", pin, pout)
	}
}

func TestC2CErrors(t *testing.T) {
	t.Parallel()

	a := nd.FromSlice(make([]complex128, 6), 2, 3)
	if _, err := C2C(nd.Array[complex128]{}, nd.Array[complex128]{}, nil, true, 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("nil input: err = %v", err)
	}
	if _, err := C2C(a, nd.Array[complex128]{}, []int{2}, true, 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad axis: err = %v", err)
	}
	if _, err := C2C(a, nd.Array[complex128]{}, []int{0, 0}, true, 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("repeated axis: err = %v", err)
	}
	if _, err := C2C(a, nd.Array[complex128]{}, nil, true, 3, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("bad inorm: err = %v", err)
	}
	bad := nd.FromSlice(make([]complex128, 4), 2, 2)
	if _, err := C2C(a, bad, nil, true, 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("shape mismatch: err = %v", err)
	}
}

func TestR2CRamp(t *testing.T) {
	t.Parallel()

	a := nd.FromSlice([]float64{0, 1, 2, 3, 4, 5}, 6)
	spec, err := R2C[float64, complex128](a, nd.Array[complex128]{}, nil, true, NormNone, 1)
	if err != nil {
		t.Fatal(err)
	}
	if spec.Shape[0] != 4 {
		t.Fatalf("output length = %d, want 4", spec.Shape[0])
	}
	if cmplx.Abs(spec.Data[0]-15) > 1e-13 {
		t.Fatalf("first element = %v, want 15+0i", spec.Data[0])
	}

	back, err := C2R[complex128, float64](spec, nd.Array[float64]{}, nil, 6, false, NormFull, 1)
	if err != nil {
		t.Fatal(err)
	}
	assertRealClose(t, back.Data, a.Data, 1e-13)
}

func TestR2CHermitian(t *testing.T) {
	t.Parallel()

	n := 16
	a := nd.FromSlice(randReal(n, 4), n)
	spec, err := R2C[float64, complex128](a, nd.Array[complex128]{}, nil, true, NormNone, 1)
	if err != nil {
		t.Fatal(err)
	}
	full, err := C2CSym[float64, complex128](a, nd.Array[complex128]{}, nil, true, NormNone, 1)
	if err != nil {
		t.Fatal(err)
	}
	for k := 0; k <= n/2; k++ {
		if cmplx.Abs(spec.Data[k]-full.Data[k]) > 1e-12 {
			t.Fatalf("half/full mismatch at %d", k)
		}
	}
	for k := 1; k < n; k++ {
		if cmplx.Abs(full.Data[n-k]-cmplx.Conj(full.Data[k])) > 1e-12 {
			t.Fatalf("Hermitian symmetry violated at %d", k)
		}
	}
}

func TestR2CRoundTrip2D(t *testing.T) {
	t.Parallel()

	for _, shape := range [][2]int{{4, 6}, {8, 9}, {10, 15}} {
		nx, ny := shape[0], shape[1]
		orig := randReal(nx*ny, int64(nx*ny))
		a := nd.FromSlice(append([]float64(nil), orig...), nx, ny)
		spec, err := R2C[float64, complex128](a, nd.Array[complex128]{}, nil, true, NormNone, 1)
		if err != nil {
			t.Fatal(err)
		}
		if spec.Shape[1] != ny/2+1 {
			t.Fatalf("half axis = %d, want %d", spec.Shape[1], ny/2+1)
		}
		back, err := C2R[complex128, float64](spec, nd.Array[float64]{}, nil, ny, false, NormFull, 1)
		if err != nil {
			t.Fatal(err)
		}
		assertRealClose(t, back.Data, orig, 1e-12*float64(nx*ny))
	}
}

func TestC2RLastsizeValidation(t *testing.T) {
	t.Parallel()

	spec := nd.FromSlice(make([]complex128, 4), 4)
	if _, err := C2R[complex128, float64](spec, nd.Array[float64]{}, nil, 9, false, 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("lastsize 9 with 4 bins: err = %v", err)
	}
	// both 2n-2 and 2n-1 are legal
	for _, ls := range []int{6, 7} {
		if _, err := C2R[complex128, float64](spec, nd.Array[float64]{}, nil, ls, false, 0, 1); err != nil {
			t.Fatalf("lastsize %d: %v", ls, err)
		}
	}
}

func TestR2RFFTPackRoundTrip(t *testing.T) {
	t.Parallel()

	for _, n := range []int{4, 5, 12, 25} {
		orig := randReal(n, int64(n))
		a := nd.FromSlice(append([]float64(nil), orig...), n)
		packed, err := R2RFFTPack(a, nd.Array[float64]{}, nil, true, true, NormNone, 1)
		if err != nil {
			t.Fatal(err)
		}
		back, err := R2RFFTPack(packed, nd.Array[float64]{}, nil, false, false, NormFull, 1)
		if err != nil {
			t.Fatal(err)
		}
		assertRealClose(t, back.Data, orig, 1e-12*float64(n))
	}
}

func TestGoodSizeScenarios(t *testing.T) {
	t.Parallel()

	if got, _ := GoodSize(1000, false); got != 1000 {
		t.Errorf("GoodSize(1000) = %d, want 1000", got)
	}
	if got, _ := GoodSize(1001, false); got != 1008 {
		t.Errorf("GoodSize(1001) = %d, want 1008", got)
	}
	if got, _ := GoodSize(1001, true); got != 1024 {
		t.Errorf("GoodSize(1001, real) = %d, want 1024", got)
	}
}

func TestC2CComplex64(t *testing.T) {
	t.Parallel()

	orig := []complex64{1, 2, 3, 4, 5, 6, 7, 8}
	a := nd.FromSlice(append([]complex64(nil), orig...), 8)
	if _, err := C2C(a, a, nil, true, NormNone, 1); err != nil {
		t.Fatal(err)
	}
	if _, err := C2C(a, a, nil, false, NormFull, 1); err != nil {
		t.Fatal(err)
	}
	for i := range orig {
		d := a.Data[i] - orig[i]
		if math.Hypot(float64(real(d)), float64(imag(d))) > 1e-4 {
			t.Fatalf("round trip failed at %d: %v vs %v", i, a.Data[i], orig[i])
		}
	}
}

func TestStridedViewTransform(t *testing.T) {
	t.Parallel()

	// transform a column sub-view of a larger buffer
	backing := make([]complex128, 8*8)
	arr := nd.FromSlice(backing, 8, 8)
	sub := arr.Sub([]int{0, 2}, []int{8, 3}) // one column, stride 8
	for i := 0; i < 8; i++ {
		sub.Set(complex(float64(i), 0), i, 0)
	}
	if _, err := C2C(sub, sub, []int{0}, true, NormNone, 1); err != nil {
		t.Fatal(err)
	}
	if cmplx.Abs(sub.At(0, 0)-28) > 1e-12 {
		t.Fatalf("DC of column = %v, want 28", sub.At(0, 0))
	}
	// the neighbouring columns must be untouched
	for i := 0; i < 8; i++ {
		if arr.At(i, 1) != 0 || arr.At(i, 3) != 0 {
			t.Fatal("transform leaked outside the sub-view")
		}
	}
}
