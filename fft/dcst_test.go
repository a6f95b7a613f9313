package fft

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-nufft/nd"
)

// naive reference transforms, unnormalised conventions
func refDCT(x []float64, kind int) []float64 {
	n := len(x)
	out := make([]float64, n)
	switch kind {
	case 1:
		for k := 0; k < n; k++ {
			s := x[0] + math.Pow(-1, float64(k))*x[n-1]
			for j := 1; j < n-1; j++ {
				s += 2 * x[j] * math.Cos(math.Pi*float64(j)*float64(k)/float64(n-1))
			}
			out[k] = s
		}
	case 2:
		for k := 0; k < n; k++ {
			s := 0.0
			for j := 0; j < n; j++ {
				s += 2 * x[j] * math.Cos(math.Pi*float64(2*j+1)*float64(k)/float64(2*n))
			}
			out[k] = s
		}
	case 3:
		for k := 0; k < n; k++ {
			s := x[0]
			for j := 1; j < n; j++ {
				s += 2 * x[j] * math.Cos(math.Pi*float64(j)*float64(2*k+1)/float64(2*n))
			}
			out[k] = s
		}
	case 4:
		for k := 0; k < n; k++ {
			s := 0.0
			for j := 0; j < n; j++ {
				s += 2 * x[j] * math.Cos(math.Pi*float64(2*j+1)*float64(2*k+1)/float64(4*n))
			}
			out[k] = s
		}
	}
	return out
}

func refDST(x []float64, kind int) []float64 {
	n := len(x)
	out := make([]float64, n)
	switch kind {
	case 1:
		for k := 0; k < n; k++ {
			s := 0.0
			for j := 0; j < n; j++ {
				s += 2 * x[j] * math.Sin(math.Pi*float64(j+1)*float64(k+1)/float64(n+1))
			}
			out[k] = s
		}
	case 2:
		for k := 0; k < n; k++ {
			s := 0.0
			for j := 0; j < n; j++ {
				s += 2 * x[j] * math.Sin(math.Pi*float64(2*j+1)*float64(k+1)/float64(2*n))
			}
			out[k] = s
		}
	case 3:
		for k := 0; k < n; k++ {
			s := math.Pow(-1, float64(k)) * x[n-1]
			for j := 0; j < n-1; j++ {
				s += 2 * x[j] * math.Sin(math.Pi*float64(j+1)*float64(2*k+1)/float64(2*n))
			}
			out[k] = s
		}
	case 4:
		for k := 0; k < n; k++ {
			s := 0.0
			for j := 0; j < n; j++ {
				s += 2 * x[j] * math.Sin(math.Pi*float64(2*j+1)*float64(2*k+1)/float64(4*n))
			}
			out[k] = s
		}
	}
	return out
}

func TestDCT2Literal(t *testing.T) {
	t.Parallel()

	a := nd.FromSlice([]float64{1, 2, 3, 4}, 4)
	res, err := DCT(a, nd.Array[float64]{}, 2, nil, NormNone, 1)
	require.NoError(t, err)
	want := []float64{20, -6.308644059797899, 0, -0.44834152916796510}
	for i := range want {
		require.InDelta(t, want[i], res.Data[i], 1e-12, "bin %d", i)
	}
}

func TestDCTMatchesReference(t *testing.T) {
	t.Parallel()

	for kind := 1; kind <= 4; kind++ {
		kind := kind
		for _, n := range []int{2, 3, 4, 5, 8, 12, 16, 25} {
			n := n
			t.Run(fmt.Sprintf("type=%d/n=%d", kind, n), func(t *testing.T) {
				t.Parallel()

				x := randReal(n, int64(10*kind+n))
				a := nd.FromSlice(append([]float64(nil), x...), n)
				res, err := DCT(a, nd.Array[float64]{}, kind, nil, NormNone, 1)
				require.NoError(t, err)
				want := refDCT(x, kind)
				for i := range want {
					require.InDelta(t, want[i], res.Data[i], 1e-11, "bin %d", i)
				}
			})
		}
	}
}

func TestDSTMatchesReference(t *testing.T) {
	t.Parallel()

	for kind := 1; kind <= 4; kind++ {
		kind := kind
		for _, n := range []int{1, 2, 3, 4, 5, 8, 12, 16, 25} {
			n := n
			t.Run(fmt.Sprintf("type=%d/n=%d", kind, n), func(t *testing.T) {
				t.Parallel()

				x := randReal(n, int64(100*kind+n))
				a := nd.FromSlice(append([]float64(nil), x...), n)
				res, err := DST(a, nd.Array[float64]{}, kind, nil, NormNone, 1)
				require.NoError(t, err)
				want := refDST(x, kind)
				for i := range want {
					require.InDelta(t, want[i], res.Data[i], 1e-11, "bin %d", i)
				}
			})
		}
	}
}

// inverseKind maps each transform type to the type of its inverse.
func inverseKind(kind int) int {
	switch kind {
	case 2:
		return 3
	case 3:
		return 2
	default:
		return kind
	}
}

func TestDCTOrthogonality(t *testing.T) {
	t.Parallel()

	for kind := 1; kind <= 4; kind++ {
		kind := kind
		for _, n := range []int{4, 8, 15} {
			n := n
			t.Run(fmt.Sprintf("type=%d/n=%d", kind, n), func(t *testing.T) {
				t.Parallel()

				x := randReal(n, int64(kind*1000+n))
				a := nd.FromSlice(append([]float64(nil), x...), n)
				fwd, err := DCT(a, nd.Array[float64]{}, kind, nil, NormOrtho, 1)
				require.NoError(t, err)
				back, err := DCT(fwd, nd.Array[float64]{}, inverseKind(kind), nil, NormOrtho, 1)
				require.NoError(t, err)
				for i := range x {
					require.InDelta(t, x[i], back.Data[i], 1e-11, "element %d", i)
				}
			})
		}
	}
}

func TestDSTOrthogonality(t *testing.T) {
	t.Parallel()

	for kind := 1; kind <= 4; kind++ {
		kind := kind
		for _, n := range []int{4, 8, 15} {
			n := n
			t.Run(fmt.Sprintf("type=%d/n=%d", kind, n), func(t *testing.T) {
				t.Parallel()

				x := randReal(n, int64(kind*2000+n))
				a := nd.FromSlice(append([]float64(nil), x...), n)
				fwd, err := DST(a, nd.Array[float64]{}, kind, nil, NormOrtho, 1)
				require.NoError(t, err)
				back, err := DST(fwd, nd.Array[float64]{}, inverseKind(kind), nil, NormOrtho, 1)
				require.NoError(t, err)
				for i := range x {
					require.InDelta(t, x[i], back.Data[i], 1e-11, "element %d", i)
				}
			})
		}
	}
}

func TestDCSTErrors(t *testing.T) {
	t.Parallel()

	a := nd.FromSlice(make([]float64, 4), 4)
	_, err := DCT(a, nd.Array[float64]{}, 5, nil, 0, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	_, err = DST(a, nd.Array[float64]{}, 0, nil, 0, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)

	one := nd.FromSlice(make([]float64, 1), 1)
	_, err = DCT(one, nd.Array[float64]{}, 1, nil, 0, 1)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDCT2D(t *testing.T) {
	t.Parallel()

	// separable: transforming both axes equals per-axis references
	nx, ny := 4, 6
	x := randReal(nx*ny, 99)
	a := nd.FromSlice(append([]float64(nil), x...), nx, ny)
	res, err := DCT(a, nd.Array[float64]{}, 2, nil, NormNone, 1)
	require.NoError(t, err)

	want := make([]float64, nx*ny)
	copy(want, x)
	// rows first
	for i := 0; i < nx; i++ {
		copy(want[i*ny:(i+1)*ny], refDCT(want[i*ny:(i+1)*ny], 2))
	}
	// then columns
	col := make([]float64, nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			col[i] = want[i*ny+j]
		}
		res2 := refDCT(col, 2)
		for i := 0; i < nx; i++ {
			want[i*ny+j] = res2[i]
		}
	}
	for i := range want {
		require.InDelta(t, want[i], res.Data[i], 1e-10, "element %d", i)
	}
}
