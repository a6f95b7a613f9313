package gridder

import (
	"bytes"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-nufft/nd"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.PixsizeX = 0.01
	cfg.PixsizeY = 0.01
	cfg.Epsilon = 1e-5
	return cfg
}

// two unit visibilities at the phase centre must produce a dirty-image
// peak of 2 at the centre pixel
func TestMS2DirtyCentrePeak(t *testing.T) {
	t.Parallel()

	uvw := nd.FromSlice(make([]float64, 2*3), 2, 3)
	freq := nd.FromSlice([]float64{1e9}, 1)
	ms := nd.FromSlice([]complex128{1, 1}, 2, 1)
	dirty := nd.New[float64](64, 64)

	res, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, nd.Array[uint8]{}, dirty, testConfig())
	require.NoError(t, err)

	peak := res.At(32, 32)
	require.InDelta(t, 2.0, peak, 1e-5, "centre pixel")

	// a zero-baseline sample is constant across the whole field
	for i := 0; i < 64; i++ {
		for j := 0; j < 64; j++ {
			require.InDelta(t, 2.0, res.At(i, j), 1e-3)
		}
	}
}

func randomSetup(nrow, nchan int, seed int64, withW bool) (uvw, freq nd.Array[float64]) {
	rng := rand.New(rand.NewSource(seed))
	u := make([]float64, nrow*3)
	for r := 0; r < nrow; r++ {
		u[3*r] = rng.Float64()*200 - 100
		u[3*r+1] = rng.Float64()*200 - 100
		if withW {
			u[3*r+2] = rng.Float64()*40 - 20
		}
	}
	f := make([]float64, nchan)
	for c := 0; c < nchan; c++ {
		f[c] = 1e9 * (1 + 0.1*float64(c))
	}
	return nd.FromSlice(u, nrow, 3), nd.FromSlice(f, nchan)
}

func randomVis(nrow, nchan int, seed int64) nd.Array[complex128] {
	rng := rand.New(rand.NewSource(seed))
	v := make([]complex128, nrow*nchan)
	for i := range v {
		v[i] = complex(rng.NormFloat64(), rng.NormFloat64())
	}
	return nd.FromSlice(v, nrow, nchan)
}

func randomImage(nx, ny int, seed int64) nd.Array[float64] {
	rng := rand.New(rand.NewSource(seed))
	d := make([]float64, nx*ny)
	for i := range d {
		d[i] = rng.NormFloat64()
	}
	return nd.FromSlice(d, nx, ny)
}

// the degridder must be the exact adjoint of the gridder:
// <ms2dirty(v), d> == Re<v, dirty2ms(d)>
func TestAdjointness(t *testing.T) {
	t.Parallel()

	for _, doW := range []bool{false, true} {
		doW := doW
		name := "noW"
		if doW {
			name = "wStacking"
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			nrow, nchan := 40, 2
			nx, ny := 32, 32
			uvw, freq := randomSetup(nrow, nchan, 42, doW)
			vis := randomVis(nrow, nchan, 43)
			d := randomImage(nx, ny, 44)

			cfg := DefaultConfig()
			cfg.PixsizeX = 5e-4
			cfg.PixsizeY = 5e-4
			cfg.Epsilon = 1e-7
			cfg.DoWGrid = doW

			dirty, err := MS2Dirty(uvw, freq, vis, nd.Array[float64]{}, nd.Array[uint8]{},
				nd.New[float64](nx, ny), cfg)
			require.NoError(t, err)

			pred, err := Dirty2MS[float64, complex128](uvw, freq, d,
				nd.Array[float64]{}, nd.Array[uint8]{}, nd.Array[complex128]{}, cfg)
			require.NoError(t, err)

			lhs := 0.0
			for i := range dirty.Data {
				lhs += dirty.Data[i] * d.Data[i]
			}
			rhs := 0.0
			for i := range vis.Data {
				rhs += real(vis.Data[i])*real(pred.Data[i]) + imag(vis.Data[i])*imag(pred.Data[i])
			}
			scale := math.Max(math.Abs(lhs), math.Abs(rhs))
			require.InDelta(t, lhs, rhs, 1e-9*scale, "adjointness")
		})
	}
}

func TestDeterminismFixedThreads(t *testing.T) {
	t.Parallel()

	nrow, nchan := 30, 3
	uvw, freq := randomSetup(nrow, nchan, 7, false)
	vis := randomVis(nrow, nchan, 8)
	cfg := testConfig()
	cfg.PixsizeX = 5e-4
	cfg.PixsizeY = 5e-4

	run := func(nthreads int) []float64 {
		cfg := cfg
		cfg.Nthreads = nthreads
		res, err := MS2Dirty(uvw, freq, vis, nd.Array[float64]{}, nd.Array[uint8]{},
			nd.New[float64](64, 64), cfg)
		require.NoError(t, err)
		return res.Data
	}

	a := run(1)
	b := run(1)
	for i := range a {
		require.Equal(t, a[i], b[i], "repeated single-thread runs must be bitwise identical")
	}

	c := run(8)
	maxv := 0.0
	for i := range a {
		maxv = math.Max(maxv, math.Abs(a[i]))
	}
	for i := range a {
		require.InDelta(t, a[i], c[i], 1e-12*maxv, "thread count must not change the result beyond rounding")
	}
}

func TestEmptyActiveSet(t *testing.T) {
	t.Parallel()

	uvw, freq := randomSetup(5, 2, 1, false)
	ms := nd.New[complex128](5, 2) // all zero -> nothing active
	dirty := nd.New[float64](32, 32)
	for i := range dirty.Data {
		dirty.Data[i] = 123 // must be overwritten with zeros
	}
	res, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, nd.Array[uint8]{}, dirty, testConfig())
	require.NoError(t, err)
	for _, v := range res.Data {
		require.Zero(t, v)
	}
}

func TestWeightsAndMask(t *testing.T) {
	t.Parallel()

	uvw := nd.FromSlice(make([]float64, 2*3), 2, 3)
	freq := nd.FromSlice([]float64{1e9}, 1)
	ms := nd.FromSlice([]complex128{1, 1}, 2, 1)

	// masking one sample halves the centre peak
	mask := nd.FromSlice([]uint8{1, 0}, 2, 1)
	res, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, mask,
		nd.New[float64](64, 64), testConfig())
	require.NoError(t, err)
	require.InDelta(t, 1.0, res.At(32, 32), 1e-5)

	// a weight of 0.5 on one sample gives 1.5
	wgt := nd.FromSlice([]float64{1, 0.5}, 2, 1)
	res, err = MS2Dirty(uvw, freq, ms, wgt, nd.Array[uint8]{},
		nd.New[float64](64, 64), testConfig())
	require.NoError(t, err)
	require.InDelta(t, 1.5, res.At(32, 32), 1e-5)
}

func TestWStackingCentrePeak(t *testing.T) {
	t.Parallel()

	// one sample with non-zero w still reconstructs the centre correctly
	uvw := nd.FromSlice([]float64{0, 0, 10}, 1, 3)
	freq := nd.FromSlice([]float64{1e9}, 1)
	ms := nd.FromSlice([]complex128{1}, 1, 1)
	cfg := testConfig()
	cfg.PixsizeX = 1e-3
	cfg.PixsizeY = 1e-3
	cfg.DoWGrid = true

	res, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, nd.Array[uint8]{},
		nd.New[float64](64, 64), cfg)
	require.NoError(t, err)
	// at the phase centre n-1 = 0, so the w term drops out
	require.InDelta(t, 1.0, res.At(32, 32), 1e-4)
}

func TestVerbosityReport(t *testing.T) {
	t.Parallel()

	uvw := nd.FromSlice(make([]float64, 3), 1, 3)
	freq := nd.FromSlice([]float64{1e9}, 1)
	ms := nd.FromSlice([]complex128{1}, 1, 1)
	var buf bytes.Buffer
	cfg := testConfig()
	cfg.Verbosity = 1
	cfg.Report = &buf

	_, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, nd.Array[uint8]{},
		nd.New[float64](32, 32), cfg)
	require.NoError(t, err)
	require.Contains(t, buf.String(), "Gridding")
	require.Contains(t, buf.String(), "Total wall clock time")
}

func TestArgumentValidation(t *testing.T) {
	t.Parallel()

	uvw := nd.FromSlice(make([]float64, 3), 1, 3)
	freq := nd.FromSlice([]float64{1e9}, 1)
	ms := nd.FromSlice([]complex128{1}, 1, 1)
	dirty := nd.New[float64](32, 32)

	cases := []struct {
		name string
		run  func() error
	}{
		{"odd image", func() error {
			cfg := testConfig()
			_, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, nd.Array[uint8]{}, nd.New[float64](31, 32), cfg)
			return err
		}},
		{"bad pixsize", func() error {
			cfg := testConfig()
			cfg.PixsizeX = 0
			_, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, nd.Array[uint8]{}, dirty, cfg)
			return err
		}},
		{"bad epsilon", func() error {
			cfg := testConfig()
			cfg.Epsilon = -1
			_, err := MS2Dirty(uvw, freq, ms, nd.Array[float64]{}, nd.Array[uint8]{}, dirty, cfg)
			return err
		}},
		{"ms shape", func() error {
			cfg := testConfig()
			bad := nd.FromSlice(make([]complex128, 2), 2, 1)
			_, err := MS2Dirty(uvw, freq, bad, nd.Array[float64]{}, nd.Array[uint8]{}, dirty, cfg)
			return err
		}},
		{"wgt shape", func() error {
			cfg := testConfig()
			bad := nd.FromSlice(make([]float64, 4), 2, 2)
			_, err := MS2Dirty(uvw, freq, ms, bad, nd.Array[uint8]{}, dirty, cfg)
			return err
		}},
		{"bad freq", func() error {
			cfg := testConfig()
			badFreq := nd.FromSlice([]float64{-1}, 1)
			_, err := MS2Dirty(uvw, badFreq, ms, nd.Array[float64]{}, nd.Array[uint8]{}, dirty, cfg)
			return err
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.ErrorIs(t, c.run(), ErrInvalidArgument)
		})
	}
}

func TestDirty2MSPointSource(t *testing.T) {
	t.Parallel()

	// a unit point source at the phase centre predicts visibility 1 for
	// a zero-baseline sample
	nx, ny := 64, 64
	dirty := nd.New[float64](nx, ny)
	dirty.Set(1, nx/2, ny/2)
	uvw := nd.FromSlice(make([]float64, 3), 1, 3)
	freq := nd.FromSlice([]float64{1e9}, 1)

	ms, err := Dirty2MS[float64, complex128](uvw, freq, dirty,
		nd.Array[float64]{}, nd.Array[uint8]{}, nd.Array[complex128]{}, testConfig())
	require.NoError(t, err)
	require.InDelta(t, 1.0, real(ms.Data[0]), 1e-5)
	require.InDelta(t, 0.0, imag(ms.Data[0]), 1e-5)
}
