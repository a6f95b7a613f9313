package gridder

import (
	"io"
	"os"

	"github.com/cwbudde/algo-nufft/internal/fftypes"
	"github.com/cwbudde/algo-nufft/nd"
)

// Float and Complex are the element constraints of the public surface.
type (
	Float   = fftypes.Float
	Complex = fftypes.Complex
)

// Config carries the scalar parameters of a gridding call.
type Config struct {
	PixsizeX  float64 // pixel size along x, radians
	PixsizeY  float64 // pixel size along y, radians
	Epsilon   float64 // requested accuracy
	DoWGrid   bool    // enable w-stacking
	Nthreads  int     // worker count, <=0 means the runtime default
	Verbosity int
	Report    io.Writer // destination of the run report, default os.Stdout

	NegateV   bool
	DivideByN bool
}

// DefaultConfig returns the baseline parameter set; pixel sizes and the
// accuracy still have to be filled in.
func DefaultConfig() Config {
	return Config{Nthreads: 1, DivideByN: true}
}

// MS2Dirty grids the visibilities ms sampled at uvw/freq onto the dirty
// image (the adjoint of Dirty2MS). dirty supplies the image geometry and
// receives the result; it is also returned.
func MS2Dirty[F Float, C Complex](
	uvw, freq nd.Array[float64], ms nd.Array[C],
	wgt nd.Array[F], mask nd.Array[uint8],
	dirty nd.Array[F], cfg Config,
) (nd.Array[F], error) {
	if ms.Data == nil {
		return nd.Array[F]{}, errNilArray
	}
	p, err := setup(uvw, freq, ms, wgt, mask, dirty, cfg, true)
	if err != nil {
		return nd.Array[F]{}, err
	}
	p.msIn = flattenComplex(ms)
	p.dirtyOut = make([]float64, p.nx*p.ny)
	if err := p.run(); err != nil {
		return nd.Array[F]{}, err
	}
	storeFloat(dirty, p.dirtyOut)
	return dirty, nil
}

// Dirty2MS predicts visibilities from a dirty image (the adjoint of
// MS2Dirty). A zero-valued ms is allocated with shape [nrow, nchan].
func Dirty2MS[F Float, C Complex](
	uvw, freq nd.Array[float64], dirty nd.Array[F],
	wgt nd.Array[F], mask nd.Array[uint8],
	ms nd.Array[C], cfg Config,
) (nd.Array[C], error) {
	p, err := setup(uvw, freq, ms, wgt, mask, dirty, cfg, false)
	if err != nil {
		return nd.Array[C]{}, err
	}
	if ms.Data == nil {
		ms = nd.New[C](p.bl0rows, p.bl0chans)
	}
	p.dirtyIn = flattenFloat(dirty)
	p.msOut = make([]complex128, p.bl0rows*p.bl0chans)
	if err := p.run(); err != nil {
		return nd.Array[C]{}, err
	}
	storeComplex(ms, p.msOut)
	return ms, nil
}

// setup validates the argument geometry and fills the shared params.
func setup[F Float, C Complex](
	uvw, freq nd.Array[float64], ms nd.Array[C],
	wgt nd.Array[F], mask nd.Array[uint8],
	dirty nd.Array[F], cfg Config, gridding bool,
) (*params, error) {
	if uvw.Data == nil || freq.Data == nil || dirty.Data == nil {
		return nil, errNilArray
	}
	if uvw.NDim() != 2 || uvw.Shape[1] != 3 || freq.NDim() != 1 {
		return nil, errShape
	}
	nrow, nchan := uvw.Shape[0], freq.Shape[0]
	if ms.Data != nil && (ms.NDim() != 2 || ms.Shape[0] != nrow || ms.Shape[1] != nchan) {
		return nil, errShape
	}
	if wgt.Data != nil && (wgt.NDim() != 2 || wgt.Shape[0] != nrow || wgt.Shape[1] != nchan) {
		return nil, errShape
	}
	if mask.Data != nil && (mask.NDim() != 2 || mask.Shape[0] != nrow || mask.Shape[1] != nchan) {
		return nil, errShape
	}
	if dirty.NDim() != 2 {
		return nil, errShape
	}
	nx, ny := dirty.Shape[0], dirty.Shape[1]
	if nx&1 != 0 || ny&1 != 0 {
		return nil, errOddImage
	}
	if cfg.PixsizeX <= 0 || cfg.PixsizeY <= 0 {
		return nil, errPixsize
	}
	if cfg.Epsilon <= 0 {
		return nil, errEpsilon
	}
	report := cfg.Report
	if report == nil {
		report = os.Stdout
	}
	p := &params{
		gridding:  gridding,
		uvwFlat:   flattenFloat64(uvw),
		freqFlat:  flattenFloat64(freq),
		pixX:      cfg.PixsizeX,
		pixY:      cfg.PixsizeY,
		nx:        nx,
		ny:        ny,
		eps:       cfg.Epsilon,
		doWgrid:   cfg.DoWGrid,
		nthreads:  cfg.Nthreads,
		verbosity: cfg.Verbosity,
		negateV:   cfg.NegateV,
		divideByN: cfg.DivideByN,
		report:    report,
		bl0rows:   nrow,
		bl0chans:  nchan,
	}
	if wgt.Data != nil {
		p.wgt = flattenFloat(wgt)
	}
	if mask.Data != nil {
		p.mask = flattenMask(mask)
	}
	return p, nil
}

func flattenFloat64(a nd.Array[float64]) []float64 {
	out := make([]float64, a.Size())
	flatten(a, func(i int, v float64) { out[i] = v })
	return out
}

func flattenFloat[F Float](a nd.Array[F]) []float64 {
	out := make([]float64, a.Size())
	flatten(a, func(i int, v F) { out[i] = float64(v) })
	return out
}

func flattenMask(a nd.Array[uint8]) []uint8 {
	out := make([]uint8, a.Size())
	flatten(a, func(i int, v uint8) { out[i] = v })
	return out
}

func flattenComplex[C Complex](a nd.Array[C]) []complex128 {
	out := make([]complex128, a.Size())
	switch s := any(a).(type) {
	case nd.Array[complex64]:
		flatten(s, func(i int, v complex64) { out[i] = complex128(v) })
	case nd.Array[complex128]:
		flatten(s, func(i int, v complex128) { out[i] = v })
	}
	return out
}

// flatten walks a view in row-major order.
func flatten[T nd.Elem](a nd.Array[T], emit func(int, T)) {
	n := a.Shape[a.NDim()-1]
	axis := a.NDim() - 1
	st := a.Stride[axis]
	lines := a.LineCount(axis)
	k := 0
	for line := 0; line < lines; line++ {
		base := a.LineOffset(line, axis)
		for i := 0; i < n; i++ {
			emit(k, a.Data[base+i*st])
			k++
		}
	}
}

func storeFloat[F Float](dst nd.Array[F], src []float64) {
	axis := dst.NDim() - 1
	n := dst.Shape[axis]
	st := dst.Stride[axis]
	lines := dst.LineCount(axis)
	k := 0
	for line := 0; line < lines; line++ {
		base := dst.LineOffset(line, axis)
		for i := 0; i < n; i++ {
			dst.Data[base+i*st] = F(src[k])
			k++
		}
	}
}

func storeComplex[C Complex](dst nd.Array[C], src []complex128) {
	axis := dst.NDim() - 1
	n := dst.Shape[axis]
	st := dst.Stride[axis]
	lines := dst.LineCount(axis)
	k := 0
	for line := 0; line < lines; line++ {
		base := dst.LineOffset(line, axis)
		for i := 0; i < n; i++ {
			switch d := any(dst.Data).(type) {
			case []complex64:
				d[base+i*st] = complex64(src[k])
			case []complex128:
				d[base+i*st] = src[k]
			}
			k++
		}
	}
}
