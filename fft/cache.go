package fft

import (
	"sync"

	"github.com/cwbudde/algo-nufft/internal/fft1d"
	"github.com/cwbudde/algo-nufft/internal/fftypes"
)

// Plans are immutable, so the facade shares them freely: one cache per
// precision, keyed by transform length. The N-D operations hit the cache
// once per axis and hand the same plan to every worker.

type planCache[F fftypes.Float] struct {
	complex sync.Map // int -> *fft1d.Plan[F]
	real    sync.Map // int -> *fft1d.RealPlan[F]
}

func (c *planCache[F]) plan(n int) (*fft1d.Plan[F], error) {
	if v, ok := c.complex.Load(n); ok {
		return v.(*fft1d.Plan[F]), nil
	}
	p, err := fft1d.NewPlan[F](n)
	if err != nil {
		return nil, err
	}
	v, _ := c.complex.LoadOrStore(n, p)
	return v.(*fft1d.Plan[F]), nil
}

func (c *planCache[F]) realPlan(n int) (*fft1d.RealPlan[F], error) {
	if v, ok := c.real.Load(n); ok {
		return v.(*fft1d.RealPlan[F]), nil
	}
	p, err := fft1d.NewRealPlan[F](n)
	if err != nil {
		return nil, err
	}
	v, _ := c.real.LoadOrStore(n, p)
	return v.(*fft1d.RealPlan[F]), nil
}

var (
	cache32 planCache[float32]
	cache64 planCache[float64]
)

func planFor[F fftypes.Float](n int) (*fft1d.Plan[F], error) {
	var zero F
	switch any(zero).(type) {
	case float32:
		p, err := cache32.plan(n)
		return any(p).(*fft1d.Plan[F]), err
	case float64:
		p, err := cache64.plan(n)
		return any(p).(*fft1d.Plan[F]), err
	default:
		return nil, ErrUnsupportedDatatype
	}
}

func realPlanFor[F fftypes.Float](n int) (*fft1d.RealPlan[F], error) {
	var zero F
	switch any(zero).(type) {
	case float32:
		p, err := cache32.realPlan(n)
		return any(p).(*fft1d.RealPlan[F]), err
	case float64:
		p, err := cache64.realPlan(n)
		return any(p).(*fft1d.RealPlan[F]), err
	default:
		return nil, ErrUnsupportedDatatype
	}
}
