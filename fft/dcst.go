package fft

import (
	"math"

	"github.com/cwbudde/algo-nufft/internal/fft1d"
	"github.com/cwbudde/algo-nufft/internal/parallel"
	"github.com/cwbudde/algo-nufft/nd"
)

// DCT computes the discrete cosine transform of the given type (1..4)
// along each requested axis. With inorm==1 the transform is orthogonal:
// the boundary samples get the sqrt(2) adjustments of the orthonormal
// basis in addition to the 1/sqrt(N) factor.
func DCT[Fl Float](a, out nd.Array[Fl], kind int, axes []int, inorm, nthreads int) (nd.Array[Fl], error) {
	return cosSinTransform(a, out, kind, axes, inorm, nthreads, false)
}

// DST computes the discrete sine transform of the given type (1..4)
// along each requested axis.
func DST[Fl Float](a, out nd.Array[Fl], kind int, axes []int, inorm, nthreads int) (nd.Array[Fl], error) {
	return cosSinTransform(a, out, kind, axes, inorm, nthreads, true)
}

func cosSinTransform[Fl Float](a, out nd.Array[Fl], kind int, axes []int, inorm, nthreads int, sine bool) (nd.Array[Fl], error) {
	if a.Data == nil {
		return nd.Array[Fl]{}, errNilArray
	}
	if kind < 1 || kind > 4 {
		return nd.Array[Fl]{}, errKind
	}
	axes, err := checkAxes(a.NDim(), axes)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	delta := 0
	if kind == 1 {
		delta = -1
		if sine {
			delta = 1
		}
	}
	fct, err := normFactor(inorm, a.Shape, axes, 2, delta)
	if err != nil {
		return nd.Array[Fl]{}, err
	}
	if out, err = prepRealOut(a, out); err != nil {
		return nd.Array[Fl]{}, err
	}
	ortho := inorm == NormOrtho

	for _, ax := range axes {
		if !sine && kind == 1 && out.Shape[ax] < 2 {
			return nd.Array[Fl]{}, errShortLength
		}
		if err := cosSinAxis(out, ax, kind, ortho, sine, nthreads); err != nil {
			return nd.Array[Fl]{}, err
		}
	}
	scaleReal(out, fct)
	return out, nil
}

// lineTransformer is the per-worker state for one axis of a DCT/DST.
type lineTransformer[Fl Float] struct {
	n     int
	kind  int
	ortho bool
	sine  bool

	rp      *fft1d.RealPlan[Fl] // packing plan of the logical length
	cp      *fft1d.Plan[Fl]     // complex plan for the type-4 path
	ext     []Fl
	packed  []Fl
	tmp     []Fl
	tmp2    []Fl
	cbuf    []fft1d.Cmplx[Fl]
	scratch []fft1d.Cmplx[Fl]
}

func newLineTransformer[Fl Float](n, kind int, ortho, sine bool) (*lineTransformer[Fl], error) {
	t := &lineTransformer[Fl]{n: n, kind: kind, ortho: ortho, sine: sine}
	var logical int
	switch kind {
	case 1:
		if sine {
			logical = 2 * (n + 1)
		} else {
			logical = 2 * (n - 1)
		}
	default:
		logical = 2 * n
	}
	var err error
	if kind == 4 {
		if t.cp, err = planFor[Fl](logical); err != nil {
			return nil, err
		}
		t.cbuf = make([]fft1d.Cmplx[Fl], logical)
		t.scratch = make([]fft1d.Cmplx[Fl], t.cp.Bufsize())
	} else {
		if t.rp, err = realPlanFor[Fl](logical); err != nil {
			return nil, err
		}
		t.scratch = make([]fft1d.Cmplx[Fl], t.rp.Bufsize())
	}
	t.ext = make([]Fl, logical)
	t.packed = make([]Fl, logical)
	t.tmp = make([]Fl, n)
	t.tmp2 = make([]Fl, n)
	return t, nil
}

func (t *lineTransformer[Fl]) apply(x, out []Fl) {
	if !t.sine {
		t.dct(x, out)
		return
	}
	n := t.n
	switch t.kind {
	case 1:
		t.dst1(x, out)
	case 2:
		for j := 0; j < n; j++ {
			if j&1 == 0 {
				t.tmp[j] = x[j]
			} else {
				t.tmp[j] = -x[j]
			}
		}
		t.dct(t.tmp, t.tmp2)
		for k := 0; k < n; k++ {
			out[k] = t.tmp2[n-1-k]
		}
	case 3, 4:
		for j := 0; j < n; j++ {
			t.tmp[j] = x[n-1-j]
		}
		t.dct(t.tmp, t.tmp2)
		for k := 0; k < n; k++ {
			if k&1 == 0 {
				out[k] = t.tmp2[k]
			} else {
				out[k] = -t.tmp2[k]
			}
		}
	}
}

func (t *lineTransformer[Fl]) dct(x, out []Fl) {
	n := t.n
	sqrt2 := Fl(math.Sqrt2)
	switch t.kind {
	case 1:
		// even extension around both endpoints
		N := 2 * (n - 1)
		copy(t.ext[:n], x)
		for i := 1; i < n-1; i++ {
			t.ext[n-1+i] = x[n-1-i]
		}
		if t.ortho {
			t.ext[0] *= sqrt2
			t.ext[n-1] *= sqrt2
		}
		t.rp.Forward(t.ext, t.packed, t.scratch, 1)
		out[0] = t.packed[0]
		for k := 1; k < n-1; k++ {
			out[k] = t.packed[2*k-1]
		}
		out[n-1] = t.packed[N-1]
		if t.ortho {
			out[0] /= sqrt2
			out[n-1] /= sqrt2
		}
	case 2:
		N := 2 * n
		for j := 0; j < n; j++ {
			t.ext[j] = x[j]
			t.ext[N-1-j] = x[j]
		}
		t.rp.Forward(t.ext, t.packed, t.scratch, 1)
		out[0] = t.packed[0]
		for k := 1; k < n; k++ {
			th := math.Pi * float64(k) / float64(N)
			re, im := float64(t.packed[2*k-1]), float64(t.packed[2*k])
			out[k] = Fl(re*math.Cos(th) + im*math.Sin(th))
		}
		if t.ortho {
			out[0] /= sqrt2
		}
	case 3:
		N := 2 * n
		x0 := x[0]
		if t.ortho {
			x0 *= sqrt2
		}
		t.packed[0] = x0
		for j := 1; j < n; j++ {
			th := math.Pi * float64(j) / float64(N)
			t.packed[2*j-1] = Fl(float64(x[j]) * math.Cos(th))
			t.packed[2*j] = Fl(float64(x[j]) * math.Sin(th))
		}
		t.packed[N-1] = 0
		t.rp.Backward(t.packed, t.ext, t.scratch, 1)
		copy(out, t.ext[:n])
	case 4:
		N := 2 * n
		for j := 0; j < n; j++ {
			th := math.Pi * float64(j) / float64(N)
			t.cbuf[j] = fft1d.CmplxOf[Fl](float64(x[j])*math.Cos(th), -float64(x[j])*math.Sin(th))
		}
		for j := n; j < N; j++ {
			t.cbuf[j] = fft1d.Cmplx[Fl]{}
		}
		t.cp.Exec(t.cbuf, t.scratch, 1, true)
		for k := 0; k < n; k++ {
			ph := math.Pi * float64(2*k+1) / float64(4*n)
			v := t.cbuf[k]
			out[k] = Fl(2 * (float64(v.R)*math.Cos(ph) + float64(v.I)*math.Sin(ph)))
		}
	}
}

func (t *lineTransformer[Fl]) dst1(x, out []Fl) {
	n := t.n
	N := 2 * (n + 1)
	for i := range t.ext {
		t.ext[i] = 0
	}
	for j := 0; j < n; j++ {
		t.ext[j+1] = x[j]
		t.ext[N-1-j] = -x[j]
	}
	t.rp.Forward(t.ext, t.packed, t.scratch, 1)
	for k := 0; k < n; k++ {
		out[k] = -t.packed[2*(k+1)]
	}
}

func cosSinAxis[Fl Float](arr nd.Array[Fl], ax, kind int, ortho, sine bool, nthreads int) error {
	n := arr.Shape[ax]
	// probe plan construction once so worker errors cannot occur
	if _, err := newLineTransformer[Fl](n, kind, ortho, sine); err != nil {
		return err
	}
	lines := arr.LineCount(ax)
	nw := parallel.Resolve(nthreads)
	return parallel.RunErr(nw, lines, func(_, lo, hi int) error {
		t, err := newLineTransformer[Fl](n, kind, ortho, sine)
		if err != nil {
			return err
		}
		line := make([]Fl, n)
		res := make([]Fl, n)
		for li := lo; li < hi; li++ {
			base := arr.LineOffset(li, ax)
			arr.GatherLine(line, base, ax)
			t.apply(line, res)
			arr.ScatterLine(res, base, ax)
		}
		return nil
	})
}
