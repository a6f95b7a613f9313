package gkernel

import "math"

// glQuad holds Gauss-Legendre nodes and weights on [-1,1].
type glQuad struct {
	x, w []float64
}

// newGLQuad computes the n-point rule by Newton iteration on the Legendre
// polynomial, mirroring each root to keep the node set exactly symmetric.
func newGLQuad(n int) glQuad {
	q := glQuad{x: make([]float64, n), w: make([]float64, n)}
	m := (n + 1) / 2
	for i := 0; i < m; i++ {
		// Tricomi initial guess for the i-th positive root
		x := math.Cos(math.Pi * (float64(i) + 0.75) / (float64(n) + 0.5))
		var dp float64
		for it := 0; it < 100; it++ {
			p0, p1 := 1.0, x
			for k := 2; k <= n; k++ {
				p0, p1 = p1, ((2*float64(k)-1)*x*p1-(float64(k)-1)*p0)/float64(k)
			}
			dp = float64(n) * (x*p1 - p0) / (x*x - 1)
			dx := p1 / dp
			x -= dx
			if math.Abs(dx) < 1e-15*math.Abs(x)+1e-300 {
				break
			}
		}
		w := 2 / ((1 - x*x) * dp * dp)
		q.x[i] = -x
		q.x[n-1-i] = x
		q.w[i] = w
		q.w[n-1-i] = w
	}
	return q
}
