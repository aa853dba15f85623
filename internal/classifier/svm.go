package classifier

import (
	"math"
	"math/rand/v2"
)

// binarySVM is a linear decision function w·x + b.
type binarySVM struct {
	w []float64
	b float64
}

func (m *binarySVM) decision(x SparseVector) float64 {
	return x.Dot(m.w) + m.b
}

// trainBinary fits an L2-regularized squared-hinge linear SVM by dual
// coordinate descent. y[i] is +1 or -1, c[i] is the per-sample penalty. The bias
// is learned as the weight of a constant feature of value 1.
func trainBinary(xs []SparseVector, y []float64, c []float64, dim int, opts Options, rng *rand.Rand) *binarySVM {
	n := len(xs)
	m := &binarySVM{w: make([]float64, dim)}
	alpha := make([]float64, n)
	diag := make([]float64, n)
	qd := make([]float64, n)
	for i := range xs {
		diag[i] = 0.5 / c[i]
		qd[i] = diag[i] + xs[i].SquaredNorm() + 1
	}

	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}

	for iter := 0; iter < opts.MaxIter; iter++ {
		rng.Shuffle(n, func(i, j int) { perm[i], perm[j] = perm[j], perm[i] })

		pgMax, pgMin := math.Inf(-1), math.Inf(1)
		for _, i := range perm {
			g := y[i]*m.decision(xs[i]) - 1 + alpha[i]*diag[i]

			pg := g
			if alpha[i] == 0 && g > 0 {
				pg = 0
			}
			pgMax = math.Max(pgMax, pg)
			pgMin = math.Min(pgMin, pg)

			if math.Abs(pg) <= 1e-12 {
				continue
			}
			old := alpha[i]
			alpha[i] = math.Max(alpha[i]-g/qd[i], 0)
			d := (alpha[i] - old) * y[i]
			for k, idx := range xs[i].Indices {
				m.w[idx] += d * xs[i].Values[k]
			}
			m.b += d
		}

		if pgMax-pgMin <= opts.Tolerance {
			break
		}
	}
	return m
}
