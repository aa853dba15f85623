package evaluation

import (
	"math"
	"sort"
)

// PrecisionAt returns the fraction of relevant entries among the first k.
// Missing entries count as non-relevant.
func PrecisionAt(rels []int, k int) float64 {
	if k <= 0 {
		return 0
	}
	var hits int
	for i := 0; i < k && i < len(rels); i++ {
		hits += rels[i]
	}
	return float64(hits) / float64(k)
}

// DCG returns the discounted cumulative gain of the first k entries.
// Zero-based rank i is discounted by log2(i+2).
func DCG(rels []int, k int) float64 {
	var dcg float64
	for i := 0; i < k && i < len(rels); i++ {
		dcg += float64(rels[i]) / math.Log2(float64(i+2))
	}
	return dcg
}

// NDCG returns DCG normalized by the DCG of the ideal (descending) ordering.
// It is 0 when there is nothing relevant.
func NDCG(rels []int, k int) float64 {
	ideal := append([]int(nil), rels...)
	sort.Sort(sort.Reverse(sort.IntSlice(ideal)))
	idcg := DCG(ideal, k)
	if idcg == 0 {
		return 0
	}
	return DCG(rels, k) / idcg
}

// AveragePrecision averages the precision at each relevant rank.
// It is 0 when there is nothing relevant.
func AveragePrecision(rels []int) float64 {
	var hits int
	var sum float64
	for i, r := range rels {
		if r > 0 {
			hits++
			sum += float64(hits) / float64(i+1)
		}
	}
	if hits == 0 {
		return 0
	}
	return sum / float64(hits)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
