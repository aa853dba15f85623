package lexical

import (
	"math"
	"sort"
	"strings"
)

const (
	k1      = 1.5
	b       = 0.75
	epsilon = 0.25
)

type posting struct {
	doc   int
	count int
}

// Hit is a scored document.
type Hit struct {
	Doc   int
	Score float64
}

// Index is an immutable BM25 index.
type Index struct {
	inverted   map[string][]posting
	idf        map[string]float64
	docLengths []int
	avgDL      float64
}

// Tokenize lowercases text and splits it on whitespace.
func Tokenize(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

// Build indexes texts; document i is texts[i].
func Build(texts []string) *Index {
	idx := &Index{
		inverted:   make(map[string][]posting),
		idf:        make(map[string]float64),
		docLengths: make([]int, len(texts)),
	}

	var totalLength int
	for doc, text := range texts {
		tokens := Tokenize(text)
		idx.docLengths[doc] = len(tokens)
		totalLength += len(tokens)

		tf := make(map[string]int, len(tokens))
		for _, t := range tokens {
			tf[t]++
		}
		for t, count := range tf {
			idx.inverted[t] = append(idx.inverted[t], posting{doc: doc, count: count})
		}
	}

	if len(texts) > 0 {
		idx.avgDL = float64(totalLength) / float64(len(texts))
	}
	idx.computeIDF(len(texts))
	return idx
}

// computeIDF assigns Robertson-Sparck Jones IDF values. Terms whose IDF falls
// below epsilon times the mean positive IDF are raised to that floor, so a
// matching term always adds a positive amount. A corpus without any positive
// IDF uses epsilon itself.
func (idx *Index) computeIDF(n int) {
	if len(idx.inverted) == 0 {
		return
	}

	var sum float64
	var positive int
	N := float64(n)
	for t, postings := range idx.inverted {
		df := float64(len(postings))
		v := math.Log((N - df + 0.5) / (df + 0.5))
		idx.idf[t] = v
		if v > 0 {
			sum += v
			positive++
		}
	}

	floor := epsilon
	if positive > 0 {
		floor = epsilon * sum / float64(positive)
	}
	for t, v := range idx.idf {
		if v < floor {
			idx.idf[t] = floor
		}
	}
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int { return len(idx.docLengths) }

// Scores returns one BM25 score per document for query.
func (idx *Index) Scores(query string) []float64 {
	scores := make([]float64, len(idx.docLengths))
	if len(scores) == 0 || idx.avgDL == 0 {
		return scores
	}

	for _, t := range Tokenize(query) {
		postings, ok := idx.inverted[t]
		if !ok {
			continue
		}
		idf := idx.idf[t]
		for _, p := range postings {
			tf := float64(p.count)
			docLen := float64(idx.docLengths[p.doc])

			num := tf * (k1 + 1)
			denom := tf + k1*(1-b+b*(docLen/idx.avgDL))
			scores[p.doc] += idf * (num / denom)
		}
	}
	return scores
}

// Rank returns the n best documents for query, score descending, ties by
// document index ascending. Zero-score documents are included, so the result
// length is min(n, Len()).
func (idx *Index) Rank(query string, n int) []Hit {
	scores := idx.Scores(query)
	hits := make([]Hit, len(scores))
	for doc, s := range scores {
		hits[doc] = Hit{Doc: doc, Score: s}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})

	if n >= 0 && len(hits) > n {
		hits = hits[:n]
	}
	return hits
}
