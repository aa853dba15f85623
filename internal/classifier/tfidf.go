package classifier

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// SparseVector is a row of the document-term matrix. Indices are ascending.
type SparseVector struct {
	Indices []int
	Values  []float64
}

// Dot returns the dot product of v with a dense weight vector.
func (v SparseVector) Dot(w []float64) float64 {
	var sum float64
	for k, i := range v.Indices {
		sum += v.Values[k] * w[i]
	}
	return sum
}

// SquaredNorm returns the squared L2 norm of v.
func (v SparseVector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// Vectorizer is a fitted TF-IDF transform over unigrams and bigrams.
// The vocabulary is fixed at Fit time; unseen terms are ignored by Transform.
type Vectorizer struct {
	vocabulary map[string]int
	idf        []float64
}

// Analyze turns text into unigram and bigram terms: runs of two or more word
// characters, lowercased, stop words removed, bigrams over the remaining tokens.
func Analyze(text string) []string {
	var tokens []string
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_'
	}) {
		if len([]rune(tok)) < 2 {
			continue
		}
		if _, stop := englishStopWords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	terms := make([]string, 0, 2*len(tokens))
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}

// Fit learns the vocabulary and smoothed IDF weights from texts.
func Fit(texts []string) *Vectorizer {
	df := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, term := range Analyze(text) {
			if _, ok := seen[term]; ok {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	v := &Vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
	}
	n := float64(len(texts))
	for i, term := range terms {
		v.vocabulary[term] = i
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return v
}

// Len returns the vocabulary size.
func (v *Vectorizer) Len() int { return len(v.idf) }

// Transform maps text to an L2-normalized TF-IDF vector.
func (v *Vectorizer) Transform(text string) SparseVector {
	counts := make(map[int]float64)
	for _, term := range Analyze(text) {
		if i, ok := v.vocabulary[term]; ok {
			counts[i]++
		}
	}

	out := SparseVector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for i := range counts {
		out.Indices = append(out.Indices, i)
	}
	sort.Ints(out.Indices)

	var norm float64
	for _, i := range out.Indices {
		w := counts[i] * v.idf[i]
		out.Values = append(out.Values, w)
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for k := range out.Values {
			out.Values[k] /= norm
		}
	}
	return out
}
