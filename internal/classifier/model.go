// Package classifier predicts a category label for free text.
//
// Features are TF-IDF weighted unigrams and bigrams (see Analyze). The model is
// a one-vs-rest linear SVM with class-balanced penalties, so rare categories
// are not drowned out by frequent ones. Training is deterministic for a given
// corpus and seed.
package classifier

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/kailas-cloud/patchscout/internal/domain"
)

// Training defaults.
const (
	DefaultC         = 1.0
	DefaultMaxIter   = 1000
	DefaultTolerance = 1e-4
	DefaultSeed      = 42
)

// Options tunes training. Zero values select the defaults.
type Options struct {
	C         float64
	MaxIter   int
	Tolerance float64
	Seed      uint64
}

func (o Options) withDefaults() Options {
	if o.C <= 0 {
		o.C = DefaultC
	}
	if o.MaxIter <= 0 {
		o.MaxIter = DefaultMaxIter
	}
	if o.Tolerance <= 0 {
		o.Tolerance = DefaultTolerance
	}
	if o.Seed == 0 {
		o.Seed = DefaultSeed
	}
	return o
}

// Model is a trained classifier. It is read-only and safe for concurrent use.
type Model struct {
	vectorizer *Vectorizer
	classes    []string
	machines   []*binarySVM
}

// Train fits the vectorizer and one binary SVM per class on texts/labels.
func Train(ctx context.Context, texts, labels []string, opts Options) (*Model, error) {
	if len(texts) != len(labels) {
		return nil, fmt.Errorf("train: %d texts but %d labels", len(texts), len(labels))
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("train: %w", domain.ErrEmptyCorpus)
	}
	opts = opts.withDefaults()

	counts := make(map[string]int)
	for _, l := range labels {
		counts[l]++
	}
	classes := make([]string, 0, len(counts))
	for l := range counts {
		classes = append(classes, l)
	}
	sort.Strings(classes)

	vec := Fit(texts)
	m := &Model{vectorizer: vec, classes: classes}
	if len(classes) == 1 {
		return m, nil
	}

	xs := make([]SparseVector, len(texts))
	for i, text := range texts {
		xs[i] = vec.Transform(text)
	}

	c := balancedPenalties(labels, counts, opts.C)

	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed))
	y := make([]float64, len(texts))
	m.machines = make([]*binarySVM, len(classes))
	for ci, class := range classes {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("train: %w", err)
		}
		for i, l := range labels {
			if l == class {
				y[i] = 1
			} else {
				y[i] = -1
			}
		}
		m.machines[ci] = trainBinary(xs, y, c, vec.Len(), opts, rng)
	}
	return m, nil
}

// balancedPenalties returns the per-sample penalty C·n/(k·n_class), where k is
// the number of classes. Every class then carries the same total penalty.
func balancedPenalties(labels []string, counts map[string]int, base float64) []float64 {
	n, k := float64(len(labels)), float64(len(counts))
	c := make([]float64, len(labels))
	for i, l := range labels {
		c[i] = base * n / (k * float64(counts[l]))
	}
	return c
}

// Classes returns the known labels, sorted.
func (m *Model) Classes() []string {
	return append([]string(nil), m.classes...)
}

// VocabularySize returns the number of fitted terms.
func (m *Model) VocabularySize() int { return m.vectorizer.Len() }

// Decision returns the decision value of every class for text.
func (m *Model) Decision(text string) map[string]float64 {
	out := make(map[string]float64, len(m.classes))
	if len(m.machines) == 0 {
		for _, c := range m.classes {
			out[c] = 0
		}
		return out
	}
	x := m.vectorizer.Transform(text)
	for i, c := range m.classes {
		out[c] = m.machines[i].decision(x)
	}
	return out
}

// Predict returns the label with the highest decision value. Ties go to the
// label that sorts first. Text with no known terms still gets a label.
func (m *Model) Predict(text string) string {
	if len(m.machines) == 0 {
		return m.classes[0]
	}
	x := m.vectorizer.Transform(text)
	best, bestScore := 0, m.machines[0].decision(x)
	for i := 1; i < len(m.machines); i++ {
		if s := m.machines[i].decision(x); s > bestScore {
			best, bestScore = i, s
		}
	}
	return m.classes[best]
}
