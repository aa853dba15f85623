// Package hashing implements a local, deterministic text embedder based on
// feature hashing. It needs no model files or network access.
//
// Each text is split into lowercase alphanumeric words. Every word contributes a
// whole-word feature and its boundary-marked character trigrams ("<ne", "ner",
// "erf", "rf>" for "nerf"), so inflected forms such as "nerf" and "nerfed" land
// close together. Features are hashed with FNV-1a into a fixed number of signed
// buckets and the result is L2-normalized.
package hashing

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"

	"github.com/hupe1980/vecgo/distance"

	"github.com/kailas-cloud/patchscout/internal/domain"
)

// DefaultDimensions matches the output width of common small sentence encoders.
const DefaultDimensions = 384

const (
	wordWeight    = 1.0
	trigramWeight = 0.5
)

// Embedder is a feature-hashing embedder. It is stateless and safe for concurrent use.
type Embedder struct {
	dims int
}

// New creates a hashing embedder with the given output dimension.
// dims <= 0 selects DefaultDimensions.
func New(dims int) *Embedder {
	if dims <= 0 {
		dims = DefaultDimensions
	}
	return &Embedder{dims: dims}
}

// Dimensions returns the output vector width.
func (e *Embedder) Dimensions() int { return e.dims }

// Embed implements domain.Embedder. TotalTokens reports the number of words.
func (e *Embedder) Embed(_ context.Context, text string) (domain.EmbeddingResult, error) {
	vec, words := e.vectorize(text)
	return domain.EmbeddingResult{Embedding: vec, PromptTokens: words, TotalTokens: words}, nil
}

// BatchEmbed implements domain.BatchEmbedder.
func (e *Embedder) BatchEmbed(ctx context.Context, texts []string) (domain.BatchEmbeddingResult, error) {
	out := domain.BatchEmbeddingResult{Embeddings: make([][]float32, len(texts))}
	for i, text := range texts {
		if err := ctx.Err(); err != nil {
			return domain.BatchEmbeddingResult{}, err
		}
		vec, words := e.vectorize(text)
		out.Embeddings[i] = vec
		out.PromptTokens += words
		out.TotalTokens += words
	}
	return out, nil
}

func (e *Embedder) vectorize(text string) ([]float32, int) {
	vec := make([]float32, e.dims)
	words := words(text)
	for _, w := range words {
		e.add(vec, "w:"+w, wordWeight)
		for _, g := range trigrams(w) {
			e.add(vec, "g:"+g, trigramWeight)
		}
	}
	// Zero vectors (no words) stay zero.
	distance.NormalizeL2InPlace(vec)
	return vec, len(words)
}

func (e *Embedder) add(vec []float32, feature string, weight float32) {
	h := fnv.New32a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum32()

	bucket := int(sum % uint32(e.dims))
	if sum&(1<<31) != 0 {
		weight = -weight
	}
	vec[bucket] += weight
}

func words(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func trigrams(word string) []string {
	runes := []rune("<" + word + ">")
	if len(runes) < 3 {
		return nil
	}
	out := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		out = append(out, string(runes[i:i+3]))
	}
	return out
}
