// Package vector provides an exact (flat) nearest-neighbor index over document
// embeddings.
package vector

import (
	"context"
	"fmt"
	"sort"

	"github.com/hupe1980/vecgo/distance"

	"github.com/kailas-cloud/patchscout/internal/domain"
)

// DefaultBatchSize is the number of documents embedded per embedder call during Build.
const DefaultBatchSize = 64

// Neighbor is a document and its squared L2 distance to the query.
type Neighbor struct {
	Doc      int
	Distance float32
}

// Options configures Build.
type Options struct {
	BatchSize int
}

// Index holds one embedding per document together with the embedder that
// produced them. Queries are embedded by the same embedder.
type Index struct {
	embedder domain.Embedder
	vectors  [][]float32
	dim      int
}

// Build embeds texts with embedder; document i is texts[i].
func Build(ctx context.Context, embedder domain.Embedder, texts []string, opts Options) (*Index, error) {
	batch := opts.BatchSize
	if batch <= 0 {
		batch = DefaultBatchSize
	}

	vectors, err := domain.EmbedAll(ctx, embedder, texts, batch)
	if err != nil {
		return nil, fmt.Errorf("embed corpus: %w", err)
	}

	idx := &Index{embedder: embedder, vectors: vectors}
	for i, v := range vectors {
		if i == 0 {
			idx.dim = len(v)
			continue
		}
		if len(v) != idx.dim {
			return nil, fmt.Errorf("document %d has %d dimensions, want %d: %w",
				i, len(v), idx.dim, domain.ErrVectorDimMismatch)
		}
	}
	return idx, nil
}

// Len returns the number of indexed documents.
func (idx *Index) Len() int { return len(idx.vectors) }

// Dimensions returns the embedding dimension (0 for an empty index).
func (idx *Index) Dimensions() int { return idx.dim }

// Embed vectorizes a query with the index's embedder.
func (idx *Index) Embed(ctx context.Context, text string) ([]float32, error) {
	res, err := idx.embedder.Embed(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}
	return res.Embedding, nil
}

// Search returns the k nearest documents to query, distance ascending, ties by
// document index ascending. k >= Len returns every document.
func (idx *Index) Search(query []float32, k int) ([]Neighbor, error) {
	if len(idx.vectors) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != idx.dim {
		return nil, fmt.Errorf("query has %d dimensions, want %d: %w",
			len(query), idx.dim, domain.ErrVectorDimMismatch)
	}

	neighbors := make([]Neighbor, len(idx.vectors))
	for doc, v := range idx.vectors {
		neighbors[doc] = Neighbor{Doc: doc, Distance: distance.SquaredL2(query, v)}
	}

	sort.SliceStable(neighbors, func(i, j int) bool {
		return neighbors[i].Distance < neighbors[j].Distance
	})

	if len(neighbors) > k {
		neighbors = neighbors[:k]
	}
	return neighbors, nil
}

// SearchText embeds text and returns its k nearest documents.
func (idx *Index) SearchText(ctx context.Context, text string, k int) ([]Neighbor, error) {
	if len(idx.vectors) == 0 || k <= 0 {
		return nil, nil
	}
	query, err := idx.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	return idx.Search(query, k)
}
