package search

import (
	"context"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kailas-cloud/patchscout/internal/domain/record"
	"github.com/kailas-cloud/patchscout/internal/index/lexical"
	"github.com/kailas-cloud/patchscout/internal/index/vector"
)

// Corpus resolves document indices to records and label filters to allow-sets.
type Corpus interface {
	At(i int) record.Record
	AllowSet(substr string) *roaring.Bitmap
}

// LexicalIndex ranks documents by BM25 score.
type LexicalIndex interface {
	Rank(query string, n int) []lexical.Hit
}

// VectorIndex ranks documents by embedding distance to a query text.
type VectorIndex interface {
	SearchText(ctx context.Context, text string, k int) ([]vector.Neighbor, error)
}
