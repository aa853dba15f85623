// Package corpus holds the in-memory record set that every index is built from.
package corpus

import (
	"sort"
	"strings"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/kailas-cloud/patchscout/internal/domain/record"
)

// Row is a raw (text, label) pair as read from a corpus file, before validation.
type Row struct {
	Text  string
	Label string
}

// Corpus is the ordered, immutable set of records. Document identity is the
// position in the corpus.
type Corpus struct {
	records []record.Record
	labels  []string
	byLabel map[string]*roaring.Bitmap
	dropped int
}

// New builds a corpus from raw rows. Rows with an empty label or empty text are
// dropped; the number of dropped rows is reported by Dropped.
func New(rows []Row) *Corpus {
	c := &Corpus{
		records: make([]record.Record, 0, len(rows)),
		byLabel: make(map[string]*roaring.Bitmap),
	}
	for _, row := range rows {
		r, err := record.New(row.Text, row.Label)
		if err != nil {
			c.dropped++
			continue
		}
		doc := uint32(len(c.records))
		c.records = append(c.records, r)

		bm, ok := c.byLabel[r.Label()]
		if !ok {
			bm = roaring.New()
			c.byLabel[r.Label()] = bm
			c.labels = append(c.labels, r.Label())
		}
		bm.Add(doc)
	}
	sort.Strings(c.labels)
	return c
}

// Len returns the number of records.
func (c *Corpus) Len() int { return len(c.records) }

// Dropped returns how many input rows were discarded at load time.
func (c *Corpus) Dropped() int { return c.dropped }

// At returns the record at document index i.
func (c *Corpus) At(i int) record.Record { return c.records[i] }

// Texts returns the record texts in document order.
func (c *Corpus) Texts() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Text()
	}
	return out
}

// Labels returns the record labels in document order.
func (c *Corpus) Labels() []string {
	out := make([]string, len(c.records))
	for i, r := range c.records {
		out[i] = r.Label()
	}
	return out
}

// Categories returns the distinct labels, sorted.
func (c *Corpus) Categories() []string {
	return append([]string(nil), c.labels...)
}

// CategoryCounts returns the number of records per label.
func (c *Corpus) CategoryCounts() map[string]int {
	out := make(map[string]int, len(c.byLabel))
	for label, bm := range c.byLabel {
		out[label] = int(bm.GetCardinality())
	}
	return out
}

// AllowSet returns the documents whose label contains substr, case-insensitively.
// An empty substr matches every document.
func (c *Corpus) AllowSet(substr string) *roaring.Bitmap {
	needle := strings.ToLower(substr)
	allow := roaring.New()
	for label, bm := range c.byLabel {
		if strings.Contains(strings.ToLower(label), needle) {
			allow.Or(bm)
		}
	}
	return allow
}
