package record

import (
	"fmt"
	"strings"
)

// MaxTextSize is the maximum record text size in bytes.
const MaxTextSize = 16384

// Record is a single categorized patch-note line (immutable value object).
type Record struct {
	text  string
	label string
}

// New validates and creates a Record.
// Text: non-empty after trimming, max 16KB. Label: non-empty after trimming.
func New(text, label string) (Record, error) {
	if strings.TrimSpace(text) == "" {
		return Record{}, fmt.Errorf("text is required")
	}
	if len(text) > MaxTextSize {
		return Record{}, fmt.Errorf("text too large (max %d bytes)", MaxTextSize)
	}
	if strings.TrimSpace(label) == "" {
		return Record{}, fmt.Errorf("label is required")
	}
	return Record{text: text, label: label}, nil
}

// Text returns the record text.
func (r Record) Text() string { return r.text }

// Label returns the category label.
func (r Record) Label() string { return r.label }
