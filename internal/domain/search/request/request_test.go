package request

import (
	"errors"
	"strings"
	"testing"

	"github.com/kailas-cloud/patchscout/internal/domain"
	"github.com/kailas-cloud/patchscout/internal/domain/search/mode"
)

func TestNew_Valid(t *testing.T) {
	r, err := New("scythe", mode.Lexical, "Bug Fix", 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Query() != "scythe" {
		t.Errorf("Query() = %q", r.Query())
	}
	if r.Mode() != mode.Lexical {
		t.Errorf("Mode() = %q", r.Mode())
	}
	if r.FilterLabel() != "Bug Fix" {
		t.Errorf("FilterLabel() = %q", r.FilterLabel())
	}
	if r.TopK() != 7 {
		t.Errorf("TopK() = %d", r.TopK())
	}
}

func TestNew_FilterKeptVerbatim(t *testing.T) {
	for _, filter := range []string{"  ", " Bug Fix "} {
		r, err := New("scythe", mode.Lexical, filter, 5)
		if err != nil {
			t.Fatalf("New(%q): %v", filter, err)
		}
		if r.FilterLabel() != filter {
			t.Errorf("FilterLabel() = %q, want %q", r.FilterLabel(), filter)
		}
	}
}

func TestNew_Defaults(t *testing.T) {
	r, err := New("", "", "", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Mode() != mode.Semantic {
		t.Errorf("Mode() = %q, want semantic", r.Mode())
	}
	if r.TopK() != DefaultTopK {
		t.Errorf("TopK() = %d, want %d", r.TopK(), DefaultTopK)
	}
	if r.FilterLabel() != "" {
		t.Errorf("FilterLabel() = %q, want empty", r.FilterLabel())
	}
}

func TestNew_ClampTopK(t *testing.T) {
	r, err := New("q", mode.Semantic, "", MaxTopK+100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.TopK() != MaxTopK {
		t.Errorf("TopK() = %d, want %d", r.TopK(), MaxTopK)
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name  string
		query string
		topK  int
	}{
		{"negative top_k", "q", -1},
		{"query too long", strings.Repeat("x", MaxQueryLength+1), 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.query, mode.Lexical, "", tt.topK)
			if !errors.Is(err, domain.ErrInvalidRequest) {
				t.Fatalf("expected ErrInvalidRequest, got %v", err)
			}
		})
	}
}
