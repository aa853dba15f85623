package classify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/patchscout/internal/domain"
	"github.com/kailas-cloud/patchscout/internal/domain/record"
)

type mockModel struct {
	label    string
	classes  []string
	lastText string
}

func (m *mockModel) Predict(text string) string {
	m.lastText = text
	return m.label
}

func (m *mockModel) Classes() []string { return m.classes }

func TestPredict(t *testing.T) {
	model := &mockModel{label: "Bug Fix"}
	svc := New(model, zap.NewNop())

	got, err := svc.Predict(context.Background(), "Fixed the bank")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bug Fix" {
		t.Errorf("Predict() = %q, want Bug Fix", got)
	}
	if model.lastText != "Fixed the bank" {
		t.Errorf("model got %q", model.lastText)
	}
}

func TestPredict_InvalidText(t *testing.T) {
	svc := New(&mockModel{label: "Bug Fix"}, zap.NewNop())

	for _, text := range []string{"", "   ", strings.Repeat("x", record.MaxTextSize+1)} {
		_, err := svc.Predict(context.Background(), text)
		if !errors.Is(err, domain.ErrInvalidRequest) {
			t.Errorf("Predict(len=%d): expected ErrInvalidRequest, got %v", len(text), err)
		}
	}
}

func TestClasses(t *testing.T) {
	svc := New(&mockModel{classes: []string{"Bug Fix", "Quest"}}, zap.NewNop())
	if got := svc.Classes(); len(got) != 2 || got[1] != "Quest" {
		t.Errorf("Classes() = %v", got)
	}
}
