package patchscout

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type mockEmbedder struct {
	fn func(ctx context.Context, text string) (EmbeddingResult, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, text string) (EmbeddingResult, error) {
	return m.fn(ctx, text)
}

func scenarioRecords() []Record {
	return []Record{
		{Text: "Fixed a bug in the Scythe of Vitur special attack", Label: "Bug Fix"},
		{Text: "Forestry woodcutting events added", Label: "XP/Progression"},
		{Text: "Blowpipe dart damage nerfed", Label: "Combat Balance"},
		{Text: "", Label: "Bug Fix"},
	}
}

func newClient(t *testing.T, opts ...Option) *Client {
	t.Helper()
	c, err := New(context.Background(), scenarioRecords(), opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestNew_Scenario(t *testing.T) {
	c := newClient(t)

	if c.Len() != 3 || c.Dropped() != 1 {
		t.Fatalf("Len/Dropped = %d/%d, want 3/1", c.Len(), c.Dropped())
	}
	if got := c.Categories(); len(got) != 3 || got[0] != "Bug Fix" {
		t.Errorf("Categories() = %v", got)
	}

	hits, err := c.Search(context.Background(), "Scythe of Vitur", SearchOptions{Mode: ModeLexical, TopK: 1})
	if err != nil {
		t.Fatalf("lexical: %v", err)
	}
	if len(hits) != 1 || hits[0].Doc != 0 {
		t.Errorf("lexical hits = %+v, want doc 0", hits)
	}

	hits, err = c.Search(context.Background(), "blowpipe nerf", SearchOptions{TopK: 1})
	if err != nil {
		t.Fatalf("semantic: %v", err)
	}
	if len(hits) != 1 || hits[0].Doc != 2 {
		t.Errorf("semantic hits = %+v, want doc 2", hits)
	}
}

func TestSearch_LabelFilter(t *testing.T) {
	c := newClient(t)

	hits, err := c.Search(context.Background(), "damage", SearchOptions{Label: "combat"})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(hits) != 1 || hits[0].Label != "Combat Balance" {
		t.Errorf("hits = %+v", hits)
	}
}

func TestSearch_InvalidTopK(t *testing.T) {
	c := newClient(t)
	_, err := c.Search(context.Background(), "x", SearchOptions{TopK: -1})
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}

func TestPredict(t *testing.T) {
	c := newClient(t)

	label, err := c.Predict(context.Background(), "Blowpipe dart damage nerfed")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if label != "Combat Balance" {
		t.Errorf("Predict() = %q, want Combat Balance", label)
	}

	if _, err := c.Predict(context.Background(), ""); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("blank text: expected ErrInvalidRequest, got %v", err)
	}
}

func TestEvaluate(t *testing.T) {
	c := newClient(t)

	scores, err := c.Evaluate(context.Background(), []Mode{ModeLexical, ModeSemantic}, []BenchmarkQuery{
		{Query: "scythe", Keywords: []string{"scythe"}},
	})
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("expected 2 mode scores, got %d", len(scores))
	}
	if scores[0].Mode != ModeLexical {
		t.Errorf("first mode = %q", scores[0].Mode)
	}
	// The only relevant record is ranked first lexically.
	if scores[0].MAP != 1 || scores[0].MeanNDCG != 1 {
		t.Errorf("lexical MAP/NDCG = %v/%v, want 1/1", scores[0].MAP, scores[0].MeanNDCG)
	}
}

func TestHealth(t *testing.T) {
	h := newClient(t).Health(context.Background())
	if h.Status != "ok" {
		t.Errorf("status = %q, want ok", h.Status)
	}
	if h.Checks["corpus"] != "ok" {
		t.Errorf("checks = %v", h.Checks)
	}
}

func TestNew_EmptyCorpus(t *testing.T) {
	_, err := New(context.Background(), nil)
	if !errors.Is(err, ErrEmptyCorpus) {
		t.Fatalf("expected ErrEmptyCorpus, got %v", err)
	}
}

func TestOpen_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.csv")
	data := "label,raw_text,source\nBug Fix,Fixed the bank crash,web\nCombat Balance,Blowpipe nerfed,web\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	c, err := Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrCorpusNotFound) {
		t.Fatalf("expected ErrCorpusNotFound, got %v", err)
	}
}

func TestWithEmbedder_Used(t *testing.T) {
	calls := 0
	mock := &mockEmbedder{
		fn: func(_ context.Context, text string) (EmbeddingResult, error) {
			calls++
			return EmbeddingResult{Embedding: []float32{float32(len(text)), 1}}, nil
		},
	}

	c := newClient(t, WithEmbedder(mock))
	if calls != 3 {
		t.Errorf("embedder calls while indexing = %d, want 3", calls)
	}
	if _, err := c.Search(context.Background(), "query", SearchOptions{Mode: ModeSemantic}); err != nil {
		t.Fatalf("Search: %v", err)
	}
	if calls != 4 {
		t.Errorf("embedder calls after search = %d, want 4", calls)
	}
}

func TestWithEmbedder_Failure(t *testing.T) {
	mock := &mockEmbedder{
		fn: func(_ context.Context, _ string) (EmbeddingResult, error) {
			return EmbeddingResult{}, ErrEmbeddingProviderError
		},
	}
	_, err := New(context.Background(), scenarioRecords(), WithEmbedder(mock))
	if !errors.Is(err, ErrEmbeddingProviderError) {
		t.Fatalf("expected ErrEmbeddingProviderError, got %v", err)
	}
}

func TestEmbedderAdapter(t *testing.T) {
	called := false
	mock := &mockEmbedder{
		fn: func(_ context.Context, text string) (EmbeddingResult, error) {
			called = true
			return EmbeddingResult{
				Embedding:    []float32{1, 2, 3},
				PromptTokens: 5,
				TotalTokens:  10,
			}, nil
		},
	}

	adapter := &embedderAdapter{inner: mock}
	result, err := adapter.Embed(context.Background(), "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Error("inner embedder was not called")
	}
	if len(result.Embedding) != 3 {
		t.Errorf("embedding len = %d, want 3", len(result.Embedding))
	}
	if result.TotalTokens != 10 {
		t.Errorf("total tokens = %d, want 10", result.TotalTokens)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := newConfig([]Option{
		WithHashingDimensions(128),
		WithEmbedBatchSize(16),
		WithOversampleFactor(5),
		WithFormat("xlsx"),
		WithClassifierSeed(7),
	})
	if cfg.dimensions != 128 || cfg.batchSize != 16 || cfg.oversample != 5 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.format != "xlsx" || cfg.seed != 7 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	logger := slog.Default()
	reg := prometheus.NewRegistry()
	cfg = newConfig([]Option{WithLogger(logger), WithPrometheus(reg)})
	if cfg.logger != logger {
		t.Error("expected logger to be set")
	}
	if cfg.metricsReg != reg {
		t.Error("expected metricsReg to be set")
	}
}

func TestObserver_NilSafe(t *testing.T) {
	var obs *observer
	obs.observe("test", time.Now(), nil)
	obs.observe("test", time.Now(), errors.New("err"))
}

func TestObserver_WithPrometheus(t *testing.T) {
	reg := prometheus.NewRegistry()
	obs, err := newObserver(nil, reg)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}

	obs.observe("search", time.Now().Add(-10*time.Millisecond), nil)
	obs.observe("search", time.Now(), errors.New("fail"))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}

	found := false
	for _, f := range families {
		if f.GetName() == "patchscout_sdk_operations_total" {
			found = true
			if len(f.GetMetric()) != 2 {
				t.Errorf("expected 2 metric samples, got %d", len(f.GetMetric()))
			}
		}
	}
	if !found {
		t.Error("patchscout_sdk_operations_total not found")
	}
}

func TestObserver_SharedRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	newClient(t, WithPrometheus(reg))
	newClient(t, WithPrometheus(reg))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, f := range families {
		if f.GetName() == "patchscout_sdk_operations_total" {
			if got := f.GetMetric()[0].GetCounter().GetValue(); got != 2 {
				t.Errorf("build operations = %v, want 2", got)
			}
			return
		}
	}
	t.Error("patchscout_sdk_operations_total not found")
}

func TestObserver_WithLogger(t *testing.T) {
	obs, err := newObserver(slog.Default(), nil)
	if err != nil {
		t.Fatalf("newObserver: %v", err)
	}
	obs.observe("predict", time.Now(), nil, "label", "Bug Fix")
	obs.observe("predict", time.Now(), errors.New("test error"))
}
