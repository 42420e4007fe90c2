package enrich

import (
	"context"
	"errors"
	"testing"

	"github.com/playlizt-io/playlizt-server/models"
)

// --- Mock implementations ---

type completion struct {
	text string
	err  error
}

type mockGateway struct {
	completions map[string]completion
	calls       []string
}

func (m *mockGateway) Complete(_ context.Context, model string, _ string) (string, error) {
	m.calls = append(m.calls, model)
	c, ok := m.completions[model]
	if !ok {
		return "", errors.New("unknown model")
	}
	return c.text, c.err
}

type mockStore struct {
	content *models.Content
	getErr  error
	saved   *models.Content
	saveErr error
}

func (m *mockStore) GetContent(_ context.Context, _ int64) (*models.Content, error) {
	return m.content, m.getErr
}

func (m *mockStore) SaveEnrichment(_ context.Context, c *models.Content) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saved = c
	return nil
}

func testContent() *models.Content {
	return &models.Content{
		ContentID:   1,
		Title:       "Go Concurrency",
		Description: "Channels and goroutines",
		Tags:        []string{"go"},
	}
}

func TestEnrichFallbackChain(t *testing.T) {
	gw := &mockGateway{
		completions: map[string]completion{
			"model-a": {err: errors.New("quota exceeded")},
			"model-b": {text: "```json\n{\"improvedDescription\": \"X\"}\n```"},
			"model-c": {text: "{\"improvedDescription\": \"never reached\"}"},
		},
	}
	store := &mockStore{content: testContent()}
	en := NewEnricher(store, gw, []string{"model-a", "model-b", "model-c"})

	if err := en.Enrich(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(gw.calls) != 2 || gw.calls[0] != "model-a" || gw.calls[1] != "model-b" {
		t.Errorf("unexpected call sequence %v", gw.calls)
	}
	if store.saved == nil {
		t.Fatal("expected enrichment to be saved")
	}
	if store.saved.AIGeneratedDescription == nil || *store.saved.AIGeneratedDescription != "X" {
		t.Errorf("unexpected description %v", store.saved.AIGeneratedDescription)
	}
	if store.saved.AIPredictedCategory != nil {
		t.Error("absent keys must not be set")
	}
}

func TestEnrichAllModelsFail(t *testing.T) {
	gw := &mockGateway{
		completions: map[string]completion{
			"model-a": {err: errors.New("unavailable")},
			"model-b": {err: errors.New("unavailable")},
		},
	}
	store := &mockStore{content: testContent()}
	en := NewEnricher(store, gw, []string{"model-a", "model-b"})

	err := en.Enrich(context.Background(), 1)
	if !errors.Is(err, ErrEnhancementExhausted) {
		t.Fatalf("expected ErrEnhancementExhausted, got %v", err)
	}
	if len(gw.calls) != 2 {
		t.Errorf("expected one attempt per model, got %v", gw.calls)
	}
	if store.saved != nil {
		t.Error("nothing must be persisted when every model fails")
	}
}

func TestEnrichParseFailureDoesNotPersist(t *testing.T) {
	gw := &mockGateway{
		completions: map[string]completion{
			"model-a": {text: "sorry, I cannot help with that"},
		},
	}
	store := &mockStore{content: testContent()}
	en := NewEnricher(store, gw, []string{"model-a"})

	err := en.Enrich(context.Background(), 1)
	if !errors.Is(err, ErrMetadataParse) {
		t.Fatalf("expected ErrMetadataParse, got %v", err)
	}
	if store.saved != nil {
		t.Error("nothing must be persisted on parse failure")
	}
}

func TestEnrichBadRelevanceScoreDoesNotPersist(t *testing.T) {
	gw := &mockGateway{
		completions: map[string]completion{
			"model-a": {text: "{\"relevanceScore\": \"very relevant\"}"},
		},
	}
	store := &mockStore{content: testContent()}
	en := NewEnricher(store, gw, []string{"model-a"})

	if err := en.Enrich(context.Background(), 1); err == nil {
		t.Fatal("expected error for unparsable relevance score")
	}
	if store.saved != nil {
		t.Error("nothing must be persisted when a field fails to parse")
	}
}

func TestEnrichContentNotFound(t *testing.T) {
	gw := &mockGateway{}
	store := &mockStore{}
	en := NewEnricher(store, gw, []string{"model-a"})

	if err := en.Enrich(context.Background(), 42); err == nil {
		t.Fatal("expected error for missing content")
	}
	if len(gw.calls) != 0 {
		t.Error("gateway must not be called for missing content")
	}
}

func TestNewEnricherUnconfigured(t *testing.T) {
	if en := NewEnricher(&mockStore{}, nil, []string{"model-a"}); en != nil {
		t.Error("expected nil enricher without gateway")
	}
	if en := NewEnricher(&mockStore{}, &mockGateway{}, nil); en != nil {
		t.Error("expected nil enricher without model chain")
	}
}

func TestMergeMetadata(t *testing.T) {
	content := testContent()
	err := mergeMetadata(content, map[string]any{
		"improvedDescription": "better",
		"predictedCategory":   "TECHNOLOGY",
		"suggestedTags":       []any{"go", "concurrency"},
		"relevanceScore":      0.876,
		"contentRating":       "PG",
		"sentiment":           "EDUCATIONAL",
		"somethingElse":       "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.AIGeneratedDescription == nil || *content.AIGeneratedDescription != "better" {
		t.Error("improvedDescription not merged")
	}
	if content.AIPredictedCategory == nil || *content.AIPredictedCategory != "TECHNOLOGY" {
		t.Error("predictedCategory not merged")
	}
	if len(content.Tags) != 2 || content.Tags[0] != "go" || content.Tags[1] != "concurrency" {
		t.Errorf("unexpected tags %v", content.Tags)
	}
	if content.AIRelevanceScore == nil || *content.AIRelevanceScore != 0.88 {
		t.Errorf("expected score rounded to 0.88, got %v", content.AIRelevanceScore)
	}
	if content.AIContentRating == nil || *content.AIContentRating != "PG" {
		t.Error("contentRating not merged")
	}
	if content.AISentiment == nil || *content.AISentiment != "EDUCATIONAL" {
		t.Error("sentiment not merged")
	}
}

func TestMergeMetadataUnknownEnumSkipped(t *testing.T) {
	content := testContent()
	err := mergeMetadata(content, map[string]any{
		"contentRating": "SUPER-R",
		"sentiment":     "MEH",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content.AIContentRating != nil {
		t.Error("unknown rating must be skipped")
	}
	if content.AISentiment != nil {
		t.Error("unknown sentiment must be skipped")
	}
}

func TestParseRelevanceScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want float64
	}{
		{"number", 0.5, 0.5},
		{"string", "0.73", 0.73},
		{"clamped high", 1.7, 1},
		{"clamped low", -0.3, 0},
		{"rounded", 0.12345, 0.12},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseRelevanceScore(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
	if _, err := parseRelevanceScore(true); err == nil {
		t.Error("expected error for bool score")
	}
}
