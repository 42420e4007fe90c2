package recommend

import (
	"context"
	"errors"
	"testing"

	uuid "github.com/satori/go.uuid"

	"github.com/playlizt-io/playlizt-server/models"
)

// --- Mock implementations ---

type mockHistory struct {
	summary *HistorySummary
	err     error
}

func (m *mockHistory) GetHistorySummary(_ context.Context, _ uuid.UUID) (*HistorySummary, error) {
	return m.summary, m.err
}

type mockCatalog struct {
	categories    []string
	categoriesErr error
	candidates    []*models.Content
	searchErr     error

	searchCategory string
	searchLimit    int
}

func (m *mockCatalog) ListCategories(_ context.Context) ([]string, error) {
	return m.categories, m.categoriesErr
}

func (m *mockCatalog) SearchCandidates(_ context.Context, _ string, category string, limit int) ([]*models.Content, error) {
	m.searchCategory = category
	m.searchLimit = limit
	return m.candidates, m.searchErr
}

func summaryOf(ids ...int64) *HistorySummary {
	watched := map[int64]struct{}{}
	for _, id := range ids {
		watched[id] = struct{}{}
	}
	return &HistorySummary{WatchedIDs: watched, UniqueCount: len(watched)}
}

func contentList(ids ...int64) []*models.Content {
	var out []*models.Content
	for _, id := range ids {
		out = append(out, &models.Content{ContentID: id})
	}
	return out
}

func TestRecommendFiltersWatched(t *testing.T) {
	history := &mockHistory{summary: summaryOf(98, 99)}
	catalog := &mockCatalog{
		categories: []string{"TECHNOLOGY", "MUSIC"},
		candidates: contentList(10, 98),
	}
	rec := NewRecommender(history, catalog)

	got := rec.Recommend(context.Background(), uuid.NewV4())
	if len(got) != 1 || got[0].ContentID != 10 {
		t.Fatalf("unexpected recommendations %v", got)
	}
	if catalog.searchCategory != "TECHNOLOGY" {
		t.Errorf("expected first category, got %q", catalog.searchCategory)
	}
	if catalog.searchLimit != candidateLimit {
		t.Errorf("expected limit %v, got %v", candidateLimit, catalog.searchLimit)
	}
}

func TestRecommendPreservesOrder(t *testing.T) {
	history := &mockHistory{summary: summaryOf(1, 2)}
	catalog := &mockCatalog{
		categories: []string{"MUSIC"},
		candidates: contentList(7, 3, 5),
	}
	rec := NewRecommender(history, catalog)

	got := rec.Recommend(context.Background(), uuid.NewV4())
	if len(got) != 3 {
		t.Fatalf("expected 3 recommendations, got %v", len(got))
	}
	for i, want := range []int64{7, 3, 5} {
		if got[i].ContentID != want {
			t.Errorf("position %v: got %v, want %v", i, got[i].ContentID, want)
		}
	}
}

func TestRecommendWatchThreshold(t *testing.T) {
	tests := []struct {
		name    string
		watched []int64
		want    int
	}{
		{"no history", nil, 0},
		{"one watched", []int64{1}, 0},
		{"at threshold", []int64{1, 2}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			history := &mockHistory{summary: summaryOf(tt.watched...)}
			catalog := &mockCatalog{
				categories: []string{"MUSIC"},
				candidates: contentList(10, 11, 12),
			}
			rec := NewRecommender(history, catalog)

			got := rec.Recommend(context.Background(), uuid.NewV4())
			if got == nil {
				t.Fatal("expected a list, got nil")
			}
			if len(got) != tt.want {
				t.Errorf("got %v recommendations, want %v", len(got), tt.want)
			}
		})
	}
}

func TestRecommendFailSoft(t *testing.T) {
	tests := []struct {
		name    string
		history HistoryProvider
		catalog Catalog
	}{
		{
			"history error",
			&mockHistory{err: errors.New("db down")},
			&mockCatalog{categories: []string{"MUSIC"}, candidates: contentList(1)},
		},
		{
			"categories error",
			&mockHistory{summary: summaryOf(1, 2)},
			&mockCatalog{categoriesErr: errors.New("db down"), candidates: contentList(1)},
		},
		{
			"search error",
			&mockHistory{summary: summaryOf(1, 2)},
			&mockCatalog{categories: []string{"MUSIC"}, searchErr: errors.New("db down")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := NewRecommender(tt.history, tt.catalog)
			got := rec.Recommend(context.Background(), uuid.NewV4())
			if got == nil {
				t.Fatal("expected empty list, got nil")
			}
			if len(got) != 0 {
				t.Errorf("expected empty list, got %v items", len(got))
			}
		})
	}
}

func TestRecommendNoCategories(t *testing.T) {
	history := &mockHistory{summary: summaryOf(1, 2)}
	catalog := &mockCatalog{candidates: contentList(4)}
	rec := NewRecommender(history, catalog)

	got := rec.Recommend(context.Background(), uuid.NewV4())
	if len(got) != 1 {
		t.Fatalf("expected 1 recommendation, got %v", len(got))
	}
	if catalog.searchCategory != "" {
		t.Errorf("expected empty category filter, got %q", catalog.searchCategory)
	}
}
