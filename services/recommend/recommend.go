package recommend

import (
	"context"

	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"

	"github.com/playlizt-io/playlizt-server/models"
)

const (
	// minUniqueWatched is the cold-start gate: a user must have watched at
	// least this many distinct content items before recommendations are
	// computed at all.
	minUniqueWatched = 2
	candidateLimit   = 20
)

// HistorySummary describes a user's viewing history as seen by the
// recommendation pipeline. An empty summary means the user genuinely has no
// history; an unreachable history service is reported as an error instead.
type HistorySummary struct {
	WatchedIDs  map[int64]struct{}
	UniqueCount int
}

type HistoryProvider interface {
	GetHistorySummary(ctx context.Context, userID uuid.UUID) (*HistorySummary, error)
}

type Catalog interface {
	ListCategories(ctx context.Context) ([]string, error)
	SearchCandidates(ctx context.Context, query string, category string, limit int) ([]*models.Content, error)
}

type Recommender struct {
	history HistoryProvider
	catalog Catalog
}

func NewRecommender(history HistoryProvider, catalog Catalog) *Recommender {
	return &Recommender{
		history: history,
		catalog: catalog,
	}
}

// Recommend assembles a best-effort recommendation list for the user. Every
// upstream failure degrades to an empty list, never an error: recommendations
// are an enhancement, not a hard dependency of any caller. Candidate ordering
// is preserved; the only transformation is the watched-id filter.
func (s *Recommender) Recommend(ctx context.Context, userID uuid.UUID) []*models.Content {
	recommendations := []*models.Content{}

	summary, err := s.history.GetHistorySummary(ctx, userID)
	if err != nil {
		log.WithError(err).Warnf("failed to fetch viewing history for user %v", userID)
		return recommendations
	}

	if summary.UniqueCount < minUniqueWatched {
		log.Debugf("user %v below watch threshold (%v < %v)", userID, summary.UniqueCount, minUniqueWatched)
		return recommendations
	}

	categories, err := s.catalog.ListCategories(ctx)
	if err != nil {
		log.WithError(err).Warnf("failed to list categories for user %v", userID)
		return recommendations
	}
	targetCategory := ""
	if len(categories) > 0 {
		targetCategory = categories[0]
	}

	candidates, err := s.catalog.SearchCandidates(ctx, "", targetCategory, candidateLimit)
	if err != nil {
		log.WithError(err).Warnf("failed to search candidates for user %v", userID)
		return recommendations
	}

	for _, c := range candidates {
		if _, watched := summary.WatchedIDs[c.ContentID]; watched {
			continue
		}
		recommendations = append(recommendations, c)
	}
	return recommendations
}
