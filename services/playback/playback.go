package playback

import (
	"context"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"

	"github.com/playlizt-io/playlizt-server/models"
	"github.com/playlizt-io/playlizt-server/services/recommend"
)

// Playback tracks viewing progress and serves viewing-history reads. It is
// the only writer of viewing_history rows.
type Playback struct {
	pg *cs.PG
}

func New(pg *cs.PG) *Playback {
	return &Playback{
		pg: pg,
	}
}

// StartOrUpdate records playback progress for a user/content pair. Watch
// time only grows by forward position movement, so seeking backwards never
// inflates it.
func (s *Playback) StartOrUpdate(ctx context.Context, userID uuid.UUID, contentID int64, positionSeconds *int, completed *bool) (*models.ViewingHistory, bool, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, false, errors.New("db is nil")
	}
	vh, err := models.GetViewingHistoryByUserAndContent(ctx, db, userID, contentID)
	if err != nil {
		return nil, false, err
	}
	created := false
	if vh == nil {
		created = true
		vh = &models.ViewingHistory{
			UserID:    userID,
			ContentID: contentID,
		}
	}
	if positionSeconds != nil {
		positionDiff := *positionSeconds - vh.LastPositionSeconds
		if positionDiff > 0 {
			vh.WatchTimeSeconds += positionDiff
		}
		vh.LastPositionSeconds = *positionSeconds
	}
	if completed != nil && *completed {
		vh.Completed = true
	}
	if err := models.SaveViewingHistory(ctx, db, vh); err != nil {
		return nil, false, err
	}
	log.Debugf("playback updated for user %v content %v: watchTime=%vs position=%vs",
		userID, contentID, vh.WatchTimeSeconds, vh.LastPositionSeconds)
	return vh, created, nil
}

func (s *Playback) GetHistory(ctx context.Context, userID uuid.UUID, limit int, offset int) ([]*models.ViewingHistory, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	return models.GetViewingHistory(ctx, db, userID, limit, offset)
}

func (s *Playback) GetContinueWatching(ctx context.Context, userID uuid.UUID, limit int) ([]*models.ViewingHistory, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	return models.GetContinueWatching(ctx, db, userID, limit)
}

type ContentStats struct {
	UniqueViewers         int   `json:"uniqueViewers"`
	TotalWatchTimeSeconds int64 `json:"totalWatchTimeSeconds"`
}

func (s *Playback) GetContentStats(ctx context.Context, contentID int64) (*ContentStats, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	viewers, err := models.CountUniqueViewers(ctx, db, contentID)
	if err != nil {
		return nil, err
	}
	watchTime, err := models.SumWatchTime(ctx, db, contentID)
	if err != nil {
		return nil, err
	}
	return &ContentStats{
		UniqueViewers:         viewers,
		TotalWatchTimeSeconds: watchTime,
	}, nil
}

// GetHistorySummary implements the history side of the recommendation
// pipeline. A user without any history yields an empty summary and no error;
// errors are reserved for the store being unreachable.
func (s *Playback) GetHistorySummary(ctx context.Context, userID uuid.UUID) (*recommend.HistorySummary, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	ids, err := models.GetWatchedContentIDs(ctx, db, userID)
	if err != nil {
		return nil, err
	}
	watched := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		watched[id] = struct{}{}
	}
	return &recommend.HistorySummary{
		WatchedIDs:  watched,
		UniqueCount: len(watched),
	}, nil
}

var _ recommend.HistoryProvider = (*Playback)(nil)
