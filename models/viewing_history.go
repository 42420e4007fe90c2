package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// ViewingHistory is one user/content playback row. It is written by the
// playback tracking path only; the recommendation pipeline reads it through
// GetWatchedContentIDs and never mutates it.
type ViewingHistory struct {
	tableName struct{} `pg:"viewing_history"` //nolint:unused

	ViewingHistoryID    int64     `pg:"viewing_history_id,pk" json:"id"`
	UserID              uuid.UUID `pg:"user_id,type:uuid" json:"userId"`
	ContentID           int64     `pg:"content_id" json:"contentId"`
	WatchTimeSeconds    int       `pg:"watch_time_seconds,use_zero" json:"watchTimeSeconds"`
	LastPositionSeconds int       `pg:"last_position_seconds,use_zero" json:"lastPositionSeconds"`
	Completed           bool      `pg:"completed,use_zero" json:"completed"`
	CreatedAt           time.Time `pg:"created_at,default:now()" json:"createdAt"`
	UpdatedAt           time.Time `pg:"updated_at,default:now()" json:"updatedAt"`
}

func GetViewingHistoryByUserAndContent(ctx context.Context, db *pg.DB, userID uuid.UUID, contentID int64) (*ViewingHistory, error) {
	vh := &ViewingHistory{}
	err := db.Model(vh).
		Context(ctx).
		Where("user_id = ?", userID).
		Where("content_id = ?", contentID).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return vh, nil
}

func SaveViewingHistory(ctx context.Context, db *pg.DB, vh *ViewingHistory) error {
	vh.UpdatedAt = time.Now()
	if vh.ViewingHistoryID == 0 {
		_, err := db.Model(vh).
			Context(ctx).
			Returning("viewing_history_id, created_at, updated_at").
			Insert()
		return err
	}
	_, err := db.Model(vh).
		Context(ctx).
		Column("watch_time_seconds", "last_position_seconds", "completed", "updated_at").
		WherePK().
		Update()
	return err
}

func GetViewingHistory(ctx context.Context, db *pg.DB, userID uuid.UUID, limit int, offset int) ([]*ViewingHistory, error) {
	var vhs []*ViewingHistory
	err := db.Model(&vhs).
		Context(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Limit(limit).
		Offset(offset).
		Select()
	if err != nil {
		return nil, err
	}
	return vhs, nil
}

// GetWatchedContentIDs returns the distinct content ids a user has any
// playback record for, regardless of completion.
func GetWatchedContentIDs(ctx context.Context, db *pg.DB, userID uuid.UUID) ([]int64, error) {
	var ids []int64
	err := db.Model((*ViewingHistory)(nil)).
		Context(ctx).
		ColumnExpr("DISTINCT content_id").
		Where("user_id = ?", userID).
		Select(&ids)
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func GetContinueWatching(ctx context.Context, db *pg.DB, userID uuid.UUID, limit int) ([]*ViewingHistory, error) {
	var vhs []*ViewingHistory
	err := db.Model(&vhs).
		Context(ctx).
		Where("user_id = ?", userID).
		Where("completed = ?", false).
		Where("last_position_seconds > ?", 0).
		Order("updated_at DESC").
		Limit(limit).
		Select()
	if err != nil {
		return nil, err
	}
	return vhs, nil
}

func CountUniqueViewers(ctx context.Context, db *pg.DB, contentID int64) (int, error) {
	var count int
	err := db.Model((*ViewingHistory)(nil)).
		Context(ctx).
		ColumnExpr("COUNT(DISTINCT user_id)").
		Where("content_id = ?", contentID).
		Select(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func SumWatchTime(ctx context.Context, db *pg.DB, contentID int64) (int64, error) {
	var total int64
	err := db.Model((*ViewingHistory)(nil)).
		Context(ctx).
		ColumnExpr("COALESCE(SUM(watch_time_seconds), 0)").
		Where("content_id = ?", contentID).
		Select(&total)
	if err != nil {
		return 0, err
	}
	return total, nil
}
