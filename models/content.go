package models

import (
	"context"
	"time"

	"github.com/go-pg/pg/v10"
	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"
)

// ContentEnrichment holds the AI-derived part of a content record. Every
// field is nullable: an absent value means the model never produced it, and
// a merge only touches fields present in the parsed model response.
type ContentEnrichment struct {
	AIGeneratedDescription *string  `pg:"ai_generated_description" json:"aiGeneratedDescription,omitempty"`
	AIPredictedCategory    *string  `pg:"ai_predicted_category" json:"aiPredictedCategory,omitempty"`
	AIRelevanceScore       *float64 `pg:"ai_relevance_score,type:numeric(3,2)" json:"aiRelevanceScore,omitempty"`
	AIContentRating        *string  `pg:"ai_content_rating" json:"aiContentRating,omitempty"`
	AISentiment            *string  `pg:"ai_sentiment" json:"aiSentiment,omitempty"`
}

type Content struct {
	tableName struct{} `pg:"content"` //nolint:unused

	ContentID       int64     `pg:"content_id,pk" json:"id"`
	CreatorID       uuid.UUID `pg:"creator_id,type:uuid" json:"creatorId"`
	Title           string    `pg:"title" json:"title"`
	Description     string    `pg:"description" json:"description"`
	Category        string    `pg:"category" json:"category"`
	Tags            []string  `pg:"tags,array" json:"tags"`
	ThumbnailURL    string    `pg:"thumbnail_url" json:"thumbnailUrl"`
	VideoURL        string    `pg:"video_url" json:"videoUrl"`
	DurationSeconds *int      `pg:"duration_seconds" json:"durationSeconds"`

	ContentEnrichment

	Published bool      `pg:"is_published,use_zero" json:"isPublished"`
	ViewCount int64     `pg:"view_count,use_zero" json:"viewCount"`
	CreatedAt time.Time `pg:"created_at,default:now()" json:"createdAt"`
	UpdatedAt time.Time `pg:"updated_at,default:now()" json:"updatedAt"`
}

func CreateContent(ctx context.Context, db *pg.DB, c *Content) error {
	_, err := db.Model(c).
		Context(ctx).
		Returning("content_id, created_at, updated_at").
		Insert()
	return err
}

func GetContentByID(ctx context.Context, db *pg.DB, id int64) (*Content, error) {
	c := &Content{}
	err := db.Model(c).
		Context(ctx).
		Where("content_id = ?", id).
		Limit(1).
		Select()
	if errors.Is(err, pg.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func GetPublishedContent(ctx context.Context, db *pg.DB, limit int, offset int) ([]*Content, error) {
	var cs []*Content
	err := db.Model(&cs).
		Context(ctx).
		Where("is_published = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Select()
	if err != nil {
		return nil, err
	}
	return cs, nil
}

func GetContentByCategory(ctx context.Context, db *pg.DB, category string, limit int, offset int) ([]*Content, error) {
	var cs []*Content
	err := db.Model(&cs).
		Context(ctx).
		Where("category = ?", category).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Select()
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// SearchContent returns published candidates matching the query and category.
// An empty query or category means no restriction on that dimension. Ordering
// is stable (newest first) so downstream consumers can rely on it.
func SearchContent(ctx context.Context, db *pg.DB, query string, category string, limit int) ([]*Content, error) {
	var cs []*Content
	q := db.Model(&cs).
		Context(ctx).
		Where("is_published = ?", true)
	if query != "" {
		q = q.WhereGroup(func(q *pg.Query) (*pg.Query, error) {
			return q.WhereOr("title ILIKE ?", "%"+query+"%").
				WhereOr("description ILIKE ?", "%"+query+"%"), nil
		})
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("created_at DESC").
		Limit(limit).
		Select()
	if err != nil {
		return nil, err
	}
	return cs, nil
}

// ListContentCategories returns the distinct categories of published content
// in alphabetical order.
func ListContentCategories(ctx context.Context, db *pg.DB) ([]string, error) {
	var categories []string
	err := db.Model((*Content)(nil)).
		Context(ctx).
		ColumnExpr("DISTINCT category").
		Where("is_published = ?", true).
		Order("category ASC").
		Select(&categories)
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func UpdateContent(ctx context.Context, db *pg.DB, c *Content) error {
	c.UpdatedAt = time.Now()
	_, err := db.Model(c).
		Context(ctx).
		Column("title", "description", "category", "tags", "thumbnail_url", "video_url", "duration_seconds", "updated_at").
		WherePK().
		Update()
	return err
}

// UpdateContentEnrichment persists the AI-derived fields and the tag list of
// an enriched record. Only these columns are written so a concurrent editor
// of the descriptive fields is never clobbered by a background enrichment.
func UpdateContentEnrichment(ctx context.Context, db *pg.DB, c *Content) error {
	c.UpdatedAt = time.Now()
	_, err := db.Model(c).
		Context(ctx).
		Column("tags", "ai_generated_description", "ai_predicted_category", "ai_relevance_score", "ai_content_rating", "ai_sentiment", "updated_at").
		WherePK().
		Update()
	return err
}

func DeleteContent(ctx context.Context, db *pg.DB, id int64) error {
	_, err := db.Model((*Content)(nil)).
		Context(ctx).
		Where("content_id = ?", id).
		Delete()
	return err
}

func PublishContent(ctx context.Context, db *pg.DB, id int64) (*Content, error) {
	c, err := GetContentByID(ctx, db, id)
	if err != nil || c == nil {
		return nil, err
	}
	c.Published = true
	c.UpdatedAt = time.Now()
	_, err = db.Model(c).
		Context(ctx).
		Column("is_published", "updated_at").
		WherePK().
		Update()
	if err != nil {
		return nil, err
	}
	return c, nil
}

func IncrementViewCount(ctx context.Context, db *pg.DB, id int64) error {
	_, err := db.Model((*Content)(nil)).
		Context(ctx).
		Set("view_count = view_count + 1").
		Where("content_id = ?", id).
		Update()
	return err
}

// GetContentForEnrichment returns content rows that have never been enriched.
// With force set it returns every row instead.
func GetContentForEnrichment(ctx context.Context, db *pg.DB, force bool) ([]*Content, error) {
	var cs []*Content
	q := db.Model(&cs).
		Context(ctx).
		Order("content_id ASC")
	if !force {
		q = q.Where("ai_generated_description IS NULL")
	}
	err := q.Select()
	if err != nil {
		return nil, err
	}
	return cs, nil
}
