package catalog

import (
	"context"
	"time"

	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"
	"github.com/webtor-io/lazymap"

	"github.com/playlizt-io/playlizt-server/models"
	"github.com/playlizt-io/playlizt-server/services/recommend"
)

// Catalog serves candidate content and the known category list. The category
// list changes rarely, so it sits behind a short-lived lazymap cache.
type Catalog struct {
	pg         *cs.PG
	categories *lazymap.LazyMap[[]string]
}

func New(pg *cs.PG) *Catalog {
	return &Catalog{
		pg: pg,
		categories: lazymap.New[[]string](&lazymap.Config{
			Expire:      5 * time.Minute,
			ErrorExpire: 10 * time.Second,
		}),
	}
}

func (s *Catalog) listCategories(ctx context.Context) ([]string, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	return models.ListContentCategories(ctx, db)
}

func (s *Catalog) ListCategories(ctx context.Context) ([]string, error) {
	return s.categories.Get("categories", func() ([]string, error) {
		return s.listCategories(ctx)
	})
}

func (s *Catalog) SearchCandidates(ctx context.Context, query string, category string, limit int) ([]*models.Content, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	return models.SearchContent(ctx, db, query, category, limit)
}

var _ recommend.Catalog = (*Catalog)(nil)
