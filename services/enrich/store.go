package enrich

import (
	"context"

	"github.com/pkg/errors"
	cs "github.com/webtor-io/common-services"

	"github.com/playlizt-io/playlizt-server/models"
)

type pgContentStore struct {
	pg *cs.PG
}

// NewPGContentStore returns a ContentStore backed by the content table.
func NewPGContentStore(pg *cs.PG) ContentStore {
	return &pgContentStore{
		pg: pg,
	}
}

func (s *pgContentStore) GetContent(ctx context.Context, id int64) (*models.Content, error) {
	db := s.pg.Get()
	if db == nil {
		return nil, errors.New("db is nil")
	}
	return models.GetContentByID(ctx, db, id)
}

func (s *pgContentStore) SaveEnrichment(ctx context.Context, c *models.Content) error {
	db := s.pg.Get()
	if db == nil {
		return errors.New("db is nil")
	}
	return models.UpdateContentEnrichment(ctx, db, c)
}

var _ ContentStore = (*pgContentStore)(nil)
