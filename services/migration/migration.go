package migration

import (
	"github.com/go-pg/migrations/v8"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"
)

// PGMigration runs the registered schema migrations against the
// configured database.
type PGMigration struct {
	pg  *cs.PG
	col *migrations.Collection
}

func NewPGMigration(pg *cs.PG, col *migrations.Collection) *PGMigration {
	return &PGMigration{
		pg:  pg,
		col: col,
	}
}

func (s *PGMigration) Run(a ...string) error {
	db := s.pg.Get()
	if db == nil {
		log.Info("db not initialized, skipping migration")
		return nil
	}
	if len(a) == 0 {
		a = []string{"up"}
	}
	_, _, err := s.col.Run(db, "init")
	if err != nil {
		return errors.Wrap(err, "failed to init migrations")
	}
	oldVersion, newVersion, err := s.col.Run(db, a...)
	if err != nil {
		return errors.Wrap(err, "failed to run migrations")
	}
	if newVersion != oldVersion {
		log.Infof("db migrated from version %d to %d", oldVersion, newVersion)
	} else {
		log.Infof("db version is %d", oldVersion)
	}
	return nil
}
