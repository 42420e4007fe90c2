package j

import (
	"github.com/playlizt-io/playlizt-server/services/enrich"
	"github.com/playlizt-io/playlizt-server/services/job"
)

type Jobs struct {
	q        *job.Queues
	enricher *enrich.Enricher
}

func New(q *job.Queues, enricher *enrich.Enricher) *Jobs {
	return &Jobs{
		q:        q,
		enricher: enricher,
	}
}
