package j

import (
	"context"
	"strconv"
	"time"

	"github.com/playlizt-io/playlizt-server/services/job"
)

const enrichTimeout = 5 * time.Minute

// Enrich schedules an asynchronous AI enhancement run for the given content.
// The job runs on a background context so it survives caller disconnects;
// the creating request never waits on or learns about the outcome.
func (s *Jobs) Enrich(contentID int64) *job.Job {
	if s.enricher == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), enrichTimeout)
	return s.q.GetOrCreate("enrich").Enqueue(ctx, cancel, strconv.FormatInt(contentID, 10), job.NewScript(func(j *job.Job) error {
		return s.enricher.Enrich(ctx, contentID)
	}))
}

// EnrichState reports the last recorded enrichment job state for the given
// content, if any. The state is advisory; an empty state means no record.
func (s *Jobs) EnrichState(ctx context.Context, contentID int64) (job.State, error) {
	return s.q.GetOrCreate("enrich").State(ctx, strconv.FormatInt(contentID, 10))
}
