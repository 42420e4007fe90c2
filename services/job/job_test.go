package job

import (
	"context"
	"errors"
	"testing"
)

func newTestQueues() *Queues {
	return NewQueues(NewStorage(nil, "test"))
}

func TestEnqueueSuccess(t *testing.T) {
	q := newTestQueues().GetOrCreate("enrich")
	ctx, cancel := context.WithCancel(context.Background())

	var ran bool
	j := q.Enqueue(ctx, cancel, "1", NewScript(func(j *Job) error {
		ran = true
		return nil
	}))

	if err := j.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ran {
		t.Error("script did not run")
	}
	select {
	case <-j.Context().Done():
	default:
		t.Error("job context must be cancelled after completion")
	}
}

func TestEnqueueFailure(t *testing.T) {
	q := newTestQueues().GetOrCreate("enrich")
	ctx, cancel := context.WithCancel(context.Background())

	want := errors.New("model unavailable")
	j := q.Enqueue(ctx, cancel, "1", NewScript(func(j *Job) error {
		return want
	}))

	if err := j.Wait(); !errors.Is(err, want) {
		t.Fatalf("expected %v, got %v", want, err)
	}
}

func TestEnqueueDoesNotBlock(t *testing.T) {
	q := newTestQueues().GetOrCreate("enrich")
	ctx, cancel := context.WithCancel(context.Background())

	release := make(chan struct{})
	j := q.Enqueue(ctx, cancel, "1", NewScript(func(j *Job) error {
		<-release
		return nil
	}))
	// Enqueue returned while the script is still blocked.
	close(release)
	if err := j.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQueueStateWithoutRedis(t *testing.T) {
	q := newTestQueues().GetOrCreate("enrich")
	ctx, cancel := context.WithCancel(context.Background())

	j := q.Enqueue(ctx, cancel, "1", NewScript(func(j *Job) error {
		return nil
	}))
	if err := j.Wait(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// State storage is advisory; without redis nothing is recorded.
	state, err := q.State(context.Background(), "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state != "" {
		t.Errorf("expected empty state, got %q", state)
	}
}

func TestGetOrCreateReusesQueue(t *testing.T) {
	queues := newTestQueues()
	a := queues.GetOrCreate("enrich")
	b := queues.GetOrCreate("enrich")
	if a != b {
		t.Error("expected the same queue instance for the same name")
	}
	if c := queues.GetOrCreate("other"); c == a {
		t.Error("expected a distinct queue for a different name")
	}
}
