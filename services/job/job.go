package job

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Job is one fire-and-forget unit of background work. The submitting path
// never blocks on it; failures end up in the log sink, not back at the
// submitter.
type Job struct {
	ID     string
	Queue  string
	ctx    context.Context
	cancel context.CancelFunc

	mux  sync.Mutex
	done chan struct{}
	err  error
}

func newJob(ctx context.Context, cancel context.CancelFunc, queue string, id string) *Job {
	return &Job{
		ID:     id,
		Queue:  queue,
		ctx:    ctx,
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

func (j *Job) Context() context.Context {
	return j.ctx
}

// Wait blocks until the job finishes and returns its terminal error, if any.
// Production callers fire and forget; this exists for batch commands and
// tests.
func (j *Job) Wait() error {
	<-j.done
	j.mux.Lock()
	defer j.mux.Unlock()
	return j.err
}

func (j *Job) finish(err error) {
	j.mux.Lock()
	j.err = err
	j.mux.Unlock()
	j.cancel()
	close(j.done)
}

type Script interface {
	Run(j *Job) error
}

type ScriptFunc func(j *Job) error

func (s ScriptFunc) Run(j *Job) error {
	return s(j)
}

func NewScript(f func(j *Job) error) Script {
	return ScriptFunc(f)
}

type Queue struct {
	name    string
	storage *Storage
}

// Enqueue starts the script on its own goroutine and returns immediately.
// Nothing deduplicates concurrent jobs for the same id; if two runs race,
// the later persistence wins.
func (s *Queue) Enqueue(ctx context.Context, cancel context.CancelFunc, id string, script Script) *Job {
	j := newJob(ctx, cancel, s.name, id)
	s.storage.SetState(ctx, s.name, id, StateInProgress)
	go func() {
		err := script.Run(j)
		if err != nil {
			log.WithError(err).Errorf("job %v/%v failed", s.name, id)
			s.storage.SetState(context.Background(), s.name, id, StateFailed)
			j.finish(err)
			return
		}
		s.storage.SetState(context.Background(), s.name, id, StateDone)
		j.finish(nil)
	}()
	return j
}

// State reports the last recorded state for a job id on this queue.
func (s *Queue) State(ctx context.Context, id string) (State, error) {
	return s.storage.GetState(ctx, s.name, id)
}

type Queues struct {
	mux     sync.Mutex
	queues  map[string]*Queue
	storage *Storage
}

func NewQueues(storage *Storage) *Queues {
	return &Queues{
		queues:  map[string]*Queue{},
		storage: storage,
	}
}

func (s *Queues) GetOrCreate(name string) *Queue {
	s.mux.Lock()
	defer s.mux.Unlock()
	q, ok := s.queues[name]
	if !ok {
		q = &Queue{
			name:    name,
			storage: s.storage,
		}
		s.queues[name] = q
	}
	return q
}
