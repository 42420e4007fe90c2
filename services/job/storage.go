package job

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
	cs "github.com/webtor-io/common-services"
)

type State string

const (
	StateInProgress State = "in_progress"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

const stateExpire = 24 * time.Hour

// Storage keeps last-known job states in redis so operators can inspect
// background enrichment outcomes. It is advisory only: a nil redis client
// disables persistence without affecting job execution.
type Storage struct {
	redis  *cs.RedisClient
	prefix string
}

func NewStorage(redis *cs.RedisClient, prefix string) *Storage {
	return &Storage{
		redis:  redis,
		prefix: prefix,
	}
}

func (s *Storage) key(queue string, id string) string {
	return fmt.Sprintf("%v:job:%v:%v", s.prefix, queue, id)
}

func (s *Storage) SetState(ctx context.Context, queue string, id string, state State) {
	if s == nil || s.redis == nil {
		return
	}
	cl := s.redis.Get()
	if cl == nil {
		return
	}
	if err := cl.Set(ctx, s.key(queue, id), string(state), stateExpire).Err(); err != nil {
		log.WithError(err).Warnf("failed to store state for job %v/%v", queue, id)
	}
}

func (s *Storage) GetState(ctx context.Context, queue string, id string) (State, error) {
	if s == nil || s.redis == nil {
		return "", nil
	}
	cl := s.redis.Get()
	if cl == nil {
		return "", nil
	}
	v, err := cl.Get(ctx, s.key(queue, id)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return State(v), nil
}
