package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dhanuj00123/HeadlessCms/internal/identity/models"
)

const (
	sessionKeyPrefix = "auth:session:"
	stateKeyPrefix   = "auth:state:"
)

// Redis is the production Store for deployments where multiple instances must
// share handshake state. TTL enforcement is delegated to Redis key expiry;
// the state nonce is kept as a secondary key pointing at the session id.
type Redis struct {
	client *redis.Client
	clock  Clock
}

// RedisOption configures a Redis store.
type RedisOption func(*Redis)

// WithRedisClock sets the clock function for testability.
func WithRedisClock(clock Clock) RedisOption {
	return func(s *Redis) {
		if clock != nil {
			s.clock = clock
		}
	}
}

func NewRedis(client *redis.Client, opts ...RedisOption) *Redis {
	s := &Redis{client: client, clock: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

type sessionRecord struct {
	ID        uuid.UUID            `json:"id"`
	State     string               `json:"state"`
	UserID    uuid.UUID            `json:"user_id"`
	Status    models.SessionStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
	ExpiresAt time.Time            `json:"expires_at"`
}

func (s *Redis) Save(ctx context.Context, session *models.Session) error {
	ttl := session.ExpiresAt.Sub(s.clock())
	if ttl <= 0 {
		return nil
	}

	payload, err := json.Marshal(sessionRecord(*session))
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.ID.String(), payload, ttl)
	pipe.Set(ctx, stateKeyPrefix+session.State, session.ID.String(), ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *Redis) FindByID(ctx context.Context, id uuid.UUID) (*models.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	sess := models.Session(rec)
	return &sess, nil
}

func (s *Redis) FindByState(ctx context.Context, state string) (*models.Session, error) {
	raw, err := s.client.Get(ctx, stateKeyPrefix+state).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find session by state: %w", err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("parse session id %q: %w", raw, err)
	}
	return s.FindByID(ctx, id)
}

func (s *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, sessionKeyPrefix+id.String())
	pipe.Del(ctx, stateKeyPrefix+sess.State)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
