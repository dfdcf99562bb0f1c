package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrStorage marks session persistence failures so the dispatcher can fail
// the turn gracefully instead of treating them as a missing session.
var ErrStorage = errors.New("session: storage unavailable")

// DefaultExpiry is how long a conversation stays warm. An older session is
// not deleted; the next turn just starts over at the flow's initial step.
const DefaultExpiry = 30 * time.Minute

// Store persists sessions in Redis.
type Store struct {
	redis  *redis.Client
	tracer trace.Tracer
}

// NewStore creates a session store.
func NewStore(redisClient *redis.Client) *Store {
	if redisClient == nil {
		panic("session: redis client cannot be nil")
	}
	return &Store{
		redis:  redisClient,
		tracer: otel.Tracer("botplatform.internal.session"),
	}
}

func sessionKey(tenantID, address string) string {
	return fmt.Sprintf("session:%s:%s", tenantID, address)
}

// Load fetches the session for a conversation, or nil when none exists.
func (s *Store) Load(ctx context.Context, tenantID, address string) (*Session, error) {
	ctx, span := s.tracer.Start(ctx, "session.load")
	defer span.End()

	data, err := s.redis.Get(ctx, sessionKey(tenantID, address)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: load: %v", ErrStorage, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("%w: decode: %v", ErrStorage, err)
	}
	return &sess, nil
}

// Save persists the session.
func (s *Store) Save(ctx context.Context, sess Session) error {
	ctx, span := s.tracer.Start(ctx, "session.save")
	defer span.End()

	data, err := json.Marshal(sess)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: encode: %v", ErrStorage, err)
	}
	if err := s.redis.Set(ctx, sessionKey(sess.TenantID, sess.Address), data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("%w: save: %v", ErrStorage, err)
	}
	return nil
}

// IsExpired reports whether the session's last activity is older than the
// threshold. Pure function of UpdatedAt.
func IsExpired(sess Session, threshold time.Duration, now time.Time) bool {
	if threshold <= 0 {
		threshold = DefaultExpiry
	}
	return now.Sub(sess.UpdatedAt) > threshold
}
