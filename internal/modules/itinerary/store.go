// README: Refinement sessions persisted in Redis with a cross-process refine lock.
package itinerary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"planit/internal/types"
)

const (
	sessionKeyPrefix = "planit:session:"
	// lockTTL bounds how long a crashed refinement can block its session.
	lockTTL = 5 * time.Minute
)

// unlockScript deletes the lock only if it still holds the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Store handles session persistence.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewStore returns a Store backed by rdb. Sessions expire ttl after their last write.
func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: rdb, ttl: ttl}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }
func lockKey(id string) string    { return sessionKeyPrefix + id + ":lock" }

// storedSession is the Redis payload: the plan plus the uid allowed to use it.
type storedSession struct {
	Owner string          `json:"owner"`
	Plan  types.SavedPlan `json:"plan"`
}

func (s *Store) Save(ctx context.Context, id, owner string, plan types.SavedPlan) error {
	body, err := json.Marshal(storedSession{Owner: owner, Plan: plan})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.redis.Set(ctx, sessionKey(id), body, s.ttl).Err()
}

// Load returns the plan stored under id. A session owned by another uid reads as
// ErrSessionNotFound so foreign ids stay indistinguishable from expired ones.
func (s *Store) Load(ctx context.Context, id, owner string) (types.SavedPlan, error) {
	body, err := s.redis.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return types.SavedPlan{}, ErrSessionNotFound
	}
	if err != nil {
		return types.SavedPlan{}, err
	}
	var stored storedSession
	if err := json.Unmarshal(body, &stored); err != nil {
		return types.SavedPlan{}, fmt.Errorf("decode session: %w", err)
	}
	if stored.Owner != owner {
		return types.SavedPlan{}, ErrSessionNotFound
	}
	return stored.Plan, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, sessionKey(id), lockKey(id)).Err()
}

// Lock claims the refine lock for id and returns the token needed to release it.
// ErrRefineInFlight means another holder has it.
func (s *Store) Lock(ctx context.Context, id string) (string, error) {
	token := uuid.NewString()
	ok, err := s.redis.SetNX(ctx, lockKey(id), token, lockTTL).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrRefineInFlight
	}
	return token, nil
}

func (s *Store) Unlock(ctx context.Context, id, token string) error {
	return unlockScript.Run(ctx, s.redis, []string{lockKey(id)}, token).Err()
}
