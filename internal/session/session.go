package session

import (
	"context"
	"errors"
	"sync"

	"github.com/redis/go-redis/v9"
)

const authKey = "salon_auth"

// Store tracks whether the single operator session is
// authenticated. The scheduler is a one-salon tool: there is one
// shared password and one logical session.
type Store interface {
	Authenticated(ctx context.Context) (bool, error)
	SetAuthenticated(ctx context.Context, ok bool) error
}

// RedisStore keeps the session flag in Redis so it survives process
// restarts. The flag has no expiry: once the operator logs in the
// session lasts until an explicit reset.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Authenticated(ctx context.Context) (bool, error) {
	_, err := s.client.Get(ctx, authKey).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) SetAuthenticated(ctx context.Context, ok bool) error {
	if !ok {
		return s.client.Del(ctx, authKey).Err()
	}
	return s.client.Set(ctx, authKey, "true", 0).Err()
}

// MemoryStore is the in-process fallback when Redis is not
// configured.
type MemoryStore struct {
	mu   sync.Mutex
	auth bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Authenticated(_ context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.auth, nil
}

func (s *MemoryStore) SetAuthenticated(_ context.Context, ok bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.auth = ok
	return nil
}
