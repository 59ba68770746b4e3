package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrSessionNotFound indicates a missing or expired session record.
var ErrSessionNotFound = errors.New("session not found")

// Store records issued token ids in redis so tokens can be revoked
// before they expire. The value is the owning account id.
type Store struct {
	client *redis.Client
}

// NewStore returns redis-backed session store.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) key(tokenID string) string {
	return fmt.Sprintf("auth:sessions:%s", tokenID)
}

// Save records a session with the given lifetime.
func (s *Store) Save(ctx context.Context, tokenID, accountID string, ttl time.Duration) error {
	return s.client.Set(ctx, s.key(tokenID), accountID, ttl).Err()
}

// Get returns the account id owning the session.
func (s *Store) Get(ctx context.Context, tokenID string) (string, error) {
	accountID, err := s.client.Get(ctx, s.key(tokenID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrSessionNotFound
		}
		return "", err
	}
	return accountID, nil
}

// Delete revokes the session.
func (s *Store) Delete(ctx context.Context, tokenID string) error {
	return s.client.Del(ctx, s.key(tokenID)).Err()
}
