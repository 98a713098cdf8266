package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// SessionStore keeps live sessions in Redis. Deleting the key forcibly
// terminates the session regardless of the token's own expiry.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

type sessionRecord struct {
	IdentityID string    `json:"identity_id"`
	Email      string    `json:"email"`
	IssuedAt   time.Time `json:"issued_at"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// Issue stores the session with a TTL matching its expiry.
func (s *SessionStore) Issue(ctx context.Context, sess *domain.Session) error {
	rec := sessionRecord{
		IdentityID: sess.IdentityID,
		Email:      sess.Email,
		IssuedAt:   sess.IssuedAt,
		ExpiresAt:  sess.ExpiresAt,
	}
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return domain.ErrNotAuthenticated
	}
	if err := s.client.Set(ctx, s.key(sess.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

// Find returns the live session, or domain.ErrNotAuthenticated when the key
// has expired or been revoked.
func (s *SessionStore) Find(ctx context.Context, id string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrNotAuthenticated
		}
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(payload), &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &domain.Session{
		ID:         id,
		IdentityID: rec.IdentityID,
		Email:      rec.Email,
		IssuedAt:   rec.IssuedAt,
		ExpiresAt:  rec.ExpiresAt,
	}, nil
}

func (s *SessionStore) Revoke(ctx context.Context, id string) error {
	return s.client.Del(ctx, s.key(id)).Err()
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
