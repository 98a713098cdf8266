package ports

import (
	"context"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// SessionStore abstracts the session-store boundary: issue, look up and
// revoke live sessions. A revoked or expired session is simply absent.
type SessionStore interface {
	Issue(ctx context.Context, s *domain.Session) error
	// Find returns the live session or domain.ErrNotAuthenticated.
	Find(ctx context.Context, id string) (*domain.Session, error)
	Revoke(ctx context.Context, id string) error
}
