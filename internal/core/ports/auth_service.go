package ports

import (
	"context"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// AuthService is the authorization gate: it decides whether the bearer of a
// session token may act as an administrator, and mirrors the resolved
// identity into the shared session cache.
type AuthService interface {
	Register(ctx context.Context, email, password string) (*domain.AuthUser, error)
	// Login verifies credentials, issues a session and returns its token
	// alongside the resolved admin identity.
	Login(ctx context.Context, email, password string) (string, *domain.AdminIdentity, error)
	// Resolve maps a session token to an AdminIdentity. A session whose
	// bearer is not an administrator is forcibly terminated and
	// domain.ErrNotAuthorized is returned; an absent session yields
	// domain.ErrNotAuthenticated. Lookup failures fail closed.
	Resolve(ctx context.Context, token string) (*domain.AdminIdentity, error)
	// Deauthorize clears the cached identity and revokes the session.
	Deauthorize(ctx context.Context, token string) error
}
