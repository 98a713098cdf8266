package ports

import (
	"context"
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// AdminRepository abstracts the admin table boundary. Rows are keyed
// primarily by email; the identity id is a secondary key that may drift
// until reconciled on first login.
type AdminRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Admin, error)
	// ReconcileIdentity updates the stored identity id for the admin row.
	ReconcileIdentity(ctx context.Context, id, identityID string) error
	RecordLogin(ctx context.Context, id string, at time.Time) error
}

// AuthRepository abstracts the credential records of the session-store
// boundary.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.AuthUser) (*domain.AuthUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.AuthUser, error)
}
