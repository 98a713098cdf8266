package ports

import (
	"context"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// SubscriberRepository abstracts the subscribers table boundary. Emails are
// stored normalized; uniqueness is enforced on the normalized address.
type SubscriberRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.Subscriber, error)
	Insert(ctx context.Context, s *domain.Subscriber) error
	Update(ctx context.Context, s *domain.Subscriber) error
	ListActive(ctx context.Context) ([]*domain.Subscriber, error)
}
