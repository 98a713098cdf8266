package ports

import (
	"context"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// SubscriberService manages the opt-in registry the dispatcher reads.
type SubscriberService interface {
	// Subscribe adds an address, or reactivates it if it unsubscribed
	// earlier. An already-active address yields domain.ErrAlreadySubscribed.
	Subscribe(ctx context.Context, email string) (*domain.Subscriber, error)
	Unsubscribe(ctx context.Context, email string) error
	ListActive(ctx context.Context) ([]*domain.Subscriber, error)
}
