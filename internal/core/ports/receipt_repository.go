package ports

import (
	"context"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// ReceiptRepository abstracts the append-only receipts table boundary.
type ReceiptRepository interface {
	Create(ctx context.Context, r *domain.NotificationReceipt) (string, error)
	// List returns receipts newest first.
	List(ctx context.Context, limit int) ([]*domain.NotificationReceipt, error)
}
