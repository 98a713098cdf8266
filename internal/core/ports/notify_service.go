package ports

import (
	"context"
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// AnnounceInput is the notification payload derived from a just-published
// post. The caller, not the lifecycle transition, decides whether to fire.
type AnnounceInput struct {
	PostID      string
	Title       string
	Content     string
	Type        domain.PostType
	PublishedAt time.Time
}

// AnnounceResult summarizes one fan-out attempt.
type AnnounceResult struct {
	ReceiptID      string
	RecipientCount int
	Delivered      int
	Failed         int
}

// NotifyService fans a publication notice out to every active subscriber and
// records a receipt.
type NotifyService interface {
	Announce(ctx context.Context, input AnnounceInput) (*AnnounceResult, error)
}
