package ports

import (
	"context"
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// ListPostsFilter narrows admin post listings.
type ListPostsFilter struct {
	Type   domain.PostType
	Status domain.PostStatus
	Limit  int
	Offset int
}

// PostRepository abstracts the posts table boundary.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	Update(ctx context.Context, p *domain.Post) error
	Delete(ctx context.Context, id string) error
	// List returns posts matching the filter, newest first.
	List(ctx context.Context, f ListPostsFilter) ([]*domain.Post, error)
	// ListPublished returns published posts of the given type ordered by
	// published_at descending. An empty type matches all types.
	ListPublished(ctx context.Context, t domain.PostType, limit int) ([]*domain.Post, error)
	// FindDueScheduled returns scheduled posts whose schedule instant is at
	// or before now.
	FindDueScheduled(ctx context.Context, now time.Time) ([]*domain.Post, error)
}
