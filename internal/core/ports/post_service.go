package ports

import (
	"context"
	"time"

	"github.com/gracechapel/content-api/internal/core/domain"
)

// SavePostInput carries all data needed to create or update a post.
type SavePostInput struct {
	Title         string
	Content       string
	Type          domain.PostType
	Status        domain.PostStatus
	ScheduledFor  *time.Time
	CoverImageURL string
	AuthorEmail   string
	AuthorName    string
}

// PostService defines use-case operations on the post lifecycle.
type PostService interface {
	Create(ctx context.Context, input SavePostInput) (string, error)
	Update(ctx context.Context, id string, input SavePostInput) (*domain.Post, error)
	Get(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context, f ListPostsFilter) ([]*domain.Post, error)
	ListPublished(ctx context.Context, t domain.PostType, limit int) ([]*domain.Post, error)
	Delete(ctx context.Context, id string) error
	// PromoteDue flips due scheduled posts to published. The service has no
	// scheduler of its own: something external must call this periodically.
	// It returns the number of posts promoted.
	PromoteDue(ctx context.Context, now time.Time) (int, error)
}
