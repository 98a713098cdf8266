package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// AnnounceGuard records which posts have already been announced, so a
// re-publish never accidentally re-notifies subscribers.
// Key format: announced:<post_id>, no expiry.
type AnnounceGuard struct {
	client *redis.Client
}

func NewAnnounceGuard(client *redis.Client) *AnnounceGuard {
	return &AnnounceGuard{client: client}
}

// Announced reports whether a fan-out for this post was already recorded.
func (g *AnnounceGuard) Announced(ctx context.Context, postID string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(postID)).Result()
	if err != nil {
		return false, fmt.Errorf("announce check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this post has been announced.
func (g *AnnounceGuard) Mark(ctx context.Context, postID string) error {
	return g.client.Set(ctx, g.key(postID), "1", 0).Err()
}

func (g *AnnounceGuard) key(postID string) string {
	return "announced:" + postID
}
