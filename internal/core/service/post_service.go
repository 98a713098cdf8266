package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

// PostService owns the legal transitions of a post and the derivation of its
// denormalized fields.
type PostService struct {
	repo   ports.PostRepository
	logger zerolog.Logger
}

func NewPostService(repo ports.PostRepository, logger zerolog.Logger) *PostService {
	return &PostService{repo: repo, logger: logger}
}

// validate enforces the shared create/update constraints.
func validate(input ports.SavePostInput) error {
	if strings.TrimSpace(input.Title) == "" || strings.TrimSpace(input.Content) == "" {
		return domain.ErrMissingField
	}
	if !domain.ValidType(input.Type) || !domain.ValidStatus(input.Status) {
		return domain.ErrMissingField
	}
	if input.Status == domain.StatusScheduled && input.ScheduledFor == nil {
		return domain.ErrMissingSchedule
	}
	return nil
}

// Create persists a new post in the requested status. PublishedAt is set to
// the creation instant iff the post is created directly as published.
func (s *PostService) Create(ctx context.Context, input ports.SavePostInput) (string, error) {
	if err := validate(input); err != nil {
		return "", err
	}

	now := time.Now().UTC()
	post := &domain.Post{
		Title:         input.Title,
		Content:       input.Content,
		Type:          input.Type,
		Publication:   publicationFor(input, nil, now),
		AuthorEmail:   input.AuthorEmail,
		AuthorName:    input.AuthorName,
		CoverImageURL: input.CoverImageURL,
		Excerpt:       domain.Excerpt(input.Content),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	id, err := s.repo.Create(ctx, post)
	if err != nil {
		s.logger.Error().Err(err).Str("title", input.Title).Msg("failed to create post")
		return "", err
	}

	s.logger.Info().
		Str("post_id", id).
		Str("type", string(input.Type)).
		Str("status", string(input.Status)).
		Msg("post created")

	return id, nil
}

// Update re-validates and persists a post. A re-save of an already-published
// post keeps its original PublishedAt: publication date is when content first
// went live, not the latest edit. Moving a post out of published/scheduled
// clears both timestamps.
func (s *PostService) Update(ctx context.Context, id string, input ports.SavePostInput) (*domain.Post, error) {
	if err := validate(input); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	existing.Title = input.Title
	existing.Content = input.Content
	existing.Type = input.Type
	existing.Publication = publicationFor(input, existing.Publication.PublishedAt, now)
	existing.CoverImageURL = input.CoverImageURL
	existing.Excerpt = domain.Excerpt(input.Content)
	existing.UpdatedAt = now

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error().Err(err).Str("post_id", id).Msg("failed to update post")
		return nil, err
	}

	s.logger.Info().Str("post_id", id).Str("status", string(input.Status)).Msg("post updated")
	return existing, nil
}

// publicationFor maps the requested status to a publication state. prior is
// the pre-update PublishedAt, nil on create.
func publicationFor(input ports.SavePostInput, prior *time.Time, now time.Time) domain.Publication {
	switch input.Status {
	case domain.StatusPublished:
		if prior != nil {
			return domain.PublishedAt(*prior)
		}
		return domain.PublishedAt(now)
	case domain.StatusScheduled:
		return domain.ScheduledAt(*input.ScheduledFor)
	default:
		return domain.Drafted()
	}
}

// Get returns a single post by id.
func (s *PostService) Get(ctx context.Context, id string) (*domain.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns posts for the admin back office.
func (s *PostService) List(ctx context.Context, f ports.ListPostsFilter) ([]*domain.Post, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 100
	}
	return s.repo.List(ctx, f)
}

// ListPublished returns the public feed for a type, newest first.
func (s *PostService) ListPublished(ctx context.Context, t domain.PostType, limit int) ([]*domain.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	return s.repo.ListPublished(ctx, t, limit)
}

// Delete removes a post. Deletion carries no lifecycle constraints.
func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

// PromoteDue publishes every scheduled post whose schedule instant has
// arrived. PublishedAt is the schedule instant, not the promotion instant, so
// the feed order matches what was announced. There is no internal scheduler:
// an external caller must invoke this periodically.
func (s *PostService) PromoteDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.FindDueScheduled(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("promote due: %w", err)
	}

	promoted := 0
	for _, post := range due {
		post.Publication = domain.PublishedAt(*post.Publication.ScheduledFor)
		post.UpdatedAt = now.UTC()
		if err := s.repo.Update(ctx, post); err != nil {
			s.logger.Error().Err(err).Str("post_id", post.ID).Msg("failed to promote scheduled post")
			continue
		}
		promoted++
		s.logger.Info().Str("post_id", post.ID).Msg("scheduled post promoted")
	}
	return promoted, nil
}
