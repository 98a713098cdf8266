package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

// SubscriberService manages the opt-in registry: one row per normalized
// email, reactivated rather than duplicated on re-subscribe.
type SubscriberService struct {
	repo   ports.SubscriberRepository
	logger zerolog.Logger
}

func NewSubscriberService(repo ports.SubscriberRepository, logger zerolog.Logger) *SubscriberService {
	return &SubscriberService{repo: repo, logger: logger}
}

// Subscribe adds or reactivates an address.
func (s *SubscriberService) Subscribe(ctx context.Context, email string) (*domain.Subscriber, error) {
	email = domain.NormalizeEmail(email)
	if email == "" {
		return nil, domain.ErrMissingField
	}

	now := time.Now().UTC()
	existing, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil && existing.IsActive:
		return nil, domain.ErrAlreadySubscribed
	case err == nil:
		existing.IsActive = true
		existing.SubscribedAt = now
		existing.UnsubscribedAt = nil
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info().Str("email", email).Msg("subscriber reactivated")
		return existing, nil
	case errors.Is(err, domain.ErrSubscriberNotFound):
		sub := &domain.Subscriber{Email: email, IsActive: true, SubscribedAt: now}
		if err := s.repo.Insert(ctx, sub); err != nil {
			return nil, err
		}
		s.logger.Info().Str("email", email).Msg("subscriber added")
		return sub, nil
	default:
		return nil, err
	}
}

// Unsubscribe deactivates an address, keeping its row for later reactivation.
func (s *SubscriberService) Unsubscribe(ctx context.Context, email string) error {
	email = domain.NormalizeEmail(email)
	sub, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if !sub.IsActive {
		return nil
	}

	now := time.Now().UTC()
	sub.IsActive = false
	sub.UnsubscribedAt = &now
	if err := s.repo.Update(ctx, sub); err != nil {
		return err
	}
	s.logger.Info().Str("email", email).Msg("subscriber removed")
	return nil
}

// ListActive returns the addresses the dispatcher fans out to.
func (s *SubscriberService) ListActive(ctx context.Context) ([]*domain.Subscriber, error) {
	return s.repo.ListActive(ctx)
}
