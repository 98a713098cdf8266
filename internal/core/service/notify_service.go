package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gracechapel/content-api/internal/core/domain"
	"github.com/gracechapel/content-api/internal/core/ports"
)

const defaultFanoutWorkers = 4

// AnnounceGuard abstracts the once-per-post announcement marker (Redis).
type AnnounceGuard interface {
	Announced(ctx context.Context, postID string) (bool, error)
	Mark(ctx context.Context, postID string) error
}

// Mailer renders and sends the publication notice to a single recipient.
type Mailer interface {
	SendNotice(ctx context.Context, to string, notice ports.AnnounceInput) error
}

// NotifyService fans a publication notice out to every active subscriber
// through a fixed worker pool, tracking the outcome per recipient, and
// records an immutable receipt of the attempt.
type NotifyService struct {
	subscribers ports.SubscriberRepository
	receipts    ports.ReceiptRepository
	guard       AnnounceGuard
	mailer      Mailer
	workers     int
	logger      zerolog.Logger
}

func NewNotifyService(
	subscribers ports.SubscriberRepository,
	receipts ports.ReceiptRepository,
	guard AnnounceGuard,
	mailer Mailer,
	workers int,
	logger zerolog.Logger,
) *NotifyService {
	if workers <= 0 {
		workers = defaultFanoutWorkers
	}
	return &NotifyService{
		subscribers: subscribers,
		receipts:    receipts,
		guard:       guard,
		mailer:      mailer,
		workers:     workers,
		logger:      logger,
	}
}

// Announce delivers the notice to all currently active subscribers. An empty
// registry succeeds trivially, still leaving a zero-recipient receipt for
// auditability. Partial failures are tallied in the receipt; an error is
// returned only when no recipient could be reached at all.
func (s *NotifyService) Announce(ctx context.Context, input ports.AnnounceInput) (*ports.AnnounceResult, error) {
	announced, err := s.guard.Announced(ctx, input.PostID)
	if err != nil {
		s.logger.Warn().Err(err).Str("post_id", input.PostID).Msg("announce guard check failed, proceeding")
	} else if announced {
		return nil, domain.ErrAlreadyAnnounced
	}

	subs, err := s.subscribers.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("announce: list subscribers: %w", err)
	}

	recipients := make([]string, 0, len(subs))
	for _, sub := range subs {
		recipients = append(recipients, sub.Email)
	}

	delivered, failed := s.fanOut(ctx, recipients, input)

	receipt := &domain.NotificationReceipt{
		PostID:         input.PostID,
		Title:          input.Title,
		Content:        input.Content,
		Type:           input.Type,
		PublishedAt:    input.PublishedAt,
		SentAt:         time.Now().UTC(),
		RecipientCount: len(recipients),
		Recipients:     recipients,
		Delivered:      delivered,
		Failed:         failed,
	}
	receiptID, err := s.receipts.Create(ctx, receipt)
	if err != nil {
		return nil, fmt.Errorf("announce: write receipt: %w", err)
	}

	if err := s.guard.Mark(ctx, input.PostID); err != nil {
		s.logger.Warn().Err(err).Str("post_id", input.PostID).Msg("failed to mark post as announced")
	}

	s.logger.Info().
		Str("post_id", input.PostID).
		Int("recipients", len(recipients)).
		Int("delivered", delivered).
		Int("failed", failed).
		Msg("announcement fan-out complete")

	result := &ports.AnnounceResult{
		ReceiptID:      receiptID,
		RecipientCount: len(recipients),
		Delivered:      delivered,
		Failed:         failed,
	}
	if len(recipients) > 0 && delivered == 0 {
		return result, fmt.Errorf("announce: all %d sends failed", failed)
	}
	return result, nil
}

// fanOut delivers the notice through a fixed pool of workers and returns the
// delivered/failed tallies.
func (s *NotifyService) fanOut(ctx context.Context, recipients []string, input ports.AnnounceInput) (delivered, failed int) {
	if len(recipients) == 0 {
		return 0, 0
	}

	jobs := make(chan string, len(recipients))
	results := make(chan error, len(recipients))

	var wg sync.WaitGroup
	workers := s.workers
	if workers > len(recipients) {
		workers = len(recipients)
	}
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for to := range jobs {
				err := s.mailer.SendNotice(ctx, to, input)
				if err != nil {
					s.logger.Error().Err(err).Str("recipient", to).Str("post_id", input.PostID).Msg("notice send failed")
				}
				results <- err
			}
		}()
	}

	for _, to := range recipients {
		jobs <- to
	}
	close(jobs)
	wg.Wait()
	close(results)

	for err := range results {
		if err != nil {
			failed++
		} else {
			delivered++
		}
	}
	return delivered, failed
}
