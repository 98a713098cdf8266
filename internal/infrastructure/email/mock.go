package email

import (
	"context"

	"github.com/rs/zerolog"
)

// MockProvider logs emails instead of sending them. For local development.
type MockProvider struct {
	logger zerolog.Logger
}

func NewMockProvider(logger zerolog.Logger) *MockProvider {
	return &MockProvider{logger: logger}
}

func (m *MockProvider) Send(ctx context.Context, to, subject, htmlBody string) error {
	m.logger.Info().
		Str("to", to).
		Str("subject", subject).
		Int("body_length", len(htmlBody)).
		Msg("MOCK EMAIL")
	return nil
}
