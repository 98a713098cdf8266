// Package email renders and sends publication notices via pluggable
// providers.
package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gracechapel/content-api/internal/core/ports"
)

// DefaultSubjectPrefix tags every notice subject line.
const DefaultSubjectPrefix = "[church-news]"

// Provider is the transport behind the sender.
type Provider interface {
	// Send delivers one email.
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Sender renders a publication notice and hands it to the provider.
type Sender struct {
	provider      Provider
	subjectPrefix string
	logger        zerolog.Logger
}

func NewSender(provider Provider, subjectPrefix string, logger zerolog.Logger) *Sender {
	if subjectPrefix == "" {
		subjectPrefix = DefaultSubjectPrefix
	}
	return &Sender{provider: provider, subjectPrefix: subjectPrefix, logger: logger}
}

// SendNotice delivers the notice for one recipient.
func (s *Sender) SendNotice(ctx context.Context, to string, notice ports.AnnounceInput) error {
	subject := fmt.Sprintf("%s %s", s.subjectPrefix, notice.Title)
	body := formatNoticeBody(notice)

	s.logger.Debug().Str("to", to).Str("subject", subject).Msg("sending notice")
	return s.provider.Send(ctx, to, subject, body)
}
