package authority

import (
	"context"
	"log/slog"

	id "rxintake/pkg/domain"
)

// Mailer dispatches one-time codes out of band.
type Mailer interface {
	SendCode(ctx context.Context, email id.Email, code string) error
}

// LogMailer writes codes to the log. Development only.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) SendCode(ctx context.Context, email id.Email, code string) error {
	m.logger.InfoContext(ctx, "one-time code dispatched",
		"email", email.String(),
		"code", code,
	)
	return nil
}
