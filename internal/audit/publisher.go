// Package audit records security and compliance relevant actions. Events go to
// the structured log and, when configured, to a Kafka topic.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strings"

	"rxintake/pkg/requestcontext"
)

// Publisher accepts audit events. Implementations must not block on slow sinks.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Record logs the event and forwards it to publisher. Attrs are key/value
// pairs; non-string values are formatted with %v. Publisher errors are logged
// and swallowed so auditing never fails a user action.
func Record(ctx context.Context, logger *slog.Logger, publisher Publisher, action Action, subject string, attrs ...any) {
	event := Event{
		Category:  action.Category(),
		Action:    action,
		Timestamp: requestcontext.Now(ctx),
		Subject:   subject,
		RequestID: requestcontext.RequestID(ctx),
	}
	if sid := requestcontext.SessionID(ctx); !sid.IsNil() {
		event.SessionID = sid.String()
	}
	if len(attrs) > 0 {
		event.Attrs = make(map[string]string, len(attrs)/2)
		for i := 0; i+1 < len(attrs); i += 2 {
			key, ok := attrs[i].(string)
			if !ok {
				continue
			}
			event.Attrs[key] = fmt.Sprint(attrs[i+1])
		}
	}

	if logger != nil {
		args := append([]any{
			"log_type", "audit",
			"category", string(event.Category),
			"subject", subject,
			"request_id", event.RequestID,
		}, attrs...)
		logger.InfoContext(ctx, string(action), args...)
	}

	if publisher == nil {
		return
	}
	if err := publisher.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "action", string(action), "error", err)
	}
}

// HashEmail returns a stable pseudonymous subject for an email address.
func HashEmail(email string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(email))))
	return "email:" + hex.EncodeToString(sum[:8])
}

// LogPublisher writes events to a dedicated slog logger. Used when Kafka is
// not configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "audit_event",
		"category", string(event.Category),
		"action", string(event.Action),
		"subject", event.Subject,
		"session_id", event.SessionID,
		"request_id", event.RequestID,
		"timestamp", event.Timestamp,
	)
	return nil
}
