// Package logsink writes audit events as structured log lines.
package logsink

import (
	"context"
	"log/slog"

	audit "eidreader/pkg/platform/audit"
)

// Store appends events to a logger under the "audit" group.
type Store struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Store {
	return &Store{logger: logger}
}

func (s *Store) Append(ctx context.Context, event audit.Event) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit event",
		slog.Group("audit",
			slog.String("category", string(event.Category)),
			slog.String("action", event.Action),
			slog.String("decision", event.Decision),
			slog.String("reason", event.Reason),
			slog.String("subject", event.Subject),
			slog.String("subject_id_hash", event.SubjectIDHash),
			slog.String("client_ip", event.ClientIP),
			slog.String("client", event.Client),
			slog.Any("missing_fields", event.MissingFields),
			slog.Time("timestamp", event.Timestamp),
		),
		slog.String("request_id", event.RequestID),
	)
	return nil
}
