// Package service turns dropped eID documents into readings: it extracts the
// record and records what happened in audit, metrics and traces.
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"eidreader/internal/eid/extractor"
	eidmetrics "eidreader/internal/eid/metrics"
	"eidreader/internal/eid/models"
	dErrors "eidreader/pkg/domain-errors"
	audit "eidreader/pkg/platform/audit"
	"eidreader/pkg/requestcontext"
)

// Read outcomes.
const (
	OutcomeComplete = "complete"
	OutcomePartial  = "partial"
	OutcomeEmpty    = "empty"
)

// AuditPublisher receives audit events for each read.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service reads eID documents.
type Service struct {
	logger    *slog.Logger
	metrics   *eidmetrics.Metrics
	auditor   AuditPublisher
	tracer    trace.Tracer
	regulated bool
	newID     func() uuid.UUID
}

// Option configures a Service.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *eidmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

func WithAuditPublisher(p AuditPublisher) Option {
	return func(s *Service) { s.auditor = p }
}

func WithTracer(t trace.Tracer) Option {
	return func(s *Service) { s.tracer = t }
}

// WithRegulatedMode keeps PII out of logs.
func WithRegulatedMode(regulated bool) Option {
	return func(s *Service) { s.regulated = regulated }
}

func WithIDGenerator(fn func() uuid.UUID) Option {
	return func(s *Service) { s.newID = fn }
}

func New(opts ...Option) *Service {
	s := &Service{
		logger: slog.Default(),
		tracer: otel.Tracer("eidreader/internal/eid/service"),
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Read extracts a record from a dropped document. A blank drop is rejected;
// any other input produces a reading, possibly with an empty record.
func (s *Service) Read(ctx context.Context, raw string) (*models.Reading, error) {
	ctx, span := s.tracer.Start(ctx, "eid.Read", trace.WithAttributes(
		attribute.Int("eid.drop_bytes", len(raw)),
	))
	defer span.End()

	if strings.TrimSpace(raw) == "" {
		err := dErrors.New(dErrors.CodeBadRequest, "dropped document is empty")
		span.SetStatus(codes.Error, "empty drop")
		return nil, err
	}

	start := time.Now()
	record := extractor.Extract(raw)
	s.metrics.ObserveExtract(time.Since(start), len(raw))

	missing := record.MissingFields()
	outcome := outcomeOf(record)
	reading := &models.Reading{
		ID:       s.newID(),
		ReadAt:   requestcontext.Now(ctx),
		Record:   record,
		Complete: outcome == OutcomeComplete,
	}

	s.metrics.IncrementRead(outcome)
	s.metrics.IncrementMissing(missing)
	span.SetAttributes(
		attribute.String("eid.outcome", outcome),
		attribute.Int("eid.missing_fields", len(missing)),
	)

	if err := s.emitAudit(ctx, reading, outcome, missing); err != nil {
		span.SetStatus(codes.Error, "audit failed")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}

	s.logRead(ctx, reading, outcome, missing)
	return reading, nil
}

func (s *Service) emitAudit(ctx context.Context, reading *models.Reading, outcome string, missing []string) error {
	if s.auditor == nil {
		return nil
	}
	action := audit.EventEIDRead
	if outcome == OutcomeEmpty {
		action = audit.EventEIDReadFailed
	}
	return s.auditor.Emit(ctx, audit.Event{
		Category:      action.Category(),
		Timestamp:     reading.ReadAt,
		Action:        string(action),
		Decision:      outcome,
		Reason:        reasonOf(outcome),
		RequestID:     requestcontext.RequestID(ctx),
		Subject:       reading.ID.String(),
		SubjectIDHash: HashNationalNumber(reading.Record.NISS),
		ClientIP:      requestcontext.ClientIP(ctx),
		Client:        requestcontext.Client(ctx),
		MissingFields: missing,
	})
}

func (s *Service) logRead(ctx context.Context, reading *models.Reading, outcome string, missing []string) {
	attrs := []any{
		"request_id", requestcontext.RequestID(ctx),
		"reading_id", reading.ID.String(),
		"outcome", outcome,
		"missing_fields", missing,
	}
	if outcome == OutcomeEmpty {
		s.logger.WarnContext(ctx, "eid document yielded no fields", attrs...)
		return
	}
	if !s.regulated {
		attrs = append(attrs, "record", reading.Record.Fields())
	}
	s.logger.InfoContext(ctx, "eid document read", attrs...)
}

func outcomeOf(record models.Record) string {
	switch {
	case record.IsEmpty():
		return OutcomeEmpty
	case record.Complete():
		return OutcomeComplete
	default:
		return OutcomePartial
	}
}

func reasonOf(outcome string) string {
	if outcome == OutcomeEmpty {
		return "no_fields_found"
	}
	return ""
}

// HashNationalNumber returns the hex SHA-256 of the national number's digits,
// or "" when there is none. Punctuation is stripped so the hash matches however
// the number was formatted.
func HashNationalNumber(niss string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, niss)
	if digits == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(digits))
	return hex.EncodeToString(sum[:])
}
