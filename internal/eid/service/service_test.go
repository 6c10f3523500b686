package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	eidmetrics "eidreader/internal/eid/metrics"
	dErrors "eidreader/pkg/domain-errors"
	audit "eidreader/pkg/platform/audit"
	"eidreader/pkg/platform/audit/publisher"
	"eidreader/pkg/platform/audit/store/memory"
	"eidreader/pkg/requestcontext"
)

const card = `<eid>
	<identity nationalnumber="93122788811" dateofbirth="19931227" gender="male">
		<name>Dupont</name>
		<firstname>Jean</firstname>
		<nationality>Belg</nationality>
	</identity>
</eid>`

type failingAuditor struct{}

func (failingAuditor) Emit(context.Context, audit.Event) error {
	return errors.New("sink down")
}

type ServiceSuite struct {
	suite.Suite
	store   *memory.InMemoryStore
	metrics *eidmetrics.Metrics
	service *Service
	readID  uuid.UUID
	now     time.Time
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.NewInMemoryStore()
	s.metrics = eidmetrics.NewWithRegisterer(prometheus.NewRegistry())
	s.readID = uuid.MustParse("6f1c2d1e-6d7a-4f0e-9b59-3f1f2b7c9a10")
	s.now = time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC)
	s.service = New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithAuditPublisher(publisher.NewPublisher(s.store)),
		WithIDGenerator(func() uuid.UUID { return s.readID }),
	)
	ctx := requestcontext.WithTime(context.Background(), s.now)
	ctx = requestcontext.WithRequestID(ctx, "req-1")
	s.ctx = requestcontext.WithClientMetadata(ctx, "10.0.0.1", "curl/8.5.0")
}

func (s *ServiceSuite) TestReadCompleteCard() {
	reading, err := s.service.Read(s.ctx, card)
	s.Require().NoError(err)

	s.Equal(s.readID, reading.ID)
	s.Equal(s.now, reading.ReadAt)
	s.True(reading.Complete)
	s.Equal("93.12.27-888.11", reading.Record.NISS)
	s.Equal("1993/12/27", reading.Record.Birthday)

	s.Equal(1.0, testutil.ToFloat64(s.metrics.Reads.WithLabelValues(OutcomeComplete)))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.MissingFields.WithLabelValues("secondName")))

	events, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	ev := events[0]
	s.Equal(string(audit.EventEIDRead), ev.Action)
	s.Equal(audit.CategoryCompliance, ev.Category)
	s.Equal(OutcomeComplete, ev.Decision)
	s.Equal("req-1", ev.RequestID)
	s.Equal("10.0.0.1", ev.ClientIP)
	s.Equal(s.readID.String(), ev.Subject)
	s.Equal(HashNationalNumber("93122788811"), ev.SubjectIDHash)
	s.NotContains(ev.SubjectIDHash, "93122788811")
}

func (s *ServiceSuite) TestReadPartialCard() {
	reading, err := s.service.Read(s.ctx, `<eid><name>Dupont</name></eid>`)
	s.Require().NoError(err)

	s.False(reading.Complete)
	s.Equal("Dupont", reading.Record.Name)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Reads.WithLabelValues(OutcomePartial)))
}

func (s *ServiceSuite) TestReadUnreadableDocument() {
	reading, err := s.service.Read(s.ctx, "<eid><name>Dupont</eid>")
	s.Require().NoError(err)

	s.True(reading.Record.IsEmpty())
	s.False(reading.Complete)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Reads.WithLabelValues(OutcomeEmpty)))

	events, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventEIDReadFailed), events[0].Action)
	s.Equal(audit.CategoryOperations, events[0].Category)
	s.Equal("no_fields_found", events[0].Reason)
	s.Empty(events[0].SubjectIDHash)
}

func (s *ServiceSuite) TestReadRejectsBlankDrop() {
	for _, raw := range []string{"", "   \n\t"} {
		reading, err := s.service.Read(s.ctx, raw)
		s.Nil(reading)
		s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	}

	events, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Empty(events)
}

func (s *ServiceSuite) TestReadIsIdempotent() {
	first, err := s.service.Read(s.ctx, card)
	s.Require().NoError(err)
	second, err := s.service.Read(s.ctx, card)
	s.Require().NoError(err)

	s.Equal(first.Record, second.Record)
}

func TestReadAuditFailure(t *testing.T) {
	svc := New(
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(failingAuditor{}),
	)

	reading, err := svc.Read(context.Background(), card)

	assert.Nil(t, reading)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}

func TestReadWithoutOptionalDependencies(t *testing.T) {
	reading, err := New().Read(context.Background(), card)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, reading.ID)
	assert.False(t, reading.ReadAt.IsZero())
}

func TestHashNationalNumber(t *testing.T) {
	assert.Equal(t, "", HashNationalNumber(""))
	assert.Equal(t, HashNationalNumber("93122788811"), HashNationalNumber("93.12.27-888.11"))
	assert.Len(t, HashNationalNumber("93122788811"), 64)
}
