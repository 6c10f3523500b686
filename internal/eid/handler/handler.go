package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"eidreader/internal/eid/models"
	"eidreader/internal/evidence/providers"
	dErrors "eidreader/pkg/domain-errors"
	"eidreader/pkg/platform/httputil"
	"eidreader/pkg/requestcontext"
)

// Service reads dropped eID documents.
type Service interface {
	Read(ctx context.Context, raw string) (*models.Reading, error)
}

// ProviderRegistry lists and resolves evidence providers.
type ProviderRegistry interface {
	All() []providers.Provider
	ListByType(t providers.ProviderType) []providers.Provider
	Get(id string) (providers.Provider, bool)
}

// Handler is the drop target: it accepts documents dropped by a client and
// answers with the extracted record.
type Handler struct {
	service      Service
	registry     ProviderRegistry
	logger       *slog.Logger
	maxDropBytes int64
	regulated    bool
}

// Option configures a Handler.
type Option func(*Handler)

// WithRegulatedMode minimizes records in responses.
func WithRegulatedMode(regulated bool) Option {
	return func(h *Handler) { h.regulated = regulated }
}

// WithMaxDropBytes caps the dropped payload size.
func WithMaxDropBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxDropBytes = n
		}
	}
}

// New constructs an eID handler with its dependencies.
func New(service Service, registry ProviderRegistry, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{
		service:      service,
		registry:     registry,
		logger:       logger,
		maxDropBytes: 1 << 20,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts eID and evidence endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/eid/drop", h.HandleDrop)
	r.Get("/evidence/providers", h.HandleListProviders)
	r.Post("/evidence/providers/{providerID}/lookup", h.HandleLookup)
}

// retryAfterSeconds is advertised on lookups that failed for a transient reason.
const retryAfterSeconds = "1"

// acceptedDropTypes are the media types a drop may be sent as. Browsers hand
// over dragged text as text/plain.
var acceptedDropTypes = map[string]bool{
	"text/plain":      true,
	"text/xml":        true,
	"application/xml": true,
}

// HandleDrop handles POST /eid/drop requests.
func (h *Handler) HandleDrop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	if err := checkDropType(r.Header.Get("Content-Type")); err != nil {
		httputil.WriteError(w, err)
		return
	}

	raw, err := h.readDrop(w, r)
	if err != nil {
		h.logger.WarnContext(ctx, "drop rejected",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	reading, err := h.service.Read(ctx, raw)
	if err != nil {
		h.logger.ErrorContext(ctx, "eid read failed",
			"request_id", requestID,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	resp := FromReading(reading)
	if h.regulated {
		resp.Record = reading.Record.Minimized()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleListProviders handles GET /evidence/providers requests. An optional
// ?type= query narrows the listing to one provider type.
func (h *Handler) HandleListProviders(w http.ResponseWriter, r *http.Request) {
	var listed []providers.Provider
	if t := strings.TrimSpace(r.URL.Query().Get("type")); t != "" {
		listed = h.registry.ListByType(providers.ProviderType(t))
	} else {
		listed = h.registry.All()
	}
	resp := ProvidersResponse{Providers: make([]ProviderSummary, 0, len(listed))}
	for _, p := range listed {
		resp.Providers = append(resp.Providers, ProviderSummary{ID: p.ID(), Capabilities: p.Capabilities()})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

// HandleLookup handles POST /evidence/providers/{providerID}/lookup requests.
func (h *Handler) HandleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	providerID := chi.URLParam(r, "providerID")

	provider, ok := h.registry.Get(providerID)
	if !ok {
		httputil.WriteError(w, providers.ToDomain(providers.ErrProviderNotFound))
		return
	}

	var req LookupRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxDropBytes)).Decode(&req); err != nil {
		httputil.WriteError(w, decodeError(err))
		return
	}
	if err := req.Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	evidence, err := provider.Lookup(ctx, req.Filters)
	if err != nil {
		h.logger.WarnContext(ctx, "evidence lookup failed",
			"request_id", requestcontext.RequestID(ctx),
			"provider_id", providerID,
			"category", providers.GetCategory(err),
			"retryable", providers.IsRetryable(err),
			"error", err,
		)
		if providers.IsRetryable(err) {
			w.Header().Set("Retry-After", retryAfterSeconds)
		}
		httputil.WriteError(w, providers.ToDomain(err))
		return
	}
	if h.regulated {
		evidence.Data = minimizeData(evidence.Data)
	}
	httputil.WriteJSON(w, http.StatusOK, evidence)
}

func (h *Handler) readDrop(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxDropBytes))
	if err != nil {
		return "", decodeError(err)
	}
	if strings.TrimSpace(string(body)) == "" {
		return "", dErrors.New(dErrors.CodeBadRequest, "dropped document is empty")
	}
	return string(body), nil
}

func checkDropType(contentType string) error {
	if contentType == "" {
		return nil
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !acceptedDropTypes[mediaType] {
		return dErrors.New(dErrors.CodeUnsupportedMediaType, "drop must be text/plain or XML")
	}
	return nil
}

func decodeError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return dErrors.Wrap(err, dErrors.CodePayloadTooLarge, "dropped document is too large")
	}
	return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
}

func minimizeData(data map[string]any) map[string]any {
	var r models.Record
	r.Nationality, _ = data[models.FieldNationality].(string)
	r.Gender, _ = data[models.FieldGender].(string)
	r.Birthday, _ = data[models.FieldBirthday].(string)
	out := make(map[string]any)
	for name, value := range r.Minimized().Fields() {
		if value != "" {
			out[name] = value
		}
	}
	return out
}
