package handler

import (
	"time"

	"eidreader/internal/eid/models"
	"eidreader/internal/evidence/providers"
)

// DropResponse is the HTTP response body for POST /eid/drop.
type DropResponse struct {
	ReadingID string        `json:"reading_id"`
	ReadAt    time.Time     `json:"read_at"`
	Complete  bool          `json:"complete"`
	Record    models.Record `json:"record"`
}

// FromReading maps a service reading to its response.
func FromReading(r *models.Reading) DropResponse {
	return DropResponse{
		ReadingID: r.ID.String(),
		ReadAt:    r.ReadAt,
		Complete:  r.Complete,
		Record:    r.Record,
	}
}

// ProviderSummary describes one registered evidence provider.
type ProviderSummary struct {
	ID           string                 `json:"id"`
	Capabilities providers.Capabilities `json:"capabilities"`
}

// ProvidersResponse is the HTTP response body for GET /evidence/providers.
type ProvidersResponse struct {
	Providers []ProviderSummary `json:"providers"`
}
