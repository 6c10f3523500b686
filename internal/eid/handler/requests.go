package handler

import (
	dErrors "eidreader/pkg/domain-errors"
)

// LookupRequest is the HTTP request body for POST /evidence/providers/{providerID}/lookup.
type LookupRequest struct {
	Filters map[string]string `json:"filters"`
}

// Validate checks the request has at least one filter.
func (r *LookupRequest) Validate() error {
	if r == nil || len(r.Filters) == 0 {
		return dErrors.New(dErrors.CodeValidation, "filters are required")
	}
	return nil
}
