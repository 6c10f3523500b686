// Package sentinel holds infrastructure facts that registries return, usually
// wrapped, so callers can translate them into domain errors.
package sentinel

import "errors"

// ErrNotFound states that an entity does not exist in a registry or store. It is
// a fact about the resource, not a validation failure; for bad input use
// pkg/domain-errors directly.
var ErrNotFound = errors.New("not found")
