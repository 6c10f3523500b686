package audit

import (
	"time"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance,
	// such as personal data being read from an identity card.
	CategoryCompliance EventCategory = "compliance"

	// CategoryOperations covers events useful for debugging and operational
	// visibility, such as drops that yielded nothing.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out. Events never carry raw
// card fields; the national number is only ever recorded as a hash.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// Subject is the reading ID the event refers to.
	Subject string
	// SubjectIDHash is a SHA-256 hash of the national number read from the card.
	SubjectIDHash string
	ClientIP      string
	Client        string
	// MissingFields lists record fields that could not be read.
	MissingFields []string
}

type AuditEvent string

const (
	EventEIDRead       AuditEvent = "eid_read"
	EventEIDReadFailed AuditEvent = "eid_read_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventEIDRead:       CategoryCompliance,
	EventEIDReadFailed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
