package domain

import "time"

// ActivityType identifies what happened.
type ActivityType string

const (
	ActivityTicketCreated   ActivityType = "TICKET_CREATED"
	ActivityTicketsArchived ActivityType = "TICKETS_ARCHIVED"
	ActivityWizardResolved  ActivityType = "WIZARD_RESOLVED"
	ActivitySystemError     ActivityType = "SYSTEM_ERROR"
)

// ActorType identifies who (or what) caused an activity entry.
type ActorType string

const (
	ActorSystem   ActorType = "SYSTEM"
	ActorCustomer ActorType = "CUSTOMER"
	ActorAdmin    ActorType = "ADMIN"
)

// ActivityEntry is an append-only record of a system or user event.
// Entries are never mutated or deleted.
type ActivityEntry struct {
	ID           string
	ActivityType ActivityType
	UserType     ActorType
	Description  string
	EntityType   *string
	EntityID     *string
	Metadata     map[string]any
	CreatedAt    time.Time
}
