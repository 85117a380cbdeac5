package domain

import "time"

// TicketStatus enumerates lifecycle states for RMA tickets.
type TicketStatus string

const (
	TicketStatusActive   TicketStatus = "ACTIVE"
	TicketStatusArchived TicketStatus = "ARCHIVED"
)

// ResolutionOutcome records how the troubleshooting phase ended.
type ResolutionOutcome string

const (
	// ResolutionUnresolved means troubleshooting did not fix the problem
	// and a return was requested. Tickets only exist for this outcome.
	ResolutionUnresolved ResolutionOutcome = "UNRESOLVED"
)

// ErrorSelection is the structured problem description accumulated by the
// intake wizard: the chosen error type, the optional sub-option, the
// troubleshooting steps the customer worked through and the outcome.
type ErrorSelection struct {
	Category       string            `json:"category"`
	ErrorTypeID    string            `json:"error_type_id"`
	ErrorTypeTitle string            `json:"error_type_title"`
	SubOption      string            `json:"sub_option,omitempty"`
	StepsCompleted []string          `json:"steps_completed,omitempty"`
	Outcome        ResolutionOutcome `json:"outcome"`
}

// Ticket is the aggregate for an RMA case.
type Ticket struct {
	ID             string
	RMANumber      string
	CustomerNumber string
	Selection      ErrorSelection
	ShippingMethod string
	// UseDefaultAddress selects the customer's directory address; when
	// false, ReturnAddress and ContactPerson carry the alternative.
	UseDefaultAddress bool
	ReturnAddress     string
	ContactPerson     string
	Status            TicketStatus
	CreatedAt         time.Time
	ArchivedAt        *time.Time
}

// StatusCounts summarizes tickets per lifecycle state.
type StatusCounts struct {
	Active   int64
	Archived int64
}
