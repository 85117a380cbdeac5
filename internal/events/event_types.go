package events

import (
	"time"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated  EventType = "ticket_created"
	EventWizardResolved EventType = "wizard_resolved"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string           `json:"id"`
	Type      EventType        `json:"type"`
	Actor     domain.ActorType `json:"actor"`
	Timestamp time.Time        `json:"timestamp"`
	Payload   interface{}      `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	RMANumber      string `json:"rma_number"`
	CustomerNumber string `json:"customer_number"`
	Category       string `json:"category"`
	ErrorTypeTitle string `json:"error_type_title"`
	ShippingMethod string `json:"shipping_method"`
}

// WizardResolvedPayload payload.
type WizardResolvedPayload struct {
	SessionID      string `json:"session_id"`
	Category       string `json:"category"`
	ErrorTypeTitle string `json:"error_type_title"`
}
