package dto

import (
	"time"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// ErrorSelectionResponse is the structured problem description of a ticket.
type ErrorSelectionResponse struct {
	Category       string   `json:"category"`
	ErrorTypeID    string   `json:"error_type_id"`
	ErrorTypeTitle string   `json:"error_type_title"`
	SubOption      string   `json:"sub_option,omitempty"`
	StepsCompleted []string `json:"steps_completed,omitempty"`
	Outcome        string   `json:"outcome"`
}

// TicketSummary is the listing shape for admin views.
type TicketSummary struct {
	RMANumber      string              `json:"rma_number"`
	CustomerNumber string              `json:"customer_number"`
	Category       string              `json:"category"`
	ErrorTypeTitle string              `json:"error_type_title"`
	ShippingMethod string              `json:"shipping_method"`
	Status         domain.TicketStatus `json:"status"`
	CreatedAt      time.Time           `json:"created_at"`
	ArchivedAt     *time.Time          `json:"archived_at,omitempty"`
}

// TicketDetailResponse is the full ticket shape.
type TicketDetailResponse struct {
	ID                string                 `json:"id"`
	RMANumber         string                 `json:"rma_number"`
	CustomerNumber    string                 `json:"customer_number"`
	Selection         ErrorSelectionResponse `json:"selection"`
	ShippingMethod    string                 `json:"shipping_method"`
	UseDefaultAddress bool                   `json:"use_default_address"`
	ReturnAddress     string                 `json:"return_address,omitempty"`
	ContactPerson     string                 `json:"contact_person,omitempty"`
	Status            domain.TicketStatus    `json:"status"`
	CreatedAt         time.Time              `json:"created_at"`
	ArchivedAt        *time.Time             `json:"archived_at,omitempty"`
}

// StatsResponse summarizes ticket counts and archiver activity for the
// admin dashboard.
type StatsResponse struct {
	ActiveTickets   int64 `json:"active_tickets"`
	ArchivedTickets int64 `json:"archived_tickets"`
	ArchiveRuns     int64 `json:"archive_runs"`
	ArchivedByJob   int64 `json:"archived_by_job"`
}
