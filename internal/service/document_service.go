package service

import (
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// DocumentPayload carries the completed ticket fields embedded verbatim in
// the confirmation document.
type DocumentPayload struct {
	RMANumber      string
	CustomerNumber string
	ErrorType      string
	ShippingMethod string
	// Address may span multiple lines; line breaks are preserved.
	Address string
}

// confirmationTemplate renders the printable confirmation. The address is
// emitted as-is, so multi-line addresses keep their line breaks.
var confirmationTemplate = template.Must(template.New("confirmation").Parse(
	`RETURN MERCHANDISE AUTHORIZATION
================================

RMA Number:      {{.RMANumber}}
Customer Number: {{.CustomerNumber}}
Reported Error:  {{.ErrorType}}
Shipping Method: {{.ShippingMethod}}

Return Address:
{{.Address}}

Generated: {{.GeneratedAt}}

Please include this document with the returned hardware.
`))

type confirmationData struct {
	DocumentPayload
	GeneratedAt string
}

// DocumentService renders confirmation documents. Rendering is a pure
// function of the payload and the clock.
type DocumentService struct {
	now func() time.Time
}

// NewDocumentService constructs the service. now may be nil for time.Now.
func NewDocumentService(now func() time.Time) *DocumentService {
	if now == nil {
		now = time.Now
	}
	return &DocumentService{now: now}
}

// Render produces the confirmation document content.
func (s *DocumentService) Render(payload DocumentPayload) (string, error) {
	var sb strings.Builder
	data := confirmationData{
		DocumentPayload: payload,
		GeneratedAt:     s.now().Format(time.RFC3339),
	}
	if err := confirmationTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return sb.String(), nil
}

// Filename returns the download filename for a confirmation document.
func (s *DocumentService) Filename(rmaNumber string) string {
	return rmaNumber + ".txt"
}

// PayloadFromTicket assembles the document payload for a persisted ticket.
// customer supplies the default return address and may be nil when the
// ticket carries an alternative address.
func PayloadFromTicket(ticket *domain.Ticket, customer *domain.Customer) DocumentPayload {
	address := ticket.ReturnAddress
	if ticket.UseDefaultAddress && customer != nil {
		address = customer.DefaultAddress
	}
	if ticket.ContactPerson != "" {
		address = ticket.ContactPerson + "\n" + address
	}
	return DocumentPayload{
		RMANumber:      ticket.RMANumber,
		CustomerNumber: ticket.CustomerNumber,
		ErrorType:      ticket.Selection.ErrorTypeTitle,
		ShippingMethod: ticket.ShippingMethod,
		Address:        address,
	}
}
