package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rma-portal/internal/repository"
	"github.com/spec-kit/rma-portal/internal/service"
)

// DocumentsHandler serves downloadable confirmation documents.
type DocumentsHandler struct {
	tickets   repository.TicketRepository
	customers *service.CustomerService
	documents *service.DocumentService
}

// NewDocumentsHandler constructs handler.
func NewDocumentsHandler(tickets repository.TicketRepository, customers *service.CustomerService, documents *service.DocumentService) *DocumentsHandler {
	return &DocumentsHandler{tickets: tickets, customers: customers, documents: documents}
}

// Download GET /api/tickets/:rma/document. The filename embeds the RMA
// number.
func (h *DocumentsHandler) Download(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetByRMANumber(c.UserContext(), c.Params("rma"))
	if err != nil {
		return err
	}

	customer, err := h.customers.Lookup(c.UserContext(), ticket.CustomerNumber)
	if err != nil {
		return err
	}

	content, err := h.documents.Render(service.PayloadFromTicket(ticket, customer))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentType, "text/plain; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+h.documents.Filename(ticket.RMANumber)+`"`)
	return c.SendString(content)
}
