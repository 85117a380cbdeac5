package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rma-portal/internal/api/dto"
	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/observability"
	"github.com/spec-kit/rma-portal/internal/repository"
	"github.com/spec-kit/rma-portal/internal/service"
)

// AdminHandler serves the ticket management and archive views.
type AdminHandler struct {
	tickets  repository.TicketRepository
	activity *service.ActivityService
	metrics  *observability.Metrics
}

// NewAdminHandler constructs handler.
func NewAdminHandler(tickets repository.TicketRepository, activity *service.ActivityService, metrics *observability.Metrics) *AdminHandler {
	return &AdminHandler{tickets: tickets, activity: activity, metrics: metrics}
}

// ListActiveTickets GET /admin/tickets.
func (h *AdminHandler) ListActiveTickets(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	tickets, err := h.tickets.ListActive(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(tickets)})
}

// ListArchivedTickets GET /admin/tickets/archive.
func (h *AdminHandler) ListArchivedTickets(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	tickets, err := h.tickets.ListArchived(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketSummaries(tickets)})
}

// GetTicket GET /admin/tickets/:rma.
func (h *AdminHandler) GetTicket(c *fiber.Ctx) error {
	ticket, err := h.tickets.GetByRMANumber(c.UserContext(), c.Params("rma"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// ListActivity GET /admin/activity.
func (h *AdminHandler) ListActivity(c *fiber.Ctx) error {
	limit, offset := pagination(c)
	entries, err := h.activity.List(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}
	items := make([]dto.ActivityEntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, activityResponse(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Stats GET /admin/stats.
func (h *AdminHandler) Stats(c *fiber.Ctx) error {
	counts, err := h.tickets.CountByStatus(c.UserContext())
	if err != nil {
		return err
	}
	runs, archived := h.metrics.ArchiveStats()
	return c.JSON(fiber.Map{"data": dto.StatsResponse{
		ActiveTickets:   counts.Active,
		ArchivedTickets: counts.Archived,
		ArchiveRuns:     runs,
		ArchivedByJob:   archived,
	}})
}

func pagination(c *fiber.Ctx) (limit, offset int) {
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	return pageSize, (page - 1) * pageSize
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

func ticketSummaries(tickets []domain.Ticket) []dto.TicketSummary {
	items := make([]dto.TicketSummary, 0, len(tickets))
	for i := range tickets {
		items = append(items, ticketSummary(&tickets[i]))
	}
	return items
}

func ticketSummary(ticket *domain.Ticket) dto.TicketSummary {
	return dto.TicketSummary{
		RMANumber:      ticket.RMANumber,
		CustomerNumber: ticket.CustomerNumber,
		Category:       ticket.Selection.Category,
		ErrorTypeTitle: ticket.Selection.ErrorTypeTitle,
		ShippingMethod: ticket.ShippingMethod,
		Status:         ticket.Status,
		CreatedAt:      ticket.CreatedAt,
		ArchivedAt:     ticket.ArchivedAt,
	}
}

func ticketDetail(ticket *domain.Ticket) dto.TicketDetailResponse {
	return dto.TicketDetailResponse{
		ID:             ticket.ID,
		RMANumber:      ticket.RMANumber,
		CustomerNumber: ticket.CustomerNumber,
		Selection: dto.ErrorSelectionResponse{
			Category:       ticket.Selection.Category,
			ErrorTypeID:    ticket.Selection.ErrorTypeID,
			ErrorTypeTitle: ticket.Selection.ErrorTypeTitle,
			SubOption:      ticket.Selection.SubOption,
			StepsCompleted: ticket.Selection.StepsCompleted,
			Outcome:        string(ticket.Selection.Outcome),
		},
		ShippingMethod:    ticket.ShippingMethod,
		UseDefaultAddress: ticket.UseDefaultAddress,
		ReturnAddress:     ticket.ReturnAddress,
		ContactPerson:     ticket.ContactPerson,
		Status:            ticket.Status,
		CreatedAt:         ticket.CreatedAt,
		ArchivedAt:        ticket.ArchivedAt,
	}
}

func activityResponse(entry *domain.ActivityEntry) dto.ActivityEntryResponse {
	return dto.ActivityEntryResponse{
		ID:           entry.ID,
		ActivityType: entry.ActivityType,
		UserType:     entry.UserType,
		Description:  entry.Description,
		EntityType:   entry.EntityType,
		EntityID:     entry.EntityID,
		Metadata:     entry.Metadata,
		CreatedAt:    entry.CreatedAt,
	}
}
