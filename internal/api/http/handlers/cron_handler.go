package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ticketArchiver is the slice of the archiver the cron endpoint needs.
type ticketArchiver interface {
	ArchiveOldTickets(ctx context.Context) (int, error)
}

// CronHandler exposes scheduler-triggered jobs. Responses follow the
// scheduler contract: flat JSON, not the API error envelope.
type CronHandler struct {
	archiver ticketArchiver
	logger   *zap.Logger
}

// NewCronHandler constructs handler.
func NewCronHandler(archiver ticketArchiver, logger *zap.Logger) *CronHandler {
	return &CronHandler{archiver: archiver, logger: logger}
}

// ArchiveTickets POST /api/cron/archive-tickets.
func (h *CronHandler) ArchiveTickets(c *fiber.Ctx) error {
	count, err := h.archiver.ArchiveOldTickets(c.UserContext())
	if err != nil {
		h.logger.Error("cron archive run failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"archivedCount": count,
		"timestamp":     time.Now().Format(time.RFC3339),
	})
}
