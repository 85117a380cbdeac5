package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rma-portal/internal/api/dto"
	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/service"
)

// CatalogHandler serves the error-type catalog.
type CatalogHandler struct {
	catalog *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(catalog *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// ListErrorTypes GET /api/error-types.
func (h *CatalogHandler) ListErrorTypes(c *fiber.Ctx) error {
	listing, err := h.catalog.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	items := make([]dto.ErrorTypeResponse, 0, len(listing))
	for i := range listing {
		items = append(items, errorTypeResponse(&listing[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

func errorTypeResponse(et *domain.ErrorType) dto.ErrorTypeResponse {
	return dto.ErrorTypeResponse{
		ID:                   et.ID,
		Title:                et.Title,
		Description:          et.Description,
		Category:             et.Category,
		Icon:                 et.Icon,
		VideoURL:             et.VideoURL,
		Instructions:         et.Instructions,
		SubOptions:           et.SubOptions,
		TroubleshootingSteps: et.TroubleshootingSteps,
	}
}
