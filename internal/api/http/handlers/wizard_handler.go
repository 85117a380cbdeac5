package handlers

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/rma-portal/internal/api/dto"
	"github.com/spec-kit/rma-portal/internal/service"
	"github.com/spec-kit/rma-portal/internal/wizard"
	apperrors "github.com/spec-kit/rma-portal/pkg/util"
)

// WizardHandler drives intake sessions over HTTP.
type WizardHandler struct {
	wizard *service.WizardService
}

// NewWizardHandler constructs handler.
func NewWizardHandler(wizardService *service.WizardService) *WizardHandler {
	return &WizardHandler{wizard: wizardService}
}

// StartSession POST /api/wizard/sessions.
func (h *WizardHandler) StartSession(c *fiber.Ctx) error {
	view := h.wizard.StartSession()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": sessionResponse(view)})
}

// GetSession GET /api/wizard/sessions/:id.
func (h *WizardHandler) GetSession(c *fiber.Ctx) error {
	view, err := h.wizard.GetSession(c.Params("id"))
	if err != nil {
		return mapWizardError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(view)})
}

// UpdateForm PATCH /api/wizard/sessions/:id/form. Partial body; absent
// fields keep their accumulated value.
func (h *WizardHandler) UpdateForm(c *fiber.Ctx) error {
	var req dto.FormUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	view, err := h.wizard.UpdateForm(c.Params("id"), formUpdate(req))
	if err != nil {
		return mapWizardError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(view)})
}

// SelectCategory POST /api/wizard/sessions/:id/category.
func (h *WizardHandler) SelectCategory(c *fiber.Ctx) error {
	var req dto.SelectCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.ErrorTypeID) == "" {
		return apperrors.NewValidationError("error_type_id required", nil)
	}
	view, err := h.wizard.SelectCategory(c.UserContext(), c.Params("id"), req.ErrorTypeID)
	if err != nil {
		return mapWizardError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(view)})
}

// Advance POST /api/wizard/sessions/:id/advance.
func (h *WizardHandler) Advance(c *fiber.Ctx) error {
	view, err := h.wizard.Advance(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapWizardError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(view)})
}

// Back POST /api/wizard/sessions/:id/back.
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	view, err := h.wizard.Back(c.Params("id"))
	if err != nil {
		return mapWizardError(err)
	}
	return c.JSON(fiber.Map{"data": sessionResponse(view)})
}

// ValidateCustomer POST /api/wizard/sessions/:id/validate-customer.
func (h *WizardHandler) ValidateCustomer(c *fiber.Ctx) error {
	var req dto.ValidateCustomerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.CustomerNumber) == "" {
		return apperrors.NewValidationError("customer_number required", nil)
	}
	view, valid, err := h.wizard.ValidateCustomer(c.UserContext(), c.Params("id"), req.CustomerNumber)
	if err != nil {
		return mapWizardError(err)
	}
	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"session": sessionResponse(view),
			"valid":   valid,
		},
	})
}

// Submit POST /api/wizard/sessions/:id/submit.
func (h *WizardHandler) Submit(c *fiber.Ctx) error {
	ticket, err := h.wizard.Submit(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapWizardError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": ticketDetail(ticket)})
}

// Abandon DELETE /api/wizard/sessions/:id.
func (h *WizardHandler) Abandon(c *fiber.Ctx) error {
	h.wizard.Abandon(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

func mapWizardError(err error) error {
	var blockedErr *wizard.BlockedError
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return apperrors.NewNotFound("wizard session", nil)
	case errors.Is(err, service.ErrUnknownErrorType):
		return apperrors.NewValidationError("unknown or inactive error type", nil)
	case errors.Is(err, wizard.ErrTerminalStep):
		return apperrors.NewConflict("session already completed", nil)
	case errors.As(err, &blockedErr):
		return apperrors.NewStepBlocked(blockedErr.Reason, map[string]any{"step": string(blockedErr.Step)})
	default:
		return err
	}
}

func formUpdate(req dto.FormUpdateRequest) wizard.FormUpdate {
	return wizard.FormUpdate{
		Category:          req.Category,
		ErrorTypeID:       req.ErrorTypeID,
		SubOption:         req.SubOption,
		StepsCompleted:    req.StepsCompleted,
		Resolved:          req.Resolved,
		CustomerNumber:    req.CustomerNumber,
		ShippingMethod:    req.ShippingMethod,
		UseDefaultAddress: req.UseDefaultAddress,
		ReturnAddress:     req.ReturnAddress,
		ContactPerson:     req.ContactPerson,
	}
}

func sessionResponse(view service.SessionView) dto.SessionResponse {
	resp := dto.SessionResponse{
		ID:          view.ID,
		CurrentStep: string(view.CurrentStep),
		RMANumber:   view.RMANumber,
		Form: dto.FormDataResponse{
			Category:          view.Form.Category,
			ErrorTypeID:       view.Form.ErrorTypeID,
			SubOption:         view.Form.SubOption,
			StepsCompleted:    view.Form.StepsCompleted,
			Resolved:          view.Form.Resolved,
			CustomerNumber:    view.Form.CustomerNumber,
			ShippingMethod:    view.Form.ShippingMethod,
			UseDefaultAddress: view.Form.UseDefaultAddress,
			ReturnAddress:     view.Form.ReturnAddress,
			ContactPerson:     view.Form.ContactPerson,
		},
	}
	if view.Validation != nil {
		resp.Validation = &dto.ValidationResponse{
			CustomerNumber: view.Validation.CustomerNumber,
			Valid:          view.Validation.Valid,
		}
	}
	return resp
}
