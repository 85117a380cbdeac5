package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/events"
	"github.com/spec-kit/rma-portal/internal/repository"
)

// ActivityService translates domain events into activity-log entries.
type ActivityService struct {
	dispatcher events.Dispatcher
	activity   repository.ActivityRepository
	logger     *zap.Logger
}

// NewActivityService creates the service.
func NewActivityService(dispatcher events.Dispatcher, activity repository.ActivityRepository, logger *zap.Logger) *ActivityService {
	return &ActivityService{
		dispatcher: dispatcher,
		activity:   activity,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (a *ActivityService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventTicketCreated, a.handleTicketCreated)
	a.dispatcher.Subscribe(events.EventWizardResolved, a.handleWizardResolved)
}

// List returns recent activity entries, newest first.
func (a *ActivityService) List(ctx context.Context, limit, offset int) ([]domain.ActivityEntry, error) {
	return a.activity.List(ctx, limit, offset)
}

func (a *ActivityService) handleTicketCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketCreatedPayload)
	if !ok {
		return nil
	}
	entityType := "ticket"
	entityID := payload.RMANumber
	entry := &domain.ActivityEntry{
		ActivityType: domain.ActivityTicketCreated,
		UserType:     domain.ActorCustomer,
		Description:  fmt.Sprintf("ticket %s created for customer %s", payload.RMANumber, payload.CustomerNumber),
		EntityType:   &entityType,
		EntityID:     &entityID,
		Metadata: map[string]any{
			"category":        payload.Category,
			"error_type":      payload.ErrorTypeTitle,
			"shipping_method": payload.ShippingMethod,
		},
	}
	if err := a.activity.Append(ctx, entry); err != nil {
		a.logger.Error("append activity for ticket_created", zap.Error(err))
		return err
	}
	return nil
}

func (a *ActivityService) handleWizardResolved(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.WizardResolvedPayload)
	if !ok {
		return nil
	}
	entry := &domain.ActivityEntry{
		ActivityType: domain.ActivityWizardResolved,
		UserType:     domain.ActorCustomer,
		Description:  "problem resolved via troubleshooting, no ticket created",
		Metadata: map[string]any{
			"category":   payload.Category,
			"error_type": payload.ErrorTypeTitle,
		},
	}
	if err := a.activity.Append(ctx, entry); err != nil {
		a.logger.Error("append activity for wizard_resolved", zap.Error(err))
		return err
	}
	return nil
}
