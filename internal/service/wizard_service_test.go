package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/events"
	"github.com/spec-kit/rma-portal/internal/wizard"
)

type wizardFixture struct {
	service  *WizardService
	tickets  *stubTicketRepository
	activity *stubActivityRepository
}

func newWizardFixture(t *testing.T) *wizardFixture {
	t.Helper()
	logger := zap.NewNop()
	tickets := &stubTicketRepository{}
	activity := &stubActivityRepository{}
	dispatcher := events.NewInMemoryDispatcher()
	NewActivityService(dispatcher, activity, logger).RegisterHandlers()

	errorTypes := &stubErrorTypeRepository{errorTypes: []domain.ErrorType{
		{ID: "et-1", Title: "Display flickert", Category: "display", IsActive: true},
		{ID: "et-2", Title: "Pixelfehler", Category: "panel", IsActive: true},
		{ID: "et-off", Title: "Altes Modell", Category: "display", IsActive: false},
	}}
	customers := &stubCustomerRepository{customers: map[string]domain.Customer{
		"KD1": {CustomerNumber: "KD1", Name: "Muster GmbH", DefaultAddress: "Musterweg 5", IsActive: true},
		"KD9": {CustomerNumber: "KD9", Name: "Ehemalig", IsActive: false},
	}}

	return &wizardFixture{
		service: NewWizardService(WizardDependencies{
			Sessions:   wizard.NewStore(time.Hour),
			Catalog:    NewCatalogService(errorTypes, nil, 0, logger),
			Customers:  NewCustomerService(customers),
			RMA:        NewRMAService(tickets),
			TicketRepo: tickets,
			Dispatcher: dispatcher,
			Logger:     logger,
		}),
		tickets:  tickets,
		activity: activity,
	}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

// walkToSummary drives a fresh session to the summary step.
func (f *wizardFixture) walkToSummary(t *testing.T) string {
	t.Helper()
	ctx := context.Background()
	view := f.service.StartSession()
	id := view.ID

	if _, err := f.service.SelectCategory(ctx, id, "et-1"); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if _, err := f.service.Advance(ctx, id); err != nil {
		t.Fatalf("advance to troubleshooting: %v", err)
	}
	if _, err := f.service.UpdateForm(id, wizard.FormUpdate{
		StepsCompleted: &[]string{"Signalkabel beidseitig neu einstecken"},
		Resolved:       boolPtr(false),
	}); err != nil {
		t.Fatalf("record troubleshooting: %v", err)
	}
	if _, err := f.service.Advance(ctx, id); err != nil {
		t.Fatalf("advance to customer: %v", err)
	}
	if _, valid, err := f.service.ValidateCustomer(ctx, id, "KD1"); err != nil || !valid {
		t.Fatalf("validate customer: valid=%v err=%v", valid, err)
	}
	if _, err := f.service.Advance(ctx, id); err != nil {
		t.Fatalf("advance to shipping: %v", err)
	}
	if _, err := f.service.UpdateForm(id, wizard.FormUpdate{
		ShippingMethod:    strPtr("Abholung"),
		UseDefaultAddress: boolPtr(true),
	}); err != nil {
		t.Fatalf("record shipping: %v", err)
	}
	view, err := f.service.Advance(ctx, id)
	if err != nil {
		t.Fatalf("advance to summary: %v", err)
	}
	if view.CurrentStep != wizard.StepSummary {
		t.Fatalf("expected summary, got %s", view.CurrentStep)
	}
	return id
}

func TestSubmitCreatesTicketAndLogsActivity(t *testing.T) {
	f := newWizardFixture(t)
	id := f.walkToSummary(t)

	ticket, err := f.service.Submit(context.Background(), id)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}

	if ticket.RMANumber == "" {
		t.Fatal("submitted ticket has no RMA number")
	}
	if ticket.Status != domain.TicketStatusActive {
		t.Fatalf("new ticket not active: %s", ticket.Status)
	}
	if ticket.Selection.ErrorTypeTitle != "Display flickert" {
		t.Fatalf("selection not resolved from catalog: %+v", ticket.Selection)
	}
	if ticket.Selection.Outcome != domain.ResolutionUnresolved {
		t.Fatalf("unexpected outcome %s", ticket.Selection.Outcome)
	}

	stored, err := f.tickets.GetByRMANumber(context.Background(), ticket.RMANumber)
	if err != nil {
		t.Fatalf("ticket not persisted: %v", err)
	}
	if stored.CustomerNumber != "KD1" {
		t.Fatalf("wrong customer on stored ticket: %s", stored.CustomerNumber)
	}

	entries := f.activity.byType(domain.ActivityTicketCreated)
	if len(entries) != 1 {
		t.Fatalf("expected 1 ticket_created activity entry, got %d", len(entries))
	}
	if entries[0].EntityID == nil || *entries[0].EntityID != ticket.RMANumber {
		t.Fatalf("activity entry not linked to ticket: %+v", entries[0])
	}

	view, err := f.service.GetSession(id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if view.CurrentStep != wizard.StepDoneSubmitted {
		t.Fatalf("session not terminal after submit: %s", view.CurrentStep)
	}

	// A second submission must not create another ticket.
	if _, err := f.service.Submit(context.Background(), id); err == nil {
		t.Fatal("second submit succeeded")
	}
	if counts, _ := f.tickets.CountByStatus(context.Background()); counts.Active != 1 {
		t.Fatalf("expected exactly 1 ticket, got %d", counts.Active)
	}
}

func TestSubmitBlockedBeforeSummary(t *testing.T) {
	f := newWizardFixture(t)
	view := f.service.StartSession()

	_, err := f.service.Submit(context.Background(), view.ID)
	var blockedErr *wizard.BlockedError
	if !errors.As(err, &blockedErr) {
		t.Fatalf("expected BlockedError, got %v", err)
	}
	if counts, _ := f.tickets.CountByStatus(context.Background()); counts.Active != 0 {
		t.Fatal("blocked submit persisted a ticket")
	}
}

func TestResolvedFlowCreatesNoTicket(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	view := f.service.StartSession()
	id := view.ID

	if _, err := f.service.SelectCategory(ctx, id, "et-1"); err != nil {
		t.Fatalf("select category: %v", err)
	}
	if _, err := f.service.Advance(ctx, id); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := f.service.UpdateForm(id, wizard.FormUpdate{Resolved: boolPtr(true)}); err != nil {
		t.Fatalf("record resolution: %v", err)
	}
	view, err := f.service.Advance(ctx, id)
	if err != nil {
		t.Fatalf("advance to terminal: %v", err)
	}
	if view.CurrentStep != wizard.StepDoneResolved {
		t.Fatalf("expected done_resolved, got %s", view.CurrentStep)
	}

	if counts, _ := f.tickets.CountByStatus(ctx); counts.Active != 0 || counts.Archived != 0 {
		t.Fatalf("resolved flow created tickets: %+v", counts)
	}
	if entries := f.activity.byType(domain.ActivityWizardResolved); len(entries) != 1 {
		t.Fatalf("expected 1 wizard_resolved entry, got %d", len(entries))
	}
}

func TestSelectCategoryRejectsInactiveErrorType(t *testing.T) {
	f := newWizardFixture(t)
	view := f.service.StartSession()

	_, err := f.service.SelectCategory(context.Background(), view.ID, "et-off")
	if !errors.Is(err, ErrUnknownErrorType) {
		t.Fatalf("expected ErrUnknownErrorType, got %v", err)
	}
}

func TestValidateCustomerKeysResultToInput(t *testing.T) {
	f := newWizardFixture(t)
	ctx := context.Background()
	id := f.service.StartSession().ID

	_, valid, err := f.service.ValidateCustomer(ctx, id, "KD1")
	if err != nil || !valid {
		t.Fatalf("known active customer rejected: valid=%v err=%v", valid, err)
	}

	// Typing a new number afterwards leaves the old result stale.
	view, err := f.service.UpdateForm(id, wizard.FormUpdate{CustomerNumber: strPtr("KD2")})
	if err != nil {
		t.Fatalf("update form: %v", err)
	}
	if view.Validation == nil || view.Validation.CustomerNumber != "KD1" {
		t.Fatalf("validation record changed by typing: %+v", view.Validation)
	}
	if view.Validation.CustomerNumber == view.Form.CustomerNumber {
		t.Fatal("stale validation matches new input")
	}

	// Inactive and unknown numbers validate to false without error.
	_, valid, err = f.service.ValidateCustomer(ctx, id, "KD9")
	if err != nil || valid {
		t.Fatalf("inactive customer accepted: valid=%v err=%v", valid, err)
	}
	_, valid, err = f.service.ValidateCustomer(ctx, id, "does-not-exist")
	if err != nil || valid {
		t.Fatalf("unknown customer accepted: valid=%v err=%v", valid, err)
	}
}

func TestAbandonDiscardsSessionWithoutSideEffects(t *testing.T) {
	f := newWizardFixture(t)
	id := f.walkToSummary(t)

	f.service.Abandon(id)

	if _, err := f.service.GetSession(id); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if counts, _ := f.tickets.CountByStatus(context.Background()); counts.Active != 0 {
		t.Fatal("abandoned session persisted a ticket")
	}
}

func TestSubmitFailureLeavesSessionRetryable(t *testing.T) {
	f := newWizardFixture(t)
	id := f.walkToSummary(t)

	f.tickets.createErr = errStoreDown
	if _, err := f.service.Submit(context.Background(), id); err == nil {
		t.Fatal("submit succeeded despite store failure")
	}

	view, err := f.service.GetSession(id)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if view.CurrentStep != wizard.StepSummary {
		t.Fatalf("failed submit moved the session to %s", view.CurrentStep)
	}

	f.tickets.createErr = nil
	if _, err := f.service.Submit(context.Background(), id); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}
