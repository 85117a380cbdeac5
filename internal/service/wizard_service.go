package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/events"
	"github.com/spec-kit/rma-portal/internal/repository"
	"github.com/spec-kit/rma-portal/internal/wizard"
)

// ErrSessionNotFound is returned for unknown or expired sessions.
var ErrSessionNotFound = errors.New("wizard session not found")

// ErrUnknownErrorType is returned when a category selection does not match
// an active catalog entry.
var ErrUnknownErrorType = errors.New("unknown or inactive error type")

// SessionView is a read-only snapshot handed to the transport layer.
type SessionView struct {
	ID          string
	CurrentStep wizard.Step
	Form        wizard.FormData
	Validation  *wizard.ValidationResult
	RMANumber   string
}

// WizardService coordinates intake sessions: the state machine, the
// catalog, the customer directory, the RMA generator and the ticket store.
type WizardService struct {
	sessions   *wizard.Store
	catalog    *CatalogService
	customers  *CustomerService
	rma        *RMAService
	tickets    repository.TicketRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// WizardDependencies bundles collaborators for the wizard service.
type WizardDependencies struct {
	Sessions   *wizard.Store
	Catalog    *CatalogService
	Customers  *CustomerService
	RMA        *RMAService
	TicketRepo repository.TicketRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewWizardService constructs the service.
func NewWizardService(deps WizardDependencies) *WizardService {
	return &WizardService{
		sessions:   deps.Sessions,
		catalog:    deps.Catalog,
		customers:  deps.Customers,
		rma:        deps.RMA,
		tickets:    deps.TicketRepo,
		dispatcher: deps.Dispatcher,
		logger:     deps.Logger,
	}
}

// StartSession begins a new intake at the category step.
func (s *WizardService) StartSession() SessionView {
	session := s.sessions.Start()
	return snapshot(session)
}

// GetSession returns a snapshot of a live session.
func (s *WizardService) GetSession(id string) (SessionView, error) {
	return s.withSession(id, func(session *wizard.Session) error { return nil })
}

// UpdateForm merges a partial update into the session's form data. Fields
// absent from the update keep their prior value.
func (s *WizardService) UpdateForm(id string, update wizard.FormUpdate) (SessionView, error) {
	return s.withSession(id, func(session *wizard.Session) error {
		if session.CurrentStep.IsTerminal() {
			return wizard.ErrTerminalStep
		}
		session.Form.Merge(update)
		return nil
	})
}

// SelectCategory records a category choice, validating it against the
// active catalog. Changing to a different error type clears the answers
// that depended on the old one.
func (s *WizardService) SelectCategory(ctx context.Context, id, errorTypeID string) (SessionView, error) {
	errorType, err := s.catalog.GetActive(ctx, errorTypeID)
	if err != nil {
		return SessionView{}, err
	}
	if errorType == nil {
		return SessionView{}, ErrUnknownErrorType
	}
	return s.withSession(id, func(session *wizard.Session) error {
		return session.ChangeCategory(errorType.Category, errorType.ID)
	})
}

// Advance moves the session forward through the transition table. Reaching
// the resolved terminal publishes the corresponding activity event.
func (s *WizardService) Advance(ctx context.Context, id string) (SessionView, error) {
	var resolvedForm wizard.FormData
	var reachedResolved bool
	view, err := s.withSession(id, func(session *wizard.Session) error {
		step, err := session.Advance()
		if err != nil {
			return err
		}
		if step == wizard.StepDoneResolved {
			reachedResolved = true
			resolvedForm = session.Form
		}
		return nil
	})
	if err != nil {
		return view, err
	}
	if reachedResolved {
		s.publish(ctx, events.Event{
			Type:  events.EventWizardResolved,
			Actor: domain.ActorCustomer,
			Payload: events.WizardResolvedPayload{
				SessionID:      id,
				Category:       resolvedForm.Category,
				ErrorTypeTitle: s.errorTypeTitle(ctx, resolvedForm.ErrorTypeID),
			},
		})
	}
	return view, nil
}

// Back moves the session one step backwards without touching form data.
func (s *WizardService) Back(id string) (SessionView, error) {
	return s.withSession(id, func(session *wizard.Session) error {
		_, err := session.Back()
		return err
	})
}

// ValidateCustomer looks the number up in the directory and records the
// result against that exact input. The number is also merged into the form
// so guard and result always refer to the same string.
func (s *WizardService) ValidateCustomer(ctx context.Context, id, customerNumber string) (SessionView, bool, error) {
	customerNumber = strings.TrimSpace(customerNumber)
	valid, err := s.customers.Validate(ctx, customerNumber)
	if err != nil {
		return SessionView{}, false, err
	}
	view, err := s.withSession(id, func(session *wizard.Session) error {
		session.Form.CustomerNumber = customerNumber
		session.RecordValidation(customerNumber, valid)
		return nil
	})
	return view, valid, err
}

// Submit performs the terminal submission step: the full ticket-creation
// precondition is checked, an RMA number is generated, the ticket persisted
// and the session completed. No partial ticket survives a failure.
func (s *WizardService) Submit(ctx context.Context, id string) (*domain.Ticket, error) {
	var ticket *domain.Ticket
	_, err := s.withSession(id, func(session *wizard.Session) error {
		if session.CurrentStep.IsTerminal() {
			return wizard.ErrTerminalStep
		}
		if session.CurrentStep != wizard.StepSummary {
			return &wizard.BlockedError{Step: session.CurrentStep, Reason: "submission requires the summary step"}
		}
		if err := wizard.GuardSubmit(session); err != nil {
			return err
		}

		errorType, err := s.catalog.GetActive(ctx, session.Form.ErrorTypeID)
		if err != nil {
			return err
		}
		if errorType == nil {
			return ErrUnknownErrorType
		}

		rmaNumber, err := s.rma.Generate(ctx)
		if err != nil {
			return err
		}

		candidate := buildTicket(rmaNumber, errorType, session.Form)
		if err := s.tickets.Create(ctx, candidate); err != nil {
			return err
		}

		session.CompleteSubmission(rmaNumber)
		ticket = candidate
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:  events.EventTicketCreated,
		Actor: domain.ActorCustomer,
		Payload: events.TicketCreatedPayload{
			RMANumber:      ticket.RMANumber,
			CustomerNumber: ticket.CustomerNumber,
			Category:       ticket.Selection.Category,
			ErrorTypeTitle: ticket.Selection.ErrorTypeTitle,
			ShippingMethod: ticket.ShippingMethod,
		},
	})
	return ticket, nil
}

// Abandon discards a session. Nothing is persisted.
func (s *WizardService) Abandon(id string) {
	s.sessions.Delete(id)
}

func (s *WizardService) withSession(id string, fn func(*wizard.Session) error) (SessionView, error) {
	var view SessionView
	found, err := s.sessions.With(id, func(session *wizard.Session) error {
		if err := fn(session); err != nil {
			view = snapshot(session)
			return err
		}
		view = snapshot(session)
		return nil
	})
	if !found {
		return SessionView{}, ErrSessionNotFound
	}
	return view, err
}

func (s *WizardService) errorTypeTitle(ctx context.Context, errorTypeID string) string {
	errorType, err := s.catalog.GetActive(ctx, errorTypeID)
	if err != nil || errorType == nil {
		return ""
	}
	return errorType.Title
}

func (s *WizardService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}

func buildTicket(rmaNumber string, errorType *domain.ErrorType, form wizard.FormData) *domain.Ticket {
	useDefault := form.UseDefaultAddress != nil && *form.UseDefaultAddress
	return &domain.Ticket{
		RMANumber:      rmaNumber,
		CustomerNumber: form.CustomerNumber,
		Selection: domain.ErrorSelection{
			Category:       errorType.Category,
			ErrorTypeID:    errorType.ID,
			ErrorTypeTitle: errorType.Title,
			SubOption:      form.SubOption,
			StepsCompleted: append([]string(nil), form.StepsCompleted...),
			Outcome:        domain.ResolutionUnresolved,
		},
		ShippingMethod:    form.ShippingMethod,
		UseDefaultAddress: useDefault,
		ReturnAddress:     form.ReturnAddress,
		ContactPerson:     form.ContactPerson,
		Status:            domain.TicketStatusActive,
	}
}

func snapshot(session *wizard.Session) SessionView {
	return SessionView{
		ID:          session.ID,
		CurrentStep: session.CurrentStep,
		Form:        session.Form,
		Validation:  session.Validation(),
		RMANumber:   session.RMANumber,
	}
}
