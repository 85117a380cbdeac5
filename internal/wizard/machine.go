package wizard

import (
	"errors"
	"fmt"
	"strings"
)

// Step is a position in the intake flow.
type Step string

const (
	StepCategory        Step = "category"
	StepTroubleshooting Step = "troubleshooting"
	StepCustomer        Step = "customer"
	StepShipping        Step = "shipping"
	StepSummary         Step = "summary"
	// Terminal steps. done_resolved means troubleshooting fixed the
	// problem and no ticket exists; done_submitted means a ticket was
	// created.
	StepDoneResolved  Step = "done_resolved"
	StepDoneSubmitted Step = "done_submitted"
)

// IsTerminal reports whether the flow has ended at this step.
func (s Step) IsTerminal() bool {
	return s == StepDoneResolved || s == StepDoneSubmitted
}

// BlockedError explains why a forward transition is not yet allowed. It is
// surfaced inline to the customer and never aborts the session.
type BlockedError struct {
	Step   Step
	Reason string
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("step %s blocked: %s", e.Step, e.Reason)
}

func blocked(step Step, reason string) error {
	return &BlockedError{Step: step, Reason: reason}
}

// ErrTerminalStep is returned for navigation attempts on a finished session.
var ErrTerminalStep = errors.New("wizard session already completed")

// guardFunc checks whether a transition may fire. nil means allowed; a
// BlockedError names the missing input.
type guardFunc func(s *Session) error

// transition is one row of the state-machine table.
type transition struct {
	from  Step
	to    Step
	guard guardFunc
}

// transitions is the complete forward table. Rows sharing a from-step are
// tried in order and the first row whose guard passes wins, which is how
// the troubleshooting step branches on the resolution answer.
var transitions = []transition{
	{from: StepCategory, to: StepTroubleshooting, guard: guardCategorySelected},
	{from: StepTroubleshooting, to: StepDoneResolved, guard: guardResolved(true)},
	{from: StepTroubleshooting, to: StepCustomer, guard: guardResolved(false)},
	{from: StepCustomer, to: StepShipping, guard: guardCustomerValidated},
	{from: StepShipping, to: StepSummary, guard: guardShippingComplete},
}

// previous maps each step to its predecessor. Terminal steps have none.
var previous = map[Step]Step{
	StepTroubleshooting: StepCategory,
	StepCustomer:        StepTroubleshooting,
	StepShipping:        StepCustomer,
	StepSummary:         StepShipping,
}

func guardCategorySelected(s *Session) error {
	if strings.TrimSpace(s.Form.ErrorTypeID) == "" {
		return blocked(StepCategory, "an error type must be selected")
	}
	return nil
}

// guardResolved requires an explicit answer to the resolution question and
// matches it against want. Marking troubleshooting steps complete is never
// required: forward movement hinges on the answer alone.
func guardResolved(want bool) guardFunc {
	return func(s *Session) error {
		if s.Form.Resolved == nil {
			return blocked(StepTroubleshooting, "the resolution question must be answered")
		}
		if *s.Form.Resolved != want {
			return blocked(StepTroubleshooting, "resolution answer does not select this branch")
		}
		return nil
	}
}

// guardCustomerValidated passes only when a validation result exists for
// exactly the customer number currently in the form. A result recorded for
// an earlier input never unblocks a newer one.
func guardCustomerValidated(s *Session) error {
	number := strings.TrimSpace(s.Form.CustomerNumber)
	if number == "" {
		return blocked(StepCustomer, "a customer number is required")
	}
	if s.validation == nil || s.validation.CustomerNumber != number {
		return blocked(StepCustomer, "customer number has not been validated")
	}
	if !s.validation.Valid {
		return blocked(StepCustomer, "customer number is not valid")
	}
	return nil
}

func guardShippingComplete(s *Session) error {
	if strings.TrimSpace(s.Form.ShippingMethod) == "" {
		return blocked(StepShipping, "a shipping method is required")
	}
	if s.Form.UseDefaultAddress == nil {
		return blocked(StepShipping, "an address choice is required")
	}
	if !*s.Form.UseDefaultAddress {
		if strings.TrimSpace(s.Form.ReturnAddress) == "" {
			return blocked(StepShipping, "an alternative return address is required")
		}
		if strings.TrimSpace(s.Form.ContactPerson) == "" {
			return blocked(StepShipping, "a contact person is required for an alternative address")
		}
	}
	return nil
}

// GuardSubmit is the full ticket-creation precondition: category selected,
// troubleshooting explicitly unresolved, customer number validated and
// shipping complete. It is also evaluated by Submit on the summary step.
func GuardSubmit(s *Session) error {
	if err := guardCategorySelected(s); err != nil {
		return err
	}
	if err := guardResolved(false)(s); err != nil {
		return err
	}
	if err := guardCustomerValidated(s); err != nil {
		return err
	}
	return guardShippingComplete(s)
}

// Advance moves the session one step forward. When several transitions
// leave the current step, the first one whose guard passes is taken; if
// none passes, the first guard's error is returned and the session stays
// where it is.
func (s *Session) Advance() (Step, error) {
	if s.CurrentStep.IsTerminal() {
		return s.CurrentStep, ErrTerminalStep
	}
	if s.CurrentStep == StepSummary {
		return s.CurrentStep, blocked(StepSummary, "the summary step completes via submit")
	}

	var firstErr error
	for _, t := range transitions {
		if t.from != s.CurrentStep {
			continue
		}
		err := t.guard(s)
		if err == nil {
			s.CurrentStep = t.to
			return s.CurrentStep, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	if firstErr == nil {
		firstErr = blocked(s.CurrentStep, "no transition defined")
	}
	return s.CurrentStep, firstErr
}

// Back returns to the previous step. It is always permitted outside the
// terminal steps and never touches accumulated form data.
func (s *Session) Back() (Step, error) {
	if s.CurrentStep.IsTerminal() {
		return s.CurrentStep, ErrTerminalStep
	}
	prev, ok := previous[s.CurrentStep]
	if !ok {
		return s.CurrentStep, blocked(s.CurrentStep, "already at the first step")
	}
	s.CurrentStep = prev
	return s.CurrentStep, nil
}

// ChangeCategory records a new category selection. If the selection
// actually changed, the category-dependent answers (sub-option,
// troubleshooting progress, resolution flag) are cleared so a ticket can
// never mix answers from two catalogs; customer and shipping fields are
// kept because they do not depend on the category.
func (s *Session) ChangeCategory(category, errorTypeID string) error {
	if s.CurrentStep.IsTerminal() {
		return ErrTerminalStep
	}
	changed := s.Form.ErrorTypeID != errorTypeID
	s.Form.Category = category
	s.Form.ErrorTypeID = errorTypeID
	if changed {
		s.Form.clearCategoryDependents()
	}
	return nil
}
