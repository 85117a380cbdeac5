package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/spec-kit/rma-portal/internal/repository"
)

// maxGenerateAttempts caps collision retries; with 40 bits of randomness a
// second attempt is already essentially unreachable.
const maxGenerateAttempts = 5

// ErrGenerateExhausted is returned when no unique number could be produced.
var ErrGenerateExhausted = errors.New("could not generate a unique rma number")

// RMAService issues ticket identifiers unique across active and archived
// tickets.
type RMAService struct {
	tickets repository.TicketRepository
}

// NewRMAService constructs the service.
func NewRMAService(tickets repository.TicketRepository) *RMAService {
	return &RMAService{tickets: tickets}
}

// Generate returns a fresh RMA number, checking the store for collisions.
func (s *RMAService) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		candidate := newRMANumber()
		exists, err := s.tickets.ExistsRMANumber(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", ErrGenerateExhausted
}

func newRMANumber() string {
	return "RMA-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:10])
}
