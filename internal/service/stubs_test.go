package service

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/rma-portal/internal/domain"
)

// stubTicketRepository keeps tickets in memory and mirrors the store's
// set-based archive semantics.
type stubTicketRepository struct {
	mu      sync.Mutex
	tickets []domain.Ticket
	nextID  int

	archiveErr error
	createErr  error
}

func (s *stubTicketRepository) Create(ctx context.Context, ticket *domain.Ticket) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	ticket.ID = "id-" + strconv.Itoa(s.nextID)
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = time.Now()
	}
	s.tickets = append(s.tickets, *ticket)
	return nil
}

func (s *stubTicketRepository) GetByRMANumber(ctx context.Context, rmaNumber string) (*domain.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tickets {
		if s.tickets[i].RMANumber == rmaNumber {
			ticket := s.tickets[i]
			return &ticket, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (s *stubTicketRepository) ListActive(ctx context.Context, limit, offset int) ([]domain.Ticket, error) {
	return s.listByStatus(domain.TicketStatusActive), nil
}

func (s *stubTicketRepository) ListArchived(ctx context.Context, limit, offset int) ([]domain.Ticket, error) {
	return s.listByStatus(domain.TicketStatusArchived), nil
}

func (s *stubTicketRepository) listByStatus(status domain.TicketStatus) []domain.Ticket {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.Ticket
	for _, ticket := range s.tickets {
		if ticket.Status == status {
			result = append(result, ticket)
		}
	}
	return result
}

func (s *stubTicketRepository) ArchiveOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.archiveErr != nil {
		return 0, s.archiveErr
	}
	count := 0
	now := time.Now()
	for i := range s.tickets {
		if s.tickets[i].Status == domain.TicketStatusActive && s.tickets[i].CreatedAt.Before(cutoff) {
			s.tickets[i].Status = domain.TicketStatusArchived
			s.tickets[i].ArchivedAt = &now
			count++
		}
	}
	return count, nil
}

func (s *stubTicketRepository) ExistsRMANumber(ctx context.Context, rmaNumber string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ticket := range s.tickets {
		if ticket.RMANumber == rmaNumber {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubTicketRepository) CountByStatus(ctx context.Context) (domain.StatusCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var counts domain.StatusCounts
	for _, ticket := range s.tickets {
		switch ticket.Status {
		case domain.TicketStatusActive:
			counts.Active++
		case domain.TicketStatusArchived:
			counts.Archived++
		}
	}
	return counts, nil
}

type stubActivityRepository struct {
	mu        sync.Mutex
	entries   []domain.ActivityEntry
	appendErr error
}

func (s *stubActivityRepository) Append(ctx context.Context, entry *domain.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.appendErr != nil {
		return s.appendErr
	}
	entry.CreatedAt = time.Now()
	s.entries = append(s.entries, *entry)
	return nil
}

func (s *stubActivityRepository) List(ctx context.Context, limit, offset int) ([]domain.ActivityEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.ActivityEntry(nil), s.entries...), nil
}

func (s *stubActivityRepository) byType(activityType domain.ActivityType) []domain.ActivityEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []domain.ActivityEntry
	for _, entry := range s.entries {
		if entry.ActivityType == activityType {
			result = append(result, entry)
		}
	}
	return result
}

type stubErrorTypeRepository struct {
	errorTypes []domain.ErrorType
	listErr    error
}

func (s *stubErrorTypeRepository) ListActive(ctx context.Context) ([]domain.ErrorType, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	var result []domain.ErrorType
	for _, et := range s.errorTypes {
		if et.IsActive {
			result = append(result, et)
		}
	}
	return result, nil
}

func (s *stubErrorTypeRepository) GetByID(ctx context.Context, id string) (*domain.ErrorType, error) {
	for i := range s.errorTypes {
		if s.errorTypes[i].ID == id {
			et := s.errorTypes[i]
			return &et, nil
		}
	}
	return nil, pgx.ErrNoRows
}

type stubCustomerRepository struct {
	customers map[string]domain.Customer
	lookupErr error
}

func (s *stubCustomerRepository) GetByNumber(ctx context.Context, customerNumber string) (*domain.Customer, error) {
	if s.lookupErr != nil {
		return nil, s.lookupErr
	}
	customer, ok := s.customers[customerNumber]
	if !ok {
		return nil, nil
	}
	return &customer, nil
}

var errStoreDown = errors.New("store unavailable")
