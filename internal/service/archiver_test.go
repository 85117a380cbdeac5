package service

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/observability"
)

func newArchiver(tickets *stubTicketRepository, activity *stubActivityRepository, maxAge time.Duration, now time.Time) *ArchiverService {
	return NewArchiverService(ArchiverDependencies{
		TicketRepo:   tickets,
		ActivityRepo: activity,
		Metrics:      observability.NewMetrics(),
		MaxAge:       maxAge,
		Logger:       zap.NewNop(),
		Now:          func() time.Time { return now },
	})
}

func activeTicket(rma string, createdAt time.Time) domain.Ticket {
	return domain.Ticket{
		RMANumber: rma,
		Status:    domain.TicketStatusActive,
		CreatedAt: createdAt,
	}
}

func TestArchiveOldTicketsSelectsByAge(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tickets := &stubTicketRepository{tickets: []domain.Ticket{
		activeTicket("RMA-OLD", now.Add(-10*24*time.Hour)),
		activeTicket("RMA-NEW", now.Add(-1*24*time.Hour)),
	}}
	activity := &stubActivityRepository{}
	archiver := newArchiver(tickets, activity, 7*24*time.Hour, now)

	count, err := archiver.ArchiveOldTickets(context.Background())
	if err != nil {
		t.Fatalf("archive failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 archived ticket, got %d", count)
	}

	old, _ := tickets.GetByRMANumber(context.Background(), "RMA-OLD")
	if old.Status != domain.TicketStatusArchived {
		t.Fatalf("old ticket not archived: %s", old.Status)
	}
	if old.ArchivedAt == nil {
		t.Fatal("archived ticket missing archived_at")
	}
	recent, _ := tickets.GetByRMANumber(context.Background(), "RMA-NEW")
	if recent.Status != domain.TicketStatusActive {
		t.Fatalf("recent ticket archived: %s", recent.Status)
	}
}

func TestArchiveOldTicketsIsIdempotent(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tickets := &stubTicketRepository{tickets: []domain.Ticket{
		activeTicket("RMA-1", now.Add(-100*24*time.Hour)),
		activeTicket("RMA-2", now.Add(-200*24*time.Hour)),
	}}
	activity := &stubActivityRepository{}
	archiver := newArchiver(tickets, activity, 90*24*time.Hour, now)

	first, err := archiver.ArchiveOldTickets(context.Background())
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first != 2 {
		t.Fatalf("expected 2 archived on first run, got %d", first)
	}

	second, err := archiver.ArchiveOldTickets(context.Background())
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if second != 0 {
		t.Fatalf("second run re-archived %d tickets", second)
	}
}

func TestArchiveLogsOnlyWhenWorkWasDone(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	tickets := &stubTicketRepository{tickets: []domain.Ticket{
		activeTicket("RMA-1", now.Add(-100*24*time.Hour)),
	}}
	activity := &stubActivityRepository{}
	archiver := newArchiver(tickets, activity, 90*24*time.Hour, now)

	if _, err := archiver.ArchiveOldTickets(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	entries := activity.byType(domain.ActivityTicketsArchived)
	if len(entries) != 1 {
		t.Fatalf("expected 1 archive log entry, got %d", len(entries))
	}
	if entries[0].UserType != domain.ActorSystem {
		t.Fatalf("archive entry not attributed to the system: %s", entries[0].UserType)
	}

	// Idle run: no additional entry.
	if _, err := archiver.ArchiveOldTickets(context.Background()); err != nil {
		t.Fatalf("idle run failed: %v", err)
	}
	if got := len(activity.byType(domain.ActivityTicketsArchived)); got != 1 {
		t.Fatalf("idle run wrote a log entry, total now %d", got)
	}
}

func TestArchiveFailureIsLoggedAndReturned(t *testing.T) {
	now := time.Now()
	tickets := &stubTicketRepository{archiveErr: errStoreDown}
	activity := &stubActivityRepository{}
	archiver := newArchiver(tickets, activity, 90*24*time.Hour, now)

	count, err := archiver.ArchiveOldTickets(context.Background())
	if err == nil {
		t.Fatal("expected failure to propagate")
	}
	if count != 0 {
		t.Fatalf("failed run reported %d archived tickets", count)
	}

	entries := activity.byType(domain.ActivitySystemError)
	if len(entries) != 1 {
		t.Fatalf("expected 1 error entry, got %d", len(entries))
	}
	if entries[0].Metadata["error"] != errStoreDown.Error() {
		t.Fatalf("error detail missing from log entry: %v", entries[0].Metadata)
	}
}
