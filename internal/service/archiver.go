package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rma-portal/internal/domain"
	"github.com/spec-kit/rma-portal/internal/observability"
	"github.com/spec-kit/rma-portal/internal/repository"
)

// ArchiverService moves old active tickets to the archive.
type ArchiverService struct {
	tickets  repository.TicketRepository
	activity repository.ActivityRepository
	metrics  *observability.Metrics
	maxAge   time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// ArchiverDependencies bundles collaborators for the archiver.
type ArchiverDependencies struct {
	TicketRepo   repository.TicketRepository
	ActivityRepo repository.ActivityRepository
	Metrics      *observability.Metrics
	MaxAge       time.Duration
	Logger       *zap.Logger
	// Now overrides the clock; nil uses time.Now.
	Now func() time.Time
}

// NewArchiverService constructs the service.
func NewArchiverService(deps ArchiverDependencies) *ArchiverService {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	return &ArchiverService{
		tickets:  deps.TicketRepo,
		activity: deps.ActivityRepo,
		metrics:  deps.Metrics,
		maxAge:   deps.MaxAge,
		logger:   deps.Logger,
		now:      now,
	}
}

// ArchiveOldTickets archives every active ticket older than the configured
// threshold and returns the count transitioned. The store applies the
// transition in one set-based statement, so consecutive or overlapping runs
// never double-archive. Idle runs (count 0) do not write a log entry.
// Failures are recorded in the activity log and returned; the next
// scheduler invocation is the retry.
func (s *ArchiverService) ArchiveOldTickets(ctx context.Context) (int, error) {
	cutoff := s.now().Add(-s.maxAge)

	count, err := s.tickets.ArchiveOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("archive sweep failed", zap.Error(err), zap.Time("cutoff", cutoff))
		s.appendFailure(ctx, err)
		return 0, err
	}

	s.metrics.RecordArchiveRun(count)

	if count == 0 {
		s.logger.Debug("archive sweep found nothing to do", zap.Time("cutoff", cutoff))
		return 0, nil
	}

	s.logger.Info("archived tickets", zap.Int("count", count), zap.Time("cutoff", cutoff))
	entry := &domain.ActivityEntry{
		ActivityType: domain.ActivityTicketsArchived,
		UserType:     domain.ActorSystem,
		Description:  fmt.Sprintf("archived %d ticket(s) older than %s", count, s.maxAge),
		Metadata: map[string]any{
			"count":  count,
			"cutoff": cutoff.Format(time.RFC3339),
		},
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		// The sweep itself succeeded; losing the log line is not a job failure.
		s.logger.Error("append archive activity", zap.Error(err))
	}
	return count, nil
}

func (s *ArchiverService) appendFailure(ctx context.Context, cause error) {
	entry := &domain.ActivityEntry{
		ActivityType: domain.ActivitySystemError,
		UserType:     domain.ActorSystem,
		Description:  "ticket archive sweep failed",
		Metadata: map[string]any{
			"error": cause.Error(),
		},
	}
	if err := s.activity.Append(ctx, entry); err != nil {
		s.logger.Error("append archive failure activity", zap.Error(err))
	}
}
