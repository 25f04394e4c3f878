package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sakif/taskflow/internal/model"
	"github.com/sakif/taskflow/internal/repository"
	"github.com/sakif/taskflow/internal/validation"
)

// DashboardService computes the derived numbers the dashboard shows.
// Nothing here is stored or cached — every request recomputes against the
// current server clock, so "overdue" flips the moment the date does.
type DashboardService struct {
	tasks  repository.TaskRepository
	logger *slog.Logger
	now    func() time.Time // injectable clock for tests
}

func NewDashboardService(tasks repository.TaskRepository, logger *slog.Logger) *DashboardService {
	return &DashboardService{
		tasks:  tasks,
		logger: logger,
		now:    time.Now,
	}
}

// today renders the server's current date as YYYY-MM-DD — the only form the
// repository's date comparisons understand.
func (s *DashboardService) today() string {
	return s.now().Format(validation.DateLayout)
}

// Stats returns the aggregate counts for the user's dashboard.
func (s *DashboardService) Stats(ctx context.Context, userID string) (*repository.DashboardStats, error) {
	stats, err := s.tasks.DashboardStats(ctx, userID, s.today())
	if err != nil {
		s.logger.Error("failed to compute dashboard stats",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("computing dashboard stats: %w", err)
	}
	return stats, nil
}

// OverdueTasks lists the user's overdue tasks, most overdue first.
func (s *DashboardService) OverdueTasks(ctx context.Context, userID string) ([]model.TaskWithProject, error) {
	tasks, err := s.tasks.OverdueTasks(ctx, userID, s.today())
	if err != nil {
		s.logger.Error("failed to list overdue tasks",
			slog.String("userID", userID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing overdue tasks: %w", err)
	}
	return tasks, nil
}
