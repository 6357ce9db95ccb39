package services

import (
	"fmt"
	"log"
	"time"

	"github.com/teampulse/daily-report-api/internal/reports"
	"github.com/teampulse/daily-report-api/internal/repository"
)

// ReportService builds the manager-facing aggregate views
type ReportService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewReportService creates a new ReportService
func NewReportService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *ReportService {
	return &ReportService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// TeamBoard returns one row per roster employee describing what they
// reported today, with employees who reported nothing flagged as missing
func (s *ReportService) TeamBoard(now time.Time) ([]reports.EmployeeRow, error) {
	employees, err := s.userRepo.ListEmployees()
	if err != nil {
		return nil, fmt.Errorf("failed to load employee roster: %w", err)
	}

	from, to := reports.DayBounds(now)
	tasks, err := s.taskRepo.ListBoardTasks(from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to load board tasks: %w", err)
	}

	rows, dropped := reports.BuildTeamBoard(employees, tasks, now)
	if dropped > 0 {
		log.Printf("team board: dropped %d task(s) with unrecognized status", dropped)
	}

	return rows, nil
}

// PendingReport returns outstanding work inside the report range grouped
// by employee
func (s *ReportService) PendingReport(rng string, now time.Time) ([]reports.PendingGroup, error) {
	since := reports.RangeStart(rng, now)

	tasks, err := s.taskRepo.ListOutstandingSince(since)
	if err != nil {
		return nil, fmt.Errorf("failed to load outstanding tasks: %w", err)
	}

	return reports.GroupPending(tasks), nil
}
