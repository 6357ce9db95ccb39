package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
	"github.com/teampulse/daily-report-api/internal/reports"
	"github.com/teampulse/daily-report-api/internal/repository"
	"github.com/teampulse/daily-report-api/internal/utils"
	"gorm.io/gorm"
)

// SnapshotService maintains the one-per-user-per-day free-text status
// summaries, an independent reporting channel beside the task collection.
type SnapshotService struct {
	snapshotRepo repository.SnapshotRepository
}

// NewSnapshotService creates a new SnapshotService
func NewSnapshotService(snapshotRepo repository.SnapshotRepository) *SnapshotService {
	return &SnapshotService{
		snapshotRepo: snapshotRepo,
	}
}

// UpsertInput represents a day's free-text status lists
type UpsertInput struct {
	UserID    uint64
	Completed models.StringList
	Pending   models.StringList
	Blockers  models.StringList
}

// Upsert stores today's snapshot for the user, overwriting the existing one
// if the user already posted today. The returned flag reports whether a new
// snapshot was created. Find-then-save is not atomic: two concurrent
// upserts for the same day can race, last write wins.
func (s *SnapshotService) Upsert(input UpsertInput, now time.Time) (*models.StatusSnapshot, bool, error) {
	from, to := reports.DayBounds(now)

	existing, err := s.snapshotRepo.FindForDay(input.UserID, from, to)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up snapshot: %w", err)
	}

	if existing != nil {
		existing.Completed = input.Completed
		existing.Pending = input.Pending
		existing.Blockers = input.Blockers
		if err := s.snapshotRepo.Update(existing); err != nil {
			return nil, false, fmt.Errorf("failed to update snapshot: %w", err)
		}
		return existing, false, nil
	}

	snapshot := &models.StatusSnapshot{
		UserID:    input.UserID,
		Date:      now,
		Completed: input.Completed,
		Pending:   input.Pending,
		Blockers:  input.Blockers,
	}
	if err := s.snapshotRepo.Create(snapshot); err != nil {
		return nil, false, fmt.Errorf("failed to create snapshot: %w", err)
	}

	return snapshot, true, nil
}

// Today returns the user's snapshot for the current day, or nil if none
// was posted yet
func (s *SnapshotService) Today(userID uint64, now time.Time) (*models.StatusSnapshot, error) {
	from, to := reports.DayBounds(now)

	snapshot, err := s.snapshotRepo.FindForDay(userID, from, to)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up snapshot: %w", err)
	}

	return snapshot, nil
}

// History returns all of the user's snapshots, newest first
func (s *SnapshotService) History(userID uint64) ([]models.StatusSnapshot, error) {
	snapshots, err := s.snapshotRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, nil
}

// TeamSnapshots returns a page of every user's snapshots with owner
// identity attached, newest first
func (s *SnapshotService) TeamSnapshots(params utils.PaginationParams) ([]models.StatusSnapshot, int64, error) {
	snapshots, total, err := s.snapshotRepo.ListAll(params)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list snapshots: %w", err)
	}
	return snapshots, total, nil
}
