package repository

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/database"
	"github.com/teampulse/daily-report-api/internal/models"
	"github.com/teampulse/daily-report-api/internal/utils"
	"gorm.io/gorm"
)

// GormSnapshotRepository is a GORM implementation of SnapshotRepository
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewSnapshotRepository creates a new SnapshotRepository
func NewSnapshotRepository(db *gorm.DB) SnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Create creates a new snapshot
func (r *GormSnapshotRepository) Create(snapshot *models.StatusSnapshot) error {
	return r.db.Create(snapshot).Error
}

// Update persists changes to a snapshot
func (r *GormSnapshotRepository) Update(snapshot *models.StatusSnapshot) error {
	return r.db.Save(snapshot).Error
}

// FindForDay finds a user's snapshot whose date falls inside the window.
// An atomic conditional upsert would close the find-then-write race in
// SnapshotService; this is the seam to do it at.
func (r *GormSnapshotRepository) FindForDay(userID uint64, from, to time.Time) (*models.StatusSnapshot, error) {
	var snapshot models.StatusSnapshot
	err := r.db.
		Where("user_id = ?", userID).
		Where("date >= ? AND date <= ?", from, to).
		First(&snapshot).Error
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// ListByUser returns all of a user's snapshots, newest first
func (r *GormSnapshotRepository) ListByUser(userID uint64) ([]models.StatusSnapshot, error) {
	var snapshots []models.StatusSnapshot
	err := r.db.
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&snapshots).Error
	return snapshots, err
}

// ListAll returns a page of snapshots with owners preloaded, newest first
func (r *GormSnapshotRepository) ListAll(params utils.PaginationParams) ([]models.StatusSnapshot, int64, error) {
	var total int64
	if err := r.db.Model(&models.StatusSnapshot{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var snapshots []models.StatusSnapshot
	err := r.db.
		Preload("User").
		Order("date DESC").
		Scopes(database.Paginate(params)).
		Find(&snapshots).Error
	return snapshots, total, err
}
