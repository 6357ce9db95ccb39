package repository

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(id uint64) (*models.Task, error) {
	var task models.Task
	if err := r.db.First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// Update persists changes to a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete removes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}

// ListCreatedBetween returns an owner's tasks created inside the window
func (r *GormTaskRepository) ListCreatedBetween(ownerID uint64, from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_id = ?", ownerID).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Order("updated_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// ListByOwner returns all of an owner's tasks
func (r *GormTaskRepository) ListByOwner(ownerID uint64) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_id = ?", ownerID).
		Order("updated_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// ListByOwnerSince returns an owner's tasks updated at or after since
func (r *GormTaskRepository) ListByOwnerSince(ownerID uint64, since time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Where("owner_id = ?", ownerID).
		Where("updated_at >= ?", since).
		Order("updated_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// ListBoardTasks returns the tasks relevant to today's team board: anything
// updated inside the window plus anything carrying a manager reply, so
// reply threads stay visible after their day has passed.
func (r *GormTaskRepository) ListBoardTasks(from, to time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Owner").
		Where("(updated_at >= ? AND updated_at <= ?) OR manager_reply <> ''", from, to).
		Order("updated_at DESC").
		Find(&tasks).Error
	return tasks, err
}

// ListOutstandingSince returns pending/waiting tasks updated at or after since
func (r *GormTaskRepository) ListOutstandingSince(since time.Time) ([]models.Task, error) {
	var tasks []models.Task
	err := r.db.
		Preload("Owner").
		Where("status IN ?", []models.TaskStatus{models.TaskStatusPending, models.TaskStatusWaiting}).
		Where("updated_at >= ?", since).
		Order("updated_at DESC").
		Find(&tasks).Error
	return tasks, err
}
