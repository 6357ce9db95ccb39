package repository

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
	"github.com/teampulse/daily-report-api/internal/utils"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id uint64) (*models.Task, error)

	// Update persists changes to a task
	Update(task *models.Task) error

	// Delete removes a task
	Delete(id uint64) error

	// ListCreatedBetween returns an owner's tasks created inside the window,
	// most recently updated first
	ListCreatedBetween(ownerID uint64, from, to time.Time) ([]models.Task, error)

	// ListByOwner returns all of an owner's tasks, most recently updated first
	ListByOwner(ownerID uint64) ([]models.Task, error)

	// ListByOwnerSince returns an owner's tasks updated at or after since
	ListByOwnerSince(ownerID uint64, since time.Time) ([]models.Task, error)

	// ListBoardTasks returns tasks updated inside the window or carrying a
	// non-empty manager reply, with owners preloaded
	ListBoardTasks(from, to time.Time) ([]models.Task, error)

	// ListOutstandingSince returns pending/waiting tasks updated at or after
	// since, with owners preloaded
	ListOutstandingSince(since time.Time) ([]models.Task, error)
}

// SnapshotRepository defines the interface for status snapshot data access
type SnapshotRepository interface {
	// Create creates a new snapshot
	Create(snapshot *models.StatusSnapshot) error

	// Update persists changes to a snapshot
	Update(snapshot *models.StatusSnapshot) error

	// FindForDay finds a user's snapshot whose date falls inside the window
	FindForDay(userID uint64, from, to time.Time) (*models.StatusSnapshot, error)

	// ListByUser returns all of a user's snapshots, newest first
	ListByUser(userID uint64) ([]models.StatusSnapshot, error)

	// ListAll returns a page of snapshots with owners preloaded, newest
	// first, along with the total count
	ListAll(params utils.PaginationParams) ([]models.StatusSnapshot, int64, error)
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by email
	FindByEmail(email string) (*models.User, error)

	// ListEmployees returns the employee roster
	ListEmployees() ([]models.User, error)
}
