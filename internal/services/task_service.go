package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
	"github.com/teampulse/daily-report-api/internal/reports"
	"github.com/teampulse/daily-report-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrTaskTextRequired     = errors.New("task text is required")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrTaskPermissionDenied = errors.New("user does not have permission to modify this task")
	ErrAssignTargetRequired = errors.New("an employee to assign the task to is required")
	ErrAssignTargetNotFound = errors.New("assignment target does not exist")
)

// TaskService handles task reporting business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	OwnerID       uint64
	Text          string
	Status        models.TaskStatus
	BlockerReason string
}

// AssignTaskInput represents a manager creating a task on an employee's behalf
type AssignTaskInput struct {
	ManagerID uint64
	OwnerID   uint64
	Text      string
	Deadline  string
}

// UpdateTaskInput carries the fields a caller wants to change. Nil means
// "leave untouched".
type UpdateTaskInput struct {
	Text          *string
	Status        *models.TaskStatus
	BlockerReason *string
	ManagerReply  *string
}

// MyTasks returns the owner's tasks created during the current day,
// most recently updated first.
func (s *TaskService) MyTasks(ownerID uint64, now time.Time) ([]models.Task, error) {
	from, to := reports.DayBounds(now)

	tasks, err := s.taskRepo.ListCreatedBetween(ownerID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	return tasks, nil
}

// CreateTask creates a new self-reported task
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrTaskTextRequired
	}

	if input.Status == "" {
		input.Status = models.TaskStatusPending
	}
	if !models.ValidTaskStatus(input.Status) {
		return nil, ErrInvalidTaskStatus
	}

	task := &models.Task{
		OwnerID:       input.OwnerID,
		Text:          input.Text,
		Status:        input.Status,
		BlockerReason: input.BlockerReason,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// AssignTask creates a pending task for an employee on a manager's behalf
func (s *TaskService) AssignTask(input AssignTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, ErrTaskTextRequired
	}
	if input.OwnerID == 0 {
		return nil, ErrAssignTargetRequired
	}

	if _, err := s.userRepo.FindByID(input.OwnerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignTargetNotFound
		}
		return nil, fmt.Errorf("failed to verify assignment target: %w", err)
	}

	task := &models.Task{
		OwnerID:      input.OwnerID,
		Text:         input.Text,
		Status:       models.TaskStatusPending,
		AssignedByID: &input.ManagerID,
		IsAssigned:   true,
		Deadline:     input.Deadline,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create assigned task: %w", err)
	}

	return task, nil
}

// UpdateTask applies changes to a task. Owners may edit text, status and
// blocker reason; managers may write a reply, which stamps ManagerReplyAt
// server-side. Anyone else is rejected.
func (s *TaskService) UpdateTask(taskID uint64, actor *models.User, input UpdateTaskInput, now time.Time) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	isOwner := task.OwnerID == actor.ID

	if (input.Text != nil || input.Status != nil || input.BlockerReason != nil) && !isOwner {
		return nil, ErrTaskPermissionDenied
	}
	if input.ManagerReply != nil && !actor.IsManager() {
		return nil, ErrTaskPermissionDenied
	}
	if !isOwner && !actor.IsManager() {
		return nil, ErrTaskPermissionDenied
	}

	if input.Text != nil {
		if strings.TrimSpace(*input.Text) == "" {
			return nil, ErrTaskTextRequired
		}
		task.Text = *input.Text
	}
	if input.Status != nil {
		if !models.ValidTaskStatus(*input.Status) {
			return nil, ErrInvalidTaskStatus
		}
		task.Status = *input.Status
	}
	if input.BlockerReason != nil {
		task.BlockerReason = *input.BlockerReason
	}
	if input.ManagerReply != nil && *input.ManagerReply != "" {
		task.ManagerReply = *input.ManagerReply
		task.ManagerReplyAt = &now
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask removes a task if the actor owns it
func (s *TaskService) DeleteTask(taskID, actorID uint64) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.OwnerID != actorID {
		return ErrTaskPermissionDenied
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// MyHistory returns the owner's full task history grouped into day buckets
func (s *TaskService) MyHistory(ownerID uint64) ([]reports.DayBucket, error) {
	tasks, err := s.taskRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	history, dropped := reports.GroupHistory(tasks)
	if dropped > 0 {
		log.Printf("history: dropped %d task(s) with unrecognized status for owner %d", dropped, ownerID)
	}

	return history, nil
}

// EmployeeHistory returns an employee's day-bucketed history inside the
// requested report range
func (s *TaskService) EmployeeHistory(userID uint64, rng string, now time.Time) ([]reports.DayBucket, error) {
	since := reports.RangeStart(rng, now)

	tasks, err := s.taskRepo.ListByOwnerSince(userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	history, dropped := reports.GroupHistory(tasks)
	if dropped > 0 {
		log.Printf("history: dropped %d task(s) with unrecognized status for owner %d", dropped, userID)
	}

	return history, nil
}
