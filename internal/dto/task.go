package dto

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID             uint64            `json:"id"`
	OwnerID        uint64            `json:"owner_id"`
	Text           string            `json:"text"`
	Status         models.TaskStatus `json:"status"`
	BlockerReason  string            `json:"blocker_reason"`
	ManagerReply   string            `json:"manager_reply"`
	ManagerReplyAt *time.Time        `json:"manager_reply_at,omitempty"`
	AssignedByID   *uint64           `json:"assigned_by_id,omitempty"`
	IsAssigned     bool              `json:"is_assigned"`
	Deadline       string            `json:"deadline,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
	Owner          *UserDTO          `json:"owner,omitempty"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:             task.ID,
		OwnerID:        task.OwnerID,
		Text:           task.Text,
		Status:         task.Status,
		BlockerReason:  task.BlockerReason,
		ManagerReply:   task.ManagerReply,
		ManagerReplyAt: task.ManagerReplyAt,
		AssignedByID:   task.AssignedByID,
		IsAssigned:     task.IsAssigned,
		Deadline:       task.Deadline,
		CreatedAt:      task.CreatedAt,
		UpdatedAt:      task.UpdatedAt,
	}

	// Include owner if preloaded
	if task.Owner.ID != 0 {
		owner := ToUserDTO(task.Owner)
		dto.Owner = &owner
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}
