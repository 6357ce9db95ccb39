package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusPending   TaskStatus = "pending"
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusWaiting   TaskStatus = "waiting"
)

// ValidTaskStatus reports whether s is one of the three recognized statuses.
// Anything else is silently excluded from every report bucket.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusPending, TaskStatusCompleted, TaskStatusWaiting:
		return true
	}
	return false
}

type Task struct {
	ID            uint64     `gorm:"primarykey" json:"id"`
	OwnerID       uint64     `gorm:"not null;index" json:"owner_id"`
	Text          string     `gorm:"type:text;not null" json:"text"`
	Status        TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	BlockerReason string     `gorm:"type:text" json:"blocker_reason"`
	ManagerReply  string     `gorm:"type:text" json:"manager_reply"`
	// Stamped server-side the moment a reply is written, never client-supplied.
	ManagerReplyAt *time.Time `json:"manager_reply_at"`
	AssignedByID   *uint64    `json:"assigned_by_id"`
	IsAssigned     bool       `gorm:"not null;default:false" json:"is_assigned"`
	// Free-form display string ("by Friday noon"), not interpreted.
	Deadline  string    `gorm:"type:varchar(255)" json:"deadline"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	// Relations
	Owner      User  `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	AssignedBy *User `gorm:"foreignKey:AssignedByID" json:"assigned_by,omitempty"`
}
