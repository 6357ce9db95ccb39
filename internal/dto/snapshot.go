package dto

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
)

// SnapshotDTO represents a daily status snapshot in API responses
type SnapshotDTO struct {
	ID        uint64            `json:"id"`
	UserID    uint64            `json:"user_id"`
	Date      time.Time         `json:"date"`
	Completed models.StringList `json:"completed"`
	Pending   models.StringList `json:"pending"`
	Blockers  models.StringList `json:"blockers"`
	User      *UserDTO          `json:"user,omitempty"`
}

// ToSnapshotDTO converts a StatusSnapshot model to SnapshotDTO
func ToSnapshotDTO(snapshot models.StatusSnapshot) SnapshotDTO {
	dto := SnapshotDTO{
		ID:        snapshot.ID,
		UserID:    snapshot.UserID,
		Date:      snapshot.Date,
		Completed: snapshot.Completed,
		Pending:   snapshot.Pending,
		Blockers:  snapshot.Blockers,
	}

	// Include owner if preloaded
	if snapshot.User.ID != 0 {
		user := ToUserDTO(snapshot.User)
		dto.User = &user
	}

	return dto
}

// ToSnapshotDTOs converts a slice of snapshots
func ToSnapshotDTOs(snapshots []models.StatusSnapshot) []SnapshotDTO {
	dtos := make([]SnapshotDTO, len(snapshots))
	for i, snapshot := range snapshots {
		dtos[i] = ToSnapshotDTO(snapshot)
	}
	return dtos
}
