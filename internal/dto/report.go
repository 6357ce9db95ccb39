package dto

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/reports"
)

// EmployeeRowDTO is one team-board line in API responses
type EmployeeRowDTO struct {
	User         UserDTO               `json:"user"`
	LastActivity *time.Time            `json:"last_activity"`
	Completed    []reports.BoardItem   `json:"completed"`
	Pending      []reports.BoardItem   `json:"pending"`
	Blockers     []reports.BlockerItem `json:"blockers"`
	IsMissing    bool                  `json:"is_missing"`
}

// ToEmployeeRowDTOs converts team board rows, narrowing the embedded user
// to its public identity
func ToEmployeeRowDTOs(rows []reports.EmployeeRow) []EmployeeRowDTO {
	dtos := make([]EmployeeRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = EmployeeRowDTO{
			User:         ToUserDTO(row.User),
			LastActivity: row.LastActivity,
			Completed:    row.Completed,
			Pending:      row.Pending,
			Blockers:     row.Blockers,
			IsMissing:    row.IsMissing,
		}
	}
	return dtos
}

// PendingGroupDTO is one employee's outstanding work in a pending report
type PendingGroupDTO struct {
	User  UserDTO               `json:"user"`
	Tasks []reports.PendingTask `json:"tasks"`
}

// ToPendingGroupDTOs converts pending-report groups
func ToPendingGroupDTOs(groups []reports.PendingGroup) []PendingGroupDTO {
	dtos := make([]PendingGroupDTO, len(groups))
	for i, group := range groups {
		dtos[i] = PendingGroupDTO{
			User:  ToUserDTO(group.User),
			Tasks: group.Tasks,
		}
	}
	return dtos
}
