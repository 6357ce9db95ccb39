package reports

import (
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
)

// PendingTask is one outstanding task inside a pending-work report.
type PendingTask struct {
	Text   string            `json:"text"`
	Status models.TaskStatus `json:"status"`
	Date   time.Time         `json:"date"`
	Reason string            `json:"reason"`
}

// PendingGroup is the outstanding work of a single employee.
type PendingGroup struct {
	User  models.User   `json:"user"`
	Tasks []PendingTask `json:"tasks"`
}

// GroupPending groups outstanding tasks by owner. The caller preselects
// tasks with status pending or waiting updated inside the report window, so
// unlike the team board no empty rows are synthesized: only owners with at
// least one outstanding task appear. Group order follows the first task
// seen per owner, which preserves the store's recency ordering.
func GroupPending(tasks []models.Task) []PendingGroup {
	groupByUser := make(map[uint64]*PendingGroup)
	order := make([]uint64, 0)

	for _, task := range tasks {
		group, ok := groupByUser[task.OwnerID]
		if !ok {
			group = &PendingGroup{
				User:  task.Owner,
				Tasks: []PendingTask{},
			}
			groupByUser[task.OwnerID] = group
			order = append(order, task.OwnerID)
		}

		reason := ""
		if task.Status == models.TaskStatusWaiting {
			reason = task.BlockerReason
		}

		group.Tasks = append(group.Tasks, PendingTask{
			Text:   task.Text,
			Status: task.Status,
			Date:   task.UpdatedAt,
			Reason: reason,
		})
	}

	groups := make([]PendingGroup, 0, len(order))
	for _, id := range order {
		groups = append(groups, *groupByUser[id])
	}

	return groups
}
