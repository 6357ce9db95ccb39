package reports

import (
	"sort"
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
)

// BoardItem is the per-task projection shown on the team board.
type BoardItem struct {
	ID             uint64     `json:"id"`
	Text           string     `json:"text"`
	ManagerReply   string     `json:"manager_reply"`
	ManagerReplyAt *time.Time `json:"manager_reply_at,omitempty"`
}

// BlockerItem is a board item for a waiting task, carrying its reason.
type BlockerItem struct {
	BoardItem
	Reason string `json:"reason"`
}

// EmployeeRow is one line of the team board: everything an employee
// reported today plus whether they reported at all.
type EmployeeRow struct {
	User         models.User   `json:"user"`
	LastActivity *time.Time    `json:"last_activity"`
	Completed    []BoardItem   `json:"completed"`
	Pending      []BoardItem   `json:"pending"`
	Blockers     []BlockerItem `json:"blockers"`
	IsMissing    bool          `json:"is_missing"`
}

// BuildTeamBoard merges the employee roster with the day's relevant tasks
// into one row per employee. The caller supplies tasks updated within
// today's window or carrying a manager reply (replies stay visible past
// their day). A row is "missing" until its employee owns a task created
// today; a stale task with a reply does not count as reporting in.
//
// Rows for task owners absent from the roster are synthesized; that should
// not happen with a consistent directory but keeps the board total.
//
// Returns the rows sorted (present first, then by last activity, idle rows
// last) and the count of tasks dropped for carrying an unknown status.
func BuildTeamBoard(employees []models.User, tasks []models.Task, now time.Time) ([]EmployeeRow, int) {
	startOfDay, _ := DayBounds(now)

	rowByUser := make(map[uint64]*EmployeeRow, len(employees))
	order := make([]uint64, 0, len(employees))

	for _, emp := range employees {
		rowByUser[emp.ID] = &EmployeeRow{
			User:      emp,
			Completed: []BoardItem{},
			Pending:   []BoardItem{},
			Blockers:  []BlockerItem{},
			IsMissing: true,
		}
		order = append(order, emp.ID)
	}

	dropped := 0

	for _, task := range tasks {
		row, ok := rowByUser[task.OwnerID]
		if !ok {
			row = &EmployeeRow{
				User:      task.Owner,
				Completed: []BoardItem{},
				Pending:   []BoardItem{},
				Blockers:  []BlockerItem{},
				IsMissing: true,
			}
			rowByUser[task.OwnerID] = row
			order = append(order, task.OwnerID)
		}

		// Only a task created today marks the employee as having reported.
		if !task.CreatedAt.Before(startOfDay) {
			row.IsMissing = false
		}

		if row.LastActivity == nil || task.UpdatedAt.After(*row.LastActivity) {
			t := task.UpdatedAt
			row.LastActivity = &t
		}

		item := BoardItem{
			ID:             task.ID,
			Text:           task.Text,
			ManagerReply:   task.ManagerReply,
			ManagerReplyAt: task.ManagerReplyAt,
		}

		switch task.Status {
		case models.TaskStatusCompleted:
			row.Completed = append(row.Completed, item)
		case models.TaskStatusPending:
			row.Pending = append(row.Pending, item)
		case models.TaskStatusWaiting:
			row.Blockers = append(row.Blockers, BlockerItem{
				BoardItem: item,
				Reason:    task.BlockerReason,
			})
		default:
			dropped++
		}
	}

	rows := make([]EmployeeRow, 0, len(order))
	for _, id := range order {
		rows = append(rows, *rowByUser[id])
	}

	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.IsMissing != b.IsMissing {
			return !a.IsMissing
		}
		switch {
		case a.LastActivity == nil:
			return false
		case b.LastActivity == nil:
			return true
		default:
			return a.LastActivity.After(*b.LastActivity)
		}
	})

	return rows, dropped
}
