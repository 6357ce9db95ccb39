package reports

import (
	"sort"
	"time"

	"github.com/teampulse/daily-report-api/internal/models"
)

// HistoryItem is the per-task projection carried inside a day bucket.
type HistoryItem struct {
	ID             uint64     `json:"id"`
	Text           string     `json:"text"`
	BlockerReason  string     `json:"blocker_reason"`
	ManagerReply   string     `json:"manager_reply"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ManagerReplyAt *time.Time `json:"manager_reply_at,omitempty"`
}

// DayBucket groups one calendar day of a user's tasks by status.
type DayBucket struct {
	Date      time.Time     `json:"date"`
	Completed []HistoryItem `json:"completed"`
	Pending   []HistoryItem `json:"pending"`
	Blockers  []HistoryItem `json:"blockers"`
}

const dayKeyLayout = "2006-01-02"

// GroupHistory buckets tasks by the local calendar day of their UpdatedAt
// and splits each bucket by status. The bucket date is taken from the first
// task seen for that day. Tasks with an unrecognized status land in no
// bucket; the count of those is returned so callers can log it. Buckets are
// ordered most recent day first.
func GroupHistory(tasks []models.Task) ([]DayBucket, int) {
	byDay := make(map[string]*DayBucket)
	dropped := 0

	for _, task := range tasks {
		key := task.UpdatedAt.Format(dayKeyLayout)
		bucket, ok := byDay[key]
		if !ok {
			bucket = &DayBucket{
				Date:      task.UpdatedAt,
				Completed: []HistoryItem{},
				Pending:   []HistoryItem{},
				Blockers:  []HistoryItem{},
			}
			byDay[key] = bucket
		}

		item := HistoryItem{
			ID:             task.ID,
			Text:           task.Text,
			BlockerReason:  task.BlockerReason,
			ManagerReply:   task.ManagerReply,
			UpdatedAt:      task.UpdatedAt,
			ManagerReplyAt: task.ManagerReplyAt,
		}

		switch task.Status {
		case models.TaskStatusCompleted:
			bucket.Completed = append(bucket.Completed, item)
		case models.TaskStatusPending:
			bucket.Pending = append(bucket.Pending, item)
		case models.TaskStatusWaiting:
			bucket.Blockers = append(bucket.Blockers, item)
		default:
			dropped++
		}
	}

	history := make([]DayBucket, 0, len(byDay))
	for _, bucket := range byDay {
		history = append(history, *bucket)
	}

	sort.Slice(history, func(i, j int) bool {
		return history[i].Date.After(history[j].Date)
	})

	return history, dropped
}
