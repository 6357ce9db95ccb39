package database

import (
	"fmt"

	"gorm.io/gorm"
)

// AddIndexes creates the composite indexes the report queries lean on.
// AutoMigrate already covers the single-column tags. MySQL has no
// CREATE INDEX IF NOT EXISTS, so it gets an information_schema probe to
// keep the bootstrap idempotent.
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		table   string
		name    string
		columns string
	}{
		// Pending reports: outstanding statuses in a time window
		{"tasks", "idx_tasks_status_updated_at", "status, updated_at"},
		// Per-owner history
		{"tasks", "idx_tasks_owner_id_updated_at", "owner_id, updated_at"},

		// Snapshot day-window lookup
		{"status_snapshots", "idx_snapshots_user_id_date", "user_id, date"},
	}

	isMySQL := db.Dialector.Name() == "mysql"

	for _, idx := range indexes {
		if isMySQL {
			var count int64
			err := db.Raw(`
				SELECT COUNT(*)
				FROM information_schema.statistics
				WHERE table_schema = DATABASE() AND table_name = ? AND index_name = ?
			`, idx.table, idx.name).Scan(&count).Error

			if err != nil {
				return fmt.Errorf("failed to check index %s: %w", idx.name, err)
			}

			if count > 0 {
				continue
			}

			sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
			if err := db.Exec(sql).Error; err != nil {
				return fmt.Errorf("failed to create index %s: %w", idx.name, err)
			}
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
