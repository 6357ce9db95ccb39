package database

import (
	"gorm.io/gorm"

	"github.com/teampulse/daily-report-api/internal/utils"
)

// Paginate turns already-validated page/limit params into an offset/limit
// scope, for listings too large to return whole.
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}
