package constants

// Session / context keys
const (
	ContextKeyUserID  = "user_id"
	SessionCookieName = "report_session"
)

// Pagination limits
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Auth
const MinPasswordLength = 8

// Report range tokens accepted by the reporting endpoints. Unknown tokens
// fall back to RangeWeek.
const (
	RangeDay   = "day"
	RangeWeek  = "week"
	RangeMonth = "month"
)
