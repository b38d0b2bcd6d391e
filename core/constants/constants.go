package constants

// Context keys set by middleware.
const (
	ContextTokenData = "token_data"
)

// Database pool settings.
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Pagination defaults.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)

// Asynq task types.
const (
	TaskReminderDispatch = "reminder:dispatch"
)

// Redis key prefixes.
const (
	CacheKeyDayEvents    = "calendar:day:"
	CacheKeyReminderSent = "reminder:sent:"
)

// Reminder dispatch dedupe TTL in hours.
const ReminderDedupeTTLHours = 48
