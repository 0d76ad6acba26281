package constants

// Context keys
const (
	ContextTokenData = "token_data"
)

// Database pool settings
const (
	DatabaseSSLMode         = "disable"
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
)

// Time formats used at the API boundary. Dates are timezone-naive calendar
// dates and times are wall-clock HH:MM; the matching engine never performs
// timezone arithmetic.
const (
	DateFormat          = "2006-01-02"
	TimeFormat          = "15:04"
	TimeFormatSeconds   = "15:04:05"
	ReferenceCodeLength = 7
)

// Matching cache
const (
	MatchingCacheTTLSeconds = 300
)
