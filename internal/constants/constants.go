package constants

import "time"

const (
	ExternalAPITimeout = 30 * time.Second
	GeocodeTimeout     = 15 * time.Second
	DatabaseTimeout    = 5 * time.Second
	RequestTimeout     = 5 * time.Minute
)

// start.gg rate limits are per-minute buckets; a full minute of
// backoff clears any 429.
const (
	RetryAttempts = 5
	RetryDelay    = 60 * time.Second
)

const (
	EntrantsPerPage = 200
	SetsPerPage     = 50
)

const (
	DBMaxOpenConns    = 100
	DBMaxIdleConns    = 10
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	BulkConcurrency = 4
)
