package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort       = "PORT"
	EnvLogLevel   = "LOG_LEVEL"
	EnvFabLabName = "FABLAB_NAME"

	EnvOpeningTime = "OPENING_TIME"
	EnvClosingTime = "CLOSING_TIME"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvSlotLockTTL           = "SLOT_LOCK_TTL"
	EnvSlotLockRetryInterval = "SLOT_LOCK_RETRY_INTERVAL"
	EnvSlotLockMaxRetries    = "SLOT_LOCK_MAX_RETRIES"
)
