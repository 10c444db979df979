package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "fablab"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultFabLabName = "UPC Terrassa"

	// The lab takes reservations only inside this daily window.
	DefaultOpeningTime = "09:00"
	DefaultClosingTime = "13:30"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSlotLockTTL           = 10 * time.Second
	DefaultSlotLockRetryInterval = 25 * time.Millisecond
	DefaultSlotLockMaxRetries    = 40
)
