package config

import "time"

// Service Connection Defaults
const (
	// DefaultAPIURL is where the Q&A service listens in a local setup
	DefaultAPIURL = "http://localhost:8001"

	// DefaultTimeout bounds each request to the service
	DefaultTimeout = 30 * time.Second

	// DefaultHealthInterval is how often the TUI polls /health
	DefaultHealthInterval = 5 * time.Second
)

// Logging Defaults
const (
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Messaging and Storage Defaults
const (
	// DefaultKafkaTopic receives one event per finished workflow
	DefaultKafkaTopic = "vidqa.workflow-events"

	// DefaultS3Prefix is prepended to exported summary keys
	DefaultS3Prefix = "vidqa/"

	// DefaultRedisAddr is used by the mock service's Redis store
	DefaultRedisAddr = "localhost:6379"
)

// Mock Service Defaults
const (
	DefaultMockPort = 8001

	// DefaultFeedLimit caps how many feed entries one import processes
	DefaultFeedLimit = 10
)
