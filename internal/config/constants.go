package config

const (
	envPort        = "PORT"
	envLogLevel    = "LOG_LEVEL"
	envLogFormat   = "LOG_FORMAT"
	envAdminToken  = "ADMIN_TOKEN"
	envBackend     = "STORAGE_BACKEND"
	envStoragePath = "STORAGE_PATH"
	envStorageKey  = "STORAGE_KEY"
	envRetries     = "STORAGE_RETRY_ATTEMPTS"
	envRetryDelay  = "STORAGE_RETRY_BACKOFF"
	envMinLatency  = "FACADE_MIN_LATENCY"
	envMaxLatency  = "FACADE_MAX_LATENCY"
	envFailureRate = "FACADE_FAILURE_RATE"
	envCurrentUser = "CURRENT_USER_ID"
	envMetricsOn   = "METRICS_ENABLED"
	envMetricsPort = "METRICS_PORT"

	defaultPort = "4000"
)

// Storage backends accepted by STORAGE_BACKEND.
const (
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Default storage locations per backend when STORAGE_PATH is unset.
const (
	defaultFileDir    = "data"
	defaultBoltPath   = "data/sportconnect.bolt"
	defaultSQLitePath = "data/sportconnect.db"
)
