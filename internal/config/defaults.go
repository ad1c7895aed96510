package config

// Default values for Config, grouped by domain, grounded on the teacher's
// pkg/config/defaults.go constant-per-field layout.
const (
	DefaultServerWorkers        = 4
	DefaultServerMaxSourceBytes = 16 * 1024 * 1024 // 16 MiB

	DefaultCacheEnabled = true
	DefaultCacheMaxSize = 64 * 1024 * 1024 // 64 MiB

	DefaultLoggingLevel  = "info"
	DefaultLoggingFormat = "json"

	DefaultTracingEnabled      = false
	DefaultTracingOTLPEndpoint = "localhost:4317"
)
