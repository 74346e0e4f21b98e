// Package config provides centralized configuration management for the
// dashboard service. It loads configuration from environment variables with
// sensible defaults and validates all settings on startup to fail fast on
// misconfiguration.
package config

import (
	"strings"
	"time"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server  ServerConfig
	Upload  UploadConfig
	Dataset DatasetConfig
	Engine  EngineConfig
	Session SessionConfig
	Rate    RateLimitConfig
	CORS    CORSConfig
	Logging LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	// ReadTimeout is the maximum duration for reading request body (default: 30s)
	ReadTimeout time.Duration `env:"SERVER_READ_TIMEOUT" default:"30s"`

	// WriteTimeout is the maximum duration for writing response (default: 60s)
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"60s"`

	// IdleTimeout is the keep-alive timeout (default: 60s)
	IdleTimeout time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`

	// ShutdownTimeout is the maximum duration to wait for graceful shutdown (default: 30s)
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 60s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"60s"`
}

// UploadConfig holds dataset upload settings.
type UploadConfig struct {
	// MaxFileSize is the maximum allowed upload size in bytes (default: 100MB)
	MaxFileSize int64 `env:"UPLOAD_MAX_FILE_SIZE" default:"104857600"`
}

// DatasetConfig holds type-inference and classification settings.
type DatasetConfig struct {
	// MaxCategoricalCardinality is the distinct-value cap for a text column
	// to qualify as a filterable categorical column (default: 100)
	MaxCategoricalCardinality int `env:"DATASET_MAX_CATEGORICAL_CARDINALITY" default:"100"`

	// Synonyms extends the column-name synonym map as comma-separated
	// old=new pairs, e.g. "qty=quantity,cust=customer_name"
	Synonyms []string `env:"DATASET_SYNONYMS"`
}

// SynonymMap parses the Synonyms pairs into a lookup table. Malformed pairs
// are skipped; the built-in defaults always remain in effect underneath.
func (d DatasetConfig) SynonymMap() map[string]string {
	if len(d.Synonyms) == 0 {
		return nil
	}
	m := make(map[string]string, len(d.Synonyms))
	for _, pair := range d.Synonyms {
		old, canonical, ok := strings.Cut(pair, "=")
		if !ok || old == "" || canonical == "" {
			continue
		}
		m[old] = canonical
	}
	return m
}

// EngineConfig holds aggregation settings.
type EngineConfig struct {
	// TopN is how many groups the top-N table keeps (default: 5)
	TopN int `env:"ENGINE_TOP_N" default:"5"`

	// SampleLimit caps scatter points per render (default: 1000)
	SampleLimit int `env:"ENGINE_SAMPLE_LIMIT" default:"1000"`

	// SampleSeed makes scatter sampling reproducible (default: 1)
	SampleSeed int64 `env:"ENGINE_SAMPLE_SEED" default:"1"`

	// PreviewRows caps the filtered-data preview payload (default: 400)
	PreviewRows int `env:"ENGINE_PREVIEW_ROWS" default:"400"`
}

// SessionConfig holds in-memory session store settings.
type SessionConfig struct {
	// TTL is how long an idle session's dataset stays in memory (default: 2h)
	TTL time.Duration `env:"SESSION_TTL" default:"2h"`

	// SweepInterval is how often expired sessions are collected (default: 10m)
	SweepInterval time.Duration `env:"SESSION_SWEEP_INTERVAL" default:"10m"`

	// MaxSessions bounds concurrent in-memory datasets (default: 100)
	MaxSessions int `env:"SESSION_MAX" default:"100"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the default rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`

	// UploadLimit is requests per minute for the upload endpoint (default: 10)
	UploadLimit int `env:"RATE_LIMIT_UPLOAD" default:"10"`
}

// CORSConfig holds browser cross-origin settings for frontend clients.
type CORSConfig struct {
	// AllowedOrigins is a comma-separated origin list (default: *)
	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" default:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + itoa(c.Port)
	}
	return c.Host + ":" + itoa(c.Port)
}

// itoa converts an int to string without importing strconv in this file.
func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var b [20]byte
	n := len(b)
	neg := i < 0
	if neg {
		i = -i
	}
	for i > 0 {
		n--
		b[n] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		n--
		b[n] = '-'
	}
	return string(b[n:])
}
