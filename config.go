package itemfetch

import (
	"time"
)

// Config holds the configuration for an itemfetch Client. It is read once at
// construction time; the Client keeps its own parsed copy, so mutating a
// Config after New has no effect on an existing client.
type Config struct {
	// BasePath is the root URL of the items endpoint (no trailing slash).
	BasePath string `json:"base_path" yaml:"base_path"`
	// Timeout bounds each individual attempt, e.g. "5s".
	Timeout string `json:"timeout" yaml:"timeout"`
	// RetryCount is the total attempt budget per request (minimum 1).
	RetryCount int `json:"retry_count" yaml:"retry_count"`
	// Cache configures the response cache (optional).
	Cache CacheConfig `json:"cache,omitempty" yaml:"cache,omitempty"`
	// Breaker configures the transport circuit breaker (optional).
	Breaker *BreakerConfig `json:"breaker,omitempty" yaml:"breaker,omitempty"`
	// Auth configures transport authentication (optional).
	Auth *AuthConfig `json:"auth,omitempty" yaml:"auth,omitempty"`
	// FetchLog configures persistent fetch-outcome logging (optional).
	FetchLog *FetchLogConfig `json:"fetch_log,omitempty" yaml:"fetch_log,omitempty"`
}

// CacheConfig controls response caching.
type CacheConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`
	// TTL is how long a cached response stays fresh, e.g. "60s".
	TTL string `json:"ttl,omitempty" yaml:"ttl,omitempty"`
}

// BreakerConfig controls the circuit breaker guarding the transport.
type BreakerConfig struct {
	// FailureThreshold is the number of consecutive failures that opens
	// the circuit.
	FailureThreshold int `json:"failure_threshold" yaml:"failure_threshold"`
	// Cooldown is how long the circuit stays open before probing again,
	// e.g. "30s".
	Cooldown string `json:"cooldown" yaml:"cooldown"`
}

// AuthConfig selects how the HTTP transport authenticates. Token takes
// precedence; the client-credentials fields are used when Token is empty.
type AuthConfig struct {
	Token        string `json:"token,omitempty" yaml:"token,omitempty"`
	TokenURL     string `json:"token_url,omitempty" yaml:"token_url,omitempty"`
	ClientID     string `json:"client_id,omitempty" yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
}

// FetchLogConfig selects the persistent fetch log backend.
type FetchLogConfig struct {
	// Driver is "sqlite" or "postgres".
	Driver string `json:"driver" yaml:"driver"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

// Default durations applied when the corresponding config field is empty.
const (
	DefaultTimeout  = 5 * time.Second
	DefaultCacheTTL = 60 * time.Second
)
