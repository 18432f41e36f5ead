package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/goran-ethernal/MercuryBridge/internal/common"
	"github.com/goran-ethernal/MercuryBridge/internal/logger"
)

// Environment variables that carry the indexing service secrets.
// They override anything set in a configuration file.
const (
	EnvMercuryKey        = "MERCURY_KEY"
	EnvMercuryURL        = "MERCURY_URL"
	EnvMercuryEmail      = "MERCURY_EMAIL"
	EnvMercuryPassword   = "MERCURY_PASSWORD"
	EnvMercuryGraphQLURL = "MERCURY_GRAPHQL_URL"
)

const (
	defaultGraphQLPort      = "5000"
	defaultSubscriptionPort = "3030"
	subscriptionPath        = "/newsubscription"
	graphQLPath             = "/graphql"
)

// Config represents the complete configuration for the MercuryBridge.
type Config struct {
	// Mercury contains the indexing service connection settings
	Mercury MercuryConfig `yaml:"mercury" json:"mercury" toml:"mercury"`

	// API contains the HTTP API configuration
	API *APIConfig `yaml:"api,omitempty" json:"api,omitempty" toml:"api,omitempty"`

	// Ledger contains the optional subscription ledger configuration
	Ledger *LedgerConfig `yaml:"ledger,omitempty" json:"ledger,omitempty" toml:"ledger,omitempty"`

	// Logging contains logging configuration
	Logging *LoggingConfig `yaml:"logging,omitempty" json:"logging,omitempty" toml:"logging,omitempty"`

	// Metrics contains Prometheus metrics configuration
	Metrics *MetricsConfig `yaml:"metrics,omitempty" json:"metrics,omitempty" toml:"metrics,omitempty"`
}

// MercuryConfig represents the indexing service connection settings.
type MercuryConfig struct {
	// BaseURL is the indexing service host, without port (e.g. https://api.mercurydata.app)
	BaseURL string `yaml:"base_url" json:"base_url" toml:"base_url"`

	// GraphQLURL is the query/mutation endpoint. Defaults to {base_url}:5000/graphql
	GraphQLURL string `yaml:"graphql_url" json:"graphql_url" toml:"graphql_url"`

	// SubscriptionURL is the subscription creation endpoint. Defaults to {base_url}:3030/newsubscription
	SubscriptionURL string `yaml:"subscription_url" json:"subscription_url" toml:"subscription_url"`

	// AccessKey is the initial bearer token used until the token is renewed
	AccessKey string `yaml:"access_key" json:"access_key" toml:"access_key"`

	// Email and Password are the credentials used to renew the token
	Email    string `yaml:"email" json:"email" toml:"email"`
	Password string `yaml:"password" json:"password" toml:"password"`

	// RequestTimeout is the deadline applied to every backend call
	RequestTimeout common.Duration `yaml:"request_timeout" json:"request_timeout" toml:"request_timeout"`

	// MaxSingleSize is the max_single_size used for token event subscriptions
	MaxSingleSize int `yaml:"max_single_size" json:"max_single_size" toml:"max_single_size"`
}

// ApplyEnv overrides secrets with values found through lookup (normally os.LookupEnv).
func (m *MercuryConfig) ApplyEnv(lookup func(string) (string, bool)) {
	overrides := map[string]*string{
		EnvMercuryKey:        &m.AccessKey,
		EnvMercuryURL:        &m.BaseURL,
		EnvMercuryEmail:      &m.Email,
		EnvMercuryPassword:   &m.Password,
		EnvMercuryGraphQLURL: &m.GraphQLURL,
	}

	for env, field := range overrides {
		if v, ok := lookup(env); ok && v != "" {
			*field = v
		}
	}
}

// ApplyDefaults sets default values for optional mercury configuration fields.
func (m *MercuryConfig) ApplyDefaults() {
	if m.BaseURL != "" {
		if base, err := common.NormalizeBaseURL(m.BaseURL); err == nil {
			m.BaseURL = base
		}
	}
	if m.GraphQLURL == "" && m.BaseURL != "" {
		m.GraphQLURL = m.BaseURL + ":" + defaultGraphQLPort + graphQLPath
	}
	if m.SubscriptionURL == "" && m.BaseURL != "" {
		m.SubscriptionURL = m.BaseURL + ":" + defaultSubscriptionPort + subscriptionPath
	}
	if m.RequestTimeout.Duration == 0 {
		m.RequestTimeout = common.NewDuration(30 * time.Second) //nolint:mnd
	}
	if m.MaxSingleSize == 0 {
		m.MaxSingleSize = 200
	}
}

// HasCredentials reports whether token renewal is possible.
func (m *MercuryConfig) HasCredentials() bool {
	return m.Email != "" && m.Password != ""
}

// Validate checks if the mercury configuration is valid.
func (m *MercuryConfig) Validate() error {
	if m.AccessKey == "" {
		return fmt.Errorf("mercury.access_key is required (set %s)", EnvMercuryKey)
	}

	if m.BaseURL == "" {
		return fmt.Errorf("mercury.base_url is required (set %s)", EnvMercuryURL)
	}

	if _, err := common.NormalizeBaseURL(m.BaseURL); err != nil {
		return fmt.Errorf("mercury.base_url: %w", err)
	}

	for name, raw := range map[string]string{
		"graphql_url":      m.GraphQLURL,
		"subscription_url": m.SubscriptionURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("mercury.%s must be an absolute URL", name)
		}
	}

	if m.MaxSingleSize < 0 {
		return fmt.Errorf("mercury.max_single_size must be positive")
	}

	return nil
}

// APIConfig configures the HTTP API server.
type APIConfig struct {
	// Enabled controls whether the API server is started
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the API server to
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// ReadTimeout is the maximum duration for reading the entire request
	ReadTimeout common.Duration `yaml:"read_timeout" json:"read_timeout" toml:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out writes of the response
	WriteTimeout common.Duration `yaml:"write_timeout" json:"write_timeout" toml:"write_timeout"`

	// IdleTimeout is the maximum amount of time to wait for the next request
	IdleTimeout common.Duration `yaml:"idle_timeout" json:"idle_timeout" toml:"idle_timeout"`

	// CORS contains cross-origin settings
	CORS CORSConfig `yaml:"cors" json:"cors" toml:"cors"`
}

// CORSConfig configures cross-origin resource sharing.
type CORSConfig struct {
	Enabled        bool     `yaml:"enabled" json:"enabled" toml:"enabled"`
	AllowedOrigins []string `yaml:"allowed_origins" json:"allowed_origins" toml:"allowed_origins"`
}

// ApplyDefaults sets default values for optional API configuration fields.
func (a *APIConfig) ApplyDefaults() {
	if a.ListenAddress == "" {
		a.ListenAddress = ":8080"
	}
	if a.ReadTimeout.Duration == 0 {
		a.ReadTimeout = common.NewDuration(15 * time.Second) //nolint:mnd
	}
	if a.WriteTimeout.Duration == 0 {
		// must outlive a full backend call
		a.WriteTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.IdleTimeout.Duration == 0 {
		a.IdleTimeout = common.NewDuration(60 * time.Second) //nolint:mnd
	}
	if a.CORS.Enabled && len(a.CORS.AllowedOrigins) == 0 {
		a.CORS.AllowedOrigins = []string{"*"}
	}
}

// Validate checks if the API configuration is valid.
func (a *APIConfig) Validate() error {
	if a.Enabled && a.ListenAddress == "" {
		return fmt.Errorf("listen_address is required when the API is enabled")
	}
	return nil
}

// LedgerConfig configures the local subscription ledger.
type LedgerConfig struct {
	// Enabled controls whether write-channel attempts are recorded
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// DB contains database configuration for the ledger
	DB DatabaseConfig `yaml:"db" json:"db" toml:"db"`

	// Retention is how long attempts are kept. Zero keeps them forever
	Retention common.Duration `yaml:"retention" json:"retention" toml:"retention"`

	// PruneInterval is how often expired attempts are removed
	PruneInterval common.Duration `yaml:"prune_interval" json:"prune_interval" toml:"prune_interval"`
}

// ApplyDefaults sets default values for optional ledger configuration fields.
func (l *LedgerConfig) ApplyDefaults() {
	l.DB.ApplyDefaults()

	if l.Retention.Duration > 0 && l.PruneInterval.Duration == 0 {
		l.PruneInterval = common.NewDuration(time.Hour)
	}
}

// Validate checks if the ledger configuration is valid.
func (l *LedgerConfig) Validate() error {
	if !l.Enabled {
		return nil
	}

	if l.DB.Path == "" {
		return fmt.Errorf("ledger.db.path is required when the ledger is enabled")
	}

	if l.DB.JournalMode != "" && l.DB.JournalMode != "WAL" &&
		l.DB.JournalMode != "DELETE" && l.DB.JournalMode != "TRUNCATE" &&
		l.DB.JournalMode != "PERSIST" && l.DB.JournalMode != "MEMORY" {
		return fmt.Errorf("ledger.db.journal_mode must be one of: WAL, DELETE, TRUNCATE, PERSIST, MEMORY")
	}

	if l.DB.Synchronous != "" && l.DB.Synchronous != "FULL" &&
		l.DB.Synchronous != "NORMAL" && l.DB.Synchronous != "OFF" {
		return fmt.Errorf("ledger.db.synchronous must be one of: FULL, NORMAL, OFF")
	}

	if l.Retention.Duration < 0 || l.PruneInterval.Duration < 0 {
		return fmt.Errorf("ledger.retention and ledger.prune_interval must not be negative")
	}

	return nil
}

// DatabaseConfig represents database configuration.
type DatabaseConfig struct {
	// Path is the file path to the SQLite database
	Path string `yaml:"path" json:"path" toml:"path"`

	// JournalMode sets the SQLite journal mode (e.g., "WAL", "DELETE")
	JournalMode string `yaml:"journal_mode" json:"journal_mode" toml:"journal_mode"`

	// Synchronous sets the synchronization level ("FULL", "NORMAL", "OFF")
	Synchronous string `yaml:"synchronous" json:"synchronous" toml:"synchronous"`

	// BusyTimeout is the time in milliseconds to wait when the database is locked
	BusyTimeout int `yaml:"busy_timeout" json:"busy_timeout" toml:"busy_timeout"`

	// MaxOpenConnections is the maximum number of open database connections
	MaxOpenConnections int `yaml:"max_open_connections" json:"max_open_connections" toml:"max_open_connections"`

	// MaxIdleConnections is the maximum number of idle connections in the pool
	MaxIdleConnections int `yaml:"max_idle_connections" json:"max_idle_connections" toml:"max_idle_connections"`
}

// ApplyDefaults sets default values for optional database configuration fields.
func (d *DatabaseConfig) ApplyDefaults() {
	if d.JournalMode == "" {
		d.JournalMode = "WAL"
	}
	if d.Synchronous == "" {
		d.Synchronous = "NORMAL"
	}
	if d.BusyTimeout == 0 {
		d.BusyTimeout = 5000
	}
	if d.MaxOpenConnections == 0 {
		d.MaxOpenConnections = 10
	}
	if d.MaxIdleConnections == 0 {
		d.MaxIdleConnections = 2
	}
}

// LoggingConfig configures logging behavior with per-component log levels.
type LoggingConfig struct {
	// DefaultLevel is the default log level for all components
	// Options: "debug", "info", "warn", "error"
	DefaultLevel string `yaml:"default_level" json:"default_level" toml:"default_level"`

	// Development enables development mode (stack traces, console encoder)
	Development bool `yaml:"development" json:"development" toml:"development"`

	// ComponentLevels sets log levels for specific components
	// Available components:
	//   - mercury-client: Subscription orchestration
	//   - graphql: Structured query/mutation channel
	//   - write-channel: Subscription creation endpoint
	//   - api: HTTP API
	//   - ledger: Subscription ledger
	//   - metrics: Metrics server
	ComponentLevels map[string]string `yaml:"component_levels,omitempty" json:"component_levels,omitempty" toml:"component_levels,omitempty"` //nolint:lll
}

// ApplyDefaults sets default values for optional logging configuration fields.
func (l *LoggingConfig) ApplyDefaults() {
	if l.DefaultLevel == "" {
		l.DefaultLevel = "info"
	}
	if l.ComponentLevels == nil {
		l.ComponentLevels = make(map[string]string)
	}
}

// Validate checks if the logging configuration is valid.
func (l *LoggingConfig) Validate() error {
	if l.DefaultLevel != "" {
		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(l.DefaultLevel)]; !valid {
			return fmt.Errorf("logging.default_level: must be one of: debug, info, warn, error")
		}
	}

	for component, level := range l.ComponentLevels {
		if _, validComponent := common.AllComponents[common.ToLowerWithTrim(component)]; !validComponent {
			return fmt.Errorf("logging.component_levels: unknown component '%s'", component)
		}

		if _, valid := logger.ValidLogLevels[common.ToLowerWithTrim(level)]; !valid {
			return fmt.Errorf("logging.component_levels[%s]: must be one of: debug, info, warn, error", component)
		}
	}

	return nil
}

// GetComponentLevel returns the log level for a specific component.
// Falls back to DefaultLevel if no component-specific level is set.
func (l *LoggingConfig) GetComponentLevel(component string) string {
	if l == nil {
		return ""
	}
	if level, ok := l.ComponentLevels[component]; ok {
		return common.ToLowerWithTrim(level)
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// GetDefaultLevel returns the default log level.
func (l *LoggingConfig) GetDefaultLevel() string {
	if l == nil {
		return ""
	}
	return common.ToLowerWithTrim(l.DefaultLevel)
}

// IsDevelopment returns whether development mode is enabled.
func (l *LoggingConfig) IsDevelopment() bool {
	return l != nil && l.Development
}

// MetricsConfig configures Prometheus metrics exposition.
type MetricsConfig struct {
	// Enabled controls whether metrics collection and HTTP endpoint are active
	Enabled bool `yaml:"enabled" json:"enabled" toml:"enabled"`

	// ListenAddress is the address to bind the metrics HTTP server to
	// Format: "host:port" or ":port"
	ListenAddress string `yaml:"listen_address" json:"listen_address" toml:"listen_address"`

	// Path is the HTTP path where metrics are exposed
	Path string `yaml:"path" json:"path" toml:"path"`
}

// ApplyDefaults sets default values for optional metrics configuration fields.
func (m *MetricsConfig) ApplyDefaults() {
	if m.ListenAddress == "" {
		m.ListenAddress = ":9090"
	}
	if m.Path == "" {
		m.Path = "/metrics"
	}
}

// Validate checks if the metrics configuration is valid.
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.ListenAddress == "" {
			return fmt.Errorf("listen_address is required when metrics are enabled")
		}
		if m.Path == "" {
			return fmt.Errorf("path is required when metrics are enabled")
		}
		if m.Path[0] != '/' {
			return fmt.Errorf("path must start with '/'")
		}
	}
	return nil
}

// ApplyEnv overlays environment secrets onto the configuration.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	c.Mercury.ApplyEnv(lookup)
}

// ApplyDefaults sets default values for optional configuration fields.
func (c *Config) ApplyDefaults() {
	c.Mercury.ApplyDefaults()

	if c.API != nil {
		c.API.ApplyDefaults()
	}

	if c.Ledger != nil {
		c.Ledger.ApplyDefaults()
	}

	if c.Logging != nil {
		c.Logging.ApplyDefaults()
	}

	if c.Metrics != nil {
		c.Metrics.ApplyDefaults()
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Mercury.Validate(); err != nil {
		return err
	}

	if c.API != nil {
		if err := c.API.Validate(); err != nil {
			return fmt.Errorf("api: %w", err)
		}
	}

	if c.Ledger != nil {
		if err := c.Ledger.Validate(); err != nil {
			return err
		}
	}

	if c.Logging != nil {
		if err := c.Logging.Validate(); err != nil {
			return err
		}
	}

	if c.Metrics != nil {
		if err := c.Metrics.Validate(); err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
	}

	return nil
}
