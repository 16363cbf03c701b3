package config

import (
	"fmt"
	"time"

	config "github.com/0xsj/overwatch-pkg/config"
)

// Account store backends.
const (
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
)

// Config holds all configuration for the Instagram SSO service.
type Config struct {
	HTTP      HTTPConfig
	GRPC      GRPCConfig
	Site      SiteConfig
	Instagram InstagramConfig
	Accounts  AccountsConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NATS      NATSConfig
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Host              string        `env:"HTTP_HOST" default:"0.0.0.0"`
	Port              int           `env:"HTTP_PORT" default:"4567"`
	ReadHeaderTimeout time.Duration `env:"HTTP_READ_HEADER_TIMEOUT" default:"10s"`
	ShutdownTimeout   time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" default:"30s"`
	SessionHeader     string        `env:"HTTP_SESSION_HEADER" default:"X-Account-ID"`
	SecureCookies     bool          `env:"HTTP_SECURE_COOKIES" default:"true"`
	Mode              string        `env:"HTTP_MODE" default:"release"`
}

// GRPCConfig holds the health/reflection side server configuration.
type GRPCConfig struct {
	Enabled          bool   `env:"GRPC_ENABLED" default:"true"`
	Host             string `env:"GRPC_HOST" default:"0.0.0.0"`
	Port             int    `env:"GRPC_PORT" default:"50061"`
	EnableReflection bool   `env:"GRPC_ENABLE_REFLECTION" default:"false"`
}

// SiteConfig describes the public site the plugin is mounted on.
type SiteConfig struct {
	URL string `env:"SITE_URL" default:"http://localhost:4567"`
}

// InstagramConfig holds provider credentials used when none are stored in settings.
type InstagramConfig struct {
	ClientID        string        `env:"INSTAGRAM_CLIENT_ID" default:""`
	ClientSecret    string        `env:"INSTAGRAM_CLIENT_SECRET" default:"" sensitive:"true"`
	LogAccessTokens bool          `env:"INSTAGRAM_LOG_ACCESS_TOKENS" default:"false"`
	HTTPTimeout     time.Duration `env:"INSTAGRAM_HTTP_TIMEOUT" default:"10s"`
}

// AccountsConfig selects the account store backend.
type AccountsConfig struct {
	Backend string `env:"ACCOUNTS_BACKEND" default:"redis"`
}

// DatabaseConfig holds PostgreSQL configuration, used by the postgres backend.
type DatabaseConfig struct {
	Host              string        `env:"DATABASE_HOST" default:"localhost"`
	Port              int           `env:"DATABASE_PORT" default:"5432"`
	User              string        `env:"DATABASE_USER" default:"overwatch"`
	Password          string        `env:"DATABASE_PASSWORD" default:"overwatch" sensitive:"true"`
	Database          string        `env:"DATABASE_NAME" default:"overwatch_forum"`
	SSLMode           string        `env:"DATABASE_SSL_MODE" default:"disable"`
	MaxConns          int           `env:"DATABASE_MAX_CONNS" default:"10"`
	MinConns          int           `env:"DATABASE_MIN_CONNS" default:"2"`
	MaxConnLifetime   time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime   time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" default:"30m"`
	HealthCheckPeriod time.Duration `env:"DATABASE_HEALTH_CHECK_PERIOD" default:"1m"`
	EnsureSchema      bool          `env:"DATABASE_ENSURE_SCHEMA" default:"true"`
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Host         string        `env:"REDIS_HOST" default:"localhost"`
	Port         int           `env:"REDIS_PORT" default:"6379"`
	Password     string        `env:"REDIS_PASSWORD" default:"" sensitive:"true"`
	DB           int           `env:"REDIS_DB" default:"0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

// NATSConfig holds NATS configuration.
type NATSConfig struct {
	Enabled        bool          `env:"NATS_ENABLED" default:"true"`
	URL            string        `env:"NATS_URL" default:"nats://localhost:4222"`
	SubjectPrefix  string        `env:"NATS_SUBJECT_PREFIX" default:"overwatch"`
	DeletedSubject string        `env:"NATS_USER_DELETED_SUBJECT" default:"forum.user.deleted"`
	Queue          string        `env:"NATS_QUEUE" default:"sso-instagram"`
	MaxReconnects  int           `env:"NATS_MAX_RECONNECTS" default:"10"`
	ReconnectWait  time.Duration `env:"NATS_RECONNECT_WAIT" default:"2s"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.WithPrefix("SSO_")); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error.
func MustLoad() *Config {
	cfg := &Config{}
	config.MustLoad(cfg, config.WithPrefix("SSO_"))
	if err := cfg.Validate(); err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks values the loader cannot.
func (c *Config) Validate() error {
	switch c.Accounts.Backend {
	case BackendRedis, BackendPostgres:
	default:
		return fmt.Errorf("unknown accounts backend %q", c.Accounts.Backend)
	}
	if c.Site.URL == "" {
		return fmt.Errorf("site url is required")
	}
	return nil
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Address returns the Redis address.
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DeletedSubjectFull returns the fully qualified account-deleted subject.
func (c *NATSConfig) DeletedSubjectFull() string {
	return fmt.Sprintf("%s.%s", c.SubjectPrefix, c.DeletedSubject)
}
