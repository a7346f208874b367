package config

import (
	"fmt"
	"time"

	config "github.com/0xsj/overwatch-pkg/config"
)

// Storage drivers.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config holds all configuration for the kernel service.
type Config struct {
	Server          ServerConfig
	Storage         StorageConfig
	Database        DatabaseConfig
	Redis           RedisConfig
	NATS            NATSConfig
	Telemetry       TelemetryConfig
	ServiceIdentity ServiceIdentityConfig
}

// ServerConfig holds gRPC server configuration.
type ServerConfig struct {
	Host              string        `env:"SERVER_HOST" default:"0.0.0.0"`
	Port              int           `env:"SERVER_PORT" default:"50052"`
	EnableReflection  bool          `env:"SERVER_ENABLE_REFLECTION" default:"true"`
	EnableHealthCheck bool          `env:"SERVER_ENABLE_HEALTH_CHECK" default:"true"`
	ShutdownTimeout   time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`
}

// StorageConfig selects the user store.
type StorageConfig struct {
	Driver string `env:"STORAGE_DRIVER" default:"postgres"`
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host              string        `env:"DATABASE_HOST" default:"localhost"`
	Port              int           `env:"DATABASE_PORT" default:"5450"`
	User              string        `env:"DATABASE_USER" default:"overwatch"`
	Password          string        `env:"DATABASE_PASSWORD" default:"overwatch" sensitive:"true"`
	Database          string        `env:"DATABASE_NAME" default:"overwatch_kernel"`
	SSLMode           string        `env:"DATABASE_SSL_MODE" default:"disable"`
	MaxConns          int           `env:"DATABASE_MAX_CONNS" default:"25"`
	MinConns          int           `env:"DATABASE_MIN_CONNS" default:"5"`
	MaxConnLifetime   time.Duration `env:"DATABASE_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime   time.Duration `env:"DATABASE_MAX_CONN_IDLE_TIME" default:"30m"`
	HealthCheckPeriod time.Duration `env:"DATABASE_HEALTH_CHECK_PERIOD" default:"1m"`
	AutoMigrate       bool          `env:"DATABASE_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration. An empty Host disables the cache.
type RedisConfig struct {
	Host         string        `env:"REDIS_HOST" default:"localhost"`
	Port         int           `env:"REDIS_PORT" default:"6390"`
	Password     string        `env:"REDIS_PASSWORD" default:"" sensitive:"true"`
	DB           int           `env:"REDIS_DB" default:"0"`
	PoolSize     int           `env:"REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `env:"REDIS_MIN_IDLE_CONNS" default:"5"`
	DialTimeout  time.Duration `env:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `env:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `env:"REDIS_WRITE_TIMEOUT" default:"3s"`
	UserTTL      time.Duration `env:"REDIS_USER_TTL" default:"1h"`
}

// NATSConfig holds NATS configuration. An empty URL disables publishing.
type NATSConfig struct {
	URL           string        `env:"NATS_URL" default:"nats://localhost:4230"`
	SubjectPrefix string        `env:"NATS_SUBJECT_PREFIX" default:"overwatch"`
	MaxReconnects int           `env:"NATS_MAX_RECONNECTS" default:"10"`
	ReconnectWait time.Duration `env:"NATS_RECONNECT_WAIT" default:"2s"`
}

// TelemetryConfig holds tracing configuration.
type TelemetryConfig struct {
	Enabled      bool   `env:"TELEMETRY_ENABLED" default:"false"`
	ServiceName  string `env:"TELEMETRY_SERVICE_NAME" default:"overwatch-kernel"`
	Environment  string `env:"TELEMETRY_ENVIRONMENT" default:"development"`
	OTLPEndpoint string `env:"TELEMETRY_OTLP_ENDPOINT" default:""`
	OTLPInsecure bool   `env:"TELEMETRY_OTLP_INSECURE" default:"true"`
}

// ServiceIdentityConfig holds service identity configuration.
type ServiceIdentityConfig struct {
	ID                string `env:"SERVICE_IDENTITY_ID" default:"kernel-service"`
	Name              string `env:"SERVICE_IDENTITY_NAME" default:"kernel"`
	PrivateKeyPath    string `env:"SERVICE_IDENTITY_PRIVATE_KEY_PATH" default:""`
	PrivateKeyBase64  string `env:"SERVICE_IDENTITY_PRIVATE_KEY" default:"" sensitive:"true"`
	GenerateIfMissing bool   `env:"SERVICE_IDENTITY_GENERATE_IF_MISSING" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.WithPrefix("KERNEL_")); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad loads configuration and panics on error.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Validate checks cross-field constraints the struct tags cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Telemetry.Enabled && c.Telemetry.ServiceName == "" {
		return fmt.Errorf("telemetry enabled without a service name")
	}
	return nil
}

// Address returns the gRPC server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ConnectionString returns the PostgreSQL connection string.
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// Enabled reports whether a Redis host is configured.
func (c *RedisConfig) Enabled() bool {
	return c.Host != ""
}

// Address returns the Redis address.
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Enabled reports whether a NATS URL is configured.
func (c *NATSConfig) Enabled() bool {
	return c.URL != ""
}

// HasPrivateKey returns true if a private key is configured.
func (c *ServiceIdentityConfig) HasPrivateKey() bool {
	return c.PrivateKeyBase64 != "" || c.PrivateKeyPath != ""
}
