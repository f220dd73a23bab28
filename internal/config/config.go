package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	Port   int    `validate:"min=1,max=65535"`
	APIKey string `validate:"required"` // API key for admin endpoints
	// TrustedProxies are the peers whose X-Forwarded-For is believed
	TrustedProxies []string
	LogLevel       string `validate:"oneof=debug info warn warning error"`
	LogFormat      string `validate:"oneof=json text"`
	LogDir         string
	Environment    string
	Version        string

	// Database
	DBDriver          string `validate:"oneof=postgres sqlite"`
	DBUser            string
	DBPassword        string
	DBHost            string `validate:"required_if=DBDriver postgres"`
	DBPort            string `validate:"required_if=DBDriver postgres"`
	DBName            string `validate:"required_if=DBDriver postgres"`
	DBMaxConns        int    `validate:"min=1"`
	DBMaxConnIdleTime time.Duration
	DBMaxConnLifetime time.Duration
	SQLitePath        string `validate:"required_if=DBDriver sqlite"`

	// Remote catalog
	SwapiBaseURL string        `validate:"required,url"`
	SwapiTimeout time.Duration `validate:"gt=0"`

	// Sync
	SyncInterval       time.Duration `validate:"gte=0"`
	SyncStaleAfter     time.Duration `validate:"gt=0"`
	SyncPruneBatchSize int           `validate:"min=1,max=30000"`
	SyncOnStartup      bool

	// Tracing
	OTelEnabled  bool
	OTelExporter string `validate:"oneof=stdout otlp"`
}

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	return load(true)
}

// LoadForTools loads the configuration for CLI tools that never serve the
// admin API, so API_KEY may be unset.
func LoadForTools() (*Config, error) {
	return load(false)
}

func load(requireAPIKey bool) (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	cfg := &Config{
		APIKey:         getEnv("API_KEY", ""),
		TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		LogLevel:       strings.ToLower(getEnv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", DefaultLogFormat)),
		LogDir:         getEnv("LOG_DIR", DefaultLogDir),
		Environment:    getEnv("ENVIRONMENT", DefaultEnvironment),
		Version:        getEnv("VERSION", DefaultVersion),

		DBDriver:          getEnv("DB_DRIVER", DBDriverPostgres),
		DBUser:            getEnv("DB_USER", "postgres"),
		DBPassword:        getEnv("DB_PASSWORD", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBName:            getEnv("DB_NAME", DefaultDBName),
		DBMaxConns:        getEnvAsInt("DB_MAX_CONNS", DefaultDBMaxConns),
		DBMaxConnIdleTime: getEnvAsDuration("DB_MAX_CONN_IDLE_TIME", DefaultDBMaxConnIdleTime),
		DBMaxConnLifetime: getEnvAsDuration("DB_MAX_CONN_LIFETIME", DefaultDBMaxConnLifetime),
		SQLitePath:        getEnv("SQLITE_PATH", DefaultSQLitePath),

		SwapiBaseURL: getEnv("SWAPI_BASE_URL", DefaultSwapiBaseURL),
		SwapiTimeout: getEnvAsDuration("SWAPI_TIMEOUT", DefaultSwapiTimeout),

		SyncInterval:       getEnvAsDuration("SYNC_INTERVAL", DefaultSyncInterval),
		SyncStaleAfter:     getEnvAsDuration("SYNC_STALE_AFTER", DefaultSyncStaleAfter),
		SyncPruneBatchSize: getEnvAsInt("SYNC_PRUNE_BATCH_SIZE", DefaultPruneBatchSize),
		SyncOnStartup:      getEnvAsBool("SYNC_ON_STARTUP", false),

		OTelEnabled:  getEnvAsBool("OTEL_ENABLED", false),
		OTelExporter: getEnv("OTEL_EXPORTER", OTelExporterStdout),
	}

	portStr := getEnv("PORT", strconv.Itoa(DefaultPort))
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT value: %w", err)
	}
	cfg.Port = port

	if requireAPIKey && cfg.APIKey == "" {
		return nil, fmt.Errorf("API_KEY environment variable must be set for security")
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsList splits a comma-separated variable, dropping empty entries
func getEnvAsList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvAsInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

func getEnvAsBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return v
}

// GetDBConnString returns the PostgreSQL connection string
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
	)
}

// IsSQLite reports whether the SQLite store is selected
func (c *Config) IsSQLite() bool {
	return c.DBDriver == DBDriverSQLite
}
