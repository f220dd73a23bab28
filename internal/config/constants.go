package config

import "time"

// Database drivers
const (
	DBDriverPostgres = "postgres"
	DBDriverSQLite   = "sqlite"
)

// Trace exporters
const (
	OTelExporterStdout = "stdout"
	OTelExporterOTLP   = "otlp"
)

// Defaults
const (
	DefaultPort              = 8080
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultLogDir            = "logs"
	DefaultEnvironment       = "dev"
	DefaultVersion           = "dev"
	DefaultDBName            = "starships"
	DefaultDBMaxConns        = 20
	DefaultDBMaxConnIdleTime = 5 * time.Minute
	DefaultDBMaxConnLifetime = 30 * time.Minute
	DefaultSQLitePath        = "starships.db"
	DefaultSwapiBaseURL      = "https://www.swapi.tech/api"
	DefaultSwapiTimeout      = 30 * time.Second
	DefaultSyncInterval      = 6 * time.Hour
	DefaultSyncStaleAfter    = 5 * time.Hour
	DefaultPruneBatchSize    = 900
)

// Values shipped in .env.example that must never reach production
const (
	ExampleDBPassword = "change_this_secure_password"
	ExampleAPIKey     = "generate_with_openssl_rand_hex_32"
)
