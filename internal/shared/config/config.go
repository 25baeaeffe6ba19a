package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Provider  ProviderConfig
	Sync      SyncConfig
	Scheduler SchedulerConfig
	Firebase  FirebaseConfig
	Telemetry TelemetryConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type JWTConfig struct {
	Secret string
}

// ProviderConfig holds the Open Finance provider API settings.
// A single static API key authenticates every outbound call.
type ProviderConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// SyncConfig controls the reconciliation pipeline.
// AccountKinds is the allow-set of account kinds that participate in sync;
// whether checking accounts are mirrored is a deployment decision, not code.
type SyncConfig struct {
	AccountKinds []string
}

type SchedulerConfig struct {
	Enabled       bool
	ScheduleTimes []string
	WorkerCount   int
	JobDelay      time.Duration
	QueueSize     int
	RunOnStartup  bool
}

type FirebaseConfig struct {
	CredentialsFile string
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	Environment  string
	OTLPEndpoint string
	MetricsPort  string
}

func Load() (*Config, error) {

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	providerTimeout, err := time.ParseDuration(getEnv("PROVIDER_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("invalid PROVIDER_TIMEOUT: %w", err)
	}

	// Parse scheduler configuration
	schedulerEnabled := getBoolEnv("SCHEDULER_ENABLED", true)
	schedulerTimes := strings.Split(getEnv("SCHEDULER_TIMES", "05:00,10:00,14:00,20:00"), ",")
	schedulerWorkers, err := strconv.Atoi(getEnv("SCHEDULER_WORKERS", "2"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_WORKERS: %w", err)
	}
	schedulerJobDelay, err := time.ParseDuration(getEnv("SCHEDULER_JOB_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_JOB_DELAY: %w", err)
	}
	schedulerQueueSize, err := strconv.Atoi(getEnv("SCHEDULER_QUEUE_SIZE", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULER_QUEUE_SIZE: %w", err)
	}
	schedulerRunOnStartup := getBoolEnv("SCHEDULER_RUN_ON_STARTUP", false)

	// Parse account kind allow-set (comma-separated list)
	var accountKinds []string
	for _, kind := range strings.Split(getEnv("SYNC_ACCOUNT_KINDS", "credit-card"), ",") {
		kind = strings.TrimSpace(kind)
		if kind != "" {
			accountKinds = append(accountKinds, kind)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "0.0.0.0"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "finmirror"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "finmirror"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
		},
		Provider: ProviderConfig{
			BaseURL: getEnv("PROVIDER_API_URL", ""),
			APIKey:  getEnv("PROVIDER_API_KEY", ""),
			Timeout: providerTimeout,
		},
		Sync: SyncConfig{
			AccountKinds: accountKinds,
		},
		Scheduler: SchedulerConfig{
			Enabled:       schedulerEnabled,
			ScheduleTimes: schedulerTimes,
			WorkerCount:   schedulerWorkers,
			JobDelay:      schedulerJobDelay,
			QueueSize:     schedulerQueueSize,
			RunOnStartup:  schedulerRunOnStartup,
		},
		Firebase: FirebaseConfig{
			CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("OTEL_ENABLED", false),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "finmirror-api"),
			Environment:  getEnv("APP_ENV", "development"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_ENDPOINT", "localhost:4317"),
			MetricsPort:  getEnv("METRICS_PORT", "9091"),
		},
	}

	// Validate required fields
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.Provider.BaseURL == "" {
		return nil, fmt.Errorf("PROVIDER_API_URL is required")
	}
	if cfg.Provider.APIKey == "" {
		return nil, fmt.Errorf("PROVIDER_API_KEY is required")
	}
	if len(cfg.Sync.AccountKinds) == 0 {
		return nil, fmt.Errorf("SYNC_ACCOUNT_KINDS must list at least one account kind")
	}

	return cfg, nil
}

func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept: true, false, 1, 0, yes, no (case-insensitive)
	switch strings.ToLower(value) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	default:
		return defaultValue
	}
}
