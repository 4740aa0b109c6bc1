package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/convert"
	"github.com/joho/godotenv"
)

// Slot policies accepted by TASKMASTER_SLOT_POLICY.
const (
	SlotPolicyBeforeDueDay      = "before_due_day"
	SlotPolicyOnOrBeforeDueDay  = "on_or_before_due_day"
	DefaultUserID               = "00000000-0000-0000-0000-000000000001"
	DefaultScheduleID           = "default"
	defaultWorkerHealthAddr     = "0.0.0.0:8081"
	defaultSlotCacheTTL         = 10 * time.Minute
	defaultBreakerFailThreshold = 3
)

// Config holds application configuration.
type Config struct {
	// Application
	AppEnv     string
	LogLevel   string
	LogFormat  string
	UserID     string
	ScheduleID string

	// Scheduling
	Location             *time.Location
	SlotPolicy           string
	PreventDoubleBooking bool

	// Database. An empty DatabaseURL selects the local SQLite store.
	DatabaseURL      string
	DatabaseMaxConns int
	SQLitePath       string
	LocalMode        bool

	// Redis. Empty disables the slot cache.
	RedisURL     string
	SlotCacheTTL time.Duration

	// RabbitMQ. Empty keeps events in process.
	RabbitMQURL string

	// Worker
	WorkerHealthAddr string
	WorkerQueue      string
	WorkerPrefetch   int

	// CalDAV
	CalDAVURL          string
	CalDAVUsername     string
	CalDAVPassword     string
	CalDAVCalendarPath string
	CalDAVTimeout      time.Duration

	// Circuit breaker around CalDAV
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:     getEnv("APP_ENV", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "text"),
		UserID:     getEnv("TASKMASTER_USER_ID", DefaultUserID),
		ScheduleID: getEnv("TASKMASTER_SCHEDULE_ID", DefaultScheduleID),

		SlotPolicy:           getEnv("TASKMASTER_SLOT_POLICY", SlotPolicyBeforeDueDay),
		PreventDoubleBooking: getBoolEnv("TASKMASTER_PREVENT_DOUBLE_BOOKING", true),

		DatabaseURL:      getEnv("DATABASE_URL", ""),
		DatabaseMaxConns: getIntEnv("DATABASE_MAX_CONNS", 0),
		SQLitePath:       getEnv("SQLITE_PATH", ""),

		RedisURL:     getEnv("REDIS_URL", ""),
		SlotCacheTTL: getDurationEnv("SLOT_CACHE_TTL", defaultSlotCacheTTL),

		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		WorkerHealthAddr: getEnv("WORKER_HEALTH_ADDR", defaultWorkerHealthAddr),
		WorkerQueue:      getEnv("WORKER_QUEUE", "taskmaster.scheduler"),
		WorkerPrefetch:   getIntEnv("WORKER_PREFETCH", 10),

		CalDAVURL:          getEnv("CALDAV_URL", ""),
		CalDAVUsername:     getEnv("CALDAV_USERNAME", ""),
		CalDAVPassword:     getEnv("CALDAV_PASSWORD", ""),
		CalDAVCalendarPath: getEnv("CALDAV_CALENDAR_PATH", ""),
		CalDAVTimeout:      getDurationEnv("CALDAV_TIMEOUT", 30*time.Second),

		BreakerOpenTimeout: getDurationEnv("CALDAV_BREAKER_OPEN_TIMEOUT", time.Minute),
	}
	cfg.LocalMode = cfg.DatabaseURL == ""

	maxFailures, err := convert.IntToUint32(getIntEnv("CALDAV_BREAKER_MAX_FAILURES", defaultBreakerFailThreshold))
	if err != nil {
		return nil, fmt.Errorf("invalid CALDAV_BREAKER_MAX_FAILURES: %w", err)
	}
	cfg.BreakerMaxFailures = maxFailures

	loc, err := loadLocation(getEnv("TASKMASTER_TZ", ""))
	if err != nil {
		return nil, err
	}
	cfg.Location = loc

	switch cfg.SlotPolicy {
	case SlotPolicyBeforeDueDay, SlotPolicyOnOrBeforeDueDay:
	default:
		return nil, fmt.Errorf("invalid TASKMASTER_SLOT_POLICY %q", cfg.SlotPolicy)
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// CalDAVEnabled reports whether a CalDAV server is configured.
func (c *Config) CalDAVEnabled() bool {
	return c.CalDAVURL != ""
}

func loadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid TASKMASTER_TZ %q: %w", name, err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil && i >= 0 {
			return i
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
