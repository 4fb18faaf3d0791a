// Package config loads service configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Supported store drivers.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Supported password storage strategies.
const (
	PasswordVerbatim = "verbatim"
	PasswordBcrypt   = "bcrypt"
)

// Config holds the whole service configuration.
type Config struct {
	Service   ServiceConfig
	Logging   LoggingConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	CORS      CORSConfig
	Tracing   TracingConfig
	Profiling ProfilingConfig
	Shutdown  ShutdownConfig
}

type ServiceConfig struct {
	Name    string
	Version string
	Env     string
	Port    string
}

type LoggingConfig struct {
	Level string
}

// DatabaseConfig describes the document store connection.
// URL and Name may be empty; the service still starts and /test reports them as not set.
type DatabaseConfig struct {
	Driver string
	URL    string
	Name   string
}

type AuthConfig struct {
	PasswordStorage string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type TracingConfig struct {
	Enabled    bool
	Endpoint   string
	SampleRate float64
}

type ProfilingConfig struct {
	Enabled  bool
	Endpoint string
}

type ShutdownConfig struct {
	Timeout             string
	ReadinessDrainDelay string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Service: ServiceConfig{
			Name:    getEnv("SERVICE_NAME", "marketplace-service"),
			Version: getEnv("SERVICE_VERSION", "v1"),
			Env:     getEnv("ENV", "development"),
			Port:    getEnv("PORT", "8000"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DATABASE_DRIVER", DriverMongo),
			URL:    os.Getenv("DATABASE_URL"),
			Name:   os.Getenv("DATABASE_NAME"),
		},
		Auth: AuthConfig{
			PasswordStorage: getEnv("PASSWORD_STORAGE", PasswordVerbatim),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		Tracing: TracingConfig{
			Enabled:    getEnvBool("TRACING_ENABLED", false),
			Endpoint:   getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			SampleRate: getEnvFloat("OTEL_SAMPLE_RATE", 1.0),
		},
		Profiling: ProfilingConfig{
			Enabled:  getEnvBool("PROFILING_ENABLED", false),
			Endpoint: getEnv("PYROSCOPE_ENDPOINT", "http://localhost:4040"),
		},
		Shutdown: ShutdownConfig{
			Timeout:             getEnv("SHUTDOWN_TIMEOUT", "10s"),
			ReadinessDrainDelay: getEnv("READINESS_DRAIN_DELAY", "0s"),
		},
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Service.Port == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	} else if _, err := strconv.Atoi(c.Service.Port); err != nil {
		errs = append(errs, fmt.Errorf("PORT %q is not a number", c.Service.Port))
	}

	switch c.Database.Driver {
	case DriverMongo, DriverPostgres, DriverMemory:
	default:
		errs = append(errs, fmt.Errorf("DATABASE_DRIVER %q is not one of %s, %s, %s", c.Database.Driver, DriverMongo, DriverPostgres, DriverMemory))
	}

	switch c.Auth.PasswordStorage {
	case PasswordVerbatim, PasswordBcrypt:
	default:
		errs = append(errs, fmt.Errorf("PASSWORD_STORAGE %q is not one of %s, %s", c.Auth.PasswordStorage, PasswordVerbatim, PasswordBcrypt))
	}

	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, fmt.Errorf("OTEL_SAMPLE_RATE %v must be within [0, 1]", c.Tracing.SampleRate))
	}

	if _, err := time.ParseDuration(c.Shutdown.Timeout); err != nil {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: %w", err))
	}
	if _, err := time.ParseDuration(c.Shutdown.ReadinessDrainDelay); err != nil {
		errs = append(errs, fmt.Errorf("READINESS_DRAIN_DELAY: %w", err))
	}

	return errors.Join(errs...)
}

// GetShutdownTimeoutDuration returns the HTTP shutdown timeout, 10s if unparsable.
func (c *Config) GetShutdownTimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.Shutdown.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetReadinessDrainDelayDuration returns how long /ready reports 503 before the
// HTTP server stops accepting connections.
func (c *Config) GetReadinessDrainDelayDuration() time.Duration {
	d, err := time.ParseDuration(c.Shutdown.ReadinessDrainDelay)
	if err != nil {
		return 0
	}
	return d
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getEnvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
