package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVICE_NAME", "PORT", "DATABASE_DRIVER", "DATABASE_URL", "DATABASE_NAME",
		"PASSWORD_STORAGE", "CORS_ALLOWED_ORIGINS", "TRACING_ENABLED", "SHUTDOWN_TIMEOUT",
	} {
		t.Setenv(k, "")
	}

	c := Load()
	require.NotNil(t, c)

	assert.Equal(t, "marketplace-service", c.Service.Name)
	assert.Equal(t, "8000", c.Service.Port)
	assert.Equal(t, DriverMongo, c.Database.Driver)
	assert.Empty(t, c.Database.URL)
	assert.Equal(t, PasswordVerbatim, c.Auth.PasswordStorage)
	assert.Equal(t, []string{"*"}, c.CORS.AllowedOrigins)
	assert.False(t, c.Tracing.Enabled)
	assert.Equal(t, 10*time.Second, c.GetShutdownTimeoutDuration())
	assert.Equal(t, time.Duration(0), c.GetReadinessDrainDelayDuration())
	assert.NoError(t, c.Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/market")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("READINESS_DRAIN_DELAY", "3s")

	c := Load()

	assert.Equal(t, "9090", c.Service.Port)
	assert.Equal(t, DriverPostgres, c.Database.Driver)
	assert.Equal(t, "postgres://localhost/market", c.Database.URL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, c.CORS.AllowedOrigins)
	assert.Equal(t, 3*time.Second, c.GetReadinessDrainDelayDuration())
}

func TestValidate_Errors(t *testing.T) {
	c := &Config{
		Service:  ServiceConfig{Port: "abc"},
		Database: DatabaseConfig{Driver: "sqlite"},
		Auth:     AuthConfig{PasswordStorage: "md5"},
		Tracing:  TracingConfig{SampleRate: 2},
		Shutdown: ShutdownConfig{Timeout: "soon", ReadinessDrainDelay: "0s"},
	}

	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
	assert.Contains(t, err.Error(), "DATABASE_DRIVER")
	assert.Contains(t, err.Error(), "PASSWORD_STORAGE")
	assert.Contains(t, err.Error(), "OTEL_SAMPLE_RATE")
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}
