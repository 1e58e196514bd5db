package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads and restores them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORAGE_DRIVER", "DATABASE_URL", "TIMEZONE",
		"ADMIN_PASSPHRASE", "JWT_SECRET", "ADMIN_TOKEN_TTL", "CORS_ORIGINS",
		"LOG_LEVEL", "LOG_FORMAT", "LOG_FILE", "R2_BUCKET_NAME",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
	t.Setenv("APP_ENV", "production")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "Asia/Omsk", cfg.TimeZone)
	assert.Equal(t, 12*time.Hour, cfg.AdminTokenTTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, "Asia/Omsk", cfg.Location().String())
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://localhost/lunch")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FILE", "/tmp/lunch.log")
	t.Setenv("ADMIN_TOKEN_TTL", "30m")
	t.Setenv("R2_BUCKET_NAME", "exports")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/lunch.log", cfg.Log.File)
	assert.Equal(t, 30*time.Minute, cfg.AdminTokenTTL)
	assert.Equal(t, "exports", cfg.R2().Bucket)
}

func TestValidate(t *testing.T) {
	base := Config{
		StorageDriver: DriverMemory,
		TimeZone:      "Asia/Omsk",
		AdminTokenTTL: time.Hour,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"postgres without url", func(c *Config) { c.StorageDriver = DriverPostgres }, "DATABASE_URL"},
		{"unknown driver", func(c *Config) { c.StorageDriver = "redis" }, "STORAGE_DRIVER"},
		{"passphrase without secret", func(c *Config) { c.AdminPassphrase = "x" }, "JWT_SECRET"},
		{"bad timezone", func(c *Config) { c.TimeZone = "Mars/Olympus" }, "TIMEZONE"},
		{"zero ttl", func(c *Config) { c.AdminTokenTTL = 0 }, "ADMIN_TOKEN_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
