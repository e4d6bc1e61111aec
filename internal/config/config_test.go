package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DB_HOST", "DB_NAME", "REDIS_URL", "REDIS_HOST",
		"SCHEDULE_SCAN_INTERVAL_SECONDS", "PREVIEW_TTL_MINUTES",
	} {
		t.Setenv(key, "")
	}

	cfg := NewConfig()

	assert.Equal(t, "8086", cfg.Server.Port)
	assert.Equal(t, "storefront_db", cfg.Database.DBName)
	assert.Equal(t, 30, cfg.Publisher.ScanIntervalSeconds)
	assert.Equal(t, 60, cfg.Publisher.PreviewTTLMinutes)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SCHEDULE_SCAN_INTERVAL_SECONDS", "5")
	t.Setenv("PREVIEW_TTL_MINUTES", "15")

	cfg := NewConfig()

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 5, cfg.Publisher.ScanIntervalSeconds)
	assert.Equal(t, 15, cfg.Publisher.PreviewTTLMinutes)
}

func TestBuildRedisConfig_URLOverrideWins(t *testing.T) {
	t.Setenv("REDIS_URL", "redis://cache.internal:6380/2")
	t.Setenv("REDIS_HOST", "ignored")

	cfg := buildRedisConfig()

	assert.Equal(t, "redis://cache.internal:6380/2", cfg.URL)
}

func TestBuildRedisConfig_PasswordInURL(t *testing.T) {
	t.Setenv("REDIS_URL", "")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_PASSWORD", "s3cret")
	t.Setenv("REDIS_DB", "1")

	cfg := buildRedisConfig()

	assert.Equal(t, "redis://:s3cret@cache:6379/1", cfg.URL)
}

func TestDatabaseDSN(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		User:     "app",
		Password: "app",
		DBName:   "storefront_db",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db port=5432 user=app password=app dbname=storefront_db sslmode=disable",
		db.DSN())
}
