package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9191")
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_EXPIRY_HOURS", "2")
	t.Setenv("COOKIE_NAME", "session")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("ADMIN_USERNAME", "root")

	cfg := Load()

	assert.Equal(t, "9191", cfg.App.Port)
	assert.True(t, cfg.App.IsProduction())
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, "session", cfg.Cookie.Name)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "root", cfg.Admin.Username)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: "5432", Name: "sales", User: "u", Password: "p",
		SSLMode: "disable", Timezone: "UTC",
	}

	assert.Equal(t, "host=db user=u password=p dbname=sales port=5432 sslmode=disable TimeZone=UTC", cfg.DSN())
}
