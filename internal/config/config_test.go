package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsDev())
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 15, cfg.JWT.AccessTokenMins)
	assert.Equal(t, 0.5, cfg.Business.CommissionRatePercent)
	assert.Equal(t, 7, cfg.Business.StaleLeadDays)
	assert.Equal(t, 10*time.Minute, cfg.Redis.OfferTTL)
	assert.Equal(t, "0 3 * * *", cfg.Cron.TokenCleanup)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "*", cfg.GetAllowedOrigins())
	assert.Same(t, cfg, AppConfig)
}

func TestLoad_ModePrefixes(t *testing.T) {
	t.Setenv("APP_MODE", "prod")
	t.Setenv("PROD_DB_HOST", "db.internal")
	t.Setenv("PROD_JWT_SECRET", "s1")
	t.Setenv("PROD_JWT_REFRESH_SECRET", "s2")
	t.Setenv("COMMISSION_RATE_PERCENT", "1.25")
	t.Setenv("REDIS_ADDR", "cache:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 1.25, cfg.Business.CommissionRatePercent)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
}

func TestLoad_Rejects(t *testing.T) {
	t.Run("bad mode", func(t *testing.T) {
		t.Setenv("APP_MODE", "staging")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("prod default secrets", func(t *testing.T) {
		t.Setenv("APP_MODE", "prod")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("negative commission", func(t *testing.T) {
		t.Setenv("APP_MODE", "dev")
		t.Setenv("COMMISSION_RATE_PERCENT", "-1")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestBuildDSN(t *testing.T) {
	dsn := buildDSN(DatabaseConfig{Host: "h", Port: "3306", User: "u", Password: "p", DBName: "gcbp"})
	assert.Equal(t, "u:p@tcp(h:3306)/gcbp?charset=utf8mb4&parseTime=True&loc=Local", dsn)
}

func TestLoad_DatabasePoolDefaults(t *testing.T) {
	t.Setenv("APP_MODE", "dev")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 100, cfg.Database.MaxOpenConns)
	assert.Equal(t, 10, cfg.Database.MaxIdleConns)
	assert.Equal(t, time.Hour, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, 200*time.Millisecond, cfg.Database.SlowQuery)
}

func TestHealthCheck_NotConnected(t *testing.T) {
	assert.ErrorIs(t, HealthCheck(context.Background()), ErrDatabaseNotInitialized)
}
