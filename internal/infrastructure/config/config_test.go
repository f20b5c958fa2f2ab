package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	// Save original env vars and restore after tests
	originalEnv := map[string]string{
		"SYNC_APP_NAME":                os.Getenv("SYNC_APP_NAME"),
		"SYNC_APP_ENV":                 os.Getenv("SYNC_APP_ENV"),
		"SYNC_APP_PORT":                os.Getenv("SYNC_APP_PORT"),
		"SYNC_DATABASE_HOST":           os.Getenv("SYNC_DATABASE_HOST"),
		"SYNC_DATABASE_PORT":           os.Getenv("SYNC_DATABASE_PORT"),
		"SYNC_DATABASE_USER":           os.Getenv("SYNC_DATABASE_USER"),
		"SYNC_DATABASE_PASSWORD":       os.Getenv("SYNC_DATABASE_PASSWORD"),
		"SYNC_DATABASE_DBNAME":         os.Getenv("SYNC_DATABASE_DBNAME"),
		"SYNC_DATABASE_SSLMODE":        os.Getenv("SYNC_DATABASE_SSLMODE"),
		"SYNC_DATABASE_MAX_OPEN_CONNS": os.Getenv("SYNC_DATABASE_MAX_OPEN_CONNS"),
		"SYNC_DATABASE_MAX_IDLE_CONNS": os.Getenv("SYNC_DATABASE_MAX_IDLE_CONNS"),
		"SYNC_VERIAL_HOST":             os.Getenv("SYNC_VERIAL_HOST"),
		"SYNC_VERIAL_SESSION":          os.Getenv("SYNC_VERIAL_SESSION"),
		"SYNC_VERIAL_ONLINE_SESSION":   os.Getenv("SYNC_VERIAL_ONLINE_SESSION"),
		"SYNC_SHOPIFY_WEBHOOK_SECRET":  os.Getenv("SYNC_SHOPIFY_WEBHOOK_SECRET"),
		"APP_ENV":                      os.Getenv("APP_ENV"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearEnv()

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "shopsync-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "postgres", cfg.Database.User)
		assert.Equal(t, "", cfg.Database.Password)
		assert.Equal(t, "shopsync", cfg.Database.DBName)
		assert.Equal(t, "disable", cfg.Database.SSLMode)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, 2*time.Minute, cfg.Scheduler.StockSyncInterval)
		assert.Equal(t, 5*time.Minute, cfg.Scheduler.OrderStatusInterval)
		assert.Equal(t, 30*time.Minute, cfg.Scheduler.CatalogMapInterval)
		assert.Equal(t, "2024-01", cfg.Shopify.APIVersion)
		assert.Equal(t, 30, cfg.Verial.TimeoutSeconds)
	})

	t.Run("loads values from environment variables with SYNC prefix", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_APP_NAME", "test-app")
		os.Setenv("SYNC_APP_ENV", "testing")
		os.Setenv("SYNC_APP_PORT", "9000")
		os.Setenv("SYNC_DATABASE_HOST", "testdb.local")
		os.Setenv("SYNC_DATABASE_PORT", "5433")
		os.Setenv("SYNC_DATABASE_USER", "testuser")
		os.Setenv("SYNC_DATABASE_PASSWORD", "testpass")
		os.Setenv("SYNC_DATABASE_DBNAME", "testdb")
		os.Setenv("SYNC_DATABASE_SSLMODE", "require")
		os.Setenv("SYNC_DATABASE_MAX_OPEN_CONNS", "50")
		os.Setenv("SYNC_DATABASE_MAX_IDLE_CONNS", "10")
		os.Setenv("SYNC_VERIAL_HOST", "erp.internal:8000")
		os.Setenv("SYNC_VERIAL_SESSION", "18")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "testing", cfg.App.Env)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, "testuser", cfg.Database.User)
		assert.Equal(t, "testpass", cfg.Database.Password)
		assert.Equal(t, "testdb", cfg.Database.DBName)
		assert.Equal(t, "require", cfg.Database.SSLMode)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "erp.internal:8000", cfg.Verial.Host)
		assert.Equal(t, int64(18), cfg.Verial.Session)
	})

	t.Run("online session falls back to regular session", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_VERIAL_HOST", "erp.internal:8000")
		os.Setenv("SYNC_VERIAL_SESSION", "18")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, int64(18), cfg.Verial.OnlineSession)
	})

	t.Run("online session kept when set explicitly", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_VERIAL_SESSION", "18")
		os.Setenv("SYNC_VERIAL_ONLINE_SESSION", "27")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, int64(27), cfg.Verial.OnlineSession)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_DATABASE_MAX_OPEN_CONNS", "10")
		os.Setenv("SYNC_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns")
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("zero MaxOpenConns uses default", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_DATABASE_MAX_OPEN_CONNS", "0")

		cfg, err := Load()
		require.NoError(t, err)
		// 0 is treated as "not set", so default (25) is used
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	})

	t.Run("validates MaxIdleConns cannot be negative", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_DATABASE_MAX_IDLE_CONNS", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_idle_conns cannot be negative")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	originalEnv := map[string]string{
		"SYNC_APP_ENV":                os.Getenv("SYNC_APP_ENV"),
		"SYNC_DATABASE_PASSWORD":      os.Getenv("SYNC_DATABASE_PASSWORD"),
		"SYNC_DATABASE_SSLMODE":       os.Getenv("SYNC_DATABASE_SSLMODE"),
		"SYNC_SHOPIFY_WEBHOOK_SECRET": os.Getenv("SYNC_SHOPIFY_WEBHOOK_SECRET"),
		"APP_ENV":                     os.Getenv("APP_ENV"),
	}

	defer func() {
		for k, v := range originalEnv {
			if v == "" {
				os.Unsetenv(k)
			} else {
				os.Setenv(k, v)
			}
		}
	}()

	clearEnv := func() {
		for k := range originalEnv {
			os.Unsetenv(k)
		}
	}

	t.Run("requires database.password in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_APP_ENV", "production")
		os.Setenv("SYNC_DATABASE_SSLMODE", "require")
		os.Setenv("SYNC_SHOPIFY_WEBHOOK_SECRET", "hush")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.password is required in production")
	})

	t.Run("requires SSL enabled in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_APP_ENV", "production")
		os.Setenv("SYNC_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SYNC_DATABASE_SSLMODE", "disable")
		os.Setenv("SYNC_SHOPIFY_WEBHOOK_SECRET", "hush")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.sslmode cannot be 'disable' in production")
	})

	t.Run("requires shopify.webhook_secret in production", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_APP_ENV", "production")
		os.Setenv("SYNC_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SYNC_DATABASE_SSLMODE", "require")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "shopify.webhook_secret is required in production")
	})

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearEnv()
		os.Setenv("SYNC_APP_ENV", "production")
		os.Setenv("SYNC_DATABASE_PASSWORD", "secure-password")
		os.Setenv("SYNC_DATABASE_SSLMODE", "require")
		os.Setenv("SYNC_SHOPIFY_WEBHOOK_SECRET", "hush")

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, "production", cfg.App.Env)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost")
		assert.Contains(t, dsn, "5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "pass@word#123",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		// URL-encoded password should be in the DSN
		assert.Contains(t, dsn, "pass%40word%23123")
	})

	t.Run("handles empty password", func(t *testing.T) {
		cfg := DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "user",
			Password: "",
			DBName:   "db",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.NotEmpty(t, dsn)
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.local", Port: 6380}
	assert.Equal(t, "cache.local:6380", cfg.Addr())
}
