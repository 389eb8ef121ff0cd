package config_test

import (
	"testing"
	"time"

	"github.com/hashimkp/pricewatch/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestMustLoad(t *testing.T) {
	t.Run("error - empty required env variable", func(t *testing.T) {
		t.Setenv("PW_TELEGRAM_TOKEN", "")

		assert.PanicsWithError(t, config.ErrEmptyToken.Error(), func() {
			config.MustLoad()
		})
	})

	t.Run("success with defaults", func(t *testing.T) {
		t.Setenv("PW_ENV", "local")
		t.Setenv("PW_TELEGRAM_TOKEN", "telegramToken")
		t.Setenv("PW_STORAGE_PATH", "some/path/to/db")

		cfg := config.MustLoad()

		assert.Equal(t, "local", cfg.Env)
		assert.Equal(t, "telegramToken", cfg.Tg.Token)
		assert.Equal(t, 15*time.Second, cfg.Tg.Timeout)
		assert.Equal(t, "some/path/to/db", cfg.StoragePath)
		assert.Equal(t, 10*time.Minute, cfg.Tracker.IntervalMin)
		assert.Equal(t, 15*time.Minute, cfg.Tracker.IntervalMax)
		assert.Equal(t, 3, cfg.Tracker.MaxAttempts)
		assert.Equal(t, 2*time.Second, cfg.Tracker.Backoff)
		assert.Equal(t, "above", cfg.Tracker.ReentryMode)
		assert.Equal(t, 587, cfg.SMTP.Port)
		assert.Empty(t, cfg.SMTP.Host)
		assert.Empty(t, cfg.MetricsAddr)
		assert.Zero(t, cfg.Tg.AdminID)
	})

	t.Run("success with overrides", func(t *testing.T) {
		t.Setenv("PW_TELEGRAM_TOKEN", "telegramToken")
		t.Setenv("PW_CHECK_INTERVAL_MIN", "30s")
		t.Setenv("PW_CHECK_INTERVAL_MAX", "45s")
		t.Setenv("PW_REENTRY_MODE", "rise")
		t.Setenv("PW_SMTP_HOST", "smtp.gmail.com")
		t.Setenv("PW_SMTP_USER", "me@example.com")
		t.Setenv("PW_METRICS_ADDR", ":9090")
		t.Setenv("PW_TELEGRAM_ADMIN_ID", "123456789")

		cfg := config.MustLoad()

		assert.Equal(t, 30*time.Second, cfg.Tracker.IntervalMin)
		assert.Equal(t, 45*time.Second, cfg.Tracker.IntervalMax)
		assert.Equal(t, "rise", cfg.Tracker.ReentryMode)
		assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
		assert.Equal(t, "me@example.com", cfg.SMTP.Username)
		assert.Equal(t, ":9090", cfg.MetricsAddr)
		assert.Equal(t, int64(123456789), cfg.Tg.AdminID)
	})
}
