package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

var ErrEmptyToken = errors.New("error getting PW_TELEGRAM_TOKEN: variable not specified or contains an empty string")

type Config struct {
	Env         string // Env is the current environment: local, dev, prod.
	StoragePath string // StoragePath is the sqlite database file location.
	MetricsAddr string // MetricsAddr is the /metrics listen address; empty disables it.
	Tg          Telegram
	Tracker     Tracker
	SMTP        SMTP
}

type Telegram struct {
	Token   string        // Token is an unique telegram bot token.
	Timeout time.Duration // Timeout is a poller timeout duration.
	AdminID int64         // AdminID restricts management commands; 0 leaves them open.
}

// Tracker holds the round loop and retry tuning.
type Tracker struct {
	IntervalMin     time.Duration
	IntervalMax     time.Duration
	MaxAttempts     int
	Backoff         time.Duration
	ProductDelayMin time.Duration
	ProductDelayMax time.Duration
	ReentryMode     string
}

// SMTP configures the optional email sink; empty Host disables it.
type SMTP struct {
	Host     string
	Port     int
	Username string
	Password string
	To       string
}

// MustLoad loads the configuration from environment variables and returns a Config struct.
func MustLoad() *Config {
	// Automatically binds environment variables to config keys
	viper.SetEnvPrefix("PW")
	viper.AutomaticEnv()

	// optional args
	viper.SetDefault("ENV", "production")
	viper.SetDefault("STORAGE_PATH", "pricewatch.db")
	viper.SetDefault("TELEGRAM_TIMEOUT", "15s")
	viper.SetDefault("CHECK_INTERVAL_MIN", "10m")
	viper.SetDefault("CHECK_INTERVAL_MAX", "15m")
	viper.SetDefault("FETCH_MAX_ATTEMPTS", 3)
	viper.SetDefault("FETCH_BACKOFF", "2s")
	viper.SetDefault("PRODUCT_DELAY_MIN", "1s")
	viper.SetDefault("PRODUCT_DELAY_MAX", "3s")
	viper.SetDefault("REENTRY_MODE", "above")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("METRICS_ADDR", "")
	viper.SetDefault("TELEGRAM_ADMIN_ID", 0)

	if viper.GetString("TELEGRAM_TOKEN") == "" {
		panic(ErrEmptyToken)
	}

	return &Config{
		Env:         viper.GetString("ENV"),
		StoragePath: viper.GetString("STORAGE_PATH"),
		MetricsAddr: viper.GetString("METRICS_ADDR"),
		Tg: Telegram{
			Token:   viper.GetString("TELEGRAM_TOKEN"),
			Timeout: viper.GetDuration("TELEGRAM_TIMEOUT"),
			AdminID: viper.GetInt64("TELEGRAM_ADMIN_ID"),
		},
		Tracker: Tracker{
			IntervalMin:     viper.GetDuration("CHECK_INTERVAL_MIN"),
			IntervalMax:     viper.GetDuration("CHECK_INTERVAL_MAX"),
			MaxAttempts:     viper.GetInt("FETCH_MAX_ATTEMPTS"),
			Backoff:         viper.GetDuration("FETCH_BACKOFF"),
			ProductDelayMin: viper.GetDuration("PRODUCT_DELAY_MIN"),
			ProductDelayMax: viper.GetDuration("PRODUCT_DELAY_MAX"),
			ReentryMode:     viper.GetString("REENTRY_MODE"),
		},
		SMTP: SMTP{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASSWORD"),
			To:       viper.GetString("SMTP_TO"),
		},
	}
}
