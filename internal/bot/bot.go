package bot

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/hashimkp/pricewatch/internal/repository/sqlite"
	"gopkg.in/telebot.v4"
)

// Repository is the store surface the management commands need.
type Repository interface {
	sqlite.ProductRepository
	sqlite.SubscriptionRepository
}

// Bot contains the bot API instance and other information.
type Bot struct {
	bot     API
	log     *slog.Logger
	repo    Repository
	tracker StatusProvider
	adminID int64
}

func NewBot(
	log *slog.Logger,
	token string,
	poller time.Duration,
	adminID int64,
	repo Repository,
	tracker StatusProvider,
) (*Bot, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: poller},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Telegram bot: %w", err)
	}
	log.Info("Authorized on account", "account", bot.Me.Username)

	botInstance := &Bot{bot: bot, log: log, repo: repo, tracker: tracker, adminID: adminID}

	botInstance.registerRoutes()

	return botInstance, nil
}

// Start launches the bot to listen for updates.
func (b *Bot) Start() {
	b.log.Info("Telegram bot is starting...")
	b.bot.Start()
}

// Stop gracefully stops the Telegram bot and logs the action.
func (b *Bot) Stop() {
	b.log.Info("Telegram bot is stopped...")
	b.bot.Stop()
}

// Sender exposes the underlying send API for the notifier sink.
func (b *Bot) Sender() API {
	return b.bot
}

// registerRoutes configures all routes (commands).
func (b *Bot) registerRoutes() {
	b.bot.Handle("/start", b.startHandler)
	b.bot.Handle("/stop", b.stopHandler)
	b.bot.Handle("/help", b.helpHandler)
	b.bot.Handle("/add", b.addHandler)
	b.bot.Handle("/remove", b.removeHandler)
	b.bot.Handle("/alert_on", b.alertOnHandler)
	b.bot.Handle("/alert_off", b.alertOffHandler)
	b.bot.Handle("/list", b.listHandler)
	b.bot.Handle("/status", b.statusHandler)
}
