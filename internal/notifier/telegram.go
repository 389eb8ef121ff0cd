package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/repository/sqlite"
	"gopkg.in/telebot.v4"
)

// Sender is the subset of the telegram bot API used for alert delivery.
type Sender interface {
	Send(to telebot.Recipient, what interface{}, opts ...interface{}) (*telebot.Message, error)
}

// Telegram delivers alerts to every subscribed chat. The sender is
// resolved on first use, so the sink can be built before the bot exists.
type Telegram struct {
	log    *slog.Logger
	sender func() Sender
	subs   sqlite.SubscriptionRepository
}

// NewTelegram creates a telegram sink backed by the subscription table.
func NewTelegram(log *slog.Logger, sender func() Sender, subs sqlite.SubscriptionRepository) *Telegram {
	return &Telegram{log: log, sender: sender, subs: subs}
}

// Notify renders the event and sends it to all subscribed chats. Chats
// that fail individually do not prevent delivery to the rest.
func (t *Telegram) Notify(ctx context.Context, event models.AlertEvent, product models.TrackedProduct) error {
	const opn = "notifier.Telegram.Notify"

	chats, err := t.subs.GetSubscribedChats(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to get subscribed chats: %w", opn, err)
	}

	if len(chats) == 0 {
		t.log.WarnContext(ctx, "no subscribed chats, alert not delivered", "product_id", event.ProductID)
		return nil
	}

	message := Render(event, product)
	sender := t.sender()

	var errs []error
	for _, chatID := range chats {
		if _, err = sender.Send(telebot.ChatID(chatID), message); err != nil {
			t.log.ErrorContext(ctx, "failed to send alert to chat", "chat_id", chatID, "error", err)
			errs = append(errs, fmt.Errorf("chat %d: %w", chatID, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s: %w", opn, errors.Join(errs...))
	}

	return nil
}
