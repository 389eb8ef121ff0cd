package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/repository"
	"gopkg.in/telebot.v4"
)

const helpText = `I track product prices and coupons for you.

/add <url> <target_price> [tag] - track a product
/remove <id> - stop tracking a product
/alert_on <id> - enable coupon alerts for a product
/alert_off <id> - disable coupon alerts for a product
/list - show tracked products
/status - show tracker status
/stop - unsubscribe this chat from alerts`

const notAllowedText = "Sorry, only the configured admin can manage products."

// isAdmin reports whether the sender may run management commands. An
// unset admin id leaves the bot open for single-user deployments.
func (b *Bot) isAdmin(senderID int64) bool {
	return b.adminID == 0 || senderID == b.adminID
}

// startHandler subscribes the chat to alerts.
func (b *Bot) startHandler(ctx telebot.Context) error {
	b.log.Info("User started the bot", "username", ctx.Sender().Username)

	if err := b.repo.SubscribeChat(context.Background(), ctx.Chat().ID); err != nil {
		b.log.Error("failed to subscribe chat", "chat_id", ctx.Chat().ID, "error", err)
		return ctx.Send("Something went wrong, try again later.")
	}

	if err := ctx.Send("Hello! This chat will now receive price and coupon alerts.\n\n" + helpText); err != nil {
		return fmt.Errorf("failed to send greeting message: %w", err)
	}

	return nil
}

// stopHandler unsubscribes the chat from alerts.
func (b *Bot) stopHandler(ctx telebot.Context) error {
	if err := b.repo.UnsubscribeChat(context.Background(), ctx.Chat().ID); err != nil {
		b.log.Error("failed to unsubscribe chat", "chat_id", ctx.Chat().ID, "error", err)
		return ctx.Send("Something went wrong, try again later.")
	}

	return ctx.Send("This chat will no longer receive alerts.")
}

func (b *Bot) helpHandler(ctx telebot.Context) error {
	return ctx.Send(helpText)
}

// addHandler processes /add <url> <target_price> [tag].
func (b *Bot) addHandler(ctx telebot.Context) error {
	if !b.isAdmin(ctx.Sender().ID) {
		return ctx.Send(notAllowedText)
	}

	args := ctx.Args()
	if len(args) < 2 {
		return ctx.Send("Usage: /add <url> <target_price> [tag]")
	}

	url := args[0]

	targetPrice, err := strconv.ParseFloat(args[1], 64)
	if err != nil || targetPrice <= 0 {
		return ctx.Send("Target price must be a positive number.")
	}

	retailer, err := models.DetectRetailer(url)
	if err != nil {
		return ctx.Send("Sorry, I don't recognize that store. Amazon and Flipkart product URLs are supported.")
	}

	product := models.TrackedProduct{
		URL:         url,
		Retailer:    retailer,
		TargetPrice: targetPrice,
		CouponAlert: true,
	}
	if len(args) > 2 {
		product.Tag = strings.Join(args[2:], " ")
	}

	saved, err := b.repo.AddProduct(context.Background(), product)
	if err != nil {
		b.log.Error("failed to add product", "url", url, "error", err)
		return ctx.Send("Failed to save the product, try again later.")
	}

	b.log.Info("Product added", "product_id", saved.ID, "retailer", retailer, "target_price", targetPrice)

	return ctx.Send(fmt.Sprintf(
		"Tracking %s product with target price ₹%.2f.\nID: %s\n\nI'll notify you when the price drops! 🚀",
		retailer, targetPrice, saved.ID,
	))
}

// removeHandler processes /remove <id>.
func (b *Bot) removeHandler(ctx telebot.Context) error {
	if !b.isAdmin(ctx.Sender().ID) {
		return ctx.Send(notAllowedText)
	}

	args := ctx.Args()
	if len(args) != 1 {
		return ctx.Send("Usage: /remove <id>")
	}

	err := b.repo.RemoveProduct(context.Background(), args[0])
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ctx.Send("No product with that ID.")
		}
		b.log.Error("failed to remove product", "product_id", args[0], "error", err)
		return ctx.Send("Failed to remove the product, try again later.")
	}

	return ctx.Send("Product removed.")
}

func (b *Bot) alertOnHandler(ctx telebot.Context) error {
	return b.alertToggleHandler(ctx, true)
}

func (b *Bot) alertOffHandler(ctx telebot.Context) error {
	return b.alertToggleHandler(ctx, false)
}

// alertToggleHandler processes /alert_on <id> and /alert_off <id>.
func (b *Bot) alertToggleHandler(ctx telebot.Context, enabled bool) error {
	if !b.isAdmin(ctx.Sender().ID) {
		return ctx.Send(notAllowedText)
	}

	command := "/alert_on"
	if !enabled {
		command = "/alert_off"
	}

	args := ctx.Args()
	if len(args) != 1 {
		return ctx.Send(fmt.Sprintf("Usage: %s <id>", command))
	}

	product, err := b.setCouponAlert(context.Background(), args[0], enabled)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return ctx.Send("No product with that ID.")
		}
		b.log.Error("failed to toggle coupon alerts", "product_id", args[0], "error", err)
		return ctx.Send("Failed to update the product, try again later.")
	}

	state := "enabled"
	if !enabled {
		state = "disabled"
	}

	return ctx.Send(fmt.Sprintf("Coupon alerts %s for %s.", state, product.DisplayName()))
}

// setCouponAlert loads the product and persists the new coupon alert flag.
func (b *Bot) setCouponAlert(ctx context.Context, id string, enabled bool) (models.TrackedProduct, error) {
	product, err := b.repo.GetProduct(ctx, id)
	if err != nil {
		return models.TrackedProduct{}, err
	}

	product.CouponAlert = enabled
	if err = b.repo.UpdateProduct(ctx, product); err != nil {
		return models.TrackedProduct{}, err
	}

	return product, nil
}

// listHandler shows all tracked products.
func (b *Bot) listHandler(ctx telebot.Context) error {
	products, err := b.repo.ListProducts(context.Background())
	if err != nil {
		b.log.Error("failed to list products", "error", err)
		return ctx.Send("Failed to load products, try again later.")
	}

	if len(products) == 0 {
		return ctx.Send("No products are being tracked. Add one with /add.")
	}

	var sb strings.Builder
	sb.WriteString("Tracked products:\n")
	for i, p := range products {
		fmt.Fprintf(&sb, "\n%d. %s\n", i+1, p.DisplayName())
		if p.Tag != "" {
			fmt.Fprintf(&sb, "   Tag: %s\n", p.Tag)
		}
		fmt.Fprintf(&sb, "   Target: ₹%.2f | Store: %s\n   ID: %s\n", p.TargetPrice, p.Retailer, p.ID)
	}

	return ctx.Send(sb.String())
}

// statusHandler reports round progress and failure counters.
func (b *Bot) statusHandler(ctx telebot.Context) error {
	status := b.tracker.Status()

	var sb strings.Builder
	fmt.Fprintf(&sb, "Rounds completed: %d\n", status.RoundsCompleted)
	if status.LastRoundAt.IsZero() {
		sb.WriteString("Last round: never\n")
	} else {
		fmt.Fprintf(&sb, "Last round: %s\n", status.LastRoundAt.Format("2006-01-02 15:04:05"))
	}

	failing := 0
	for id, n := range status.Failures {
		if n > 0 {
			failing++
			fmt.Fprintf(&sb, "⚠️ %s: %d consecutive failures\n", id, n)
		}
	}
	if failing == 0 {
		sb.WriteString("All products are fetching normally.")
	}

	return ctx.Send(sb.String())
}
