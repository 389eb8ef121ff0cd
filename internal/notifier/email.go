package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hashimkp/pricewatch/internal/models"
)

// Email delivers alerts over SMTP with STARTTLS.
type Email struct {
	log      *slog.Logger
	host     string
	port     int
	username string
	password string
	to       string
	send     func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmail creates an SMTP sink. Mail goes from username to the configured
// recipient.
func NewEmail(log *slog.Logger, host string, port int, username, password, to string) *Email {
	return &Email{
		log:      log,
		host:     host,
		port:     port,
		username: username,
		password: password,
		to:       to,
		send:     smtp.SendMail,
	}
}

// Notify renders the event and sends it as a plain-text mail.
func (e *Email) Notify(ctx context.Context, event models.AlertEvent, product models.TrackedProduct) error {
	const opn = "notifier.Email.Notify"

	subject := "Price Alert!"
	if event.Kind == models.AlertCouponAppeared {
		subject = "Coupon Alert!"
	}

	msg := fmt.Sprintf("Subject: %s\r\nFrom: %s\r\nTo: %s\r\n\r\n%s\r\n",
		subject, e.username, e.to, Render(event, product))

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	if err := e.send(addr, auth, e.username, []string{e.to}, []byte(msg)); err != nil {
		return fmt.Errorf("%s: failed to send mail via %s: %w", opn, addr, err)
	}

	e.log.InfoContext(ctx, "alert mail sent", "to", e.to, "product_id", event.ProductID)

	return nil
}
