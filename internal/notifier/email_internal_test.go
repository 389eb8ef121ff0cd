package notifier

import (
	"context"
	"io"
	"log/slog"
	"net/smtp"
	"testing"
	"time"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail_Notify(t *testing.T) {
	t.Parallel()

	old := 29000.0
	event := models.AlertEvent{
		ProductID: "p1",
		Kind:      models.AlertPriceDrop,
		OldPrice:  &old,
		NewPrice:  27000,
		Timestamp: time.Now(),
	}
	product := models.TrackedProduct{
		ID:       "p1",
		URL:      "https://www.amazon.in/dp/B0TEST",
		Title:    "Noise Cancelling Headphones",
		Retailer: models.RetailerAmazon,
	}

	var (
		gotAddr string
		gotFrom string
		gotTo   []string
		gotMsg  []byte
	)

	sink := NewEmail(slog.New(slog.NewTextHandler(io.Discard, nil)),
		"smtp.gmail.com", 587, "me@example.com", "secret", "alerts@example.com")
	sink.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, sink.Notify(context.Background(), event, product))

	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, "me@example.com", gotFrom)
	assert.Equal(t, []string{"alerts@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Price Alert!")
	assert.Contains(t, string(gotMsg), product.URL)
}

func TestEmail_Notify_CouponSubject(t *testing.T) {
	t.Parallel()

	event := models.AlertEvent{
		ProductID:  "p1",
		Kind:       models.AlertCouponAppeared,
		NewPrice:   27000,
		CouponText: "Save ₹500 with coupon",
		Timestamp:  time.Now(),
	}
	product := models.TrackedProduct{ID: "p1", URL: "https://www.amazon.in/dp/B0TEST", Retailer: models.RetailerAmazon}

	var gotMsg []byte

	sink := NewEmail(slog.New(slog.NewTextHandler(io.Discard, nil)),
		"smtp.gmail.com", 587, "me@example.com", "secret", "alerts@example.com")
	sink.send = func(_ string, _ smtp.Auth, _ string, _ []string, msg []byte) error {
		gotMsg = msg
		return nil
	}

	require.NoError(t, sink.Notify(context.Background(), event, product))
	assert.Contains(t, string(gotMsg), "Subject: Coupon Alert!")
}
