// Package notifier delivers rendered alert messages to the configured
// sinks. Delivery is best-effort: a sink failure never blocks tracking.
package notifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashimkp/pricewatch/internal/models"
)

// Sink delivers one alert event to its recipients.
type Sink interface {
	Notify(ctx context.Context, event models.AlertEvent, product models.TrackedProduct) error
}

// Render formats a human-readable alert message for any sink.
func Render(event models.AlertEvent, product models.TrackedProduct) string {
	var b strings.Builder

	switch event.Kind {
	case models.AlertCouponAppeared:
		b.WriteString("🎟 Coupon available!\n\n")
		fmt.Fprintf(&b, "%s\n", product.DisplayName())
		if event.CouponText != "" {
			fmt.Fprintf(&b, "%s\n", event.CouponText)
		}
		fmt.Fprintf(&b, "Current price: ₹%.2f\n", event.NewPrice)
	case models.AlertPriceDrop:
		b.WriteString("🎯 Price drop!\n\n")
		fmt.Fprintf(&b, "%s\n", product.DisplayName())
		fmt.Fprintf(&b, "Current price: ₹%.2f", event.NewPrice)
		if product.HasTarget() {
			fmt.Fprintf(&b, " (target ₹%.2f)", product.TargetPrice)
		}
		b.WriteString("\n")
		if event.OldPrice != nil && *event.OldPrice > 0 {
			change := (event.NewPrice - *event.OldPrice) / *event.OldPrice * 100
			fmt.Fprintf(&b, "Previous price: ₹%.2f (%+.1f%%)\n", *event.OldPrice, change)
		}
	default:
		fmt.Fprintf(&b, "Alert for %s\n", product.DisplayName())
	}

	b.WriteString("\n")
	b.WriteString(product.URL)

	return b.String()
}
