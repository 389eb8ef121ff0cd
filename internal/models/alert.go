package models

import "time"

// AlertKind classifies a detected state change.
type AlertKind string

const (
	AlertPriceDrop      AlertKind = "price_drop"
	AlertCouponAppeared AlertKind = "coupon_appeared"
)

// AlertEvent is a single detected change. Events are ephemeral: produced by
// change detection and handed to the notifier within the same round, never
// persisted or queued.
type AlertEvent struct {
	ProductID  string
	Kind       AlertKind
	OldPrice   *float64
	NewPrice   float64
	CouponText string
	Timestamp  time.Time
}
