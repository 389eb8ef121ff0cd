package models

import "time"

// ObservedState is the last-known snapshot for one product, used as the
// diff baseline on the next check. Nil pointers mean "never observed".
type ObservedState struct {
	ProductID         string
	LastPrice         *float64
	LastCouponPresent *bool
	// BelowTarget arms the price-drop alert: it is set when an alert fires
	// and cleared once the price is observed back outside the target range.
	BelowTarget         bool
	LastCheckedAt       time.Time
	ConsecutiveFailures int
}

// FetchResult is what a retailer adapter returns for a successful fetch.
type FetchResult struct {
	Price         float64
	CouponPresent bool
	CouponText    string
	Title         string
	InStock       bool
}
