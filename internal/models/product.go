package models

import "time"

// TrackedProduct is a single product under observation. It is owned by the
// repository; the tracker only reads it.
type TrackedProduct struct {
	ID          string
	URL         string
	Retailer    Retailer
	Title       string
	TargetPrice float64 // 0 means no price target is set.
	CouponAlert bool
	Tag         string
	CreatedAt   time.Time
}

// HasTarget reports whether a price target is configured for the product.
func (p TrackedProduct) HasTarget() bool {
	return p.TargetPrice > 0
}

// DisplayName returns the best human-readable identifier for the product.
func (p TrackedProduct) DisplayName() string {
	if p.Title != "" {
		return p.Title
	}
	return p.URL
}
