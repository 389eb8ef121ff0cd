// Package adapter implements per-retailer product page fetchers. Each
// adapter turns one product URL into a price/coupon snapshot, classifying
// failures as transient or permanent so the tracker knows what to retry.
package adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashimkp/pricewatch/internal/models"
)

// ErrUnsupportedRetailer is returned when no adapter is registered for a
// product's retailer kind.
var ErrUnsupportedRetailer = errors.New("unsupported retailer")

// Adapter fetches the current price and coupon state for a product page.
type Adapter interface {
	// Fetch retrieves the page at url and extracts the current state.
	// Errors are wrapped in *TransientError or *PermanentError.
	Fetch(ctx context.Context, url string) (*models.FetchResult, error)
}

// Registry selects the adapter for a product's retailer kind.
type Registry struct {
	adapters map[models.Retailer]Adapter
}

// NewRegistry creates a registry with the given adapters.
func NewRegistry(adapters map[models.Retailer]Adapter) *Registry {
	return &Registry{adapters: adapters}
}

// Get returns the adapter for the retailer. A missing adapter is a
// permanent error: retrying cannot make a retailer supported.
func (r *Registry) Get(retailer models.Retailer) (Adapter, error) {
	a, ok := r.adapters[retailer]
	if !ok {
		return nil, &PermanentError{Err: fmt.Errorf("%w: %s", ErrUnsupportedRetailer, retailer)}
	}
	return a, nil
}
