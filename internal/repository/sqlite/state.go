package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/repository"
)

// GetState returns the last-known observed state for a product.
// repository.ErrStateNotFound means the product was never observed.
func (r *Repository) GetState(ctx context.Context, productID string) (*models.ObservedState, error) {
	const opn = "repository.sqlite.GetState"

	var (
		state         models.ObservedState
		lastPrice     sql.NullFloat64
		lastCoupon    sql.NullBool
		lastCheckedAt sql.NullTime
	)

	err := r.db.QueryRowContext(ctx,
		`SELECT product_id, last_price, last_coupon_present, below_target, last_checked_at, consecutive_failures
		 FROM observed_state WHERE product_id = ?`, productID,
	).Scan(&state.ProductID, &lastPrice, &lastCoupon, &state.BelowTarget, &lastCheckedAt, &state.ConsecutiveFailures)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", opn, repository.ErrStateNotFound)
		}
		return nil, fmt.Errorf("%s: failed to get observed state: %w", opn, err)
	}

	if lastPrice.Valid {
		state.LastPrice = &lastPrice.Float64
	}
	if lastCoupon.Valid {
		state.LastCouponPresent = &lastCoupon.Bool
	}
	if lastCheckedAt.Valid {
		state.LastCheckedAt = lastCheckedAt.Time
	}

	return &state, nil
}

// PutState inserts or replaces the observed state for a product.
func (r *Repository) PutState(ctx context.Context, state *models.ObservedState) error {
	const opn = "repository.sqlite.PutState"

	var (
		lastPrice  sql.NullFloat64
		lastCoupon sql.NullBool
	)
	if state.LastPrice != nil {
		lastPrice = sql.NullFloat64{Float64: *state.LastPrice, Valid: true}
	}
	if state.LastCouponPresent != nil {
		lastCoupon = sql.NullBool{Bool: *state.LastCouponPresent, Valid: true}
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO observed_state
		 (product_id, last_price, last_coupon_present, below_target, last_checked_at, consecutive_failures)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		state.ProductID, lastPrice, lastCoupon, state.BelowTarget, state.LastCheckedAt, state.ConsecutiveFailures,
	)
	if err != nil {
		return fmt.Errorf("%s: failed to upsert observed state: %w", opn, err)
	}

	return nil
}
