package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRepository_Integration_PutAndGetState simulates the observed state
// lifecycle against a real SQLite database.
func TestRepository_Integration_PutAndGetState(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	product, err := repo.AddProduct(ctx, models.TrackedProduct{
		URL:      "https://www.flipkart.com/p/itm-test",
		Retailer: models.RetailerFlipkart,
	})
	require.NoError(t, err)

	// --- Scenario 1: state for a never-observed product ---
	t.Run("get_state_before_first_observation", func(t *testing.T) {
		_, err = repo.GetState(ctx, product.ID)
		require.ErrorIs(t, err, repository.ErrStateNotFound)
	})

	// --- Scenario 2: first write with only a failure counter ---
	t.Run("put_failure_only_state", func(t *testing.T) {
		err = repo.PutState(ctx, &models.ObservedState{
			ProductID:           product.ID,
			ConsecutiveFailures: 2,
		})
		require.NoError(t, err)

		state, getErr := repo.GetState(ctx, product.ID)
		require.NoError(t, getErr)
		assert.Nil(t, state.LastPrice)
		assert.Nil(t, state.LastCouponPresent)
		assert.Equal(t, 2, state.ConsecutiveFailures)
	})

	// --- Scenario 3: a full observation replaces the previous row ---
	t.Run("put_full_observation", func(t *testing.T) {
		price := 13499.0
		coupon := true
		checkedAt := time.Now().UTC().Truncate(time.Second)

		err = repo.PutState(ctx, &models.ObservedState{
			ProductID:         product.ID,
			LastPrice:         &price,
			LastCouponPresent: &coupon,
			BelowTarget:       true,
			LastCheckedAt:     checkedAt,
		})
		require.NoError(t, err)

		state, getErr := repo.GetState(ctx, product.ID)
		require.NoError(t, getErr)
		require.NotNil(t, state.LastPrice)
		assert.InDelta(t, 13499.0, *state.LastPrice, 0.001)
		require.NotNil(t, state.LastCouponPresent)
		assert.True(t, *state.LastCouponPresent)
		assert.True(t, state.BelowTarget)
		assert.Zero(t, state.ConsecutiveFailures)
		assert.WithinDuration(t, checkedAt, state.LastCheckedAt, time.Second)
	})
}

func TestRepository_GetState_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("error_on_query", func(t *testing.T) {
		repo, mock := newMockedRepo(t)
		expectedErr := errors.New("db connection lost")
		mock.ExpectQuery("SELECT product_id, last_price").WillReturnError(expectedErr)

		_, err := repo.GetState(ctx, "p1")

		require.Error(t, err)
		assert.Contains(t, err.Error(), expectedErr.Error())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_PutState_Failure(t *testing.T) {
	repo, mock := newMockedRepo(t)
	expectedErr := errors.New("database is locked")
	mock.ExpectExec("INSERT OR REPLACE INTO observed_state").WillReturnError(expectedErr)

	err := repo.PutState(context.Background(), &models.ObservedState{ProductID: "p1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), expectedErr.Error())
	assert.NoError(t, mock.ExpectationsWereMet())
}
