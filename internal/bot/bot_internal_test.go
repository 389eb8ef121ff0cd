package bot

import (
	"context"
	"log/slog"
	"testing"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/repository"
	"github.com/hashimkp/pricewatch/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStart(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Start").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Start()

	mockBot.AssertExpectations(t)
}

func TestStop(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)
	mockBot.On("Stop").Once()

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.Stop()

	mockBot.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	t.Parallel()

	mockBot := mocks.NewAPI(t)

	commands := []string{"/start", "/stop", "/help", "/add", "/remove", "/alert_on", "/alert_off", "/list", "/status"}
	for _, command := range commands {
		mockBot.On("Handle", command, mock.AnythingOfType("telebot.HandlerFunc")).Once()
	}

	logger := slog.Default()
	testBot := Bot{bot: mockBot, log: logger}

	testBot.registerRoutes()

	mockBot.AssertExpectations(t)
}

func TestIsAdmin(t *testing.T) {
	t.Parallel()

	t.Run("unset admin id leaves commands open", func(t *testing.T) {
		t.Parallel()

		testBot := Bot{log: slog.Default()}
		assert.True(t, testBot.isAdmin(42))
		assert.True(t, testBot.isAdmin(1337))
	})

	t.Run("configured admin id restricts to that sender", func(t *testing.T) {
		t.Parallel()

		testBot := Bot{log: slog.Default(), adminID: 42}
		assert.True(t, testBot.isAdmin(42))
		assert.False(t, testBot.isAdmin(1337))
	})
}

func TestSetCouponAlert(t *testing.T) {
	product := models.TrackedProduct{
		ID:          "p1",
		URL:         "https://www.amazon.in/dp/B0TEST",
		Title:       "Test Headphones",
		CouponAlert: true,
	}

	t.Run("disables coupon alerts via update", func(t *testing.T) {
		repo := mocks.NewBotRepository(t)
		ctx := context.Background()

		repo.On("GetProduct", ctx, "p1").Return(product, nil).Once()
		repo.On("UpdateProduct", ctx, mock.MatchedBy(func(p models.TrackedProduct) bool {
			return p.ID == "p1" && !p.CouponAlert
		})).Return(nil).Once()

		testBot := Bot{log: slog.Default(), repo: repo}

		updated, err := testBot.setCouponAlert(ctx, "p1", false)
		require.NoError(t, err)
		assert.False(t, updated.CouponAlert)
	})

	t.Run("enables coupon alerts via update", func(t *testing.T) {
		disabled := product
		disabled.CouponAlert = false

		repo := mocks.NewBotRepository(t)
		ctx := context.Background()

		repo.On("GetProduct", ctx, "p1").Return(disabled, nil).Once()
		repo.On("UpdateProduct", ctx, mock.MatchedBy(func(p models.TrackedProduct) bool {
			return p.ID == "p1" && p.CouponAlert
		})).Return(nil).Once()

		testBot := Bot{log: slog.Default(), repo: repo}

		updated, err := testBot.setCouponAlert(ctx, "p1", true)
		require.NoError(t, err)
		assert.True(t, updated.CouponAlert)
	})

	t.Run("unknown product id reports not found", func(t *testing.T) {
		repo := mocks.NewBotRepository(t)
		ctx := context.Background()

		repo.On("GetProduct", ctx, "missing").
			Return(models.TrackedProduct{}, repository.ErrProductNotFound).Once()

		testBot := Bot{log: slog.Default(), repo: repo}

		_, err := testBot.setCouponAlert(ctx, "missing", true)
		require.ErrorIs(t, err, repository.ErrProductNotFound)
	})
}
