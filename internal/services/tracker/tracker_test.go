package tracker_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/services/tracker"
	"github.com/hashimkp/pricewatch/test/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTracker_StopInterruptsSleep(t *testing.T) {
	repo := mocks.NewTrackerRepository(t)
	adapters := mocks.NewAdapterSource(t)
	sink := mocks.NewSink(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	// One empty round, then the loop goes into a long sleep that Stop must
	// interrupt promptly.
	repo.On("ListProducts", mock.Anything).Return([]models.TrackedProduct{}, nil)

	trk := tracker.New(logger, repo, adapters, sink, tracker.Options{
		IntervalMin: time.Hour,
		IntervalMax: 2 * time.Hour,
	})

	done := make(chan error, 1)
	go func() {
		done <- trk.Run(context.Background())
	}()

	// Give the first round time to complete before requesting shutdown.
	require.Eventually(t, func() bool {
		return trk.Status().RoundsCompleted >= 1
	}, 2*time.Second, 10*time.Millisecond)

	trk.Stop()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after Stop")
	}

	status := trk.Status()
	assert.GreaterOrEqual(t, status.RoundsCompleted, 1)
	assert.False(t, status.LastRoundAt.IsZero())
}

func TestTracker_PersistentStoreFailureIsFatal(t *testing.T) {
	repo := mocks.NewTrackerRepository(t)
	adapters := mocks.NewAdapterSource(t)
	sink := mocks.NewSink(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo.On("ListProducts", mock.Anything).Return(nil, assert.AnError)

	trk := tracker.New(logger, repo, adapters, sink, tracker.Options{
		IntervalMin: time.Millisecond,
		IntervalMax: 2 * time.Millisecond,
	})

	done := make(chan error, 1)
	go func() {
		done <- trk.Run(context.Background())
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		require.ErrorIs(t, err, assert.AnError)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not escalate persistent store failures")
	}
}
