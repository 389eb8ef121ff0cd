// Package tracker implements the coordination core: it owns the check
// round loop, per-product fetch retries, change detection against the
// stored observed state and alert dispatch.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/hashimkp/pricewatch/internal/adapter"
	"github.com/hashimkp/pricewatch/internal/metrics"
	"github.com/hashimkp/pricewatch/internal/models"
	"github.com/hashimkp/pricewatch/internal/notifier"
	"github.com/hashimkp/pricewatch/internal/repository"
)

// ReentryMode selects when a fired price-drop alert becomes eligible again.
type ReentryMode string

const (
	// ReentryAboveTarget re-arms only after the price is observed strictly
	// above the target again. This is the default.
	ReentryAboveTarget ReentryMode = "above"
	// ReentryAnyRise re-arms on any observed price increase, even while the
	// price stays at or below the target.
	ReentryAnyRise ReentryMode = "rise"
)

// Repository is the store surface the tracker needs.
type Repository interface {
	ListProducts(ctx context.Context) ([]models.TrackedProduct, error)
	GetState(ctx context.Context, productID string) (*models.ObservedState, error)
	PutState(ctx context.Context, state *models.ObservedState) error
}

// AdapterSource resolves the adapter for a product's retailer.
type AdapterSource interface {
	Get(retailer models.Retailer) (adapter.Adapter, error)
}

// Options tunes the round loop and retry policy.
type Options struct {
	// IntervalMin/IntervalMax bound the randomized sleep between rounds.
	IntervalMin time.Duration
	IntervalMax time.Duration
	// MaxAttempts bounds fetch attempts per product per round.
	MaxAttempts int
	// BackoffBase is the delay before the first retry; it doubles per attempt.
	BackoffBase time.Duration
	// ProductDelayMin/ProductDelayMax bound the jitter between products
	// within a round, keeping request spacing irregular toward retailers.
	ProductDelayMin time.Duration
	ProductDelayMax time.Duration
	ReentryMode     ReentryMode
}

func (o *Options) setDefaults() {
	if o.IntervalMin <= 0 {
		o.IntervalMin = 10 * time.Minute
	}
	if o.IntervalMax < o.IntervalMin {
		o.IntervalMax = o.IntervalMin + 5*time.Minute
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = 3
	}
	if o.BackoffBase <= 0 {
		o.BackoffBase = 2 * time.Second
	}
	if o.ReentryMode == "" {
		o.ReentryMode = ReentryAboveTarget
	}
}

// Status is a point-in-time view of the tracker for external surfaces.
type Status struct {
	RoundsCompleted int
	LastRoundAt     time.Time
	// Failures maps product id to its current consecutive failure count.
	Failures map[string]int
}

// maxListFailures is how many consecutive rounds may fail at the product
// snapshot before the store is considered broken and Run aborts.
const maxListFailures = 3

// Tracker is the coordination core. Dependencies are injected; lifecycle
// is Run/Stop.
type Tracker struct {
	log      *slog.Logger
	repo     Repository
	adapters AdapterSource
	sink     notifier.Sink
	opts     Options

	mu       sync.Mutex
	cancel   context.CancelFunc
	rounds   int
	lastAt   time.Time
	failures map[string]int
}

// New creates a Tracker. Zero option fields get defaults.
func New(log *slog.Logger, repo Repository, adapters AdapterSource, sink notifier.Sink, opts Options) *Tracker {
	opts.setDefaults()
	return &Tracker{
		log:      log,
		repo:     repo,
		adapters: adapters,
		sink:     sink,
		opts:     opts,
		failures: make(map[string]int),
	}
}

// Run drives check rounds until ctx is canceled or Stop is called. The
// first round starts immediately; after each round the loop sleeps for a
// random duration within the configured interval. Only a persistently
// failing store aborts the loop with an error.
func (t *Tracker) Run(ctx context.Context) error {
	const opn = "tracker.Run"

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	t.mu.Lock()
	t.cancel = cancel
	t.mu.Unlock()

	listFailures := 0
	for {
		if err := t.runRound(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}

			listFailures++
			t.log.ErrorContext(ctx, "check round failed",
				"op", opn, "error", err, "consecutive_failures", listFailures)
			if listFailures >= maxListFailures {
				return fmt.Errorf("%s: store unavailable for %d consecutive rounds: %w", opn, listFailures, err)
			}
		} else {
			listFailures = 0
		}

		interval := t.nextInterval()
		t.log.InfoContext(ctx, "round complete, sleeping", "interval", interval)
		if !sleepCtx(ctx, interval) {
			return nil
		}
	}
}

// Stop requests a graceful shutdown of a running loop.
func (t *Tracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		t.cancel()
	}
}

// Status reports round progress and per-product failure counters.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	failures := make(map[string]int, len(t.failures))
	for id, n := range t.failures {
		failures[id] = n
	}

	return Status{
		RoundsCompleted: t.rounds,
		LastRoundAt:     t.lastAt,
		Failures:        failures,
	}
}

// runRound takes one snapshot of the tracked products and checks each in
// turn. A single product failing never aborts the round.
func (t *Tracker) runRound(ctx context.Context) error {
	const opn = "tracker.runRound"
	started := time.Now()

	products, err := t.repo.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("%s: failed to list products: %w", opn, err)
	}

	t.log.InfoContext(ctx, "starting check round", "products", len(products))

	for i, product := range products {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		// Spacing between requests stays irregular on purpose.
		if i > 0 && t.opts.ProductDelayMax > 0 {
			if !sleepCtx(ctx, randDuration(t.opts.ProductDelayMin, t.opts.ProductDelayMax)) {
				return ctx.Err()
			}
		}

		t.checkProduct(ctx, product)
	}

	t.mu.Lock()
	t.rounds++
	t.lastAt = time.Now()
	t.mu.Unlock()

	metrics.RoundsTotal.Inc()
	metrics.RoundDuration.Observe(time.Since(started).Seconds())

	return nil
}

// checkProduct performs fetch, diff, state update and dispatch for one
// product. All errors are handled here; nothing escapes to the round.
func (t *Tracker) checkProduct(ctx context.Context, product models.TrackedProduct) {
	const opn = "tracker.checkProduct"
	log := t.log.With("op", opn, "product_id", product.ID, "retailer", product.Retailer)

	prev, err := t.repo.GetState(ctx, product.ID)
	if err != nil && !errors.Is(err, repository.ErrStateNotFound) {
		log.ErrorContext(ctx, "failed to load observed state, skipping product", "error", err)
		return
	}

	result, fetchErr := t.fetchWithRetry(ctx, product)
	if fetchErr != nil {
		if errors.Is(fetchErr, context.Canceled) {
			return
		}
		t.recordFailure(ctx, log, product, prev, fetchErr)
		return
	}

	now := time.Now()
	events, next := t.detectChanges(product, prev, result, now)

	// The baseline advances before dispatch: a sink failure must never
	// cause the same change to alert again next round.
	if err = t.repo.PutState(ctx, &next); err != nil {
		log.ErrorContext(ctx, "failed to persist observed state", "error", err)
		return
	}

	t.mu.Lock()
	t.failures[product.ID] = 0
	t.mu.Unlock()

	for _, event := range events {
		metrics.AlertsFiredTotal.WithLabelValues(string(event.Kind)).Inc()
		log.InfoContext(ctx, "alert event detected", "kind", event.Kind, "price", event.NewPrice)

		if err = t.sink.Notify(ctx, event, product); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			log.ErrorContext(ctx, "failed to deliver alert", "kind", event.Kind, "error", err)
		}
	}
}

// fetchWithRetry calls the product's adapter up to MaxAttempts times,
// backing off between attempts. Only transient failures are retried.
func (t *Tracker) fetchWithRetry(ctx context.Context, product models.TrackedProduct) (*models.FetchResult, error) {
	adp, err := t.adapters.Get(product.Retailer)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for attempt := 1; attempt <= t.opts.MaxAttempts; attempt++ {
		result, err := adp.Fetch(ctx, product.URL)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if adapter.Permanent(err) || ctx.Err() != nil {
			break
		}

		t.log.WarnContext(ctx, "transient fetch failure",
			"product_id", product.ID, "attempt", attempt, "max_attempts", t.opts.MaxAttempts, "error", err)

		if attempt < t.opts.MaxAttempts {
			backoff := t.opts.BackoffBase << (attempt - 1)
			if !sleepCtx(ctx, backoff) {
				return nil, ctx.Err()
			}
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return nil, lastErr
}

// recordFailure bumps the product's failure counter without touching the
// last successful observation.
func (t *Tracker) recordFailure(
	ctx context.Context,
	log *slog.Logger,
	product models.TrackedProduct,
	prev *models.ObservedState,
	fetchErr error,
) {
	class := "transient"
	if adapter.Permanent(fetchErr) {
		class = "permanent"
	}
	metrics.FetchFailuresTotal.WithLabelValues(class).Inc()

	next := models.ObservedState{ProductID: product.ID}
	if prev != nil {
		next = *prev
	}
	next.ConsecutiveFailures++

	log.WarnContext(ctx, "product fetch failed",
		"class", class, "consecutive_failures", next.ConsecutiveFailures, "error", fetchErr)

	if err := t.repo.PutState(ctx, &next); err != nil {
		log.ErrorContext(ctx, "failed to persist failure state", "error", err)
	}

	t.mu.Lock()
	t.failures[product.ID] = next.ConsecutiveFailures
	t.mu.Unlock()
}

// detectChanges diffs the fetch result against the previous observation
// and returns the alert events plus the next baseline state.
func (t *Tracker) detectChanges(
	product models.TrackedProduct,
	prev *models.ObservedState,
	cur *models.FetchResult,
	now time.Time,
) ([]models.AlertEvent, models.ObservedState) {
	next := models.ObservedState{
		ProductID:         product.ID,
		LastPrice:         &cur.Price,
		LastCouponPresent: &cur.CouponPresent,
		LastCheckedAt:     now,
	}

	belowTarget := product.HasTarget() && cur.Price <= product.TargetPrice

	// First successful observation: establish the baseline, never alert.
	if prev == nil || prev.LastPrice == nil {
		next.BelowTarget = belowTarget
		return nil, next
	}

	var events []models.AlertEvent

	if belowTarget {
		armed := !prev.BelowTarget
		if t.opts.ReentryMode == ReentryAnyRise && cur.Price > *prev.LastPrice {
			// An upward move re-arms even while still under target; the
			// alert then fires on the next qualifying drop, not on the
			// rise itself.
			armed = false
		}

		if cur.Price < *prev.LastPrice || armed {
			events = append(events, models.AlertEvent{
				ProductID:  product.ID,
				Kind:       models.AlertPriceDrop,
				OldPrice:   prev.LastPrice,
				NewPrice:   cur.Price,
				CouponText: cur.CouponText,
				Timestamp:  now,
			})
		}
		next.BelowTarget = true
	} else {
		next.BelowTarget = false
	}

	if t.opts.ReentryMode == ReentryAnyRise && belowTarget && cur.Price > *prev.LastPrice {
		// Keep the armed flag cleared so the rise itself stays silent but
		// the next drop fires.
		next.BelowTarget = false
	}

	couponWasPresent := prev.LastCouponPresent != nil && *prev.LastCouponPresent
	if product.CouponAlert && cur.CouponPresent && !couponWasPresent {
		events = append(events, models.AlertEvent{
			ProductID:  product.ID,
			Kind:       models.AlertCouponAppeared,
			OldPrice:   prev.LastPrice,
			NewPrice:   cur.Price,
			CouponText: cur.CouponText,
			Timestamp:  now,
		})
	}

	return events, next
}

// nextInterval draws the sleep before the next round uniformly from the
// configured bounds.
func (t *Tracker) nextInterval() time.Duration {
	return randDuration(t.opts.IntervalMin, t.opts.IntervalMax)
}

func randDuration(min, max time.Duration) time.Duration {
	if max <= min {
		return min
	}
	return min + time.Duration(rand.Int63n(int64(max-min)))
}

// sleepCtx sleeps for d unless ctx is canceled first. Returns false when
// the sleep was interrupted.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
