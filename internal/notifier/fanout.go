package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashimkp/pricewatch/internal/models"
)

// Fanout delivers every event to all configured sinks. One sink failing
// does not stop delivery to the others.
type Fanout struct {
	sinks []Sink
}

// NewFanout creates a fanout over the given sinks.
func NewFanout(sinks ...Sink) *Fanout {
	return &Fanout{sinks: sinks}
}

// Notify sends the event to every sink and joins any failures.
func (f *Fanout) Notify(ctx context.Context, event models.AlertEvent, product models.TrackedProduct) error {
	var errs []error
	for _, sink := range f.sinks {
		if err := sink.Notify(ctx, event, product); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("fanout delivery: %w", errors.Join(errs...))
	}

	return nil
}
