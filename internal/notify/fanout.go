// Package notify dispatches persisted submissions to independent
// downstream sinks. One sink's failure never rolls back persistence and
// never prevents another sink from running.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go-applicant-intake/internal/domain"
)

// Fanout delivers a stored record to every configured sink concurrently
// and joins all attempts before returning.
type Fanout struct {
	sinks []domain.Sink
	log   *slog.Logger
}

func NewFanout(log *slog.Logger, sinks ...domain.Sink) *Fanout {
	return &Fanout{
		sinks: sinks,
		log:   log,
	}
}

// Sinks returns the names of the configured sinks.
func (f *Fanout) Sinks() []string {
	names := make([]string, len(f.sinks))
	for i, s := range f.sinks {
		names[i] = s.Name()
	}
	return names
}

// Dispatch attempts each sink exactly once. No ordering across sinks is
// guaranteed. Errors and panics are captured per sink and logged; Dispatch
// itself never fails.
func (f *Fanout) Dispatch(ctx context.Context, rec *domain.StoredRecord) []domain.SinkResult {
	results := make([]domain.SinkResult, len(f.sinks))

	var wg sync.WaitGroup
	for i, sink := range f.sinks {
		wg.Add(1)
		go func(i int, sink domain.Sink) {
			defer wg.Done()
			start := time.Now()
			err := deliver(ctx, sink, rec)
			results[i] = domain.SinkResult{
				Sink:    sink.Name(),
				Err:     err,
				Elapsed: time.Since(start),
			}
			if err != nil {
				f.log.Error("notification sink failed",
					"sink", sink.Name(),
					"record_id", rec.ID,
					"error", err,
				)
			}
		}(i, sink)
	}
	wg.Wait()

	return results
}

// deliver invokes one sink, converting a panic into a captured error so a
// misbehaving sink cannot take down the fanout.
func deliver(ctx context.Context, sink domain.Sink, rec *domain.StoredRecord) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("sink panicked: %v", r)
		}
	}()
	return sink.Deliver(ctx, rec)
}
