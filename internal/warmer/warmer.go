// Package warmer keeps the fixtures cache warm by refreshing it on an
// interval, so visitors rarely pay the cost of a cold scrape.
package warmer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/andover-chess-club/fixtures-service/internal/domain"
	"github.com/andover-chess-club/fixtures-service/internal/logging"
	"github.com/andover-chess-club/fixtures-service/internal/metrics"
)

const defaultInterval = time.Hour

// Refresher re-aggregates fixtures and stores the result in the cache.
type Refresher interface {
	Refresh(ctx context.Context) (domain.FixturesSnapshot, error)
}

// Warmer refreshes the fixtures cache on an interval.
type Warmer struct {
	refresher Refresher
	logger    *slog.Logger
	metrics   *metrics.Recorder
	interval  time.Duration

	ticker   *time.Ticker
	done     chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the warming loop.
type Status struct {
	ConsecutiveFailures int
	LastError           string
	LastAttempt         time.Time
	LastSuccess         time.Time
}

// IsReady reports whether the warmer has had a recent success and is not
// failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// New constructs a Warmer. A non-positive interval falls back to the default;
// callers that want warming disabled simply never Start it.
func New(refresher Refresher, logger *slog.Logger, recorder *metrics.Recorder, interval time.Duration) *Warmer {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Warmer{
		refresher: refresher,
		logger:    logger,
		metrics:   recorder,
		interval:  interval,
		done:      make(chan struct{}),
	}
}

// Start begins warming until the context is cancelled or Stop is called.
func (w *Warmer) Start(ctx context.Context) {
	w.startMu.Lock()
	if w.started {
		w.startMu.Unlock()
		return
	}
	w.started = true
	w.startMu.Unlock()

	w.ticker = time.NewTicker(w.interval)

	go func() {
		logging.Info(w.logger, "cache warmer started", slog.Int64(logging.FieldDurationMS, w.interval.Milliseconds()))
		// Initial refresh to warm the cache on boot.
		w.refreshOnce(ctx)

		for {
			select {
			case <-ctx.Done():
				w.stopTicker()
				logging.Info(w.logger, "cache warmer stopped")
				return
			case <-w.done:
				w.stopTicker()
				logging.Info(w.logger, "cache warmer stopped")
				return
			case <-w.ticker.C:
				w.refreshOnce(ctx)
			}
		}
	}()
}

// Stop halts the warming loop.
func (w *Warmer) Stop(ctx context.Context) error {
	_ = ctx
	w.stopOnce.Do(func() {
		close(w.done)
		w.stopTicker()
	})
	return nil
}

func (w *Warmer) refreshOnce(ctx context.Context) {
	start := time.Now()
	w.recordAttempt(start)

	snap, err := w.refresher.Refresh(ctx)
	w.metrics.RecordWarmerCycle(time.Since(start), err)
	if err != nil {
		logging.Error(w.logger, "cache warm refresh failed", err,
			slog.Int64(logging.FieldDurationMS, time.Since(start).Milliseconds()),
		)
		w.recordFailure(err, start)
		return
	}

	w.recordSuccess(start)
	logging.Info(w.logger, "cache warmed",
		logging.FieldCount, len(snap.Fixtures),
		logging.FieldDurationMS, time.Since(start).Milliseconds(),
	)
}

func (w *Warmer) stopTicker() {
	if w.ticker != nil {
		w.ticker.Stop()
	}
}

func (w *Warmer) recordAttempt(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.LastAttempt = at
}

func (w *Warmer) recordSuccess(at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures = 0
	w.status.LastError = ""
	w.status.LastSuccess = at
}

func (w *Warmer) recordFailure(err error, at time.Time) {
	w.statusMu.Lock()
	defer w.statusMu.Unlock()
	w.status.ConsecutiveFailures++
	if err != nil {
		w.status.LastError = err.Error()
	}
	w.status.LastAttempt = at
}

// Status returns a snapshot of the warmer's recent health.
func (w *Warmer) Status() Status {
	w.statusMu.RLock()
	defer w.statusMu.RUnlock()
	return w.status
}
