package telemetry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

const (
	// DefaultBatchSize is the pending-event count that triggers an
	// immediate background flush.
	DefaultBatchSize = 20

	// DefaultFlushInterval is how often pending events are flushed even
	// when the batch never fills.
	DefaultFlushInterval = 5 * time.Minute

	// flushTimeout bounds a single delivery attempt.
	flushTimeout = 10 * time.Second
)

// Tracker accepts response events for eventual delivery.
type Tracker interface {
	// Record queues an event. It never blocks on the network and never
	// returns an error; delivery is handled asynchronously.
	Record(event ResponseEvent)

	// Flush synchronously delivers all pending events. Failed batches
	// remain pending.
	Flush(ctx context.Context) error

	// Close flushes remaining events and stops background delivery.
	Close() error
}

// NoopTracker discards every event. Used when telemetry is disabled.
type NoopTracker struct{}

var _ Tracker = NoopTracker{}

func (NoopTracker) Record(ResponseEvent)        {}
func (NoopTracker) Flush(context.Context) error { return nil }
func (NoopTracker) Close() error                { return nil }

// BatchTrackerConfig configures a BatchTracker.
type BatchTrackerConfig struct {
	// URL is the primary collector endpoint.
	URL string

	// FallbackURL receives the batch when the primary endpoint fails.
	// Optional.
	FallbackURL string

	// BatchSize is the pending count that triggers a flush. Defaults to
	// DefaultBatchSize.
	BatchSize int

	// FlushInterval is the periodic flush cadence. Defaults to
	// DefaultFlushInterval.
	FlushInterval time.Duration

	// Client is the HTTP client used for delivery. Defaults to a client
	// with a short timeout.
	Client *http.Client
}

// BatchTracker buffers events in memory and posts them as JSON arrays.
// A batch that cannot be delivered to either endpoint is requeued, so
// events are only lost if the process dies with them pending.
type BatchTracker struct {
	cfg    BatchTrackerConfig
	client *http.Client
	logger *slog.Logger

	mu      sync.Mutex
	pending []ResponseEvent

	done chan struct{}
	wg   sync.WaitGroup

	closeOnce sync.Once
}

var _ Tracker = (*BatchTracker)(nil)

// NewBatchTracker creates a BatchTracker and starts its periodic flush
// loop.
// Panics if logger is nil, as this represents a bug in application setup.
func NewBatchTracker(cfg BatchTrackerConfig, logger *slog.Logger) *BatchTracker {
	if logger == nil {
		panic("logger cannot be nil") // ALLOW-PANIC
	}

	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DefaultBatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = DefaultFlushInterval
	}
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: flushTimeout}
	}

	t := &BatchTracker{
		cfg:    cfg,
		client: client,
		logger: logger.With(slog.String("component", "telemetry_tracker")),
		done:   make(chan struct{}),
	}

	t.wg.Add(1)
	go t.run()

	return t
}

// Record implements Tracker.Record. Filling the batch hands delivery to a
// background goroutine; the caller never waits on the collector.
func (t *BatchTracker) Record(event ResponseEvent) {
	t.mu.Lock()
	t.pending = append(t.pending, event)
	full := len(t.pending) >= t.cfg.BatchSize
	t.mu.Unlock()

	if full {
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			defer cancel()
			if err := t.Flush(ctx); err != nil {
				t.logger.Warn("background flush failed", slog.String("error", err.Error()))
			}
		}()
	}
}

// Flush implements Tracker.Flush.
func (t *BatchTracker) Flush(ctx context.Context) error {
	t.mu.Lock()
	if len(t.pending) == 0 {
		t.mu.Unlock()
		return nil
	}
	batch := t.pending
	t.pending = nil
	t.mu.Unlock()

	if err := t.send(ctx, batch); err != nil {
		// Requeue ahead of anything recorded during the attempt so
		// delivery order stays close to record order.
		t.mu.Lock()
		t.pending = append(batch, t.pending...)
		t.mu.Unlock()
		return err
	}

	t.logger.Debug("batch delivered", slog.Int("event_count", len(batch)))
	return nil
}

// Close implements Tracker.Close.
func (t *BatchTracker) Close() error {
	var flushErr error
	t.closeOnce.Do(func() {
		close(t.done)
		t.wg.Wait()

		ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
		defer cancel()
		flushErr = t.Flush(ctx)
	})
	return flushErr
}

// run periodically flushes pending events until Close.
func (t *BatchTracker) run() {
	defer t.wg.Done()

	ticker := time.NewTicker(t.cfg.FlushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			if err := t.Flush(ctx); err != nil {
				t.logger.Warn("periodic flush failed", slog.String("error", err.Error()))
			}
			cancel()
		}
	}
}

// send posts the batch to the primary endpoint, falling back to the
// secondary endpoint when the primary fails.
func (t *BatchTracker) send(ctx context.Context, batch []ResponseEvent) error {
	body, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("failed to encode telemetry batch: %w", err)
	}

	primaryErr := t.post(ctx, t.cfg.URL, body)
	if primaryErr == nil {
		return nil
	}

	if t.cfg.FallbackURL == "" {
		return primaryErr
	}

	t.logger.Debug("primary endpoint failed, trying fallback",
		slog.String("error", primaryErr.Error()))

	if err := t.post(ctx, t.cfg.FallbackURL, body); err != nil {
		return fmt.Errorf("both telemetry endpoints failed: primary: %v, fallback: %w", primaryErr, err)
	}
	return nil
}

func (t *BatchTracker) post(ctx context.Context, url string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telemetry request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telemetry request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telemetry endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
