package telemetry

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hakseup/topik-api/internal/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent(key string) ResponseEvent {
	item := domain.Item{Key: key, Translation: "t:" + key, Level: 1}
	return NewResponseEvent("default", item, domain.QualityKnow, "flashcard")
}

// collector records every batch posted to it.
type collector struct {
	mu      sync.Mutex
	batches [][]ResponseEvent
	status  int
}

func newCollector(status int) (*collector, *httptest.Server) {
	c := &collector{status: status}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var batch []ResponseEvent
		err := json.NewDecoder(r.Body).Decode(&batch)

		c.mu.Lock()
		status := c.status
		// Only accepted batches count as delivered.
		if err == nil && status >= 200 && status < 300 {
			c.batches = append(c.batches, batch)
		}
		c.mu.Unlock()

		w.WriteHeader(status)
	}))
	return c, server
}

func (c *collector) eventCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, b := range c.batches {
		n += len(b)
	}
	return n
}

func (c *collector) batchCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.batches)
}

func TestBatchTrackerFlushDeliversPending(t *testing.T) {
	t.Parallel()

	c, server := newCollector(http.StatusAccepted)
	defer server.Close()

	tracker := NewBatchTracker(BatchTrackerConfig{URL: server.URL}, testLogger())
	defer func() { _ = tracker.Close() }()

	tracker.Record(testEvent("a"))
	tracker.Record(testEvent("b"))

	require.NoError(t, tracker.Flush(context.Background()))

	require.Equal(t, 1, c.batchCount())
	assert.Equal(t, 2, c.eventCount())

	// Nothing left pending after a successful flush.
	require.NoError(t, tracker.Flush(context.Background()))
	assert.Equal(t, 1, c.batchCount())
}

func TestBatchTrackerFlushesWhenBatchFills(t *testing.T) {
	t.Parallel()

	c, server := newCollector(http.StatusOK)
	defer server.Close()

	tracker := NewBatchTracker(BatchTrackerConfig{URL: server.URL, BatchSize: 5}, testLogger())

	for i := 0; i < 5; i++ {
		tracker.Record(testEvent("x"))
	}

	// Close waits for the background flush and drains anything left.
	require.NoError(t, tracker.Close())
	assert.Equal(t, 5, c.eventCount())
}

func TestBatchTrackerFailedBatchIsRetained(t *testing.T) {
	t.Parallel()

	c, server := newCollector(http.StatusInternalServerError)
	defer server.Close()

	tracker := NewBatchTracker(BatchTrackerConfig{URL: server.URL}, testLogger())
	defer func() { _ = tracker.Close() }()

	tracker.Record(testEvent("a"))
	require.Error(t, tracker.Flush(context.Background()))

	// The collector recovers and the retained event is redelivered.
	c.mu.Lock()
	c.status = http.StatusOK
	c.mu.Unlock()

	require.NoError(t, tracker.Flush(context.Background()))
	assert.Equal(t, 1, c.eventCount())
	assert.Equal(t, "a", lastBatchKey(t, c))
}

func lastBatchKey(t *testing.T, c *collector) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.batches)
	last := c.batches[len(c.batches)-1]
	require.NotEmpty(t, last)
	return last[0].ItemKey
}

func TestBatchTrackerUsesFallbackEndpoint(t *testing.T) {
	t.Parallel()

	_, primary := newCollector(http.StatusServiceUnavailable)
	defer primary.Close()
	fallback, fallbackServer := newCollector(http.StatusOK)
	defer fallbackServer.Close()

	tracker := NewBatchTracker(BatchTrackerConfig{
		URL:         primary.URL,
		FallbackURL: fallbackServer.URL,
	}, testLogger())
	defer func() { _ = tracker.Close() }()

	tracker.Record(testEvent("a"))
	require.NoError(t, tracker.Flush(context.Background()))

	assert.Equal(t, 1, fallback.eventCount())
}

func TestBatchTrackerPeriodicFlush(t *testing.T) {
	t.Parallel()

	c, server := newCollector(http.StatusOK)
	defer server.Close()

	tracker := NewBatchTracker(BatchTrackerConfig{
		URL:           server.URL,
		FlushInterval: 20 * time.Millisecond,
	}, testLogger())
	defer func() { _ = tracker.Close() }()

	tracker.Record(testEvent("a"))

	require.Eventually(t, func() bool {
		return c.eventCount() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestBatchTrackerCloseFlushesRemainder(t *testing.T) {
	t.Parallel()

	c, server := newCollector(http.StatusOK)
	defer server.Close()

	tracker := NewBatchTracker(BatchTrackerConfig{URL: server.URL}, testLogger())
	tracker.Record(testEvent("a"))

	require.NoError(t, tracker.Close())
	assert.Equal(t, 1, c.eventCount())

	// Close is idempotent.
	require.NoError(t, tracker.Close())
}

func TestNoopTrackerDiscardsEverything(t *testing.T) {
	t.Parallel()

	var tracker Tracker = NoopTracker{}
	tracker.Record(testEvent("a"))
	assert.NoError(t, tracker.Flush(context.Background()))
	assert.NoError(t, tracker.Close())
}

func TestNewResponseEventPopulatesFields(t *testing.T) {
	t.Parallel()

	item := domain.Item{Key: "학교", Translation: "school", Level: 2}
	event := NewResponseEvent("hana", item, domain.QualityUnsure, "quiz")

	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", event.ID.String())
	assert.Equal(t, "hana", event.Learner)
	assert.Equal(t, "학교", event.ItemKey)
	assert.Equal(t, "school", event.Translation)
	assert.Equal(t, domain.QualityUnsure, event.Quality)
	assert.Equal(t, 2, event.Level)
	assert.Equal(t, "quiz", event.Surface)
	assert.WithinDuration(t, time.Now().UTC(), event.Timestamp, time.Minute)
}
