package mailer

import (
	"sync"
	"time"
)

// DispatchMetrics tracks the background mail queue
type DispatchMetrics struct {
	Enqueued   int64
	Sent       int64
	Failed     int64
	Dropped    int64
	LastSentAt time.Time
	QueueDepth int
}

// MetricsTracker provides a goroutine-safe wrapper around DispatchMetrics.
type MetricsTracker struct {
	mu      sync.RWMutex
	metrics DispatchMetrics
}

func NewMetricsTracker() *MetricsTracker {
	return &MetricsTracker{}
}

func (t *MetricsTracker) Update(fn func(*DispatchMetrics)) {
	if fn == nil {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	fn(&t.metrics)
}

// Snapshot returns a copy of the current metrics.
func (t *MetricsTracker) Snapshot() DispatchMetrics {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.metrics
}
