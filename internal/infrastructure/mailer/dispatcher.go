package mailer

import (
	"context"
	"errors"
	"sync"
	"time"

	"jobboard/internal/domain/mail"
	"jobboard/internal/logger"

	"go.uber.org/zap"
)

var ErrDispatcherStopped = errors.New("mail dispatcher is stopped")

// Sender delivers a single message synchronously.
type Sender interface {
	Send(ctx context.Context, msg mail.Message) error
}

// ErrorHandler receives every delivery failure.
type ErrorHandler func(msg mail.Message, err error)

// Dispatcher queues messages and delivers them from a fixed worker pool so
// callers never wait on SMTP.
type Dispatcher struct {
	sender      Sender
	onError     ErrorHandler
	workerCount int
	sendTimeout time.Duration

	queue   chan mail.Message
	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup

	metrics *MetricsTracker
}

func NewDispatcher(sender Sender, workerCount, queueSize int, sendTimeout time.Duration) *Dispatcher {
	if workerCount <= 0 {
		workerCount = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	if sendTimeout <= 0 {
		sendTimeout = 15 * time.Second
	}

	return &Dispatcher{
		sender:      sender,
		workerCount: workerCount,
		sendTimeout: sendTimeout,
		queue:       make(chan mail.Message, queueSize),
		metrics:     NewMetricsTracker(),
		onError: func(msg mail.Message, err error) {
			logger.Error("Failed to send email",
				zap.String("to", msg.To),
				zap.String("subject", msg.Subject),
				zap.String("event", "email_send_failed"),
				zap.Error(err),
			)
		},
	}
}

// OnError replaces the default logging error handler.
func (d *Dispatcher) OnError(handler ErrorHandler) {
	if handler != nil {
		d.onError = handler
	}
}

var _ mail.Dispatcher = (*Dispatcher)(nil)

func (d *Dispatcher) Start() {
	logger.Info("Starting mail dispatcher",
		zap.Int("workers", d.workerCount),
		zap.Int("queue_size", cap(d.queue)),
	)

	for i := 0; i < d.workerCount; i++ {
		d.wg.Add(1)
		go d.worker(i)
	}
}

// Stop rejects new messages and waits for queued ones to be delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()

	snapshot := d.metrics.Snapshot()
	logger.Info("Mail dispatcher stopped",
		zap.Int64("sent", snapshot.Sent),
		zap.Int64("failed", snapshot.Failed),
		zap.Int64("dropped", snapshot.Dropped),
	)
}

// Dispatch enqueues msg without blocking. A full queue drops the message.
func (d *Dispatcher) Dispatch(msg mail.Message) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.stopped {
		return ErrDispatcherStopped
	}

	select {
	case d.queue <- msg:
		d.metrics.Update(func(m *DispatchMetrics) {
			m.Enqueued++
			m.QueueDepth = len(d.queue)
		})
		return nil
	default:
		d.metrics.Update(func(m *DispatchMetrics) {
			m.Dropped++
		})
		return mail.ErrQueueFull
	}
}

func (d *Dispatcher) Metrics() DispatchMetrics {
	return d.metrics.Snapshot()
}

func (d *Dispatcher) worker(id int) {
	defer d.wg.Done()

	logger.Debug("Mail worker started", zap.Int("worker_id", id))

	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg mail.Message) {
	ctx, cancel := context.WithTimeout(context.Background(), d.sendTimeout)
	defer cancel()

	if err := d.sender.Send(ctx, msg); err != nil {
		d.metrics.Update(func(m *DispatchMetrics) {
			m.Failed++
			m.QueueDepth = len(d.queue)
		})
		d.onError(msg, err)
		return
	}

	d.metrics.Update(func(m *DispatchMetrics) {
		m.Sent++
		m.LastSentAt = time.Now()
		m.QueueDepth = len(d.queue)
	})
}
