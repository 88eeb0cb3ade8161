// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"jobboard/internal/logger"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// JobFunc is one unit of scheduled work.
type JobFunc func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

func New(timeout time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	if timeout <= 0 {
		timeout = time.Minute
	}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(zapCronLogger{}),
			cron.WithChain(cron.Recover(zapCronLogger{}), cron.SkipIfStillRunning(zapCronLogger{})),
		),
		ctx:     ctx,
		cancel:  cancel,
		timeout: timeout,
	}
}

// Register adds a named job. Spec accepts standard cron expressions and
// descriptors such as "@every 1h".
func (s *Scheduler) Register(name, spec string, job JobFunc) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc(%s, %q): %w", name, spec, err)
	}

	logger.Info("Scheduled job registered",
		zap.String("job", name),
		zap.String("spec", spec),
	)
	return nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	logger.Info("Scheduler started", zap.Int("jobs", len(s.cron.Entries())))
}

// Stop cancels running jobs and waits for them to return.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	logger.Info("Scheduler stopped")
}

func (s *Scheduler) run(name string, job JobFunc) {
	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		logger.Error("Scheduled job failed",
			zap.String("job", name),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	logger.Debug("Scheduled job completed",
		zap.String("job", name),
		zap.Duration("duration", time.Since(start)),
	)
}

// zapCronLogger adapts the global zap logger to cron.Logger.
type zapCronLogger struct{}

func (zapCronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.Logger.Sugar().Debugw("cron: "+msg, keysAndValues...)
}

func (zapCronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	logger.Logger.Sugar().Errorw("cron: "+msg, append(keysAndValues, "error", err)...)
}
