package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerRunsRegisteredJob(t *testing.T) {
	s := New(time.Second)

	var runs int32
	require.NoError(t, s.Register("counter", "@every 1s", func(ctx context.Context) error {
		atomic.AddInt32(&runs, 1)
		return nil
	}))

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) >= 1
	}, 3*time.Second, 50*time.Millisecond)
}

func TestSchedulerRejectsBadSpec(t *testing.T) {
	s := New(time.Second)
	err := s.Register("broken", "not a spec", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestSchedulerRunSurvivesJobError(t *testing.T) {
	s := New(time.Second)
	assert.NotPanics(t, func() {
		s.run("failing", func(context.Context) error { return errors.New("boom") })
	})
}

func TestSchedulerStopCancelsJobContext(t *testing.T) {
	s := New(time.Minute)
	s.Stop()

	var ctxErr error
	s.run("after-stop", func(ctx context.Context) error {
		ctxErr = ctx.Err()
		return nil
	})
	assert.ErrorIs(t, ctxErr, context.Canceled)
}
