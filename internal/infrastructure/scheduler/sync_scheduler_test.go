package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestScheduler(t *testing.T) *SyncScheduler {
	s, err := NewSyncScheduler(SyncSchedulerConfig{
		Enabled:    true,
		JobTimeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return s
}

func TestSyncSchedulerConfig_Validate(t *testing.T) {
	cfg := DefaultSyncSchedulerConfig()
	assert.NoError(t, cfg.Validate())

	cfg.JobTimeout = 0
	assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
}

func TestSyncScheduler_Register(t *testing.T) {
	s := newTestScheduler(t)

	job := Job{
		Name:     "stock_sync",
		Interval: time.Minute,
		Run:      func(ctx context.Context) error { return nil },
	}
	require.NoError(t, s.Register(job))

	t.Run("duplicate name rejected", func(t *testing.T) {
		err := s.Register(job)
		assert.Error(t, err)
	})

	t.Run("invalid job rejected", func(t *testing.T) {
		err := s.Register(Job{Name: "", Interval: time.Minute})
		assert.ErrorIs(t, err, ErrInvalidConfig)

		err = s.Register(Job{Name: "no-interval", Run: func(ctx context.Context) error { return nil }})
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})
}

func TestSyncScheduler_RunAtStart(t *testing.T) {
	s := newTestScheduler(t)

	var runs atomic.Int32
	require.NoError(t, s.Register(Job{
		Name:       "stock_sync",
		Interval:   time.Hour,
		RunAtStart: true,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return runs.Load() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestSyncScheduler_RunsOnInterval(t *testing.T) {
	s := newTestScheduler(t)

	var runs atomic.Int32
	require.NoError(t, s.Register(Job{
		Name:     "order_status",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	assert.Eventually(t, func() bool {
		return runs.Load() >= 2
	}, time.Second, 10*time.Millisecond)
}

func TestSyncScheduler_SurvivesFailuresAndPanics(t *testing.T) {
	s := newTestScheduler(t)

	var runs atomic.Int32
	require.NoError(t, s.Register(Job{
		Name:     "catalog_map",
		Interval: 20 * time.Millisecond,
		Run: func(ctx context.Context) error {
			n := runs.Add(1)
			if n == 1 {
				panic("boom")
			}
			if n == 2 {
				return errors.New("transient failure")
			}
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	defer s.Stop(context.Background())

	// The loop keeps ticking past the panic and the error
	assert.Eventually(t, func() bool {
		return runs.Load() >= 3
	}, time.Second, 10*time.Millisecond)
}

func TestSyncScheduler_TriggerNow(t *testing.T) {
	s := newTestScheduler(t)

	blocker := make(chan struct{})
	var runs atomic.Int32
	require.NoError(t, s.Register(Job{
		Name:     "stock_sync",
		Interval: time.Hour,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			<-blocker
			return nil
		},
	}))

	t.Run("not running", func(t *testing.T) {
		err := s.TriggerNow(context.Background(), "stock_sync")
		assert.ErrorIs(t, err, ErrSchedulerNotRunning)
	})

	require.NoError(t, s.Start(context.Background()))

	t.Run("unknown job", func(t *testing.T) {
		err := s.TriggerNow(context.Background(), "nope")
		assert.ErrorIs(t, err, ErrJobNotFound)
	})

	t.Run("in-flight run blocks a second trigger", func(t *testing.T) {
		require.NoError(t, s.TriggerNow(context.Background(), "stock_sync"))

		assert.Eventually(t, func() bool {
			return runs.Load() == 1
		}, time.Second, 10*time.Millisecond)

		err := s.TriggerNow(context.Background(), "stock_sync")
		assert.ErrorIs(t, err, ErrJobAlreadyRunning)

		close(blocker)
	})

	require.NoError(t, s.Stop(context.Background()))
}

func TestSyncScheduler_StopWaitsForInFlightRuns(t *testing.T) {
	s := newTestScheduler(t)

	finished := make(chan struct{})
	require.NoError(t, s.Register(Job{
		Name:       "order_status",
		Interval:   time.Hour,
		RunAtStart: true,
		Run: func(ctx context.Context) error {
			time.Sleep(50 * time.Millisecond)
			close(finished)
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	require.NoError(t, s.Stop(context.Background()))

	select {
	case <-finished:
	default:
		t.Fatal("Stop returned before the in-flight run finished")
	}
}

func TestSyncScheduler_Disabled(t *testing.T) {
	s, err := NewSyncScheduler(SyncSchedulerConfig{
		Enabled:    false,
		JobTimeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)

	var runs atomic.Int32
	require.NoError(t, s.Register(Job{
		Name:       "stock_sync",
		Interval:   10 * time.Millisecond,
		RunAtStart: true,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	}))

	require.NoError(t, s.Start(context.Background()))
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), runs.Load())
	assert.False(t, s.IsRunning())
}
