package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job names used by the sync scheduler and the manual trigger endpoints.
const (
	JobStockSync     = "stock_sync"
	JobOrderStatus   = "order_status"
	JobCatalogMap    = "catalog_map"
	JobPendingSubmit = "pending_submit"
)

// JobFunc is a single run of a periodic sync job
type JobFunc func(ctx context.Context) error

// Job describes a periodic sync job
type Job struct {
	// Name identifies the job in logs and manual triggers
	Name string

	// Interval is the time between runs
	Interval time.Duration

	// RunAtStart executes the job once immediately when the scheduler starts
	RunAtStart bool

	// Run performs one iteration of the job
	Run JobFunc
}

// SyncSchedulerConfig holds configuration for the sync scheduler
type SyncSchedulerConfig struct {
	// Enabled determines if the scheduler is active
	Enabled bool

	// JobTimeout is the maximum time a single job run may take
	JobTimeout time.Duration
}

// DefaultSyncSchedulerConfig returns default configuration
func DefaultSyncSchedulerConfig() SyncSchedulerConfig {
	return SyncSchedulerConfig{
		Enabled:    true,
		JobTimeout: 10 * time.Minute,
	}
}

// Validate validates the configuration
func (c *SyncSchedulerConfig) Validate() error {
	if c.JobTimeout <= 0 {
		return ErrInvalidConfig
	}
	return nil
}

// jobState tracks a registered job and whether a run is in flight
type jobState struct {
	job     Job
	running bool
}

// SyncScheduler runs registered jobs on fixed intervals. Each job gets its
// own goroutine; a tick is skipped when the previous run of the same job
// has not finished yet.
type SyncScheduler struct {
	config SyncSchedulerConfig
	logger *zap.Logger

	mu        sync.Mutex
	jobs      map[string]*jobState
	order     []string
	isRunning bool
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewSyncScheduler creates a new sync scheduler
func NewSyncScheduler(config SyncSchedulerConfig, logger *zap.Logger) (*SyncScheduler, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &SyncScheduler{
		config: config,
		logger: logger,
		jobs:   make(map[string]*jobState),
	}, nil
}

// Register adds a job to the scheduler. Must be called before Start.
func (s *SyncScheduler) Register(job Job) error {
	if job.Name == "" || job.Run == nil || job.Interval <= 0 {
		return ErrInvalidConfig
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return fmt.Errorf("cannot register %q: scheduler already started", job.Name)
	}
	if _, exists := s.jobs[job.Name]; exists {
		return fmt.Errorf("job %q already registered", job.Name)
	}

	s.jobs[job.Name] = &jobState{job: job}
	s.order = append(s.order, job.Name)
	return nil
}

// Start starts one loop per registered job
func (s *SyncScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	if !s.config.Enabled {
		s.mu.Unlock()
		s.logger.Info("Sync scheduler is disabled")
		return nil
	}
	s.isRunning = true
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, name := range s.order {
		state := s.jobs[name]
		s.wg.Add(1)
		go s.runLoop(ctx, state)
	}

	s.logger.Info("Sync scheduler started",
		zap.Int("jobs", len(s.order)),
		zap.Duration("job_timeout", s.config.JobTimeout),
	)

	return nil
}

// Stop gracefully stops the scheduler, waiting for in-flight runs
func (s *SyncScheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Sync scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Sync scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning returns whether the scheduler is running
func (s *SyncScheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}

// TriggerNow runs a job immediately, outside its interval. Returns
// ErrJobAlreadyRunning when a run of the same job is still in flight.
func (s *SyncScheduler) TriggerNow(ctx context.Context, name string) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return ErrSchedulerNotRunning
	}
	state, ok := s.jobs[name]
	if !ok {
		s.mu.Unlock()
		return ErrJobNotFound
	}
	if state.running {
		s.mu.Unlock()
		return ErrJobAlreadyRunning
	}
	state.running = true
	s.wg.Add(1)
	s.mu.Unlock()

	s.logger.Info("Manual job trigger", zap.String("job", name))

	go func() {
		defer s.wg.Done()
		s.execute(ctx, state)
		s.mu.Lock()
		state.running = false
		s.mu.Unlock()
	}()

	return nil
}

// runLoop drives one job on its interval
func (s *SyncScheduler) runLoop(ctx context.Context, state *jobState) {
	defer s.wg.Done()

	if state.job.RunAtStart {
		s.tick(ctx, state)
	}

	ticker := time.NewTicker(state.job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Job loop stopping", zap.String("job", state.job.Name))
			return
		case <-ticker.C:
			s.tick(ctx, state)
		}
	}
}

// tick runs the job unless a previous run is still in flight
func (s *SyncScheduler) tick(ctx context.Context, state *jobState) {
	s.mu.Lock()
	if state.running {
		s.mu.Unlock()
		s.logger.Warn("Skipping tick, previous run still in flight",
			zap.String("job", state.job.Name),
		)
		return
	}
	state.running = true
	s.mu.Unlock()

	s.execute(ctx, state)

	s.mu.Lock()
	state.running = false
	s.mu.Unlock()
}

// execute performs a single run with timeout and panic recovery
func (s *SyncScheduler) execute(ctx context.Context, state *jobState) {
	jobCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Job panicked",
				zap.String("job", state.job.Name),
				zap.Any("panic", r),
			)
		}
	}()

	startTime := time.Now()
	err := state.job.Run(jobCtx)
	duration := time.Since(startTime)

	if err != nil {
		s.logger.Error("Job run failed",
			zap.String("job", state.job.Name),
			zap.Duration("duration", duration),
			zap.Error(err),
		)
		return
	}

	s.logger.Debug("Job run completed",
		zap.String("job", state.job.Name),
		zap.Duration("duration", duration),
	)
}
