// Package scheduler keeps the cache warm by running warm jobs on fixed intervals
package scheduler

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"synergyai.app/internal/ports"
	"synergyai.app/pkg/errors"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// Descriptor is one recurring job. Descriptors are fixed once Start is called.
type Descriptor struct {
	ID       string
	Interval time.Duration
	Job      func(ctx context.Context) error
}

// JobStatus is a point-in-time view of a job for health reporting
type JobStatus struct {
	ID        string        `json:"id"`
	Interval  time.Duration `json:"interval"`
	Running   bool          `json:"running"`
	Runs      int64         `json:"runs"`
	Failures  int64         `json:"failures"`
	Skipped   int64         `json:"skipped"`
	LastRun   time.Time     `json:"last_run,omitempty"`
	LastError string        `json:"last_error,omitempty"`
}

type job struct {
	Descriptor
	running  atomic.Bool
	runs     atomic.Int64
	failures atomic.Int64
	skipped  atomic.Int64

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

type Scheduler struct {
	jobs    []*job
	logger  ports.Logger
	metrics ports.SchedulerMetrics

	mu      sync.Mutex
	cancel  context.CancelFunc
	running sync.WaitGroup
}

type Dependencies struct {
	Descriptors []Descriptor
	Logger      ports.Logger
	Metrics     ports.SchedulerMetrics
}

func New(deps Dependencies) (*Scheduler, error) {
	if deps.Logger == nil {
		return nil, errors.NewValidationError("logger is required")
	}
	if deps.Metrics == nil {
		return nil, errors.NewValidationError("scheduler metrics are required")
	}

	seen := make(map[string]struct{}, len(deps.Descriptors))
	jobs := make([]*job, 0, len(deps.Descriptors))
	for _, d := range deps.Descriptors {
		if d.ID == "" || d.Job == nil {
			return nil, errors.NewValidationError("job id and function are required")
		}
		if d.Interval <= 0 {
			return nil, errors.NewValidationError(fmt.Sprintf("job %s needs a positive interval", d.ID))
		}
		if _, dup := seen[d.ID]; dup {
			return nil, errors.NewValidationError(fmt.Sprintf("job %s registered twice", d.ID))
		}
		seen[d.ID] = struct{}{}
		jobs = append(jobs, &job{Descriptor: d})
	}

	return &Scheduler{jobs: jobs, logger: deps.Logger, metrics: deps.Metrics}, nil
}

// Start runs every job once in the background, then on its interval, until
// ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return errors.NewValidationError("scheduler already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	s.running.Add(1)
	go func() {
		defer s.running.Done()
		if err := s.RunOnce(runCtx); err != nil {
			s.logger.Warn("Startup warm pass finished with failures", ports.F("error", err))
			return
		}
		s.logger.Info("Startup warm pass finished")
	}()

	for _, j := range s.jobs {
		s.running.Add(1)
		go s.loop(runCtx, j)
	}

	s.logger.Info("Scheduler started", ports.F("jobs", len(s.jobs)))
	return nil
}

// Stop cancels the tickers and waits for in-flight runs or for ctx
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel == nil {
		return nil
	}
	cancel()

	done := make(chan struct{})
	go func() {
		s.running.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped")
		return nil
	case <-ctx.Done():
		return fmt.Errorf("wait for scheduled jobs: %w", ctx.Err())
	}
}

// RunOnce runs every job concurrently and joins their errors. Jobs already
// in flight are skipped.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	errs := make([]error, len(s.jobs))
	var wg sync.WaitGroup
	for i, j := range s.jobs {
		i, j := i, j
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.execute(ctx, j); err != nil {
				errs[i] = fmt.Errorf("job %s: %w", j.ID, err)
			}
		}()
	}
	wg.Wait()
	return stderrors.Join(errs...)
}

func (s *Scheduler) Jobs() []JobStatus {
	statuses := make([]JobStatus, 0, len(s.jobs))
	for _, j := range s.jobs {
		j.mu.Lock()
		status := JobStatus{
			ID:       j.ID,
			Interval: j.Interval,
			Running:  j.running.Load(),
			Runs:     j.runs.Load(),
			Failures: j.failures.Load(),
			Skipped:  j.skipped.Load(),
			LastRun:  j.lastRun,
		}
		if j.lastErr != nil {
			status.LastError = j.lastErr.Error()
		}
		j.mu.Unlock()
		statuses = append(statuses, status)
	}
	return statuses
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.running.Done()

	ticker := time.NewTicker(j.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.running.Add(1)
			go func() {
				defer s.running.Done()
				if err := s.execute(ctx, j); err != nil {
					s.logger.Warn("Scheduled job failed", ports.F("job", j.ID), ports.F("error", err))
				}
			}()
		}
	}
}

// execute runs j unless a previous run is still in flight, in which case the
// tick is skipped and counted.
func (s *Scheduler) execute(ctx context.Context, j *job) (err error) {
	if !j.running.CompareAndSwap(false, true) {
		j.skipped.Add(1)
		s.metrics.RecordSkippedTick(j.ID)
		s.logger.Debug("Job still running, tick skipped", ports.F("job", j.ID))
		return nil
	}
	defer j.running.Store(false)

	start := time.Now()
	s.logger.Debug("Job running", ports.F("job", j.ID))

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}

		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailed
			j.failures.Add(1)
		}
		j.runs.Add(1)
		j.mu.Lock()
		j.lastRun = start
		j.lastErr = err
		j.mu.Unlock()

		duration := time.Since(start)
		s.metrics.RecordJobRun(j.ID, outcome, duration)
		s.logger.Info("Job finished",
			ports.F("job", j.ID), ports.F("outcome", outcome), ports.F("duration", duration))
	}()

	return j.Job(ctx)
}
