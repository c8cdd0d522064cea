package cron

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Schedule yields the next run time strictly after the given instant.
type Schedule interface {
	Next(after time.Time) time.Time
	String() string
}

type dailyAt struct {
	hour, minute int
	loc          *time.Location
}

// DailyAt runs a job once a day at hour:minute wall-clock time in loc.
func DailyAt(hour, minute int, loc *time.Location) Schedule {
	if loc == nil {
		loc = time.Local
	}
	return dailyAt{hour: hour, minute: minute, loc: loc}
}

func (d dailyAt) Next(after time.Time) time.Time {
	t := after.In(d.loc)
	next := time.Date(t.Year(), t.Month(), t.Day(), d.hour, d.minute, 0, 0, d.loc)
	if !next.After(t) {
		next = time.Date(t.Year(), t.Month(), t.Day()+1, d.hour, d.minute, 0, 0, d.loc)
	}
	return next
}

func (d dailyAt) String() string {
	return fmt.Sprintf("daily at %02d:%02d %s", d.hour, d.minute, d.loc)
}

// Job represents a scheduled job
type Job struct {
	Name     string
	Schedule Schedule
	Fn       func(ctx context.Context) error

	// held while the job runs so it never overlaps with itself
	running sync.Mutex
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	jobs   []*Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
	now    func() time.Time
}

// NewScheduler creates a new cron scheduler
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make([]*Job, 0),
		ctx:    ctx,
		cancel: cancel,
		now:    time.Now,
	}
}

// AddJob adds a job to the scheduler
func (s *Scheduler) AddJob(name string, schedule Schedule, fn func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, &Job{
		Name:     name,
		Schedule: schedule,
		Fn:       fn,
	})
	slog.Info("Cron job registered", "name", name, "schedule", schedule.String())
}

// Jobs returns the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	names := make([]string, 0, len(s.jobs))
	for _, job := range s.jobs {
		names = append(names, job.Name)
	}
	return names
}

// Start begins running all scheduled jobs
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.runJob(job)
	}

	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop gracefully stops all scheduled jobs
func (s *Scheduler) Stop() {
	slog.Info("Stopping cron scheduler...")
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

// runJob runs a single job on its schedule
func (s *Scheduler) runJob(job *Job) {
	defer s.wg.Done()

	// Run immediately on start; every job is safe to repeat.
	s.executeJob(s.ctx, job)

	for {
		next := job.Schedule.Next(s.now())
		timer := time.NewTimer(time.Until(next))

		select {
		case <-s.ctx.Done():
			timer.Stop()
			slog.Info("Cron job stopping", "name", job.Name)
			return
		case <-timer.C:
			s.executeJob(s.ctx, job)
		}
	}
}

// executeJob executes a job and logs results. Errors and panics end the
// current run only; the job fires again at its next scheduled time.
func (s *Scheduler) executeJob(ctx context.Context, job *Job) (err error) {
	job.running.Lock()
	defer job.running.Unlock()

	start := time.Now()
	slog.Debug("Cron job starting", "name", job.Name)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
		if err != nil {
			slog.Error("Cron job failed", "name", job.Name, "error", err, "duration", time.Since(start))
		} else {
			slog.Debug("Cron job completed", "name", job.Name, "duration", time.Since(start))
		}
	}()

	return job.Fn(ctx)
}

// RunOnce runs all jobs once, synchronously, and returns the first error.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	jobs := append([]*Job(nil), s.jobs...)
	s.mu.Unlock()

	var first error
	for _, job := range jobs {
		if err := s.executeJob(ctx, job); err != nil && first == nil {
			first = fmt.Errorf("%s: %w", job.Name, err)
		}
	}
	return first
}
