package scheduler

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
)

// JobFunc represents a function that can be scheduled.
type JobFunc func(ctx context.Context) error

// Scheduler runs background jobs. Wishwell only schedules one-time
// startup jobs, but the wrapper keeps job logging in one place.
type Scheduler struct {
	gocron gocron.Scheduler
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a new scheduler.
func New() (*Scheduler, error) {
	gocronScheduler, err := gocron.NewScheduler(gocron.WithLogger(newLogger()))
	if err != nil {
		return nil, fmt.Errorf("failed to create gocron scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		gocron: gocronScheduler,
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// AddStartupJob registers a job that runs once, immediately after Start.
func (s *Scheduler) AddStartupJob(name string, jobFunc JobFunc) error {
	_, err := s.gocron.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(s.wrapJobFunc(name, jobFunc)),
	)
	if err != nil {
		return fmt.Errorf("failed to create job %s: %w", name, err)
	}
	log.Info("added startup job to scheduler", "name", name)
	return nil
}

// Start starts the scheduler.
func (s *Scheduler) Start() {
	s.gocron.Start()
	log.Info("job scheduler started")
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() error {
	log.Info("stopping job scheduler")
	s.cancel()
	return s.gocron.Shutdown()
}

func (s *Scheduler) wrapJobFunc(name string, jobFunc JobFunc) func() {
	return func() {
		log.Info("starting job", "name", name)
		if err := jobFunc(s.ctx); err != nil {
			log.Error("job failed", "name", name, "error", err)
			return
		}
		log.Info("job completed successfully", "name", name)
	}
}
