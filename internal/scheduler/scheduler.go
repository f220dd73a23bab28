package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/wilsonmoraes/starships-backend/internal/logger"
	"github.com/wilsonmoraes/starships-backend/internal/worker"
)

// Log messages
const (
	LogMsgJobScheduled = "Job scheduled"
	LogMsgTickDropped  = "Scheduled run dropped: previous run still queued"
)

// Enqueuer is the part of worker.Pool the scheduler needs
type Enqueuer interface {
	TryEnqueue(job worker.Job) bool
}

// Scheduler manages scheduled jobs
type Scheduler struct {
	pool     Enqueuer
	quit     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// New creates a new scheduler
func New(pool Enqueuer) *Scheduler {
	return &Scheduler{
		pool: pool,
		quit: make(chan struct{}),
	}
}

// Schedule enqueues job every interval, and once straight away when
// immediate is set. A tick that finds the queue full is dropped rather than
// stacking runs behind a slow one.
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job, immediate bool) {
	logger.FromContext(context.Background()).Info(LogMsgJobScheduled,
		"interval", interval.String(), "immediate", immediate)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if immediate {
			s.enqueue(job)
		}

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.enqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

func (s *Scheduler) enqueue(job worker.Job) {
	if !s.pool.TryEnqueue(job) {
		logger.FromContext(context.Background()).Warn(LogMsgTickDropped)
	}
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.quit) })
	s.wg.Wait()
}
