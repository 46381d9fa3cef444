package rate

import (
	"context"
	"parcels/internal/jobs"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultRefreshInterval = 5 * time.Minute

type Enqueuer interface {
	Enqueue(ctx context.Context, jobType jobs.Type, payload any) (uuid.UUID, error)
}

// Scheduler periodically enqueues a rate refresh job. The first one is enqueued right at start.
type Scheduler struct {
	queue           Enqueuer
	refreshInterval time.Duration
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	task := func(jobCtx context.Context) {
		taskID, enqErr := s.queue.Enqueue(jobCtx, jobs.TypeRefreshRate, struct{}{})
		if enqErr != nil {
			logrus.WithError(enqErr).Error("Failed to enqueue rate refresh")
			return
		}
		logrus.WithField("task_id", taskID).Debug("Rate refresh enqueued")
	}

	_, err = scheduler.NewJob(
		gocron.DurationJob(s.refreshInterval),
		gocron.NewTask(task),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func (s *Scheduler) running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

func NewScheduler(queue Enqueuer, refreshInterval time.Duration) *Scheduler {
	if refreshInterval <= 0 {
		refreshInterval = defaultRefreshInterval
	}
	return &Scheduler{queue: queue, refreshInterval: refreshInterval}
}
