package queue

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"
)

// Scheduler triggers periodic queue drains, plus an immediate one when
// something observes connectivity coming back.
type Scheduler struct {
	drainer *Drainer
	cron    *cron.Cron

	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewScheduler(drainer *Drainer) *Scheduler {
	return &Scheduler{
		drainer: drainer,
		cron:    cron.New(),
	}
}

// Start schedules drains per the cron expression (e.g. "@every 1m").
func (s *Scheduler) Start(ctx context.Context, schedule string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	var drainCtx context.Context
	drainCtx, s.cancelFunc = context.WithCancel(ctx)

	_, err := s.cron.AddFunc(schedule, func() {
		if err := s.drainer.Drain(drainCtx); err != nil {
			log.Printf("Offline queue drain failed: %v", err)
		}
	})
	if err != nil {
		s.cancelFunc()
		return fmt.Errorf("invalid drain schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	s.isRunning = true
	log.Printf("Offline queue drain scheduled: %s", schedule)
	return nil
}

// NotifyOnline kicks off a drain right away, without waiting for the
// next tick.
func (s *Scheduler) NotifyOnline(ctx context.Context) {
	go func() {
		if err := s.drainer.Drain(ctx); err != nil {
			log.Printf("Offline queue drain failed: %v", err)
		}
	}()
}

// Stop halts scheduling and waits for a running drain to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.isRunning = false
}
