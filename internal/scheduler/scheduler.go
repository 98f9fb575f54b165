package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"GoldSync/internal/model"
)

// DefaultInterval is the period between sync cycles.
const DefaultInterval = 60 * time.Second

// CycleRunner runs one synchronization cycle.
type CycleRunner interface {
	RunCycle(ctx context.Context) (*model.CycleResult, error)
}

// Scheduler triggers the sync cycle on a fixed period. A trigger that fires
// while the previous cycle is still running is skipped.
type Scheduler struct {
	Cron     *cron.Cron
	Runner   CycleRunner
	Interval time.Duration
	Logger   *logrus.Logger
	Ctx      context.Context

	job     cron.Job
	entryID cron.EntryID

	// manual tracks RunNow calls, which cron's own job tracking does not see.
	mu      sync.Mutex
	stopped bool
	manual  sync.WaitGroup
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, runner CycleRunner, interval time.Duration, logger *logrus.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	cl := cronLogger{l: logger}
	s := &Scheduler{
		Cron:     cron.New(cron.WithLogger(cl)),
		Runner:   runner,
		Interval: interval,
		Logger:   logger,
		Ctx:      ctx,
	}
	// Recover sits inside the overlap guard so a panicking cycle still
	// releases it.
	s.job = cron.NewChain(
		cron.SkipIfStillRunning(cl),
		cron.Recover(cl),
	).Then(cron.FuncJob(s.syncTask))
	return s
}

// Register schedules the sync job at the configured interval.
func (s *Scheduler) Register() error {
	if s.Interval < time.Second {
		return fmt.Errorf("register sync task: interval %v is below one second", s.Interval)
	}
	if s.Interval%time.Second != 0 {
		return fmt.Errorf("register sync task: interval %v is not a whole number of seconds", s.Interval)
	}
	s.entryID = s.Cron.Schedule(cron.Every(s.Interval), s.job)
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Logger.WithField("interval", s.Interval.String()).Info("scheduler started")
}

// Stop stops the scheduler and waits for running cycles, including one
// started by RunNow, at most timeout.
func (s *Scheduler) Stop(timeout time.Duration) {
	s.mu.Lock()
	s.stopped = true
	s.mu.Unlock()

	cronDone := s.Cron.Stop()
	done := make(chan struct{})
	go func() {
		<-cronDone.Done()
		s.manual.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.Logger.Info("scheduler stopped")
	case <-time.After(timeout):
		s.Logger.Warn("scheduler stop timed out while a cycle was running")
	}
}

// RunNow runs the sync job immediately. It shares the overlap guard with the
// periodic trigger, so it is skipped if a cycle is already running. After
// Stop it does nothing.
func (s *Scheduler) RunNow() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.manual.Add(1)
	s.mu.Unlock()
	defer s.manual.Done()

	s.job.Run()
}

// NextRun returns the next scheduled trigger time, zero if not registered or not started.
func (s *Scheduler) NextRun() time.Time {
	return s.Cron.Entry(s.entryID).Next
}

func (s *Scheduler) syncTask() {
	if s.Ctx.Err() != nil {
		return
	}
	if _, err := s.Runner.RunCycle(s.Ctx); err != nil {
		// Already logged and classified by the runner; the next trigger is unaffected.
		s.Logger.WithError(err).Debug("sync cycle aborted")
	}
}
