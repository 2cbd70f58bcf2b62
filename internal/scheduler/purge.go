package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Purger permanently removes soft-deleted rows.
type Purger interface {
	Purge() (int64, error)
}

// PurgeResult describes the last purge run.
type PurgeResult struct {
	FinishedAt time.Time
	Purged     int64
	Err        error
}

// PurgeScheduler empties the trash on a cron schedule
type PurgeScheduler struct {
	purger   Purger
	schedule string

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	runMu      sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
	last       *PurgeResult
}

// NewPurgeScheduler creates a new scheduler instance
func NewPurgeScheduler(purger Purger, schedule string) *PurgeScheduler {
	return &PurgeScheduler{
		purger:   purger,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(newParser())),
	}
}

func newParser() cron.Parser {
	return cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
}

// ValidateSchedule checks a five-field cron expression.
func ValidateSchedule(schedule string) error {
	if schedule == "" {
		return fmt.Errorf("schedule is empty")
	}
	_, err := newParser().Parse(schedule)
	return err
}

// Start begins the scheduler. It stops when ctx is cancelled.
func (s *PurgeScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.RunNow()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule purge job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true

	log.Printf("Trash purge scheduler: started with schedule '%s'. Next run: %v",
		s.schedule, s.cron.Entry(entryID).Next)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running purge.
func (s *PurgeScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	cancel, entryID := s.cancelFunc, s.entryID
	s.cancelFunc = nil
	s.mu.Unlock()

	// A running job records its result under mu, so wait unlocked.
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(entryID)

	if cancel != nil {
		cancel()
	}
	log.Printf("Trash purge scheduler: stopped")
}

// RunNow purges the trash immediately. Concurrent runs are serialised.
func (s *PurgeScheduler) RunNow() (int64, error) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	start := time.Now()
	purged, err := s.purger.Purge()
	if err != nil {
		log.Printf("Trash purge: failed: %v", err)
	} else {
		log.Printf("Trash purge: removed %d rows in %v", purged, time.Since(start).Round(time.Millisecond))
	}

	s.mu.Lock()
	s.last = &PurgeResult{FinishedAt: time.Now(), Purged: purged, Err: err}
	s.mu.Unlock()

	return purged, err
}

// IsRunning returns whether the scheduler is active
func (s *PurgeScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRun returns when the next purge will occur, or nil when stopped.
func (s *PurgeScheduler) NextRun() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}
	next := s.cron.Entry(s.entryID).Next
	if next.IsZero() {
		return nil
	}
	return &next
}

// LastResult returns the outcome of the most recent purge, or nil.
func (s *PurgeScheduler) LastResult() *PurgeResult {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return nil
	}
	result := *s.last
	return &result
}
