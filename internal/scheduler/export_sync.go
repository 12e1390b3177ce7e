// Package scheduler runs the periodic markdown export on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mrlokans/bookshelf/internal/config"
)

// Job performs one export run. It is either a direct export or an enqueue
// onto the task queue, depending on how the application is wired.
type Job func(ctx context.Context) error

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateCronSchedule checks that schedule is a five-field cron expression.
func ValidateCronSchedule(schedule string) error {
	_, err := parser.Parse(schedule)
	return err
}

// CronDescription returns a human-readable description of a cron schedule
func CronDescription(schedule string) string {
	switch schedule {
	case "0 * * * *":
		return "Every hour at :00"
	case "*/15 * * * *":
		return "Every 15 minutes"
	case "*/30 * * * *":
		return "Every 30 minutes"
	case "0 */6 * * *":
		return "Every 6 hours"
	case "0 0 * * *":
		return "Daily at midnight"
	default:
		return "Custom schedule: " + schedule
	}
}

// ExportScheduler triggers Job on the configured schedule.
type ExportScheduler struct {
	cfg config.ExportSync
	job Job

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.RWMutex
	isRunning bool
	isSyncing bool
	runCtx    context.Context
	lastErr   error
	lastRun   time.Time
}

func NewExportScheduler(cfg config.ExportSync, job Job) *ExportScheduler {
	return &ExportScheduler{
		cfg:  cfg,
		job:  job,
		cron: cron.New(cron.WithParser(parser)),
	}
}

// Start begins the scheduler if sync is enabled. Cancelling ctx stops it.
func (s *ExportScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if !s.cfg.Enabled {
		log.Printf("[SCHEDULER] Export sync disabled")
		return nil
	}

	if err := ValidateCronSchedule(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.cfg.Schedule, err)
	}

	entryID, err := s.cron.AddFunc(s.cfg.Schedule, s.runSync)
	if err != nil {
		return fmt.Errorf("failed to schedule export job: %w", err)
	}
	s.entryID = entryID
	s.runCtx = ctx

	s.cron.Start()
	s.isRunning = true

	log.Printf("[SCHEDULER] Export sync started with schedule '%s' (%s)",
		s.cfg.Schedule, CronDescription(s.cfg.Schedule))

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Stop waits for a running export to finish.
func (s *ExportScheduler) Stop() {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return
	}
	s.isRunning = false
	entryID := s.entryID
	s.mu.Unlock()

	// runSync takes mu when it finishes, so the wait happens unlocked.
	done := s.cron.Stop()
	<-done.Done()
	s.cron.Remove(entryID)

	log.Printf("[SCHEDULER] Export sync stopped")
}

// RunNow triggers an immediate export outside the schedule.
func (s *ExportScheduler) RunNow() {
	go s.runSync()
}

func (s *ExportScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

// NextRunTime returns when the next export will occur, or nil when stopped.
func (s *ExportScheduler) NextRunTime() *time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isRunning {
		return nil
	}

	entry := s.cron.Entry(s.entryID)
	if !entry.Valid() || entry.Next.IsZero() {
		return nil
	}
	next := entry.Next
	return &next
}

// LastRun reports when the last export finished and how it ended.
func (s *ExportScheduler) LastRun() (time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun, s.lastErr
}

func (s *ExportScheduler) runSync() {
	s.mu.Lock()
	if s.isSyncing {
		s.mu.Unlock()
		log.Printf("[SCHEDULER] Export skipped, previous run still in progress")
		return
	}
	s.isSyncing = true
	ctx := s.runCtx
	s.mu.Unlock()

	if ctx == nil {
		ctx = context.Background()
	}

	startTime := time.Now()
	err := s.job(ctx)
	if err != nil {
		log.Printf("[SCHEDULER] Export failed: %v", err)
	} else {
		log.Printf("[SCHEDULER] Export finished in %v", time.Since(startTime).Round(time.Millisecond))
	}

	s.mu.Lock()
	s.isSyncing = false
	s.lastErr = err
	s.lastRun = time.Now()
	s.mu.Unlock()
}
