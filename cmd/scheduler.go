package cmd

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"
	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/pkg/download"
)

// tempFileMaxAge is how long an abandoned download may sit in the temp dir
const tempFileMaxAge = 6 * time.Hour

// startScheduler runs the periodic maintenance jobs: completion tracking,
// job retention and temp file cleanup. Every job runs in singleton mode so
// a slow run is never overlapped by the next one.
func startScheduler(ctx context.Context, a *app) (*gocron.Scheduler, error) {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()

	interval := a.cfg.Processing.ReconcileInterval
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if _, err := s.Every(interval).Do(func() {
		n, err := a.tracker.Poll(ctx)
		if err != nil {
			log.Printf("[WARN] completion tracking failed: %v", err)
			return
		}
		if n > 0 {
			log.Printf("[DEBUG] reconciled %d finished download(s)", n)
		}
	}); err != nil {
		return nil, err
	}

	if _, err := s.Every(24 * time.Hour).Do(func() {
		removed, err := a.jobs.CleanupOldJobs(ctx, a.cfg.Processing.JobRetentionDays)
		if err != nil {
			log.Printf("[WARN] job cleanup failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("[INFO] removed %d old job(s)", removed)
		}
	}); err != nil {
		return nil, err
	}

	if _, err := s.Every(time.Hour).Do(func() {
		removed, err := download.CleanupOldTempFiles(a.cfg.Storage.TempDir, tempFileMaxAge)
		if err != nil {
			log.Printf("[WARN] temp file cleanup failed: %v", err)
			return
		}
		if removed > 0 {
			log.Printf("[INFO] removed %d stale temp file(s)", removed)
		}
	}); err != nil {
		return nil, err
	}

	s.StartAsync()
	log.Printf("[INFO] scheduler started, tracking completions every %s", interval)
	return s, nil
}
