package episodes

import (
	"context"
	"fmt"

	"github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/jobs"
)

// DefaultTrackerBatch bounds how many completions one poll handles
const DefaultTrackerBatch = 50

// terminalStatuses are the job states a completion is reported for
var terminalStatuses = []models.JobStatus{
	models.JobStatusCompleted,
	models.JobStatusPermanentlyFailed,
}

// Tracker turns finished download jobs into completion events. A job is
// acknowledged only after its event was reconciled, so a storage failure is
// retried on the next poll.
type Tracker struct {
	jobs       JobStore
	reconciler *Reconciler
	batch      int
	logger     lgr.L
}

// NewTracker creates a tracker; batch <= 0 uses DefaultTrackerBatch
func NewTracker(store JobStore, reconciler *Reconciler, batch int, logger lgr.L) *Tracker {
	if batch <= 0 {
		batch = DefaultTrackerBatch
	}
	if logger == nil {
		logger = lgr.Default()
	}
	return &Tracker{jobs: store, reconciler: reconciler, batch: batch, logger: logger}
}

// Poll reconciles one batch of finished jobs and returns how many were
// acknowledged. The first reconcile error is returned after the batch.
func (t *Tracker) Poll(ctx context.Context) (int, error) {
	pending, err := t.jobs.ListUnacknowledged(ctx, models.JobTypePodcastDownload, terminalStatuses, t.batch)
	if err != nil {
		return 0, fmt.Errorf("listing finished downloads: %w", err)
	}

	var acked int
	var firstErr error
	for _, job := range pending {
		if err := ctx.Err(); err != nil {
			return acked, err
		}

		ev := EventFromJob(job)
		outcome, err := t.reconciler.Reconcile(ctx, ev)
		if err != nil {
			t.logger.Logf("[ERROR] can't reconcile job %d, %v", job.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}

		if err := t.jobs.Acknowledge(ctx, job.ID); err != nil {
			t.logger.Logf("[ERROR] can't acknowledge job %d, %v", job.ID, err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		acked++
		t.logger.Logf("[DEBUG] job %d reconciled, episode %d %s", job.ID, ev.EpisodeID, outcome)
	}

	return acked, firstErr
}

// EventFromJob builds the completion event of a finished download job.
// Completed jobs carry the worker's result; permanently failed jobs only
// have their payload and error message.
func EventFromJob(job *models.Job) CompletionEvent {
	ev := CompletionEvent{JobID: jobs.FormatHandle(job.ID)}

	if job.Status != models.JobStatusCompleted {
		ev.TaskStatus = TaskStatusFailure
		if id, ok := job.GetPayloadInt("id"); ok && id > 0 {
			ev.EpisodeID = uint(id)
		}
		ev.Error = job.Error
		return ev
	}

	ev.TaskStatus = TaskStatusSuccess
	if id, ok := job.GetResultInt("episodeid"); ok && id > 0 {
		ev.EpisodeID = uint(id)
	} else if id, ok := job.GetPayloadInt("id"); ok && id > 0 {
		ev.EpisodeID = uint(id)
	}
	if id, ok := job.GetResultInt("fileid"); ok && id > 0 {
		ev.FileID = uint(id)
	}
	ev.ItemStatus, _ = job.GetResultInt("status")
	ev.Error, _ = job.GetResultString("error")
	return ev
}
