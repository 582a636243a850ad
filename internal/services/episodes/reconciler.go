package episodes

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-pkgz/lgr"
)

// Overall task status reported with a completion
const (
	TaskStatusSuccess = "SUCCESS"
	TaskStatusFailure = "FAILURE"
)

// ItemStatusOK is the per-item flag a worker reports for a delivered file
const ItemStatusOK = 1

// CompletionEvent reports the end of a download job
type CompletionEvent struct {
	JobID      string
	TaskStatus string
	EpisodeID  uint
	FileID     uint
	ItemStatus int
	Error      string
}

// succeeded holds only when the task and the item both report success and a
// file was delivered
func (e CompletionEvent) succeeded() bool {
	return e.TaskStatus == TaskStatusSuccess && e.ItemStatus == ItemStatusOK && e.FileID != 0
}

// Outcome is what reconciling an event did to the registry
type Outcome int

const (
	OutcomeIgnored Outcome = iota
	OutcomeIngested
	OutcomeRemoved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeIngested:
		return "ingested"
	case OutcomeRemoved:
		return "removed"
	default:
		return "ignored"
	}
}

// Reconciler applies job completions to the registry. A placeholder either
// gets its file or is deleted. Events for episodes that are gone or already
// have a file are logged and dropped.
type Reconciler struct {
	repo   Repository
	logger lgr.L
}

// NewReconciler creates a reconciler; a nil logger means lgr.Default()
func NewReconciler(repo Repository, logger lgr.L) *Reconciler {
	if logger == nil {
		logger = lgr.Default()
	}
	return &Reconciler{repo: repo, logger: logger}
}

// Reconcile applies one completion. Only storage failures are returned;
// a missing episode is not an error.
func (r *Reconciler) Reconcile(ctx context.Context, ev CompletionEvent) (Outcome, error) {
	if ev.EpisodeID == 0 {
		r.logger.Logf("[WARN] job %s completed without an episode id, status %s, error %q", ev.JobID, ev.TaskStatus, ev.Error)
		return OutcomeIgnored, nil
	}

	if ev.succeeded() {
		err := r.repo.AttachFile(ctx, ev.EpisodeID, ev.FileID)
		switch {
		case err == nil:
			r.logger.Logf("[INFO] episode %d ingested as file %d (job %s)", ev.EpisodeID, ev.FileID, ev.JobID)
			return OutcomeIngested, nil
		case errors.Is(err, ErrEpisodeNotFound):
			r.logger.Logf("[WARN] job %s delivered file %d for episode %d which no longer exists", ev.JobID, ev.FileID, ev.EpisodeID)
			return OutcomeIgnored, nil
		case errors.Is(err, ErrNotPlaceholder):
			r.logger.Logf("[WARN] job %s delivered file %d for episode %d which already has another file", ev.JobID, ev.FileID, ev.EpisodeID)
			return OutcomeIgnored, nil
		default:
			return OutcomeIgnored, fmt.Errorf("attaching file %d to episode %d: %w", ev.FileID, ev.EpisodeID, err)
		}
	}

	detail := ev.Error
	if detail == "" {
		detail = "no error reported"
	}
	r.logger.Logf("[WARN] job %s for episode %d failed (status %s, item status %d): %s",
		ev.JobID, ev.EpisodeID, ev.TaskStatus, ev.ItemStatus, detail)

	err := r.repo.DeletePlaceholder(ctx, ev.EpisodeID)
	switch {
	case err == nil:
		return OutcomeRemoved, nil
	case errors.Is(err, ErrEpisodeNotFound):
		r.logger.Logf("[WARN] episode %d of failed job %s was already removed", ev.EpisodeID, ev.JobID)
		return OutcomeIgnored, nil
	case errors.Is(err, ErrNotPlaceholder):
		r.logger.Logf("[WARN] episode %d of failed job %s already has a file, keeping it", ev.EpisodeID, ev.JobID)
		return OutcomeIgnored, nil
	default:
		return OutcomeIgnored, fmt.Errorf("removing episode %d: %w", ev.EpisodeID, err)
	}
}
