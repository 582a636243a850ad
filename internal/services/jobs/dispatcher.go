package jobs

import (
	"context"
	"fmt"
	"strconv"

	"github.com/killallgit/stationcast/internal/models"
)

// Dispatcher submits named tasks to the persisted queue and hands back the
// job id as an opaque handle. Every dispatched task gets a single attempt.
type Dispatcher struct {
	svc Service
}

// NewDispatcher wraps a job service
func NewDispatcher(svc Service) *Dispatcher {
	return &Dispatcher{svc: svc}
}

// Dispatch enqueues payload as a job of type task on the given exchange
func (d *Dispatcher) Dispatch(ctx context.Context, exchange, task string, payload map[string]interface{}) (string, error) {
	job, err := d.svc.EnqueueJob(ctx, models.JobType(task), models.JobPayload(payload),
		WithExchange(exchange),
		WithMaxRetries(1),
	)
	if err != nil {
		return "", fmt.Errorf("dispatching %s on %s: %w", task, exchange, err)
	}
	return FormatHandle(job.ID), nil
}

// FormatHandle renders a job id as a dispatch handle
func FormatHandle(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
