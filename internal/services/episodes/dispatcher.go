package episodes

import (
	"context"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/models"
)

// Download jobs are routed by exchange and task name
const (
	DownloadExchange = "podcast"
	DownloadTask     = string(models.JobTypePodcastDownload)
)

// DownloadDispatcher asks the job system to fetch episode enclosures. The
// worker uploads the result to the station's media endpoint.
type DownloadDispatcher struct {
	jobs    JobDispatcher
	station Station
}

// NewDownloadDispatcher creates a dispatcher
func NewDownloadDispatcher(jobs JobDispatcher, station Station) *DownloadDispatcher {
	return &DownloadDispatcher{jobs: jobs, station: station}
}

// CallbackURL is where workers deliver downloaded files
func (d *DownloadDispatcher) CallbackURL() string {
	return d.station.BaseURL() + "/rest/media"
}

// EnqueueDownload submits a download job for an episode and returns its handle
func (d *DownloadDispatcher) EnqueueDownload(ctx context.Context, episodeID uint, url string) (string, error) {
	payload := map[string]interface{}{
		"id":           episodeID,
		"url":          url,
		"callback_url": d.CallbackURL(),
		"api_key":      d.station.APIKey(),
	}

	handle, err := d.jobs.Dispatch(ctx, DownloadExchange, DownloadTask, payload)
	if err != nil {
		return "", fmt.Errorf("enqueueing download of episode %d: %w", episodeID, err)
	}

	log.Printf("[DEBUG] download of episode %d dispatched as %s", episodeID, handle)
	return handle, nil
}
