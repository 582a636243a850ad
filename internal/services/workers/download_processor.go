package workers

import (
	"context"
	"fmt"

	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/jobs"
	"github.com/killallgit/stationcast/pkg/download"
)

// Fetcher downloads a URL into a temporary file
type Fetcher interface {
	DownloadToTemp(ctx context.Context, url string, episodeID uint) (*download.Result, error)
}

// downloadRequest is the parsed payload of a podcast-download job
type downloadRequest struct {
	EpisodeID   uint
	URL         string
	CallbackURL string
	APIKey      string
}

// DownloadProcessor fetches podcast enclosures and hands them to the station
// through the job's callback URL. Download and upload problems complete the
// job with status 0 so the completion is reconciled as a failure; only
// malformed payloads fail the job itself.
type DownloadProcessor struct {
	jobService jobs.Service
	fetcher    Fetcher
	uploader   Uploader
}

// NewDownloadProcessor creates a processor for podcast-download jobs
func NewDownloadProcessor(jobService jobs.Service, fetcher Fetcher, uploader Uploader) *DownloadProcessor {
	return &DownloadProcessor{
		jobService: jobService,
		fetcher:    fetcher,
		uploader:   uploader,
	}
}

// CanProcess returns true for podcast-download jobs
func (p *DownloadProcessor) CanProcess(jobType models.JobType) bool {
	return jobType == models.JobTypePodcastDownload
}

// ProcessJob downloads, uploads and records the outcome of one job
func (p *DownloadProcessor) ProcessJob(ctx context.Context, job *models.Job) error {
	req, err := parseDownloadRequest(job)
	if err != nil {
		return err
	}

	log.Printf("[INFO] job %d: downloading episode %d from %s", job.ID, req.EpisodeID, req.URL)

	fileID, err := p.transfer(ctx, req)
	if err != nil {
		log.Printf("[WARN] job %d: episode %d not delivered, %v", job.ID, req.EpisodeID, err)
		return p.jobService.CompleteJob(ctx, job.ID, models.JobResult{
			"episodeid": req.EpisodeID,
			"status":    0,
			"error":     err.Error(),
		})
	}

	log.Printf("[INFO] job %d: episode %d delivered as file %d", job.ID, req.EpisodeID, fileID)
	return p.jobService.CompleteJob(ctx, job.ID, models.JobResult{
		"episodeid": req.EpisodeID,
		"fileid":    fileID,
		"status":    1,
	})
}

func (p *DownloadProcessor) transfer(ctx context.Context, req downloadRequest) (uint, error) {
	res, err := p.fetcher.DownloadToTemp(ctx, req.URL, req.EpisodeID)
	if err != nil {
		return 0, fmt.Errorf("download failed: %w", err)
	}
	defer func() {
		if err := download.CleanupTempFile(res.FilePath); err != nil {
			log.Printf("[WARN] can't remove %s, %v", res.FilePath, err)
		}
	}()

	fileID, err := p.uploader.Upload(ctx, req.CallbackURL, req.APIKey, res.FilePath, res.FileName)
	if err != nil {
		return 0, fmt.Errorf("upload failed: %w", err)
	}
	return fileID, nil
}

func parseDownloadRequest(job *models.Job) (downloadRequest, error) {
	id, ok := job.GetPayloadInt("id")
	if !ok || id <= 0 {
		return downloadRequest{}, fmt.Errorf("job %d: payload has no valid episode id", job.ID)
	}
	url, ok := job.GetPayloadString("url")
	if !ok || url == "" {
		return downloadRequest{}, fmt.Errorf("job %d: payload has no url", job.ID)
	}
	callback, ok := job.GetPayloadString("callback_url")
	if !ok || callback == "" {
		return downloadRequest{}, fmt.Errorf("job %d: payload has no callback_url", job.ID)
	}
	apiKey, _ := job.GetPayloadString("api_key")

	return downloadRequest{
		EpisodeID:   uint(id),
		URL:         url,
		CallbackURL: callback,
		APIKey:      apiKey,
	}, nil
}
