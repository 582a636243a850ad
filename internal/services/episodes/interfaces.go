package episodes

import (
	"context"
	"time"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/feeds"
)

// Repository is the episode registry
type Repository interface {
	// Create operations
	AddPlaceholder(ctx context.Context, podcastID uint, url, guid string, pubDate time.Time) (*models.Episode, error)
	CreateWithFile(ctx context.Context, episode *models.Episode) error

	// Read operations
	GetByID(ctx context.Context, id uint) (*models.Episode, error)
	ListByPodcast(ctx context.Context, podcastID uint, opts ListOptions) ([]models.Episode, error)
	ListByPodcastAndGUIDs(ctx context.Context, podcastID uint, guids []string) ([]models.Episode, error)
	FindByPodcastAndFile(ctx context.Context, podcastID, fileID uint) (*models.Episode, error)

	// Update operations
	AttachFile(ctx context.Context, id, fileID uint) error

	// Delete operations
	DeleteByID(ctx context.Context, id uint) error
	DeletePlaceholder(ctx context.Context, id uint) error
}

// JobDispatcher submits a named task with its payload to a job system and
// returns a handle the completion can later be correlated with
type JobDispatcher interface {
	Dispatch(ctx context.Context, exchange, task string, payload map[string]interface{}) (string, error)
}

// JobStore is the part of the job system the completion tracker reads
type JobStore interface {
	ListUnacknowledged(ctx context.Context, jobType models.JobType, statuses []models.JobStatus, limit int) ([]*models.Job, error)
	Acknowledge(ctx context.Context, jobID uint) error
}

// FileLookup resolves media file metadata by id
type FileLookup interface {
	GetFile(ctx context.Context, id uint) (*models.File, error)
}

// FeedFetcher loads a live feed
type FeedFetcher interface {
	FetchFeed(ctx context.Context, url string) (*feeds.Feed, error)
}

// PodcastLookup resolves podcasts by id
type PodcastLookup interface {
	GetByID(ctx context.Context, id uint) (*models.Podcast, error)
}

// Station describes the local station: where it is reachable, the key
// download workers authenticate with, and the podcast its own feed lives in
type Station interface {
	BaseURL() string
	APIKey() string
	PodcastID(ctx context.Context) (uint, error)
}

// EpisodeService defines the business logic interface for episode operations
type EpisodeService interface {
	ImportEpisode(ctx context.Context, podcastID uint, in EpisodeInput) (*models.Episode, error)
	ImportEpisodes(ctx context.Context, podcastID uint, in []EpisodeInput) ([]models.Episode, error)
	GetEpisode(ctx context.Context, id uint) (*models.Episode, error)
	DeleteEpisode(ctx context.Context, id uint) error
	ListEpisodes(ctx context.Context, podcastID uint, opts ListOptions) (*EpisodeList, error)
	Publish(ctx context.Context, fileID uint) (*models.Episode, error)
	Unpublish(ctx context.Context, fileID uint) error
}
