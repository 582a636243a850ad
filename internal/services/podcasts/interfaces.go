package podcasts

import (
	"context"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/feeds"
)

// PodcastRepository defines the data access interface for podcasts
type PodcastRepository interface {
	CreatePodcast(ctx context.Context, podcast *models.Podcast) error
	GetPodcastByID(ctx context.Context, id uint) (*models.Podcast, error)
	GetPodcastByFeedURL(ctx context.Context, feedURL string) (*models.Podcast, error)
	GetStationPodcast(ctx context.Context) (*models.Podcast, error)
	ListPodcasts(ctx context.Context, offset, limit int) ([]models.Podcast, int64, error)
}

// PodcastService defines the business logic interface for podcast operations
type PodcastService interface {
	GetByID(ctx context.Context, id uint) (*models.Podcast, error)
	List(ctx context.Context, offset, limit int) ([]models.Podcast, int64, error)
	Subscribe(ctx context.Context, feedURL string) (*models.Podcast, error)
}

// FeedFetcher loads a live feed, possibly from a cache
type FeedFetcher interface {
	FetchFeed(ctx context.Context, url string) (*feeds.Feed, error)
	Invalidate(ctx context.Context, url string)
}
