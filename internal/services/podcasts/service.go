package podcasts

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/models"
)

type Service struct {
	repository PodcastRepository
	fetcher    FeedFetcher
}

func NewService(repository PodcastRepository, fetcher FeedFetcher) *Service {
	return &Service{
		repository: repository,
		fetcher:    fetcher,
	}
}

// GetByID returns a podcast, ErrPodcastNotFound when absent
func (s *Service) GetByID(ctx context.Context, id uint) (*models.Podcast, error) {
	return s.repository.GetPodcastByID(ctx, id)
}

// List returns a page of podcasts
func (s *Service) List(ctx context.Context, offset, limit int) ([]models.Podcast, int64, error) {
	return s.repository.ListPodcasts(ctx, offset, limit)
}

// Subscribe records an imported podcast for feedURL. The feed is fetched
// first so only parseable feeds are stored; subscribing twice returns the
// existing record.
func (s *Service) Subscribe(ctx context.Context, feedURL string) (*models.Podcast, error) {
	feedURL = strings.TrimSpace(feedURL)
	u, err := url.Parse(feedURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFeedURL, feedURL)
	}

	existing, err := s.repository.GetPodcastByFeedURL(ctx, feedURL)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrPodcastNotFound) {
		return nil, err
	}

	// a new subscription always sees the live document
	s.fetcher.Invalidate(ctx, feedURL)
	feed, err := s.fetcher.FetchFeed(ctx, feedURL)
	if err != nil {
		return nil, fmt.Errorf("fetching feed %s: %w", feedURL, err)
	}

	title := strings.TrimSpace(feed.Title)
	if title == "" {
		title = u.Host
	}

	podcast := &models.Podcast{Title: title, FeedURL: feedURL}
	if err := s.repository.CreatePodcast(ctx, podcast); err != nil {
		return nil, err
	}

	log.Printf("[INFO] subscribed to %q (%s) as podcast %d", title, feedURL, podcast.ID)
	return podcast, nil
}
