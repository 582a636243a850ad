package podcasts

import (
	"context"
	"errors"
	"strings"
	"sync"

	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/models"
)

// StationOptions describes the local station
type StationOptions struct {
	URL          string
	APIKey       string
	PodcastTitle string
}

// Station exposes the station's identity and lazily provisions the single
// podcast that carries locally published files.
type Station struct {
	baseURL string
	apiKey  string
	title   string
	repo    PodcastRepository

	mu        sync.Mutex
	podcastID uint
}

// NewStation creates a station; the base URL is kept without a trailing slash
func NewStation(opts StationOptions, repo PodcastRepository) *Station {
	return &Station{
		baseURL: strings.TrimRight(strings.TrimSpace(opts.URL), "/"),
		apiKey:  opts.APIKey,
		title:   opts.PodcastTitle,
		repo:    repo,
	}
}

// BaseURL returns the station's public URL without a trailing slash
func (s *Station) BaseURL() string {
	return s.baseURL
}

// APIKey returns the key download workers authenticate uploads with
func (s *Station) APIKey() string {
	return s.apiKey
}

// PodcastID returns the station podcast's id, creating the podcast on first use
func (s *Station) PodcastID(ctx context.Context) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.podcastID != 0 {
		return s.podcastID, nil
	}

	podcast, err := s.repo.GetStationPodcast(ctx)
	if err != nil && !errors.Is(err, ErrPodcastNotFound) {
		return 0, err
	}

	if podcast == nil {
		title := s.title
		if title == "" {
			title = "Station Podcast"
		}
		podcast = &models.Podcast{Title: title, IsStation: true}
		if err := s.repo.CreatePodcast(ctx, podcast); err != nil {
			return 0, err
		}
		log.Printf("[INFO] created station podcast %d", podcast.ID)
	}

	s.podcastID = podcast.ID
	return s.podcastID, nil
}
