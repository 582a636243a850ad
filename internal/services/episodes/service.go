package episodes

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/internal/models"
)

// Deps are the collaborators of the episode service
type Deps struct {
	Repo      Repository
	Downloads *DownloadDispatcher
	Podcasts  PodcastLookup
	Feeds     FeedFetcher
	Files     FileLookup
	Station   Station
	Logger    lgr.L
}

// Service implements the episode operations on top of the registry
type Service struct {
	repo      Repository
	downloads *DownloadDispatcher
	podcasts  PodcastLookup
	feeds     FeedFetcher
	files     FileLookup
	station   Station
	logger    lgr.L
}

// Ensure Service implements EpisodeService interface
var _ EpisodeService = (*Service)(nil)

// NewService creates an episode service
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = lgr.Default()
	}
	return &Service{
		repo:      deps.Repo,
		downloads: deps.Downloads,
		podcasts:  deps.Podcasts,
		feeds:     deps.Feeds,
		files:     deps.Files,
		station:   deps.Station,
		logger:    logger,
	}
}

// ImportEpisode registers a placeholder and dispatches its download. A
// dispatch failure is returned but leaves the placeholder in place.
func (s *Service) ImportEpisode(ctx context.Context, podcastID uint, in EpisodeInput) (*models.Episode, error) {
	if _, err := s.podcasts.GetByID(ctx, podcastID); err != nil {
		return nil, err
	}

	episode, err := s.repo.AddPlaceholder(ctx, podcastID, in.URL, in.GUID, in.PubDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.downloads.EnqueueDownload(ctx, episode.ID, episode.DownloadURL); err != nil {
		return episode, err
	}
	return episode, nil
}

// AddPlaceholders registers a batch of placeholders. Duplicates are logged
// and skipped; any other error stops the batch and is returned together
// with the placeholders created so far.
func (s *Service) AddPlaceholders(ctx context.Context, podcastID uint, in []EpisodeInput) ([]models.Episode, error) {
	created := make([]models.Episode, 0, len(in))
	for _, item := range in {
		episode, err := s.repo.AddPlaceholder(ctx, podcastID, item.URL, item.GUID, item.PubDate)
		if errors.Is(err, ErrDuplicateEpisode) {
			s.logger.Logf("[WARN] skipping episode %q of podcast %d, already registered", item.GUID, podcastID)
			continue
		}
		if err != nil {
			return created, fmt.Errorf("adding episode %q: %w", item.GUID, err)
		}
		created = append(created, *episode)
	}
	return created, nil
}

// DownloadEpisodes dispatches one download per episode, stopping at the
// first dispatch failure
func (s *Service) DownloadEpisodes(ctx context.Context, episodes []models.Episode) error {
	for _, episode := range episodes {
		if _, err := s.downloads.EnqueueDownload(ctx, episode.ID, episode.DownloadURL); err != nil {
			return err
		}
	}
	return nil
}

// ImportEpisodes adds placeholders for new entries and dispatches their downloads
func (s *Service) ImportEpisodes(ctx context.Context, podcastID uint, in []EpisodeInput) ([]models.Episode, error) {
	if _, err := s.podcasts.GetByID(ctx, podcastID); err != nil {
		return nil, err
	}

	created, err := s.AddPlaceholders(ctx, podcastID, in)
	if err != nil {
		return created, err
	}
	if err := s.DownloadEpisodes(ctx, created); err != nil {
		return created, err
	}

	s.logger.Logf("[INFO] imported %d of %d episodes into podcast %d", len(created), len(in), podcastID)
	return created, nil
}

func (s *Service) GetEpisode(ctx context.Context, id uint) (*models.Episode, error) {
	return s.repo.GetByID(ctx, id)
}

// DeleteEpisode removes an episode. A download still in flight for it is
// dropped when its completion arrives.
func (s *Service) DeleteEpisode(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(ctx, id)
}

// ListEpisodes returns a page of a podcast's episodes. The station podcast
// lists its stored rows; imported podcasts page over the live feed and
// merge each page with the registry.
func (s *Service) ListEpisodes(ctx context.Context, podcastID uint, opts ListOptions) (*EpisodeList, error) {
	podcast, err := s.podcasts.GetByID(ctx, podcastID)
	if err != nil {
		return nil, err
	}
	if opts.Offset < 0 {
		opts.Offset = 0
	}

	if podcast.IsStation {
		if opts.Limit < 0 {
			opts.Limit = 0
		}
		episodes, err := s.repo.ListByPodcast(ctx, podcast.ID, opts)
		if err != nil {
			return nil, err
		}
		return &EpisodeList{PodcastID: podcast.ID, Station: true, Episodes: episodes, Total: len(episodes)}, nil
	}

	if opts.Limit <= 0 {
		opts.Limit = DefaultPageSize
	}

	feed, err := s.feeds.FetchFeed(ctx, podcast.FeedURL)
	if err != nil {
		return nil, err
	}

	start := min(opts.Offset, len(feed.Items))
	end := min(start+opts.Limit, len(feed.Items))
	page := feed.Items[start:end]

	guids := make([]string, 0, len(page))
	for _, item := range page {
		guids = append(guids, item.GUID)
	}
	stored, err := s.repo.ListByPodcastAndGUIDs(ctx, podcast.ID, guids)
	if err != nil {
		return nil, err
	}

	items, err := MergeFeedWithRegistry(ctx, podcast.ID, stored, page, s.files)
	if err != nil {
		return nil, err
	}
	return &EpisodeList{PodcastID: podcast.ID, Items: items, Total: len(feed.Items)}, nil
}

// PublishURL is the public download address of a station file
func (s *Service) PublishURL(fileID uint) string {
	return s.station.BaseURL() + "/rest/media/" + strconv.FormatUint(uint64(fileID), 10) + "/download"
}

// Publish adds a local file to the station feed. Publishing a file that is
// already in the feed returns the existing episode.
func (s *Service) Publish(ctx context.Context, fileID uint) (*models.Episode, error) {
	if _, err := s.files.GetFile(ctx, fileID); err != nil {
		return nil, err
	}

	stationID, err := s.station.PodcastID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving station podcast: %w", err)
	}

	existing, err := s.repo.FindByPodcastAndFile(ctx, stationID, fileID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrEpisodeNotFound) {
		return nil, err
	}

	url := s.PublishURL(fileID)
	episode := &models.Episode{
		PodcastID:       stationID,
		DownloadURL:     url,
		EpisodeGUID:     url,
		PublicationDate: time.Now().UTC(),
		FileID:          &fileID,
	}
	if err := s.repo.CreateWithFile(ctx, episode); err != nil {
		if errors.Is(err, ErrDuplicateEpisode) {
			// lost a race with a concurrent publish of the same file
			return s.repo.FindByPodcastAndFile(ctx, stationID, fileID)
		}
		return nil, err
	}

	s.logger.Logf("[INFO] file %d published as episode %d", fileID, episode.ID)
	return episode, nil
}

// Unpublish removes a local file from the station feed
func (s *Service) Unpublish(ctx context.Context, fileID uint) error {
	stationID, err := s.station.PodcastID(ctx)
	if err != nil {
		return fmt.Errorf("resolving station podcast: %w", err)
	}

	episode, err := s.repo.FindByPodcastAndFile(ctx, stationID, fileID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteByID(ctx, episode.ID); err != nil {
		return err
	}

	s.logger.Logf("[INFO] file %d unpublished, episode %d removed", fileID, episode.ID)
	return nil
}
