package episodes

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/feeds"
	"github.com/killallgit/stationcast/internal/services/media"
	"github.com/killallgit/stationcast/internal/services/podcasts"
	"github.com/killallgit/stationcast/internal/testutil"
)

// MockJobDispatcher is a mock implementation of JobDispatcher
type MockJobDispatcher struct {
	mock.Mock
}

func (m *MockJobDispatcher) Dispatch(ctx context.Context, exchange, task string, payload map[string]interface{}) (string, error) {
	args := m.Called(ctx, exchange, task, payload)
	return args.String(0), args.Error(1)
}

// MockFeedFetcher is a mock implementation of FeedFetcher
type MockFeedFetcher struct {
	mock.Mock
}

func (m *MockFeedFetcher) FetchFeed(ctx context.Context, url string) (*feeds.Feed, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*feeds.Feed), args.Error(1)
}

// fileTable is an in-memory FileLookup
type fileTable map[uint]*models.File

func (f fileTable) GetFile(_ context.Context, id uint) (*models.File, error) {
	file, ok := f[id]
	if !ok {
		return nil, fmt.Errorf("file %d: %w", id, media.ErrFileNotFound)
	}
	return file, nil
}

// logSink collects log lines written through an lgr.L
type logSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *logSink) logger() lgr.L {
	return lgr.Func(func(format string, args ...interface{}) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.lines = append(s.lines, fmt.Sprintf(format, args...))
	})
}

func (s *logSink) warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, l := range s.lines {
		if strings.HasPrefix(l, "[WARN]") {
			out = append(out, l)
		}
	}
	return out
}

// testEnv wires the episode service to a real database
type testEnv struct {
	db         *gorm.DB
	repo       Repository
	podcasts   *podcasts.Service
	station    *podcasts.Station
	jobs       *MockJobDispatcher
	feeds      *MockFeedFetcher
	files      fileTable
	log        *logSink
	svc        *Service
	reconciler *Reconciler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)

	podcastRepo := podcasts.NewRepository(db.DB)
	env := &testEnv{
		db:       db.DB,
		repo:     NewRepository(db.DB),
		jobs:     new(MockJobDispatcher),
		feeds:    new(MockFeedFetcher),
		files:    fileTable{},
		log:      &logSink{},
		station:  podcasts.NewStation(podcasts.StationOptions{URL: "https://radio.example.com/", APIKey: "secret"}, podcastRepo),
		podcasts: podcasts.NewService(podcastRepo, nil),
	}
	env.svc = NewService(Deps{
		Repo:      env.repo,
		Downloads: NewDownloadDispatcher(env.jobs, env.station),
		Podcasts:  env.podcasts,
		Feeds:     env.feeds,
		Files:     env.files,
		Station:   env.station,
		Logger:    env.log.logger(),
	})
	env.reconciler = NewReconciler(env.repo, env.log.logger())
	return env
}

// importedPodcast stores a podcast that follows a remote feed
func (e *testEnv) importedPodcast(t *testing.T, feedURL string) *models.Podcast {
	t.Helper()
	p := &models.Podcast{Title: "Imported", FeedURL: feedURL}
	require.NoError(t, e.db.Create(p).Error)
	return p
}

// placeholder stores an episode directly, bypassing the registry checks
func (e *testEnv) placeholder(t *testing.T, podcastID uint, guid string, fileID *uint) *models.Episode {
	t.Helper()
	ep := &models.Episode{
		PodcastID:       podcastID,
		DownloadURL:     "https://cdn.example.com/" + guid + ".mp3",
		EpisodeGUID:     guid,
		PublicationDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		FileID:          fileID,
	}
	require.NoError(t, e.db.Create(ep).Error)
	return ep
}

func (e *testEnv) countEpisodes(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(&models.Episode{}).Count(&n).Error)
	return n
}

func uintPtr(v uint) *uint {
	return &v
}

func feedItem(guid string) feeds.Item {
	return feeds.Item{
		GUID:      guid,
		Title:     "Episode " + guid,
		Link:      "https://show.example.com/" + guid,
		Enclosure: feeds.Enclosure{URL: "https://cdn.example.com/" + guid + ".mp3", Type: "audio/mpeg", Length: 1000},
	}
}
