// Package apitest wires the full service stack over a temporary database for
// handler tests.
package apitest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/internal/database"
	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/episodes"
	"github.com/killallgit/stationcast/internal/services/feeds"
	"github.com/killallgit/stationcast/internal/services/jobs"
	"github.com/killallgit/stationcast/internal/services/media"
	"github.com/killallgit/stationcast/internal/services/podcasts"
	"github.com/killallgit/stationcast/internal/testutil"
)

// APIKey is the station key every test environment is configured with
const APIKey = "secret"

// StationURL is the public base URL of the test station
const StationURL = "https://radio.example.com/"

// Feeds serves canned feeds by URL
type Feeds struct {
	mu    sync.Mutex
	feeds map[string]*feeds.Feed
	calls int
}

// Set registers the feed served for url
func (f *Feeds) Set(url string, feed *feeds.Feed) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feeds[url] = feed
}

// FetchFeed implements the feed fetcher interfaces
func (f *Feeds) FetchFeed(_ context.Context, url string) (*feeds.Feed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	feed, ok := f.feeds[url]
	if !ok {
		return nil, fmt.Errorf("%w: %s: status 404", feeds.ErrFeedUnavailable, url)
	}
	return feed, nil
}

// Invalidate implements the feed fetcher interfaces; canned feeds are never cached
func (f *Feeds) Invalidate(context.Context, string) {}

// Env is a fully wired service stack
type Env struct {
	DB         *database.DB
	Jobs       jobs.Service
	Media      *media.Service
	Podcasts   *podcasts.Service
	Station    *podcasts.Station
	Episodes   *episodes.Service
	Reconciler *episodes.Reconciler
	Feeds      *Feeds
	Deps       *types.Dependencies
}

// New builds an Env whose media lives in temp dirs
func New(t *testing.T) *Env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.SetupTestDB(t)
	storage, err := media.NewFSStorage(t.TempDir())
	require.NoError(t, err)

	fetcher := &Feeds{feeds: map[string]*feeds.Feed{}}
	podcastRepo := podcasts.NewRepository(db.DB)
	station := podcasts.NewStation(podcasts.StationOptions{URL: StationURL, APIKey: APIKey, PodcastTitle: "Test Station"}, podcastRepo)
	jobService := jobs.NewService(jobs.NewRepository(db.DB))
	mediaService := media.NewService(media.NewRepository(db.DB), storage, t.TempDir())
	podcastService := podcasts.NewService(podcastRepo, fetcher)
	episodeRepo := episodes.NewRepository(db.DB)

	episodeService := episodes.NewService(episodes.Deps{
		Repo:      episodeRepo,
		Downloads: episodes.NewDownloadDispatcher(jobs.NewDispatcher(jobService), station),
		Podcasts:  podcastService,
		Feeds:     fetcher,
		Files:     mediaService,
		Station:   station,
	})
	reconciler := episodes.NewReconciler(episodeRepo, nil)

	return &Env{
		DB:         db,
		Jobs:       jobService,
		Media:      mediaService,
		Podcasts:   podcastService,
		Station:    station,
		Episodes:   episodeService,
		Reconciler: reconciler,
		Feeds:      fetcher,
		Deps: &types.Dependencies{
			DB:             db,
			Podcasts:       podcastService,
			Episodes:       episodeService,
			Media:          mediaService,
			Reconciler:     reconciler,
			JobService:     jobService,
			APIKey:         APIKey,
			Version:        "test",
			MaxUploadBytes: 10 << 20,
		},
	}
}

// Podcast stores an imported podcast for feedURL
func (e *Env) Podcast(t *testing.T, feedURL string) *models.Podcast {
	t.Helper()
	p := &models.Podcast{Title: "Imported", FeedURL: feedURL}
	require.NoError(t, e.DB.Create(p).Error)
	return p
}

// File stores a media file with the given contents
func (e *Env) File(t *testing.T, name string, content []byte) *models.File {
	t.Helper()
	f, err := e.Media.Store(context.Background(), name, "audio/mpeg", bytes.NewReader(content))
	require.NoError(t, err)
	return f
}

// Do runs a request against router. A non-nil body is sent as JSON.
func Do(router http.Handler, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// Decode unmarshals a recorded JSON response
func Decode(t *testing.T, w *httptest.ResponseRecorder, target interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), target), w.Body.String())
}
