package podcasts

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/feeds"
	"github.com/killallgit/stationcast/internal/testutil"
)

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

func (m *MockFeedFetcher) Invalidate(ctx context.Context, url string) {
	m.Called(ctx, url)
}

func setupRepo(t *testing.T) PodcastRepository {
	t.Helper()
	return NewRepository(testutil.SetupTestDB(t).DB)
}

func TestService_Subscribe(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	fetcher := new(MockFeedFetcher)
	svc := NewService(repo, fetcher)

	const feedURL = "https://show.example.com/rss"
	fetcher.On("Invalidate", mock.Anything, feedURL).Return().Once()
	fetcher.On("FetchFeed", mock.Anything, feedURL).Return(&feeds.Feed{Title: "  The Show "}, nil).Once()

	podcast, err := svc.Subscribe(ctx, " "+feedURL+" ")
	require.NoError(t, err)
	assert.NotZero(t, podcast.ID)
	assert.Equal(t, "The Show", podcast.Title)
	assert.Equal(t, feedURL, podcast.FeedURL)
	assert.False(t, podcast.IsStation)

	// second subscription does not refetch
	again, err := svc.Subscribe(ctx, feedURL)
	require.NoError(t, err)
	assert.Equal(t, podcast.ID, again.ID)

	fetcher.AssertExpectations(t)
}

func TestService_SubscribeUsesHostWhenUntitled(t *testing.T) {
	fetcher := new(MockFeedFetcher)
	svc := NewService(setupRepo(t), fetcher)

	fetcher.On("Invalidate", mock.Anything, "http://untitled.example.com/feed").Return()
	fetcher.On("FetchFeed", mock.Anything, "http://untitled.example.com/feed").Return(&feeds.Feed{}, nil)

	podcast, err := svc.Subscribe(context.Background(), "http://untitled.example.com/feed")
	require.NoError(t, err)
	assert.Equal(t, "untitled.example.com", podcast.Title)
}

func TestService_SubscribeErrors(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		fetch   error
		wantErr error
	}{
		{name: "not a url", url: "::nope", wantErr: ErrInvalidFeedURL},
		{name: "unsupported scheme", url: "ftp://example.com/feed", wantErr: ErrInvalidFeedURL},
		{name: "feed fetch fails", url: "https://down.example.com/rss", fetch: feeds.ErrFeedUnavailable, wantErr: feeds.ErrFeedUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := new(MockFeedFetcher)
			if tt.fetch != nil {
				fetcher.On("Invalidate", mock.Anything, tt.url).Return()
				fetcher.On("FetchFeed", mock.Anything, tt.url).Return(nil, tt.fetch)
			}
			svc := NewService(setupRepo(t), fetcher)

			_, err := svc.Subscribe(context.Background(), tt.url)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}
}

func TestService_GetByIDAndList(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)
	svc := NewService(repo, new(MockFeedFetcher))

	_, err := svc.GetByID(ctx, 1)
	assert.True(t, errors.Is(err, ErrPodcastNotFound))

	for _, title := range []string{"a", "b", "c"} {
		require.NoError(t, repo.CreatePodcast(ctx, &models.Podcast{Title: title, FeedURL: "http://x/" + title}))
	}

	got, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Title)

	page, total, err := svc.List(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 1)
	assert.Equal(t, "b", page[0].Title)
}

func TestStation(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	station := NewStation(StationOptions{URL: "https://radio.example.com/ ", APIKey: "k", PodcastTitle: "Radio"}, repo)
	assert.Equal(t, "https://radio.example.com", station.BaseURL())
	assert.Equal(t, "k", station.APIKey())

	id, err := station.PodcastID(ctx)
	require.NoError(t, err)
	assert.NotZero(t, id)

	again, err := station.PodcastID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	podcast, err := repo.GetStationPodcast(ctx)
	require.NoError(t, err)
	assert.True(t, podcast.IsStation)
	assert.Equal(t, "Radio", podcast.Title)

	// a fresh Station finds the existing podcast instead of creating another
	other := NewStation(StationOptions{URL: "https://radio.example.com"}, repo)
	otherID, err := other.PodcastID(ctx)
	require.NoError(t, err)
	assert.Equal(t, id, otherID)

	_, total, err := repo.ListPodcasts(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestRepository_FeedURLLookupIgnoresStation(t *testing.T) {
	ctx := context.Background()
	repo := setupRepo(t)

	require.NoError(t, repo.CreatePodcast(ctx, &models.Podcast{Title: "station", IsStation: true}))

	_, err := repo.GetPodcastByFeedURL(ctx, "")
	assert.True(t, errors.Is(err, ErrPodcastNotFound))
}
