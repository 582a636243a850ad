package feeds

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/stationcast/internal/services/cache"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
<channel>
  <title>Test Show</title>
  <link>https://show.example.com</link>
  <description>A show</description>
  <item>
    <title>Episode 1</title>
    <guid>g1</guid>
    <author>jane@example.com (Jane Doe)</author>
    <description>First &lt;b&gt;episode&lt;/b&gt;</description>
    <pubDate>Mon, 02 Jan 2006 15:04:05 GMT</pubDate>
    <link>https://show.example.com/1</link>
    <enclosure url="https://cdn.example.com/1.mp3" length="1234" type="audio/mpeg"/>
  </item>
  <item>
    <title>Episode 2</title>
    <guid>g2</guid>
    <itunes:author>John Host</itunes:author>
    <enclosure url="https://cdn.example.com/2.mp3" length="" type="audio/mpeg"/>
  </item>
  <item>
    <title>No guid</title>
    <enclosure url="https://cdn.example.com/3.mp3" type="audio/mpeg"/>
  </item>
  <item>
    <title>Text only</title>
    <guid>g4</guid>
  </item>
</channel>
</rss>`

func newFeedServer(t *testing.T, body string, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func TestFetcher_FetchFeed(t *testing.T) {
	server, _ := newFeedServer(t, testRSS, http.StatusOK)
	f := NewFetcher(Options{Timeout: 5 * time.Second, UserAgent: "test"}, nil)

	feed, err := f.FetchFeed(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Show", feed.Title)
	require.Len(t, feed.Items, 4)

	first := feed.Items[0]
	assert.Equal(t, "g1", first.GUID)
	assert.Equal(t, "Episode 1", first.Title)
	assert.Equal(t, "jane@example.com", first.Author())
	assert.Equal(t, "First <b>episode</b>", first.Description)
	assert.Equal(t, "https://show.example.com/1", first.Link)
	require.NotNil(t, first.PubDate)
	assert.Equal(t, 2006, first.PubDate.Year())
	assert.Equal(t, Enclosure{URL: "https://cdn.example.com/1.mp3", Type: "audio/mpeg", Length: 1234}, first.Enclosure)

	second := feed.Items[1]
	assert.Equal(t, "John Host", second.Author())
	assert.Equal(t, int64(0), second.Enclosure.Length)
	assert.Nil(t, second.PubDate)

	assert.Equal(t, "https://cdn.example.com/3.mp3", feed.Items[2].GUID, "enclosure url stands in for a missing guid")
	assert.Empty(t, feed.Items[3].Enclosure.URL)
}

func TestFetcher_UsesCache(t *testing.T) {
	server, hits := newFeedServer(t, testRSS, http.StatusOK)
	mc := cache.NewMemoryCache(0, 0)
	defer mc.Stop()

	f := NewFetcher(Options{Timeout: 5 * time.Second, CacheTTL: time.Minute}, mc)
	ctx := context.Background()

	_, err := f.FetchFeed(ctx, server.URL)
	require.NoError(t, err)
	_, err = f.FetchFeed(ctx, server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())

	f.Invalidate(ctx, server.URL)
	_, err = f.FetchFeed(ctx, server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}

func TestFetcher_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		status  int
		wantErr error
	}{
		{name: "server error", body: "oops", status: http.StatusInternalServerError, wantErr: ErrFeedUnavailable},
		{name: "not found", body: "", status: http.StatusNotFound, wantErr: ErrFeedUnavailable},
		{name: "not a feed", body: "<html><body>hello</body></html>", status: http.StatusOK, wantErr: ErrInvalidFeed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newFeedServer(t, tt.body, tt.status)
			mc := cache.NewMemoryCache(0, 0)
			defer mc.Stop()

			f := NewFetcher(Options{Timeout: 5 * time.Second}, mc)
			_, err := f.FetchFeed(context.Background(), server.URL)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)

			_, cached := mc.Get(context.Background(), cacheKey(server.URL))
			assert.False(t, cached, "failed documents are not cached")
		})
	}
}

func TestFetcher_Unreachable(t *testing.T) {
	f := NewFetcher(Options{Timeout: time.Second}, nil)
	_, err := f.FetchFeed(context.Background(), "http://127.0.0.1:1/feed.xml")
	assert.True(t, errors.Is(err, ErrFeedUnavailable))
}

func TestItem_Author(t *testing.T) {
	assert.Equal(t, "a@b.c", Item{AuthorEmail: "a@b.c", AuthorName: "A"}.Author())
	assert.Equal(t, "A", Item{AuthorName: "A"}.Author())
	assert.Empty(t, Item{}.Author())
}
