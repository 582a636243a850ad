package feeds

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"

	"github.com/killallgit/stationcast/internal/services/cache"
)

// maxFeedBytes caps how much of a feed document is read
const maxFeedBytes = 20 * 1024 * 1024

// Options configures the fetcher
type Options struct {
	Timeout   time.Duration
	CacheTTL  time.Duration
	UserAgent string
}

// Fetcher downloads and parses RSS/Atom feeds, keeping raw documents in a cache
type Fetcher struct {
	client    *http.Client
	cache     cache.Cache
	ttl       time.Duration
	userAgent string
}

// NewFetcher creates a fetcher. A nil cache disables caching.
func NewFetcher(opts Options, c cache.Cache) *Fetcher {
	return &Fetcher{
		client:    &http.Client{Timeout: opts.Timeout},
		cache:     c,
		ttl:       opts.CacheTTL,
		userAgent: opts.UserAgent,
	}
}

// FetchFeed returns the parsed feed at url
func (f *Fetcher) FetchFeed(ctx context.Context, url string) (*Feed, error) {
	raw, err := f.fetchRaw(ctx, url)
	if err != nil {
		return nil, err
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFeed, url, err)
	}

	// only cache documents that parse
	if f.cache != nil {
		if err := f.cache.Set(ctx, cacheKey(url), raw, f.ttl); err != nil {
			log.Printf("[WARN] can't cache feed %s, %v", url, err)
		}
	}

	return convertFeed(parsed), nil
}

// Invalidate drops the cached document for url
func (f *Fetcher) Invalidate(ctx context.Context, url string) {
	if f.cache != nil {
		_ = f.cache.Delete(ctx, cacheKey(url))
	}
}

func (f *Fetcher) fetchRaw(ctx context.Context, url string) ([]byte, error) {
	if f.cache != nil {
		if raw, ok := f.cache.Get(ctx, cacheKey(url)); ok {
			log.Printf("[DEBUG] feed cache hit for %s", url)
			return raw, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml;q=0.9, */*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFeedUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrFeedUnavailable, url, resp.StatusCode)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxFeedBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrFeedUnavailable, url, err)
	}
	return raw, nil
}

func cacheKey(url string) string {
	return "feed:" + url
}

func convertFeed(parsed *gofeed.Feed) *Feed {
	feed := &Feed{
		Title:       parsed.Title,
		Description: parsed.Description,
		Link:        parsed.Link,
		Items:       make([]Item, 0, len(parsed.Items)),
	}

	for _, it := range parsed.Items {
		if it == nil {
			continue
		}
		feed.Items = append(feed.Items, convertItem(it))
	}
	return feed
}

func convertItem(it *gofeed.Item) Item {
	item := Item{
		GUID:        strings.TrimSpace(it.GUID),
		Title:       it.Title,
		Description: it.Description,
		PubDate:     it.PublishedParsed,
		Link:        it.Link,
	}

	author := it.Author
	if author == nil && len(it.Authors) > 0 {
		author = it.Authors[0]
	}
	if author != nil {
		item.AuthorName = author.Name
		item.AuthorEmail = author.Email
	}

	for _, enc := range it.Enclosures {
		if enc == nil || enc.URL == "" {
			continue
		}
		length, _ := strconv.ParseInt(strings.TrimSpace(enc.Length), 10, 64)
		item.Enclosure = Enclosure{URL: enc.URL, Type: enc.Type, Length: length}
		break
	}

	// items without a guid are identified by their media, then their link
	if item.GUID == "" {
		item.GUID = item.Enclosure.URL
	}
	if item.GUID == "" {
		item.GUID = item.Link
	}

	return item
}
