package episodes

import (
	"strings"
	"time"

	"github.com/killallgit/stationcast/internal/models"
)

// DefaultPageSize is the page size for imported podcasts when none is given
const DefaultPageSize = 10

// sortColumns whitelists the columns episodes may be ordered by
var sortColumns = map[string]bool{
	"publication_date": true,
	"id":               true,
	"episode_guid":     true,
	"download_url":     true,
	"created_at":       true,
}

// ListOptions selects a page of episodes
type ListOptions struct {
	Offset int
	Limit  int // 0 means unlimited, honoured for the station podcast only
	Sort   string
	Dir    string
}

// column returns the whitelisted sort column, publication_date by default
func (o ListOptions) column() string {
	col := strings.ToLower(strings.TrimSpace(o.Sort))
	if sortColumns[col] {
		return col
	}
	return "publication_date"
}

func (o ListOptions) desc() bool {
	return strings.EqualFold(strings.TrimSpace(o.Dir), "DESC")
}

// EpisodeInput describes a feed entry to import
type EpisodeInput struct {
	GUID    string
	URL     string
	PubDate time.Time
}

// EpisodeList is one page of a podcast's episodes. Station podcasts list
// stored rows, imported podcasts list feed items merged with the registry.
type EpisodeList struct {
	PodcastID uint
	Station   bool
	Episodes  []models.Episode
	Items     []MergedItem
	Total     int
}
