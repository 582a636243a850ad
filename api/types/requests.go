package types

import (
	"strings"
	"time"
)

// SubscribeRequest adds an imported podcast by feed URL
type SubscribeRequest struct {
	URL string `json:"url" binding:"required" example:"https://feeds.example.com/show.xml"`
}

// ImportEpisodesRequest carries feed entries to import into a podcast
type ImportEpisodesRequest struct {
	Episodes []ImportEpisode `json:"episodes" binding:"required,min=1,dive"`
}

// ImportEpisode is one feed entry to download
type ImportEpisode struct {
	GUID      string          `json:"guid" binding:"required" example:"https://show.example.com/?p=123"`
	PubDate   string          `json:"pub_date,omitempty" example:"Mon, 02 Jan 2006 15:04:05 GMT"`
	Enclosure ImportEnclosure `json:"enclosure" binding:"required"`
}

// ImportEnclosure points at the media file of an entry
type ImportEnclosure struct {
	Link string `json:"link" binding:"required" example:"https://cdn.example.com/ep123.mp3"`
}

// CompletionRequest is the completion notice of a download job
type CompletionRequest struct {
	JobID      string           `json:"job_id" example:"42"`
	TaskStatus string           `json:"task_status" binding:"required" example:"SUCCESS"`
	Result     CompletionResult `json:"result"`
}

// CompletionResult is the per-item outcome reported by the worker
type CompletionResult struct {
	EpisodeID uint   `json:"episodeid" example:"7"`
	FileID    uint   `json:"fileid" example:"12"`
	Status    int    `json:"status" example:"1"` // 1 delivered, 0 failed
	Error     string `json:"error,omitempty"`
}

// pubDateLayouts are the date formats accepted for pub_date
var pubDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2006-01-02",
}

// ParsePubDate parses a feed publication date; an empty value is the zero time
func ParsePubDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, true
	}
	for _, layout := range pubDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
