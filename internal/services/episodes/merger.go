package episodes

import (
	"context"
	"fmt"
	"html"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/feeds"
)

// IngestStatus tells how far a feed item got into the registry. The numeric
// values are part of the listing response.
type IngestStatus int

const (
	StatusPending     IngestStatus = -1
	StatusNotIngested IngestStatus = 0
	StatusIngested    IngestStatus = 1
)

func (s IngestStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusIngested:
		return "ingested"
	default:
		return "not_ingested"
	}
}

// pubDateLayout is RFC 1123 with the zone spelled GMT, as RSS readers expect
const pubDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// MergedEnclosure is the media attachment of a merged item
type MergedEnclosure struct {
	URL    string `json:"url"`
	Type   string `json:"type"`
	Length int64  `json:"length"`
}

// MergedItem is a live feed item annotated with its ingestion status
type MergedItem struct {
	PodcastID   uint            `json:"podcast_id"`
	GUID        string          `json:"guid"`
	Ingested    IngestStatus    `json:"ingested"`
	Status      string          `json:"status"`
	Title       string          `json:"title"`
	Author      string          `json:"author,omitempty"`
	Description string          `json:"description"`
	PubDate     string          `json:"pub_date,omitempty"`
	Link        string          `json:"link"`
	Enclosure   MergedEnclosure `json:"enclosure"`
	File        *models.File    `json:"file,omitempty"`
}

// MergeFeedWithRegistry joins live feed items with the stored episodes of a
// podcast by guid. Items without an enclosure are not episodes and are left
// out; the rest keep their feed order. A stored file id that does not
// resolve is an integrity problem and fails the merge.
func MergeFeedWithRegistry(ctx context.Context, podcastID uint, stored []models.Episode, items []feeds.Item, files FileLookup) ([]MergedItem, error) {
	known := make(map[string]*uint, len(stored))
	for i := range stored {
		known[stored[i].EpisodeGUID] = stored[i].FileID
	}

	merged := make([]MergedItem, 0, len(items))
	for _, item := range items {
		if item.Enclosure.URL == "" {
			continue
		}

		out := MergedItem{
			PodcastID:   podcastID,
			GUID:        item.GUID,
			Ingested:    StatusNotIngested,
			Title:       item.Title,
			Author:      item.Author(),
			Description: html.EscapeString(item.Description),
			Link:        item.Link,
			Enclosure: MergedEnclosure{
				URL:    item.Enclosure.URL,
				Type:   item.Enclosure.Type,
				Length: item.Enclosure.Length,
			},
		}
		if item.PubDate != nil {
			out.PubDate = item.PubDate.UTC().Format(pubDateLayout)
		}

		if fileID, ok := known[item.GUID]; ok {
			out.Ingested = StatusPending
			if fileID != nil && *fileID != 0 {
				file, err := files.GetFile(ctx, *fileID)
				if err != nil {
					return nil, fmt.Errorf("file %d of episode %q: %w", *fileID, item.GUID, err)
				}
				out.Ingested = StatusIngested
				out.File = file
			}
		}
		out.Status = out.Ingested.String()

		merged = append(merged, out)
	}

	return merged, nil
}
