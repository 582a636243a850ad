package types

import (
	"time"

	"github.com/killallgit/stationcast/internal/services/episodes"
)

// Status constants for API responses
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// BaseResponse contains fields common to all API responses
type BaseResponse struct {
	Status  string `json:"status"`  // One of the Status constants above
	Message string `json:"message"` // Human-readable message
}

// File is a media library entry
type File struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Mime       string    `json:"mime"`
	Filesize   int64     `json:"filesize"`
	TrackTitle string    `json:"track_title,omitempty"`
	ArtistName string    `json:"artist_name,omitempty"`
	Length     float64   `json:"length"` // Seconds
	CreatedAt  time.Time `json:"created_at"`
}

// Podcast is an imported feed or the station's own feed
type Podcast struct {
	ID        uint      `json:"id"`
	Title     string    `json:"title"`
	FeedURL   string    `json:"feed_url,omitempty"`
	IsStation bool      `json:"is_station"`
	CreatedAt time.Time `json:"created_at"`
}

// Episode is a stored episode row
type Episode struct {
	ID              uint      `json:"id"`
	PodcastID       uint      `json:"podcast_id"`
	DownloadURL     string    `json:"download_url"`
	EpisodeGUID     string    `json:"episode_guid"`
	PublicationDate time.Time `json:"publication_date"`
	FileID          *uint     `json:"file_id"`
	File            *File     `json:"file,omitempty"`
}

// FeedEpisode is a live feed item with its ingestion status
type FeedEpisode struct {
	PodcastID   uint                     `json:"podcast_id"`
	GUID        string                   `json:"guid"`
	Ingested    episodes.IngestStatus    `json:"ingested"` // -1 pending, 0 not ingested, 1 ingested
	Status      string                   `json:"status"`
	Title       string                   `json:"title"`
	Author      string                   `json:"author,omitempty"`
	Description string                   `json:"description"`
	PubDate     string                   `json:"pub_date,omitempty"`
	Link        string                   `json:"link"`
	Enclosure   episodes.MergedEnclosure `json:"enclosure"`
	File        *File                    `json:"file,omitempty"`
}

// PodcastResponse for a single podcast
type PodcastResponse struct {
	BaseResponse
	Podcast *Podcast `json:"podcast"`
}

// PodcastsResponse for podcast lists
type PodcastsResponse struct {
	BaseResponse
	Podcasts []Podcast `json:"podcasts"`
	Count    int       `json:"count"`           // Number of results in this response
	Total    int64     `json:"total,omitempty"` // Total available
	Offset   int       `json:"offset,omitempty"`
}

// EpisodeResponse for a single episode
type EpisodeResponse struct {
	BaseResponse
	Episode *Episode `json:"episode"`
}

// EpisodeListResponse lists a podcast's episodes. The station podcast fills
// Episodes, imported podcasts fill Items.
type EpisodeListResponse struct {
	BaseResponse
	PodcastID uint          `json:"podcast_id"`
	Station   bool          `json:"station"`
	Episodes  []Episode     `json:"episodes,omitempty"`
	Items     []FeedEpisode `json:"items,omitempty"`
	Count     int           `json:"count"`
	Total     int           `json:"total,omitempty"`
	Offset    int           `json:"offset,omitempty"`
}

// ImportEpisodesResponse reports the placeholders an import created
type ImportEpisodesResponse struct {
	BaseResponse
	Episodes []Episode `json:"episodes"`
	Count    int       `json:"count"`
	Skipped  int       `json:"skipped"` // Entries already registered
}

// FilesResponse for media library listings
type FilesResponse struct {
	BaseResponse
	Files  []File `json:"files"`
	Count  int    `json:"count"`
	Total  int64  `json:"total,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// CompletionResponse reports how a job completion was applied
type CompletionResponse struct {
	BaseResponse
	Outcome string `json:"outcome"`
}

// ErrorResponse for detailed error information
type ErrorResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Error   string      `json:"error,omitempty"`   // Error code/type
	Details interface{} `json:"details,omitempty"` // Additional error details
}

// HealthResponse for health check endpoint
type HealthResponse struct {
	BaseResponse
	Version  string                 `json:"version,omitempty"`
	Services map[string]interface{} `json:"services,omitempty"`
}
