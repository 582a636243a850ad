package models

import (
	"time"

	"gorm.io/gorm"
)

// Podcast represents either an imported RSS feed or the station's own feed
type Podcast struct {
	gorm.Model
	Title     string `json:"title" gorm:"not null"`
	FeedURL   string `json:"feed_url" gorm:"index"`
	IsStation bool   `json:"is_station" gorm:"default:false;index"`
}

// Episode is a podcast episode known to the station. It starts out as a
// placeholder without a file and gets a FileID once its download lands.
//
// Episodes are hard-deleted so a failed guid can be imported again.
type Episode struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PodcastID       uint      `json:"podcast_id" gorm:"not null;index"`
	DownloadURL     string    `json:"download_url" gorm:"not null"`
	EpisodeGUID     string    `json:"episode_guid" gorm:"column:episode_guid;uniqueIndex;not null"`
	PublicationDate time.Time `json:"publication_date" gorm:"index"`
	FileID          *uint     `json:"file_id" gorm:"index"`
	File            *File     `json:"file,omitempty" gorm:"foreignKey:FileID"`
	CreatedAt       time.Time `json:"-"`
	UpdatedAt       time.Time `json:"-"`
}

// HasFile reports whether the episode's download has completed
func (e *Episode) HasFile() bool {
	return e.FileID != nil && *e.FileID != 0
}

// File is a media file in the station library
type File struct {
	gorm.Model
	Name          string  `json:"name" gorm:"not null"`
	MimeType      string  `json:"mime"`
	Size          int64   `json:"filesize"`
	StorageKey    string  `json:"-" gorm:"not null;uniqueIndex"`
	TrackTitle    string  `json:"track_title"`
	Artist        string  `json:"artist_name"`
	LengthSeconds float64 `json:"length"`
}

// All returns every model managed by the schema, in dependency order
func All() []any {
	return []any{&Podcast{}, &File{}, &Episode{}, &Job{}}
}
