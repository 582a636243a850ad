package types

import (
	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/episodes"
)

// FromFile transforms a stored file to its API shape
func FromFile(f *models.File) *File {
	if f == nil {
		return nil
	}
	return &File{
		ID:         f.ID,
		Name:       f.Name,
		Mime:       f.MimeType,
		Filesize:   f.Size,
		TrackTitle: f.TrackTitle,
		ArtistName: f.Artist,
		Length:     f.LengthSeconds,
		CreatedAt:  f.CreatedAt,
	}
}

// FromPodcast transforms a stored podcast to its API shape
func FromPodcast(p *models.Podcast) *Podcast {
	if p == nil {
		return nil
	}
	return &Podcast{
		ID:        p.ID,
		Title:     p.Title,
		FeedURL:   p.FeedURL,
		IsStation: p.IsStation,
		CreatedAt: p.CreatedAt,
	}
}

// FromEpisode transforms a stored episode to its API shape
func FromEpisode(e *models.Episode) *Episode {
	if e == nil {
		return nil
	}
	return &Episode{
		ID:              e.ID,
		PodcastID:       e.PodcastID,
		DownloadURL:     e.DownloadURL,
		EpisodeGUID:     e.EpisodeGUID,
		PublicationDate: e.PublicationDate,
		FileID:          e.FileID,
		File:            FromFile(e.File),
	}
}

// FromEpisodes transforms a list of stored episodes
func FromEpisodes(list []models.Episode) []Episode {
	out := make([]Episode, 0, len(list))
	for i := range list {
		out = append(out, *FromEpisode(&list[i]))
	}
	return out
}

// FromMergedItems transforms merged feed items
func FromMergedItems(items []episodes.MergedItem) []FeedEpisode {
	out := make([]FeedEpisode, 0, len(items))
	for _, it := range items {
		out = append(out, FeedEpisode{
			PodcastID:   it.PodcastID,
			GUID:        it.GUID,
			Ingested:    it.Ingested,
			Status:      it.Status,
			Title:       it.Title,
			Author:      it.Author,
			Description: it.Description,
			PubDate:     it.PubDate,
			Link:        it.Link,
			Enclosure:   it.Enclosure,
			File:        FromFile(it.File),
		})
	}
	return out
}
