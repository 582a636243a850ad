package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/stationcast/internal/models"
	"github.com/killallgit/stationcast/internal/services/episodes"
)

func TestEpisodesList_InvalidID(t *testing.T) {
	for _, arg := range []string{"abc", "0"} {
		_, err := execute(t, "episodes", "list", arg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid podcast id")
	}
}

func TestRenderEpisodeList(t *testing.T) {
	fileID := uint(7)
	station := renderEpisodeList(&episodes.EpisodeList{
		Station: true,
		Episodes: []models.Episode{
			{ID: 3, PublicationDate: time.Date(2024, 5, 6, 7, 30, 0, 0, time.UTC), FileID: &fileID, DownloadURL: "https://radio.example.com/rest/media/7/download"},
		},
		Total: 1,
	})
	assert.Contains(t, station, "2024-05-06 07:30")
	assert.Contains(t, station, "rest/media/7/download")

	imported := renderEpisodeList(&episodes.EpisodeList{
		Items: []episodes.MergedItem{
			{GUID: "g1", Status: "pending", Title: "One"},
			{GUID: "g2", Status: "not_ingested", Title: "Two"},
		},
		Total: 5,
	})
	assert.Contains(t, imported, "pending")
	assert.Contains(t, imported, "not_ingested")
	assert.Contains(t, imported, "2 of 5 feed items")
}
