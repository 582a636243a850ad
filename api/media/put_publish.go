package media

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// Publish adds a library file to the station feed
// @Summary      Publish media
// @Description  Create the station episode for a file. Publishing twice returns the existing episode.
// @Tags         media
// @Produce      json
// @Security     BasicAuth
// @Param        id path int true "File ID" minimum(1)
// @Success      200 {object} types.EpisodeResponse
// @Failure      401 {object} types.ErrorResponse "Invalid API key"
// @Failure      404 {object} types.ErrorResponse "File not found"
// @Router       /rest/media/{id}/publish [put]
func Publish(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		episode, err := deps.Episodes.Publish(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.EpisodeResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Published"},
			Episode:      types.FromEpisode(episode),
		})
	}
}

// Unpublish removes a library file from the station feed
// @Summary      Unpublish media
// @Tags         media
// @Security     BasicAuth
// @Param        id path int true "File ID" minimum(1)
// @Success      204 "Removed from the feed"
// @Failure      401 {object} types.ErrorResponse "Invalid API key"
// @Failure      404 {object} types.ErrorResponse "File is not published"
// @Router       /rest/media/{id}/publish [delete]
func Unpublish(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.Episodes.Unpublish(c.Request.Context(), id); err != nil {
			types.SendError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
