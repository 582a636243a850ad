package episodes

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// GetByID returns a stored episode
// @Summary      Get episode
// @Description  A placeholder whose download has not landed yet has no file_id.
// @Tags         episodes
// @Produce      json
// @Param        id path int true "Episode ID" minimum(1)
// @Success      200 {object} types.EpisodeResponse
// @Failure      400 {object} types.ErrorResponse "Invalid episode ID"
// @Failure      404 {object} types.ErrorResponse "Episode not found"
// @Router       /api/v1/episodes/{id} [get]
func GetByID(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		episode, err := deps.Episodes.GetEpisode(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendSuccess(c, types.EpisodeResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Episode retrieved successfully"},
			Episode:      types.FromEpisode(episode),
		})
	}
}
