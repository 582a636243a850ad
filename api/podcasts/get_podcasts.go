package podcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// List returns a page of podcasts
// @Summary      List podcasts
// @Description  List imported podcasts and the station podcast, oldest first.
// @Tags         podcasts
// @Produce      json
// @Param        offset query int false "Rows to skip" minimum(0) default(0)
// @Param        limit  query int false "Page size" minimum(0) default(50)
// @Success      200 {object} types.PodcastsResponse
// @Failure      400 {object} types.ErrorResponse "Invalid paging parameters"
// @Failure      500 {object} types.ErrorResponse
// @Router       /api/v1/podcasts [get]
func List(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		offset, ok := types.ParseIntQuery(c, "offset", 0)
		if !ok {
			return
		}
		limit, ok := types.ParseIntQuery(c, "limit", 50)
		if !ok {
			return
		}

		list, total, err := deps.Podcasts.List(c.Request.Context(), offset, limit)
		if err != nil {
			types.SendError(c, err)
			return
		}

		out := make([]types.Podcast, 0, len(list))
		for i := range list {
			out = append(out, *types.FromPodcast(&list[i]))
		}

		types.SendSuccess(c, types.PodcastsResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Podcasts retrieved successfully"},
			Podcasts:     out,
			Count:        len(out),
			Total:        total,
			Offset:       offset,
		})
	}
}
