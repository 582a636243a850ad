package podcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// Subscribe adds an imported podcast by feed URL
// @Summary      Subscribe to a podcast feed
// @Description  Fetch the feed once to validate it and record the podcast.
// @Description  Subscribing to a known feed URL returns the existing podcast.
// @Tags         podcasts
// @Accept       json
// @Produce      json
// @Param        request body types.SubscribeRequest true "Feed to subscribe to"
// @Success      201 {object} types.PodcastResponse
// @Failure      400 {object} types.ErrorResponse "Invalid feed URL or unparseable feed"
// @Failure      502 {object} types.ErrorResponse "Feed could not be fetched"
// @Router       /api/v1/podcasts [post]
func Subscribe(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req types.SubscribeRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		podcast, err := deps.Podcasts.Subscribe(c.Request.Context(), req.URL)
		if err != nil {
			types.SendError(c, err)
			return
		}

		types.SendCreated(c, types.PodcastResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Subscribed"},
			Podcast:      types.FromPodcast(podcast),
		})
	}
}
