package podcasts

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/internal/services/episodes"
)

// ImportEpisodes registers feed entries and dispatches their downloads
// @Summary      Import episodes
// @Description  Register a placeholder for every entry and dispatch one download per new placeholder.
// @Description  Entries whose guid is already registered are skipped.
// @Tags         podcasts
// @Accept       json
// @Produce      json
// @Param        id      path int                         true "Podcast ID" minimum(1)
// @Param        request body types.ImportEpisodesRequest true "Entries to import"
// @Success      202 {object} types.ImportEpisodesResponse
// @Failure      400 {object} types.ErrorResponse "Invalid request body"
// @Failure      404 {object} types.ErrorResponse "Podcast not found"
// @Failure      500 {object} types.ErrorResponse "Registering or dispatching failed"
// @Router       /api/v1/podcasts/{id}/episodes [post]
func ImportEpisodes(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		var req types.ImportEpisodesRequest
		if !types.BindJSONOrError(c, &req) {
			return
		}

		in := make([]episodes.EpisodeInput, 0, len(req.Episodes))
		for _, entry := range req.Episodes {
			pubDate, ok := types.ParsePubDate(entry.PubDate)
			if !ok {
				types.SendBadRequest(c, "Invalid pub_date for "+entry.GUID)
				return
			}
			in = append(in, episodes.EpisodeInput{GUID: entry.GUID, URL: entry.Enclosure.Link, PubDate: pubDate})
		}

		created, err := deps.Episodes.ImportEpisodes(c.Request.Context(), id, in)
		if err != nil {
			if len(created) > 0 {
				log.Printf("[WARN] import into podcast %d stopped after %d episode(s)", id, len(created))
			}
			types.SendError(c, err)
			return
		}

		c.JSON(http.StatusAccepted, types.ImportEpisodesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Downloads dispatched"},
			Episodes:     types.FromEpisodes(created),
			Count:        len(created),
			Skipped:      len(in) - len(created),
		})
	}
}
