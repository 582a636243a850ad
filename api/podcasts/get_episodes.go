package podcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/internal/services/episodes"
)

// GetEpisodes lists a podcast's episodes
// @Summary      List podcast episodes
// @Description  For the station podcast, list the stored episodes ordered by sort/dir; limit 0 returns all.
// @Description  For imported podcasts, page over the live feed and report each item's ingestion status
// @Description  (-1 pending, 0 not ingested, 1 ingested). Items without an enclosure are left out, so a
// @Description  page may hold fewer than limit items.
// @Tags         podcasts
// @Produce      json
// @Param        id     path  int    true  "Podcast ID" minimum(1)
// @Param        offset query int    false "Items to skip" minimum(0) default(0)
// @Param        limit  query int    false "Page size, 10 for imported podcasts when 0" minimum(0)
// @Param        sort   query string false "Sort column for station episodes" Enums(publication_date, id, episode_guid, download_url, created_at)
// @Param        dir    query string false "Sort direction" Enums(ASC, DESC)
// @Success      200 {object} types.EpisodeListResponse
// @Failure      400 {object} types.ErrorResponse "Invalid parameters or unparseable feed"
// @Failure      404 {object} types.ErrorResponse "Podcast not found"
// @Failure      502 {object} types.ErrorResponse "Feed could not be fetched"
// @Router       /api/v1/podcasts/{id}/episodes [get]
func GetEpisodes(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}
		offset, ok := types.ParseIntQuery(c, "offset", 0)
		if !ok {
			return
		}
		limit, ok := types.ParseIntQuery(c, "limit", 0)
		if !ok {
			return
		}

		list, err := deps.Episodes.ListEpisodes(c.Request.Context(), id, episodes.ListOptions{
			Offset: offset,
			Limit:  limit,
			Sort:   c.Query("sort"),
			Dir:    c.Query("dir"),
		})
		if err != nil {
			types.SendError(c, err)
			return
		}

		resp := types.EpisodeListResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Episodes retrieved successfully"},
			PodcastID:    list.PodcastID,
			Station:      list.Station,
			Total:        list.Total,
			Offset:       offset,
		}
		if list.Station {
			resp.Episodes = types.FromEpisodes(list.Episodes)
			resp.Count = len(resp.Episodes)
		} else {
			resp.Items = types.FromMergedItems(list.Items)
			resp.Count = len(resp.Items)
		}
		types.SendSuccess(c, resp)
	}
}
