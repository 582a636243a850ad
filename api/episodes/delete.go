package episodes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/api/types"
)

// Delete removes an episode. Its media file, if any, stays in the library.
// @Summary      Delete episode
// @Description  Removing a placeholder lets its guid be imported again; a download still
// @Description  running for it is discarded when it completes.
// @Tags         episodes
// @Param        id path int true "Episode ID" minimum(1)
// @Success      204 "Deleted"
// @Failure      400 {object} types.ErrorResponse "Invalid episode ID"
// @Failure      404 {object} types.ErrorResponse "Episode not found"
// @Router       /api/v1/episodes/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.Episodes.DeleteEpisode(c.Request.Context(), id); err != nil {
			types.SendError(c, err)
			return
		}

		log.Printf("[INFO] episode %d deleted", id)
		c.Status(http.StatusNoContent)
	}
}
