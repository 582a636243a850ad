package media

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// Delete removes a file from the library along with every episode using it
// @Summary      Delete media
// @Tags         media
// @Security     BasicAuth
// @Param        id path int true "File ID" minimum(1)
// @Success      204 "Deleted"
// @Failure      401 {object} types.ErrorResponse "Invalid API key"
// @Failure      404 {object} types.ErrorResponse "File not found"
// @Router       /rest/media/{id} [delete]
func Delete(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		if err := deps.Media.DeleteFile(c.Request.Context(), id); err != nil {
			types.SendError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
