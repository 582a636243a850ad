package media

import (
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	log "github.com/go-pkgz/lgr"

	"github.com/killallgit/stationcast/api/types"
)

// Download streams a file's contents
// @Summary      Download media
// @Description  Public address of published station episodes.
// @Tags         media
// @Produce      octet-stream
// @Param        id path int true "File ID" minimum(1)
// @Success      200 {file} binary
// @Failure      404 {object} types.ErrorResponse "File not found"
// @Router       /rest/media/{id}/download [get]
func Download(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		file, rc, err := deps.Media.Open(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}
		defer rc.Close()

		c.Header("Content-Type", file.MimeType)
		c.Header("Content-Length", strconv.FormatInt(file.Size, 10))
		c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": file.Name}))
		c.Header("Cache-Control", "public, max-age=86400")
		c.Status(http.StatusOK)

		if _, err := io.Copy(c.Writer, rc); err != nil {
			// headers are already sent
			log.Printf("[WARN] streaming file %d: %v", id, err)
		}
	}
}
