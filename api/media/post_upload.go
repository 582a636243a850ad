package media

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// uploadField is the multipart field carrying the file
const uploadField = "file"

// Upload stores a multipart upload in the media library
// @Summary      Upload media
// @Description  Stream a file into the library. ID3 title and artist and the MP3 length are
// @Description  extracted when present. Download workers post finished episodes here.
// @Tags         media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BasicAuth
// @Param        file formData file true "Audio file"
// @Success      201 {object} types.File
// @Failure      400 {object} types.ErrorResponse "Missing or empty file"
// @Failure      401 {object} types.ErrorResponse "Invalid API key"
// @Failure      413 {object} types.ErrorResponse "File too large"
// @Router       /rest/media [post]
func Upload(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		reader, err := c.Request.MultipartReader()
		if err != nil {
			types.SendBadRequest(c, "Expected a multipart/form-data body")
			return
		}

		for {
			part, err := reader.NextPart()
			if err == io.EOF {
				types.SendBadRequest(c, "Missing form field '"+uploadField+"'")
				return
			}
			if err != nil {
				sendReadError(c, err)
				return
			}
			if part.FormName() != uploadField {
				part.Close()
				continue
			}

			file, err := deps.Media.Store(c.Request.Context(), part.FileName(), part.Header.Get("Content-Type"), part)
			part.Close()
			if err != nil {
				sendReadError(c, err)
				return
			}

			types.SendCreated(c, types.FromFile(file))
			return
		}
	}
}

// sendReadError reports an oversized body as 413 and anything else as usual
func sendReadError(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, types.ErrorResponse{
			Status:  types.StatusError,
			Message: "Upload exceeds the size limit",
			Error:   "VALIDATION",
		})
		return
	}
	types.SendError(c, err)
}
