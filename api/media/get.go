package media

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// List returns a page of library files, newest first
// @Summary      List media
// @Tags         media
// @Produce      json
// @Security     BasicAuth
// @Param        offset query int false "Rows to skip" minimum(0) default(0)
// @Param        limit  query int false "Page size" minimum(0) default(50)
// @Success      200 {object} types.FilesResponse
// @Failure      401 {object} types.ErrorResponse "Invalid API key"
// @Router       /rest/media [get]
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

		files, total, err := deps.Media.ListFiles(c.Request.Context(), offset, limit)
		if err != nil {
			types.SendError(c, err)
			return
		}

		out := make([]types.File, 0, len(files))
		for i := range files {
			out = append(out, *types.FromFile(&files[i]))
		}
		types.SendSuccess(c, types.FilesResponse{
			BaseResponse: types.BaseResponse{Status: types.StatusOK, Message: "Files retrieved successfully"},
			Files:        out,
			Count:        len(out),
			Total:        total,
			Offset:       offset,
		})
	}
}

// Get returns a file's metadata
// @Summary      Get media metadata
// @Tags         media
// @Produce      json
// @Security     BasicAuth
// @Param        id path int true "File ID" minimum(1)
// @Success      200 {object} types.File
// @Failure      401 {object} types.ErrorResponse "Invalid API key"
// @Failure      404 {object} types.ErrorResponse "File not found"
// @Router       /rest/media/{id} [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := types.ParseUintParam(c, "id")
		if !ok {
			return
		}

		file, err := deps.Media.GetFile(c.Request.Context(), id)
		if err != nil {
			types.SendError(c, err)
			return
		}
		types.SendSuccess(c, types.FromFile(file))
	}
}
