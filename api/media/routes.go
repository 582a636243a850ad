package media

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// RegisterRoutes registers the station media library routes. Everything but
// the download requires the station API key.
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, auth, uploadLimit, downloadMiddleware gin.HandlerFunc) {
	// GET /rest/media/:id/download - Stream the file contents (public, referenced by the station feed)
	router.GET("/:id/download", downloadMiddleware, Download(deps))

	// GET /rest/media - List library files
	router.GET("", auth, List(deps))

	// POST /rest/media - Upload a file (multipart field "file")
	router.POST("", auth, uploadLimit, Upload(deps))

	// GET /rest/media/:id - File metadata
	router.GET("/:id", auth, Get(deps))

	// DELETE /rest/media/:id - Remove a file and its station episode
	router.DELETE("/:id", auth, Delete(deps))

	// PUT /rest/media/:id/publish - Add the file to the station feed
	router.PUT("/:id/publish", auth, Publish(deps))

	// DELETE /rest/media/:id/publish - Remove the file from the station feed
	router.DELETE("/:id/publish", auth, Unpublish(deps))
}
