package podcasts

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// RegisterRoutes registers podcast routes
// Rate limiting is applied at the route registration level
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies, importMiddleware gin.HandlerFunc) {
	// GET /api/v1/podcasts - List podcasts
	router.GET("", List(deps))

	// POST /api/v1/podcasts - Subscribe to a feed
	router.POST("", Subscribe(deps))

	// GET /api/v1/podcasts/:id - Get podcast details
	router.GET("/:id", GetPodcast(deps))

	// GET /api/v1/podcasts/:id/episodes - List episodes with ingestion status
	router.GET("/:id/episodes", GetEpisodes(deps))

	// POST /api/v1/podcasts/:id/episodes - Import feed entries
	router.POST("/:id/episodes", importMiddleware, ImportEpisodes(deps))
}
