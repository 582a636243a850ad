package episodes

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// RegisterRoutes registers episode routes
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// GET /api/v1/episodes/:id - Get episode details
	router.GET("/:id", GetByID(deps))

	// DELETE /api/v1/episodes/:id - Remove an episode
	router.DELETE("/:id", Delete(deps))
}
