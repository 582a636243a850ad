package completions

import (
	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// RegisterRoutes registers the job completion callback
func RegisterRoutes(router *gin.RouterGroup, deps *types.Dependencies) {
	// POST /rest/podcast-episodes/completions - Apply a download job's completion
	router.POST("/completions", Post(deps))
}
