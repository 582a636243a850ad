package health

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// Get handles health check requests
// @Summary      Health check
// @Description  Reports database connectivity and the size of the in-process worker pool.
// @Tags         health
// @Produce      json
// @Success      200 {object} types.HealthResponse
// @Failure      503 {object} types.HealthResponse "Database unreachable"
// @Router       /health [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		services := map[string]interface{}{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		}

		status, code := types.StatusOK, http.StatusOK
		db := getDatabaseStatus(deps)
		if db["status"] == "unhealthy" {
			status, code = types.StatusError, http.StatusServiceUnavailable
		}
		services["database"] = db

		if deps != nil && deps.WorkerPool != nil {
			services["workers"] = gin.H{"count": deps.WorkerPool.Size()}
		}

		version := ""
		if deps != nil {
			version = deps.Version
		}

		c.JSON(code, types.HealthResponse{
			BaseResponse: types.BaseResponse{Status: status, Message: "stationcast"},
			Version:      version,
			Services:     services,
		})
	}
}

// getDatabaseStatus returns the database connection status
func getDatabaseStatus(deps *types.Dependencies) gin.H {
	if deps == nil || deps.DB == nil || deps.DB.DB == nil {
		return gin.H{"status": "not configured"}
	}

	if err := deps.DB.HealthCheck(); err != nil {
		return gin.H{"status": "unhealthy", "error": err.Error()}
	}

	return gin.H{"status": "healthy"}
}
