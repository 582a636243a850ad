package version

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/killallgit/stationcast/api/types"
)

// Get handles version requests
// @Summary      Service version
// @Tags         health
// @Produce      json
// @Success      200 {object} map[string]string
// @Router       / [get]
func Get(deps *types.Dependencies) gin.HandlerFunc {
	version := "dev"
	if deps != nil && deps.Version != "" {
		version = deps.Version
	}

	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "stationcast",
			"version":     version,
			"description": "Podcast ingestion and publishing for the station",
			"status":      "running",
		})
	}
}
