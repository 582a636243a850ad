package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/killallgit/stationcast/api/completions"
	"github.com/killallgit/stationcast/api/episodes"
	"github.com/killallgit/stationcast/api/health"
	"github.com/killallgit/stationcast/api/media"
	"github.com/killallgit/stationcast/api/podcasts"
	"github.com/killallgit/stationcast/api/types"
	"github.com/killallgit/stationcast/api/version"
	_ "github.com/killallgit/stationcast/docs/swagger"
)

// defaultUploadBytes bounds /rest/media uploads when no limit is configured
const defaultUploadBytes = 512 << 20

// RegisterRoutes registers all API routes
func RegisterRoutes(engine *gin.Engine, deps *types.Dependencies, rateLimiters *sync.Map, cleanupStop chan struct{}, cleanupInitialized *sync.Once) {
	// Register public routes (no rate limiting)
	health.RegisterRoutes(engine, deps)
	version.RegisterRoutes(engine, deps)

	// Register Swagger documentation route
	engine.GET("/docs", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/docs/index.html")
	})
	docsGroup := engine.Group("/docs")
	docsGroup.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Setup 404 handler
	engine.NoRoute(NotFoundHandler())

	// API v1 routes
	v1 := engine.Group("/api/v1")
	v1.Use(RequestSizeLimit())

	// Podcast routes with general rate limiting (10 req/s, burst of 20).
	// Imports fan out into downloads, so they get a tighter limit.
	podcastGroup := v1.Group("/podcasts")
	podcastGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	importMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 1, 5)
	podcasts.RegisterRoutes(podcastGroup, deps, importMiddleware)

	episodeGroup := v1.Group("/episodes")
	episodeGroup.Use(PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 10, 20))
	episodes.RegisterRoutes(episodeGroup, deps)

	// Station endpoints used by download workers and the station itself
	rest := engine.Group("/rest")
	auth := APIKeyAuth(deps.APIKey)

	uploadBytes := deps.MaxUploadBytes
	if uploadBytes <= 0 {
		uploadBytes = defaultUploadBytes
	}
	// Streaming needs room for seeking (20 req/s, burst of 30)
	downloadMiddleware := PerClientRateLimit(rateLimiters, cleanupStop, cleanupInitialized, 20, 30)
	media.RegisterRoutes(rest.Group("/media"), deps, auth, RequestSizeLimitWithSize(uploadBytes), downloadMiddleware)

	completionGroup := rest.Group("/podcast-episodes")
	completionGroup.Use(auth, RequestSizeLimit())
	completions.RegisterRoutes(completionGroup, deps)
}

// NotFoundHandler handles 404 errors
func NotFoundHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  types.StatusError,
			"message": "The requested endpoint was not found",
			"path":    c.Request.URL.Path,
		})
	}
}
