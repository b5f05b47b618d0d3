package routes

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	config "github.com/phillip/charity-admin-go/config"
	controllers "github.com/phillip/charity-admin-go/controllers"
	middleware "github.com/phillip/charity-admin-go/middleware"
)

func SetupRoutes(r *gin.Engine, cfg *config.Config, resources []controllers.Routes, logger *zap.Logger) {
	r.Use(middleware.RequestLogger(logger), middleware.Recovery(logger))
	r.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	// public
	r.GET("/healthz", controllers.Health(resources))

	// content; writes are guarded when ADMIN_JWT_SECRET is set
	guard := middleware.AdminGuard(cfg.AdminJWTSecret)

	api := r.Group("/api")
	for _, res := range resources {
		res.Register(api, guard)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "route not found"})
	})
}

// corsConfig allows the listed origins; none or "*" allows any origin
// without credentials.
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "If-None-Match"},
		ExposeHeaders: []string{"ETag", "Last-Modified", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
		return c
	}
	c.AllowOrigins = origins
	c.AllowCredentials = true
	return c
}
