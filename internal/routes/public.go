package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type PublicOptions struct {
	// ServeUploads exposes local storage under UploadsURL.
	ServeUploads bool
	UploadsURL   string
	UploadsPath  string
	Swagger      gin.HandlerFunc
}

// SetupPublicRoutes mounts health, API docs and local uploads.
func SetupPublicRoutes(r *gin.Engine, opts PublicOptions) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if opts.Swagger != nil {
		r.GET("/swagger/*any", opts.Swagger)
	}

	if opts.ServeUploads && opts.UploadsURL != "" {
		r.Static(opts.UploadsURL, opts.UploadsPath)
	}
}
