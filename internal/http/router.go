package http

import (
	"github.com/gin-gonic/gin"
)

// RouterConfig carries the controllers the router wires up.
type RouterConfig struct {
	Health   *HealthController
	Paprika  *PaprikaController
	Markdown *MarkdownController
	Import   *ImportController
	Uploads  *UploadsController
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.GET("/health", cfg.Health.Status)

	api := router.Group("/api")
	{
		api.POST("/paprika/import", cfg.Paprika.Import)
		api.GET("/paprika/export", cfg.Paprika.ExportSaved)
		api.GET("/paprika/export-all", cfg.Paprika.ExportAll)
		api.GET("/paprika/export/:id", cfg.Paprika.ExportOne)

		api.GET("/markdown/export", cfg.Markdown.ExportSaved)
		api.GET("/markdown/export-all", cfg.Markdown.ExportAll)
		api.GET("/markdown/export/:id", cfg.Markdown.ExportOne)

		api.POST("/import/files", cfg.Import.ImportFiles)
		api.POST("/import/url", cfg.Import.ImportURL)

		api.GET("/uploads/:name", cfg.Uploads.Serve)
	}

	return router
}
