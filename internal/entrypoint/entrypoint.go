package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recipefinder/internal/config"
	"github.com/mrlokans/recipefinder/internal/database"
	"github.com/mrlokans/recipefinder/internal/database/recipes"
	"github.com/mrlokans/recipefinder/internal/database/saved"
	"github.com/mrlokans/recipefinder/internal/exporters"
	http_controllers "github.com/mrlokans/recipefinder/internal/http"
	"github.com/mrlokans/recipefinder/internal/paprika"
	"github.com/mrlokans/recipefinder/internal/services"
	"github.com/mrlokans/recipefinder/internal/uploads"
)

// Serve runs the HTTP server until SIGINT/SIGTERM, then shuts it down
// gracefully within the configured timeout.
func Serve(router *gin.Engine, cfg *config.Config) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting server at %s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

// Run wires the application together and serves it.
func Run(cfg *config.Config, version string) {
	log.Printf("Starting RecipeFinder v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	uploadStore, err := uploads.NewStore(cfg.Uploads.Dir)
	if err != nil {
		log.Fatalf("Failed to initialize uploads store: %v", err)
	}

	recipeRepo := recipes.NewRepository(db.DB)
	savedRepo := saved.NewRepository(db.DB)

	importer := paprika.NewImporter(recipeRepo, savedRepo, uploadStore)
	exporter := paprika.NewExporter(savedRepo, uploadStore)
	markdownArchive := exporters.NewArchiveExporter(savedRepo, uploadStore)

	// No recipe extractor is configured here; the text and URL import
	// routes report that until a model client is plugged in.
	importSvc := services.NewImportService(recipeRepo, uploadStore, nil)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Health:   http_controllers.NewHealthController(db, cfg.Uploads.Dir, version),
		Paprika:  http_controllers.NewPaprikaController(importer, exporter, recipeRepo),
		Markdown: http_controllers.NewMarkdownController(markdownArchive, savedRepo, recipeRepo),
		Import:   http_controllers.NewImportController(importSvc),
		Uploads:  http_controllers.NewUploadsController(uploadStore),
	})

	Serve(router, cfg)
}
