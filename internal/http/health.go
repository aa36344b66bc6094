package http

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mrlokans/recipefinder/internal/database"
)

type HealthResponse struct {
	Status  string            `json:"status"`
	Time    string            `json:"time"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// HealthController reports on the two stores the service depends on:
// the recipe database and the uploads directory.
type HealthController struct {
	db         *database.Database
	uploadsDir string
	version    string
}

func NewHealthController(db *database.Database, uploadsDir, version string) *HealthController {
	return &HealthController{
		db:         db,
		uploadsDir: uploadsDir,
		version:    version,
	}
}

func (h *HealthController) Status(c *gin.Context) {
	checks := make(map[string]string)
	status := "healthy"

	checks["database"] = h.checkDatabase()
	checks["uploads"] = h.checkUploads()
	for _, result := range checks {
		if result != "ok" {
			status = "unhealthy"
		}
	}

	health := HealthResponse{
		Status:  status,
		Time:    time.Now().Format(time.RFC3339),
		Version: h.version,
		Checks:  checks,
	}

	statusCode := http.StatusOK
	if status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) checkDatabase() string {
	if h.db == nil {
		return "error: not configured"
	}
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return "error: " + err.Error()
	}
	if err := sqlDB.Ping(); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

func (h *HealthController) checkUploads() string {
	info, err := os.Stat(h.uploadsDir)
	if err != nil {
		return "error: " + err.Error()
	}
	if !info.IsDir() {
		return "error: " + h.uploadsDir + " is not a directory"
	}
	return "ok"
}
