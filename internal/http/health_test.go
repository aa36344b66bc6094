package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recipefinder/internal/database"
)

func setupHealthTestDB(t *testing.T) (*database.Database, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dbPath := "./test_health_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return db, cleanup
}

func healthStatus(t *testing.T, controller *HealthController) (int, HealthResponse) {
	t.Helper()

	router := gin.New()
	router.GET("/health", controller.Status)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var response HealthResponse
	err := json.Unmarshal(w.Body.Bytes(), &response)
	require.NoError(t, err)
	return w.Code, response
}

func TestHealthController_Status(t *testing.T) {
	t.Run("returns healthy when both stores are available", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		controller := NewHealthController(db, t.TempDir(), "1.0.0")
		code, response := healthStatus(t, controller)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", response.Status)
		assert.Equal(t, "1.0.0", response.Version)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Equal(t, "ok", response.Checks["uploads"])
		assert.NotEmpty(t, response.Time)
	})

	t.Run("returns unhealthy when database is not configured", func(t *testing.T) {
		gin.SetMode(gin.TestMode)

		controller := NewHealthController(nil, t.TempDir(), "1.0.0")
		code, response := healthStatus(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Equal(t, "error: not configured", response.Checks["database"])
	})

	t.Run("returns unhealthy when database connection is closed", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		// Close the database to simulate connection failure
		db.Close()

		controller := NewHealthController(db, t.TempDir(), "1.0.0")
		code, response := healthStatus(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Contains(t, response.Checks["database"], "error")
		assert.Equal(t, "ok", response.Checks["uploads"])
	})

	t.Run("returns unhealthy when uploads dir is missing", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		missing := filepath.Join(t.TempDir(), "gone")
		controller := NewHealthController(db, missing, "1.0.0")
		code, response := healthStatus(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", response.Status)
		assert.Equal(t, "ok", response.Checks["database"])
		assert.Contains(t, response.Checks["uploads"], "error")
	})

	t.Run("reports a file at the uploads path", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		path := filepath.Join(t.TempDir(), "uploads")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

		controller := NewHealthController(db, path, "1.0.0")
		code, response := healthStatus(t, controller)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Contains(t, response.Checks["uploads"], "not a directory")
	})

	t.Run("includes version in response", func(t *testing.T) {
		db, cleanup := setupHealthTestDB(t)
		defer cleanup()

		controller := NewHealthController(db, t.TempDir(), "2.5.3")
		_, response := healthStatus(t, controller)

		assert.Equal(t, "2.5.3", response.Version)
	})
}
