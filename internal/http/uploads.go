package http

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recipefinder/internal/uploads"
)

// UploadsController serves stored recipe images.
type UploadsController struct {
	store *uploads.Store
}

func NewUploadsController(store *uploads.Store) *UploadsController {
	return &UploadsController{store: store}
}

// Serve returns the image file for a stored reference name.
func (u *UploadsController) Serve(c *gin.Context) {
	path := u.store.FilePath(c.Param("name"))
	if _, err := os.Stat(path); err != nil {
		respondNotFound(c, "image")
		return
	}
	c.File(path)
}
