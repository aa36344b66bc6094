package http

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recipefinder/internal/services"
)

// maxImportFileSize caps uploaded text files (5 MB).
const maxImportFileSize = 5 * 1024 * 1024

// ImportController handles free-text and URL recipe imports.
type ImportController struct {
	imports *services.ImportService
}

func NewImportController(imports *services.ImportService) *ImportController {
	return &ImportController{imports: imports}
}

type urlImportRequest struct {
	URL string `json:"url" binding:"required"`
}

// ImportURL imports recipes from a web page.
func (i *ImportController) ImportURL(c *gin.Context) {
	var req urlImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "url is required")
		return
	}

	result, err := i.imports.ImportURL(req.URL)
	if err != nil {
		if errors.Is(err, services.ErrPageUnavailable) {
			respondBadRequest(c, err.Error())
			return
		}
		respondInternalError(c, "failed to import from url", err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ImportFiles imports recipes from uploaded .txt and .md files. Files
// that cannot be processed are skipped and reported in the message.
func (i *ImportController) ImportFiles(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		respondBadRequest(c, "no files provided")
		return
	}
	files := form.File["files"]
	if len(files) == 0 {
		respondBadRequest(c, "no files provided")
		return
	}

	result := services.ImportResult{}
	var errs []string
	for _, header := range files {
		if !strings.HasSuffix(header.Filename, ".txt") && !strings.HasSuffix(header.Filename, ".md") {
			errs = append(errs, fmt.Sprintf("Skipped '%s': must be a .txt or .md file", header.Filename))
			continue
		}
		if header.Size > maxImportFileSize {
			errs = append(errs, fmt.Sprintf("Skipped '%s': file too large", header.Filename))
			continue
		}

		content, err := readUpload(header)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Error reading '%s': %v", header.Filename, err))
			continue
		}
		if !utf8.Valid(content) {
			errs = append(errs, fmt.Sprintf("Skipped '%s': not valid UTF-8 text", header.Filename))
			continue
		}

		fileResult, err := i.imports.ImportText(string(content), header.Filename)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Error processing '%s': %v", header.Filename, err))
			continue
		}
		result.Imported += fileResult.Imported
		result.Skipped += fileResult.Skipped
	}

	result.Message = fmt.Sprintf("Imported %d recipes, skipped %d duplicates", result.Imported, result.Skipped)
	if len(errs) > 0 {
		result.Message += ". Errors: " + strings.Join(errs, "; ")
	}

	c.JSON(http.StatusOK, result)
}

func readUpload(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return io.ReadAll(io.LimitReader(file, maxImportFileSize))
}
