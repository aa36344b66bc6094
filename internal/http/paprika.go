package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recipefinder/internal/entities"
	"github.com/mrlokans/recipefinder/internal/paprika"
	"github.com/mrlokans/recipefinder/internal/services"
)

// maxArchiveSize caps uploaded archive files (50 MB).
const maxArchiveSize = 50 * 1024 * 1024

// PaprikaController handles Paprika archive import and export.
type PaprikaController struct {
	importer *paprika.Importer
	exporter *paprika.Exporter
	recipes  services.RecipeRepository
}

func NewPaprikaController(importer *paprika.Importer, exporter *paprika.Exporter, recipes services.RecipeRepository) *PaprikaController {
	return &PaprikaController{
		importer: importer,
		exporter: exporter,
		recipes:  recipes,
	}
}

// Import ingests an uploaded .paprikarecipes file.
func (p *PaprikaController) Import(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		respondBadRequest(c, "file not provided")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(header.Filename, paprika.ArchiveSuffix) {
		respondBadRequest(c, "file must be a "+paprika.ArchiveSuffix+" file")
		return
	}
	if header.Size > maxArchiveSize {
		respondBadRequest(c, fmt.Sprintf("file too large (max %d MB)", maxArchiveSize/(1024*1024)))
		return
	}

	data, err := io.ReadAll(io.LimitReader(file, maxArchiveSize+1))
	if err != nil {
		respondInternalError(c, "failed to read uploaded file", err)
		return
	}
	if len(data) > maxArchiveSize {
		respondBadRequest(c, fmt.Sprintf("file too large (max %d MB)", maxArchiveSize/(1024*1024)))
		return
	}

	result, err := p.importer.Import(data)
	if err != nil {
		if errors.Is(err, paprika.ErrCorruptArchive) {
			respondBadRequest(c, fmt.Sprintf("failed to import: %v", err))
			return
		}
		respondInternalError(c, "failed to import archive", err)
		return
	}

	c.JSON(http.StatusOK, services.ImportResult{
		Imported: result.Imported,
		Skipped:  result.Skipped,
		Message:  fmt.Sprintf("Imported %d recipes, skipped %d duplicates", result.Imported, result.Skipped),
	})
}

// ExportSaved downloads the saved recipe set as a Paprika archive.
func (p *PaprikaController) ExportSaved(c *gin.Context) {
	recipes, err := p.recipes.ListSaved()
	if err != nil {
		respondInternalError(c, "failed to list saved recipes", err)
		return
	}
	if len(recipes) == 0 {
		respondNotFound(c, "saved recipes")
		return
	}

	data, err := p.exporter.Export(recipes)
	if err != nil {
		respondInternalError(c, "failed to export recipes", err)
		return
	}

	attachment(c, "RecipeFinder-Saved"+paprika.ArchiveSuffix)
	c.Data(http.StatusOK, "application/zip", data)
}

// ExportAll downloads every recipe as a Paprika archive.
func (p *PaprikaController) ExportAll(c *gin.Context) {
	recipes, err := p.recipes.ListAll()
	if err != nil {
		respondInternalError(c, "failed to list recipes", err)
		return
	}
	if len(recipes) == 0 {
		respondNotFound(c, "recipes")
		return
	}

	data, err := p.exporter.Export(recipes)
	if err != nil {
		respondInternalError(c, "failed to export recipes", err)
		return
	}

	attachment(c, "RecipeFinder-All"+paprika.ArchiveSuffix)
	c.Data(http.StatusOK, "application/zip", data)
}

// ExportOne downloads a single recipe as a Paprika archive.
func (p *PaprikaController) ExportOne(c *gin.Context) {
	recipe, err := p.recipes.FindByID(c.Param("id"))
	if err != nil {
		respondInternalError(c, "failed to load recipe", err)
		return
	}
	if recipe == nil {
		respondNotFound(c, "recipe")
		return
	}

	data, err := p.exporter.Export([]*entities.Recipe{recipe})
	if err != nil {
		respondInternalError(c, "failed to export recipe", err)
		return
	}

	attachment(c, paprika.SafeName(recipe.Name, recipe.ID)+paprika.ArchiveSuffix)
	c.Data(http.StatusOK, "application/zip", data)
}
