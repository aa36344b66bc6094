package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recipefinder/internal/exporters"
	"github.com/mrlokans/recipefinder/internal/paprika"
	"github.com/mrlokans/recipefinder/internal/services"
)

// MarkdownController handles markdown exports, both the ZIP batch and
// single-recipe documents.
type MarkdownController struct {
	archive  *exporters.ArchiveExporter
	overlays exporters.OverlayStore
	recipes  services.RecipeRepository
}

func NewMarkdownController(archive *exporters.ArchiveExporter, overlays exporters.OverlayStore, recipes services.RecipeRepository) *MarkdownController {
	return &MarkdownController{
		archive:  archive,
		overlays: overlays,
		recipes:  recipes,
	}
}

// ExportSaved downloads the saved recipe set as a markdown ZIP.
func (m *MarkdownController) ExportSaved(c *gin.Context) {
	recipes, err := m.recipes.ListSaved()
	if err != nil {
		respondInternalError(c, "failed to list saved recipes", err)
		return
	}
	if len(recipes) == 0 {
		respondNotFound(c, "saved recipes")
		return
	}

	data, err := m.archive.Export(recipes)
	if err != nil {
		respondInternalError(c, "failed to export recipes", err)
		return
	}

	attachment(c, "RecipeFinder-Saved.zip")
	c.Data(http.StatusOK, "application/zip", data)
}

// ExportAll downloads every recipe as a markdown ZIP.
func (m *MarkdownController) ExportAll(c *gin.Context) {
	recipes, err := m.recipes.ListAll()
	if err != nil {
		respondInternalError(c, "failed to list recipes", err)
		return
	}
	if len(recipes) == 0 {
		respondNotFound(c, "recipes")
		return
	}

	data, err := m.archive.Export(recipes)
	if err != nil {
		respondInternalError(c, "failed to export recipes", err)
		return
	}

	attachment(c, "RecipeFinder-All.zip")
	c.Data(http.StatusOK, "application/zip", data)
}

// ExportOne downloads a single recipe as a markdown document. No image
// tag is included since the document ships without its img/ folder.
func (m *MarkdownController) ExportOne(c *gin.Context) {
	recipe, err := m.recipes.FindByID(c.Param("id"))
	if err != nil {
		respondInternalError(c, "failed to load recipe", err)
		return
	}
	if recipe == nil {
		respondNotFound(c, "recipe")
		return
	}

	saved, err := m.overlays.GetOverlay(recipe.ID)
	if err != nil {
		respondInternalError(c, "failed to load rating", err)
		return
	}

	doc := exporters.RenderMarkdown(recipe, saved, false)

	attachment(c, paprika.SafeName(recipe.Name, recipe.ID)+".md")
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(doc))
}
