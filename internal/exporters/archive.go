package exporters

import (
	"archive/zip"
	"bytes"
	"fmt"
	"log"

	"github.com/mrlokans/recipefinder/internal/entities"
	"github.com/mrlokans/recipefinder/internal/paprika"
)

// OverlayStore fetches the rating overlay for a recipe, nil when the
// recipe is not in the saved set.
type OverlayStore interface {
	GetOverlay(recipeID string) (*entities.SavedRecipe, error)
}

// AssetStore resolves a stored image reference to its bytes.
type AssetStore interface {
	Get(ref string) ([]byte, error)
}

// ArchiveExporter writes a ZIP of markdown documents, one per recipe,
// with each recipe's image under img/ next to it.
type ArchiveExporter struct {
	overlays OverlayStore
	assets   AssetStore
}

// NewArchiveExporter creates a markdown batch exporter.
func NewArchiveExporter(overlays OverlayStore, assets AssetStore) *ArchiveExporter {
	return &ArchiveExporter{
		overlays: overlays,
		assets:   assets,
	}
}

// Export renders every recipe to `<safe-name>.md` plus, when an image
// is attached and readable, a companion `img/<safe-name>.jpg`. Missing
// or unreadable images only drop the image entry, never the document.
func (e *ArchiveExporter) Export(recipes []*entities.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, recipe := range recipes {
		safeName := paprika.SafeName(recipe.Name, recipe.ID)

		saved, err := e.overlays.GetOverlay(recipe.ID)
		if err != nil {
			log.Printf("Failed to load rating for %q: %v", recipe.Name, err)
			saved = nil
		}

		doc := RenderMarkdown(recipe, saved, true)
		w, err := zw.Create(safeName + ".md")
		if err != nil {
			return nil, fmt.Errorf("create markdown entry for %q: %w", recipe.Name, err)
		}
		if _, err := w.Write([]byte(doc)); err != nil {
			return nil, fmt.Errorf("write markdown entry for %q: %w", recipe.Name, err)
		}

		if recipe.ImageURL == "" {
			continue
		}
		img, err := e.assets.Get(recipe.ImageURL)
		if err != nil || len(img) == 0 {
			log.Printf("Image unavailable for %q, exporting without it: %v", recipe.Name, err)
			continue
		}
		iw, err := zw.Create("img/" + safeName + ".jpg")
		if err != nil {
			return nil, fmt.Errorf("create image entry for %q: %w", recipe.Name, err)
		}
		if _, err := iw.Write(img); err != nil {
			return nil, fmt.Errorf("write image entry for %q: %w", recipe.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}
