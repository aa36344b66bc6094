package paprika

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/mrlokans/recipefinder/internal/entities"
)

// Exporter renders canonical recipes back into archive bytes.
type Exporter struct {
	overlays OverlayStore
	assets   AssetStore
}

// NewExporter creates an exporter bound to the given collaborators.
func NewExporter(overlays OverlayStore, assets AssetStore) *Exporter {
	return &Exporter{
		overlays: overlays,
		assets:   assets,
	}
}

// Export packages the recipes into a .paprikarecipes container: one
// stored ZIP entry per recipe, each holding the gzipped JSON record.
// Entry bodies are already gzipped, so the ZIP layer does not compress
// them again.
//
// Per-recipe asset problems degrade to exporting the recipe without its
// image. Export applies no dedup: two recipes sanitizing to the same
// entry name collapse last-write-wins, callers are expected to have
// deduplicated already.
func (exp *Exporter) Export(recipes []*entities.Recipe) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for _, recipe := range recipes {
		entry, err := exp.encodeRecipe(recipe)
		if err != nil {
			return nil, fmt.Errorf("encode recipe %q: %w", recipe.Name, err)
		}

		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   SafeName(recipe.Name, recipe.ID) + RecipeSuffix,
			Method: zip.Store,
		})
		if err != nil {
			return nil, fmt.Errorf("create archive entry for %q: %w", recipe.Name, err)
		}
		if _, err := w.Write(entry); err != nil {
			return nil, fmt.Errorf("write archive entry for %q: %w", recipe.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeRecipe serializes one recipe into its gzipped JSON entry body.
func (exp *Exporter) encodeRecipe(recipe *entities.Recipe) ([]byte, error) {
	projection, err := exp.projection(recipe)
	if err != nil {
		return nil, err
	}

	hash, err := ContentHash(projection)
	if err != nil {
		return nil, err
	}
	projection["hash"] = hash

	data, err := json.Marshal(projection)
	if err != nil {
		return nil, fmt.Errorf("serialize record: %w", err)
	}

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	if _, err := gw.Write(data); err != nil {
		return nil, fmt.Errorf("compress record: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("compress record: %w", err)
	}
	return gz.Bytes(), nil
}

// projection builds the wire-schema field map for one recipe. Absent
// optional fields become empty strings, flags default to false, the
// rating to 0. This map is the single source of truth for both the
// serialized entry and the content hash.
func (exp *Exporter) projection(recipe *entities.Recipe) (map[string]any, error) {
	rating := 0
	onFavorites := false
	if saved, err := exp.overlays.GetOverlay(recipe.ID); err != nil {
		log.Printf("Failed to load rating for %q: %v", recipe.Name, err)
	} else if saved != nil {
		onFavorites = true
		if saved.Rating != nil {
			rating = *saved.Rating
		}
	}

	photo := ""
	photoHash := ""
	var photoData any // null when no image is attached
	if recipe.ImageURL != "" {
		img, err := exp.assets.Get(recipe.ImageURL)
		if err != nil || len(img) == 0 {
			log.Printf("Image unavailable for %q, exporting without it: %v", recipe.Name, err)
		} else {
			photoData = base64.StdEncoding.EncodeToString(img)
			sum := sha256.Sum256(img)
			photoHash = hex.EncodeToString(sum[:])
			photo = recipe.ID + ".jpg"
		}
	}

	created := recipe.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	return map[string]any{
		"uid":              recipe.ID,
		"name":             recipe.Name,
		"ingredients":      recipe.Ingredients,
		"directions":       recipe.Directions,
		"description":      recipe.Description,
		"notes":            recipe.Notes,
		"source":           recipe.Source,
		"source_url":       "",
		"prep_time":        recipe.PrepTime,
		"cook_time":        recipe.CookTime,
		"total_time":       recipe.TotalTime,
		"servings":         recipe.Servings,
		"categories":       ParseCategories(recipe.Categories),
		"nutritional_info": recipe.NutritionalInfo,
		"image_url":        recipe.ImageURL,
		"difficulty":       recipe.Difficulty,
		"rating":           rating,
		"on_favorites":     onFavorites,
		"in_trash":         false,
		"is_pinned":        false,
		"scale":            "",
		"photo":            photo,
		"photo_hash":       photoHash,
		"photo_data":       photoData,
		"photo_large":      "",
		"photo_url":        "",
		"created":          created.Format(createdLayout),
		"hash":             "",
	}, nil
}
