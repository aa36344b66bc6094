// Package paprika reads and writes the Paprika recipe archive format:
// a ZIP container holding one gzip-compressed JSON object per recipe.
//
// The format is only loosely standardized across producers. Some export
// tools skip the per-entry gzip layer, send categories as a bare string
// instead of an array, or encode ratings as floats, so the importer
// reads defensively while the exporter always emits the strict shape.
package paprika

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/mrlokans/recipefinder/internal/entities"
)

const (
	// RecipeSuffix is the per-entry filename suffix inside an archive.
	RecipeSuffix = ".paprikarecipe"

	// ArchiveSuffix is the filename suffix of the outer container.
	ArchiveSuffix = ".paprikarecipes"

	// createdLayout is the timestamp format Paprika uses in the
	// `created` field.
	createdLayout = "2006-01-02 15:04:05"

	// maxEntryNameLen caps entry filenames derived from recipe names.
	maxEntryNameLen = 80
)

// ErrCorruptArchive indicates the container itself could not be read:
// either the ZIP failed to open or an entry body is neither valid gzip
// nor valid raw JSON. It aborts the whole import.
var ErrCorruptArchive = errors.New("corrupt paprika archive")

// RecipeStore is the subset of the recipe repository the codec needs.
type RecipeStore interface {
	FindByID(id string) (*entities.Recipe, error)
	FindByName(name string) (*entities.Recipe, error)
	Save(recipe *entities.Recipe) error
}

// OverlayStore persists and fetches per-recipe rating overlays.
type OverlayStore interface {
	GetOverlay(recipeID string) (*entities.SavedRecipe, error)
	Save(saved *entities.SavedRecipe) error
}

// AssetStore stores recipe images. Put returns the stable reference
// recorded on the recipe; Get resolves such a reference back to bytes.
type AssetStore interface {
	Put(recipeID string, data []byte, preferredExt string) (string, error)
	Get(ref string) ([]byte, error)
}

// ImportResult tallies one import call. Entries dropped for a missing
// name are counted in neither field.
type ImportResult struct {
	Imported int
	Skipped  int
	Recipes  []*entities.Recipe
}

// SafeName converts a recipe name into an archive entry name: path
// separators replaced, length capped, identity as fallback for unnamed
// records.
func SafeName(name, id string) string {
	if name == "" {
		return id
	}
	safe := strings.ReplaceAll(name, "/", "-")
	safe = strings.ReplaceAll(safe, "\\", "-")
	if runes := []rune(safe); len(runes) > maxEntryNameLen {
		safe = string(runes[:maxEntryNameLen])
	}
	return safe
}

// ParseCategories is the inverse of the normalizer's canonical form:
// it turns the stored categories string back into a list. Strings that
// do not parse as a JSON array are kept whole as a single category.
func ParseCategories(s string) []string {
	if s == "" {
		return []string{}
	}
	var categories []string
	if err := json.Unmarshal([]byte(s), &categories); err != nil {
		return []string{s}
	}
	if categories == nil {
		return []string{}
	}
	return categories
}
