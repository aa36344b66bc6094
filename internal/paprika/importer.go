package paprika

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mrlokans/recipefinder/internal/entities"
	"github.com/mrlokans/recipefinder/internal/normalizer"
)

// Importer ingests a Paprika archive into the recipe repository.
type Importer struct {
	recipes  RecipeStore
	overlays OverlayStore
	assets   AssetStore
}

// NewImporter creates an importer bound to the given collaborators.
func NewImporter(recipes RecipeStore, overlays OverlayStore, assets AssetStore) *Importer {
	return &Importer{
		recipes:  recipes,
		overlays: overlays,
		assets:   assets,
	}
}

// Import walks every recipe entry in the archive, deduplicates against
// the repository, and persists the rest.
//
// Duplicate resolution is two-tiered: by uid when the entry carries
// one, by exact name otherwise. Entries without a usable name are
// dropped silently. A payload that cannot be parsed as JSON aborts the
// whole import with ErrCorruptArchive; recipes persisted before that
// point stay persisted, the caller decides what to do with them.
func (imp *Importer) Import(data []byte) (ImportResult, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrCorruptArchive, err)
	}

	result := ImportResult{}

	for _, entry := range zr.File {
		if !strings.HasSuffix(entry.Name, RecipeSuffix) {
			continue
		}

		payload, err := readEntry(entry)
		if err != nil {
			return result, fmt.Errorf("%w: entry %q: %v", ErrCorruptArchive, entry.Name, err)
		}

		record, err := decodeRecord(payload)
		if err != nil {
			return result, fmt.Errorf("%w: entry %q: %v", ErrCorruptArchive, entry.Name, err)
		}

		recipe, skipped, err := imp.importRecord(record)
		if err != nil {
			return result, err
		}
		if skipped {
			result.Skipped++
			continue
		}
		if recipe == nil {
			// Dropped for a missing name. Counted in neither tally.
			log.Printf("Skipping paprika entry %q: no recipe name", entry.Name)
			continue
		}

		result.Imported++
		result.Recipes = append(result.Recipes, recipe)
	}

	return result, nil
}

// readEntry returns the decompressed body of an archive entry. Some
// producers skip the per-entry gzip layer, so a body that is not gzip
// is returned as-is.
func readEntry(entry *zip.File) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	gz, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return raw, nil
	}
	defer gz.Close()

	decompressed, err := io.ReadAll(gz)
	if err != nil {
		return raw, nil
	}
	return decompressed, nil
}

// decodeRecord parses one entry payload into a loose field map. Numbers
// are kept as json.Number so integer ratings survive producers that
// write them as floats.
func decodeRecord(payload []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()

	var record map[string]any
	if err := dec.Decode(&record); err != nil {
		return nil, err
	}
	return record, nil
}

// importRecord converts one decoded entry into a persisted recipe.
// Returns (nil, true, nil) for duplicates and (nil, false, nil) for
// entries dropped because they have no name.
func (imp *Importer) importRecord(record map[string]any) (*entities.Recipe, bool, error) {
	name := strings.TrimSpace(stringField(record, "name"))
	if name == "" {
		return nil, false, nil
	}

	uid := stringField(record, "uid")
	if uid != "" {
		existing, err := imp.recipes.FindByID(uid)
		if err != nil {
			return nil, false, fmt.Errorf("duplicate check for uid %s: %w", uid, err)
		}
		if existing != nil {
			return nil, true, nil
		}
	} else {
		existing, err := imp.recipes.FindByName(name)
		if err != nil {
			return nil, false, fmt.Errorf("duplicate check for name %q: %w", name, err)
		}
		if existing != nil {
			return nil, true, nil
		}
		uid = uuid.NewString()
	}

	recipe := &entities.Recipe{
		ID:              uid,
		Name:            name,
		Ingredients:     stringField(record, "ingredients"),
		Directions:      stringField(record, "directions"),
		Description:     stringField(record, "description"),
		Notes:           stringField(record, "notes"),
		Source:          assembleSource(record),
		PrepTime:        stringField(record, "prep_time"),
		CookTime:        stringField(record, "cook_time"),
		TotalTime:       stringField(record, "total_time"),
		Servings:        normalizer.Servings(record["servings"]),
		Categories:      normalizer.Categories(record["categories"]),
		NutritionalInfo: stringField(record, "nutritional_info"),
		Difficulty:      stringField(record, "difficulty"),
		Cuisine:         stringField(record, "cuisine"),
		AIGenerated:     false,
	}

	if created := stringField(record, "created"); created != "" {
		if t, err := time.Parse(createdLayout, created); err == nil {
			recipe.CreatedAt = t
		}
	}

	// Image corruption is non-fatal: the recipe still imports, only
	// the image reference stays unset.
	if photoData := stringField(record, "photo_data"); photoData != "" {
		img, err := base64.StdEncoding.DecodeString(photoData)
		switch {
		case err != nil:
			log.Printf("Skipping embedded photo for %q: %v", name, err)
		case len(img) > 0:
			ref, err := imp.assets.Put(recipe.ID, img, ".jpg")
			if err != nil {
				log.Printf("Failed to store photo for %q: %v", name, err)
			} else {
				recipe.ImageURL = ref
			}
		}
	}

	if err := imp.recipes.Save(recipe); err != nil {
		return nil, false, fmt.Errorf("save recipe %q: %w", name, err)
	}

	rating := intField(record, "rating")
	onFavorites, _ := record["on_favorites"].(bool)
	if rating > 0 || onFavorites {
		saved := &entities.SavedRecipe{RecipeID: recipe.ID}
		if rating > 0 {
			saved.Rating = &rating
		}
		if err := imp.overlays.Save(saved); err != nil {
			return nil, false, fmt.Errorf("save rating for %q: %w", name, err)
		}
	}

	return recipe, false, nil
}

// assembleSource joins a declared source string and source URL into one
// attribution string, skipping the URL when it is already part of the
// source text.
func assembleSource(record map[string]any) string {
	source := stringField(record, "source")
	sourceURL := stringField(record, "source_url")

	if sourceURL != "" && !strings.Contains(source, sourceURL) {
		if source != "" {
			return fmt.Sprintf("%s (%s)", source, sourceURL)
		}
		return sourceURL
	}
	return source
}

func stringField(record map[string]any, key string) string {
	s, _ := record[key].(string)
	return s
}

func intField(record map[string]any, key string) int {
	switch v := record[key].(type) {
	case json.Number:
		if f, err := v.Float64(); err == nil {
			return int(f)
		}
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			return n
		}
	}
	return 0
}
