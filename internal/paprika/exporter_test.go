package paprika

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/recipefinder/internal/entities"
)

func testRecipe(name string) *entities.Recipe {
	return &entities.Recipe{
		ID:          "uid-" + name,
		Name:        name,
		Ingredients: "2 eggs\n1 cup flour",
		Directions:  "Mix.\nBake.",
		Description: "A breakfast classic",
		Source:      "Grandma's Cookbook",
		PrepTime:    "10 min",
		CookTime:    "15 min",
		Servings:    "4",
		Categories:  `["Breakfast"]`,
		CreatedAt:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

// decodeArchive gunzips and parses every recipe entry, keyed by entry
// name.
func decodeArchive(t *testing.T, data []byte) map[string]map[string]any {
	t.Helper()

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	records := make(map[string]map[string]any)
	for _, entry := range zr.File {
		rc, err := entry.Open()
		require.NoError(t, err)
		body, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()

		gz, err := gzip.NewReader(bytes.NewReader(body))
		require.NoError(t, err, "entry bodies must be gzipped")
		payload, err := io.ReadAll(gz)
		require.NoError(t, err)

		var record map[string]any
		require.NoError(t, json.Unmarshal(payload, &record))
		records[entry.Name] = record
	}
	return records
}

func TestExporter_Export(t *testing.T) {
	t.Run("WritesWireSchema", func(t *testing.T) {
		exp := NewExporter(newFakeOverlayStore(), newFakeAssetStore())

		data, err := exp.Export([]*entities.Recipe{testRecipe("Pancakes")})
		require.NoError(t, err)

		records := decodeArchive(t, data)
		record, ok := records["Pancakes"+RecipeSuffix]
		require.True(t, ok, "entry named from the display-safe recipe name")

		assert.Equal(t, "uid-Pancakes", record["uid"])
		assert.Equal(t, "Pancakes", record["name"])
		assert.Equal(t, []any{"Breakfast"}, record["categories"])
		assert.Equal(t, "2024-05-01 12:00:00", record["created"])
		assert.Equal(t, float64(0), record["rating"])
		assert.Equal(t, false, record["on_favorites"])
		assert.Equal(t, false, record["in_trash"])
		assert.Equal(t, "", record["scale"])
		assert.Nil(t, record["photo_data"])
		assert.NotEmpty(t, record["hash"])

		// Every wire key is present even when empty.
		for _, key := range []string{
			"uid", "name", "ingredients", "directions", "description", "notes",
			"source", "source_url", "prep_time", "cook_time", "total_time",
			"servings", "categories", "nutritional_info", "image_url",
			"difficulty", "rating", "on_favorites", "in_trash", "is_pinned",
			"scale", "photo", "photo_hash", "photo_data", "photo_large",
			"photo_url", "created", "hash",
		} {
			_, present := record[key]
			assert.True(t, present, "missing key %q", key)
		}
	})

	t.Run("HashMatchesRecomputation", func(t *testing.T) {
		exp := NewExporter(newFakeOverlayStore(), newFakeAssetStore())

		data, err := exp.Export([]*entities.Recipe{testRecipe("Pancakes")})
		require.NoError(t, err)

		record := decodeArchive(t, data)["Pancakes"+RecipeSuffix]
		emitted, _ := record["hash"].(string)
		require.NotEmpty(t, emitted)

		record["hash"] = ""
		recomputed, err := ContentHash(record)
		require.NoError(t, err)
		assert.Equal(t, emitted, recomputed)
	})

	t.Run("IncludesOverlayState", func(t *testing.T) {
		overlays := newFakeOverlayStore()
		rating := 5
		require.NoError(t, overlays.Save(&entities.SavedRecipe{RecipeID: "uid-Pancakes", Rating: &rating}))

		exp := NewExporter(overlays, newFakeAssetStore())
		data, err := exp.Export([]*entities.Recipe{testRecipe("Pancakes")})
		require.NoError(t, err)

		record := decodeArchive(t, data)["Pancakes"+RecipeSuffix]
		assert.Equal(t, float64(5), record["rating"])
		assert.Equal(t, true, record["on_favorites"])
	})

	t.Run("EmbedsImage", func(t *testing.T) {
		assets := newFakeAssetStore()
		ref, err := assets.Put("uid-Pancakes", []byte("jpeg bytes"), ".jpg")
		require.NoError(t, err)

		recipe := testRecipe("Pancakes")
		recipe.ImageURL = ref

		exp := NewExporter(newFakeOverlayStore(), assets)
		data, err := exp.Export([]*entities.Recipe{recipe})
		require.NoError(t, err)

		record := decodeArchive(t, data)["Pancakes"+RecipeSuffix]
		assert.Equal(t, "amBlZyBieXRlcw==", record["photo_data"])
		assert.Equal(t, "uid-Pancakes.jpg", record["photo"])
		assert.NotEmpty(t, record["photo_hash"])
	})

	t.Run("MissingAssetDegradesToNoImage", func(t *testing.T) {
		assets := newFakeAssetStore()
		assets.getErr = errors.New("disk gone")

		recipe := testRecipe("Pancakes")
		recipe.ImageURL = "/api/uploads/lost.jpg"

		exp := NewExporter(newFakeOverlayStore(), assets)
		data, err := exp.Export([]*entities.Recipe{recipe})
		require.NoError(t, err)

		record := decodeArchive(t, data)["Pancakes"+RecipeSuffix]
		assert.Nil(t, record["photo_data"])
		assert.Equal(t, "", record["photo"])
	})

	t.Run("NameCollisionLastWriteWins", func(t *testing.T) {
		exp := NewExporter(newFakeOverlayStore(), newFakeAssetStore())

		first := testRecipe("Pancakes")
		second := testRecipe("Pancakes")
		second.ID = "uid-other"
		second.Description = "The second one"

		data, err := exp.Export([]*entities.Recipe{first, second})
		require.NoError(t, err)

		records := decodeArchive(t, data)
		require.Len(t, records, 1)
		assert.Equal(t, "The second one", records["Pancakes"+RecipeSuffix]["description"])
	})
}

func TestRoundTrip(t *testing.T) {
	original := testRecipe("Spaghetti Carbonara")
	original.Categories = `["Dinner","Italian"]`
	original.Notes = "Use guanciale if you can find it"
	original.NutritionalInfo = "650 cal per serving"
	original.Difficulty = "medium"

	overlays := newFakeOverlayStore()
	rating := 4
	require.NoError(t, overlays.Save(&entities.SavedRecipe{RecipeID: original.ID, Rating: &rating}))

	exp := NewExporter(overlays, newFakeAssetStore())
	data, err := exp.Export([]*entities.Recipe{original})
	require.NoError(t, err)

	// Re-import into an empty repository.
	recipes := newFakeRecipeStore()
	importedOverlays := newFakeOverlayStore()
	imp := NewImporter(recipes, importedOverlays, newFakeAssetStore())

	result, err := imp.Import(data)
	require.NoError(t, err)
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Recipes, 1)

	got := result.Recipes[0]
	assert.Equal(t, original.Name, got.Name)
	assert.Equal(t, original.Ingredients, got.Ingredients)
	assert.Equal(t, original.Directions, got.Directions)
	assert.Equal(t, original.Description, got.Description)
	assert.Equal(t, original.Notes, got.Notes)
	assert.Equal(t, original.Source, got.Source)
	assert.Equal(t, original.PrepTime, got.PrepTime)
	assert.Equal(t, original.CookTime, got.CookTime)
	assert.Equal(t, original.Servings, got.Servings)
	assert.Equal(t, `["Dinner","Italian"]`, got.Categories, "category order survives the round trip")
	assert.Equal(t, original.NutritionalInfo, got.NutritionalInfo)
	assert.Equal(t, original.Difficulty, got.Difficulty)
	assert.Equal(t, original.CreatedAt, got.CreatedAt)

	saved, err := importedOverlays.GetOverlay(got.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
	require.NotNil(t, saved.Rating)
	assert.Equal(t, 4, *saved.Rating)
}
