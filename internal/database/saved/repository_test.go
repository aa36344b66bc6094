package saved

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/recipefinder/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_saved_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.Recipe{},
		&entities.SavedRecipe{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func TestRepository_GetOverlay(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	rating := 4
	require.NoError(t, db.Create(&entities.SavedRecipe{
		RecipeID: "uid-1",
		Rating:   &rating,
		Notes:    "Less salt next time",
	}).Error)

	overlay, err := repo.GetOverlay("uid-1")
	require.NoError(t, err)
	require.NotNil(t, overlay)
	require.NotNil(t, overlay.Rating)
	assert.Equal(t, 4, *overlay.Rating)
	assert.Equal(t, "Less salt next time", overlay.Notes)
}

func TestRepository_GetOverlay_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	overlay, err := repo.GetOverlay("missing")
	require.NoError(t, err)
	assert.Nil(t, overlay)
}

func TestRepository_SaveCreatesOverlay(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	rating := 3
	err := repo.Save(&entities.SavedRecipe{RecipeID: "uid-1", Rating: &rating})
	require.NoError(t, err)

	overlay, err := repo.GetOverlay("uid-1")
	require.NoError(t, err)
	require.NotNil(t, overlay)
	assert.Equal(t, 3, *overlay.Rating)
	assert.False(t, overlay.SavedAt.IsZero())
}

func TestRepository_SaveReplacesExisting(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	first := 2
	require.NoError(t, repo.Save(&entities.SavedRecipe{RecipeID: "uid-1", Rating: &first}))

	original, err := repo.GetOverlay("uid-1")
	require.NoError(t, err)

	second := 5
	require.NoError(t, repo.Save(&entities.SavedRecipe{RecipeID: "uid-1", Rating: &second}))

	overlay, err := repo.GetOverlay("uid-1")
	require.NoError(t, err)
	assert.Equal(t, 5, *overlay.Rating)
	assert.Equal(t, original.ID, overlay.ID)
	assert.Equal(t, original.SavedAt.Unix(), overlay.SavedAt.Unix())

	var count int64
	db.Model(&entities.SavedRecipe{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestRepository_Delete(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	require.NoError(t, repo.Save(&entities.SavedRecipe{RecipeID: "uid-1"}))
	require.NoError(t, repo.Delete("uid-1"))

	overlay, err := repo.GetOverlay("uid-1")
	require.NoError(t, err)
	assert.Nil(t, overlay)
}

func TestRepository_DeleteMissingIsNoop(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	assert.NoError(t, repo.Delete("missing"))
}
