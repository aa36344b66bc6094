// Package recipes provides database operations for canonical recipe
// records.
//
// Lookups used for import dedup return (nil, nil) when nothing matches
// so callers can distinguish "not found" from a real database error.
package recipes

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/recipefinder/internal/entities"
)

// Repository handles recipe database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new recipes repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID retrieves a recipe by identity, nil when absent.
func (r *Repository) FindByID(id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.Where("id = ?", id).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// FindByName retrieves a recipe by exact name, nil when absent.
func (r *Repository) FindByName(name string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	err := r.db.Where("name = ?", name).First(&recipe).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListAll retrieves every recipe ordered by creation time.
func (r *Repository) ListAll() ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	err := r.db.Order("created_at ASC").Find(&recipes).Error
	return recipes, err
}

// ListSaved retrieves the recipes that have a saved overlay entry.
func (r *Repository) ListSaved() ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	err := r.db.
		Joins("JOIN saved_recipes ON saved_recipes.recipe_id = recipes.id").
		Order("saved_recipes.saved_at ASC").
		Find(&recipes).Error
	return recipes, err
}

// Save persists a recipe, creating it when new.
func (r *Repository) Save(recipe *entities.Recipe) error {
	if err := r.db.Save(recipe).Error; err != nil {
		return fmt.Errorf("failed to save recipe %q: %w", recipe.Name, err)
	}
	return nil
}

// Delete removes a recipe and its overlay entry.
func (r *Repository) Delete(id string) error {
	if err := r.db.Where("recipe_id = ?", id).Delete(&entities.SavedRecipe{}).Error; err != nil {
		return fmt.Errorf("failed to delete saved entry for %s: %w", id, err)
	}
	if err := r.db.Where("id = ?", id).Delete(&entities.Recipe{}).Error; err != nil {
		return fmt.Errorf("failed to delete recipe %s: %w", id, err)
	}
	return nil
}
