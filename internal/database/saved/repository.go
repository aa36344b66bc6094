// Package saved provides database operations for the per-recipe rating
// overlay. A recipe has at most one overlay entry; its presence marks
// the recipe as part of the user's saved set.
package saved

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/mrlokans/recipefinder/internal/entities"
)

// Repository handles saved-recipe overlay operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new overlay repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOverlay retrieves the overlay for a recipe, nil when the recipe
// has none.
func (r *Repository) GetOverlay(recipeID string) (*entities.SavedRecipe, error) {
	var saved entities.SavedRecipe
	err := r.db.Where("recipe_id = ?", recipeID).First(&saved).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// Save persists an overlay entry, replacing any existing one for the
// same recipe.
func (r *Repository) Save(saved *entities.SavedRecipe) error {
	existing, err := r.GetOverlay(saved.RecipeID)
	if err != nil {
		return fmt.Errorf("failed to look up saved entry for %s: %w", saved.RecipeID, err)
	}
	if existing != nil {
		saved.ID = existing.ID
		saved.SavedAt = existing.SavedAt
	}
	if err := r.db.Save(saved).Error; err != nil {
		return fmt.Errorf("failed to save entry for %s: %w", saved.RecipeID, err)
	}
	return nil
}

// Delete removes the overlay for a recipe if present.
func (r *Repository) Delete(recipeID string) error {
	if err := r.db.Where("recipe_id = ?", recipeID).Delete(&entities.SavedRecipe{}).Error; err != nil {
		return fmt.Errorf("failed to delete saved entry for %s: %w", recipeID, err)
	}
	return nil
}
