package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Recipe is the canonical representation shared by every importer and
// exporter. Loosely-typed upstream payloads (Paprika archives, scraped
// pages, model output) are coerced into this shape by the normalizer
// before they reach storage.
type Recipe struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"index;size:500;not null" json:"name"`
	Ingredients string `gorm:"type:text" json:"ingredients"` // one item per line
	Directions  string `gorm:"type:text" json:"directions"`  // one step per line, no step numbers
	Description string `gorm:"type:text" json:"description,omitempty"`
	Notes       string `gorm:"type:text" json:"notes,omitempty"`
	Source      string `gorm:"size:500" json:"source,omitempty"`

	// Opaque display strings, never parsed as durations.
	PrepTime  string `gorm:"size:100" json:"prep_time,omitempty"`
	CookTime  string `gorm:"size:100" json:"cook_time,omitempty"`
	TotalTime string `gorm:"size:100" json:"total_time,omitempty"`
	Servings  string `gorm:"size:100" json:"servings,omitempty"`

	// Either a JSON array string (`["Dinner","Italian"]`) or empty.
	Categories      string `gorm:"type:text" json:"categories,omitempty"`
	NutritionalInfo string `gorm:"type:text" json:"nutritional_info,omitempty"`

	ImageURL   string `gorm:"size:1000" json:"image_url,omitempty"`
	Difficulty string `gorm:"size:50" json:"difficulty,omitempty"` // easy/medium/hard, not validated here
	Cuisine    string `gorm:"size:100" json:"cuisine,omitempty"`

	AIGenerated bool `json:"ai_generated"`

	SavedEntry *SavedRecipe `gorm:"foreignKey:RecipeID" json:"saved_entry,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns a fresh UUID when the importer did not carry one.
// An identity, once assigned, never changes.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// SavedRecipe is the sparse per-recipe curation overlay. Its presence
// marks a recipe as part of the user's saved set even when no rating
// was given.
type SavedRecipe struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RecipeID string `gorm:"uniqueIndex;size:36;not null" json:"recipe_id"`
	Rating   *int   `json:"rating,omitempty"` // 1-5 when set
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID" json:"-"`

	SavedAt time.Time `gorm:"autoCreateTime" json:"saved_at"`
}

func (Recipe) TableName() string {
	return "recipes"
}

func (SavedRecipe) TableName() string {
	return "saved_recipes"
}
