package services

import "github.com/mrlokans/recipefinder/internal/entities"

// RecipeRepository provides access to persisted canonical recipes.
// Find methods return (nil, nil) when nothing matches.
type RecipeRepository interface {
	FindByID(id string) (*entities.Recipe, error)
	FindByName(name string) (*entities.Recipe, error)
	ListAll() ([]*entities.Recipe, error)
	ListSaved() ([]*entities.Recipe, error)
	Save(recipe *entities.Recipe) error
}

// AssetFetcher stores recipe images, including ones downloaded from a
// remote URL during import.
type AssetFetcher interface {
	FetchRemote(imageURL, recipeID string) (string, error)
}

// RecipeExtractor turns free text into raw loosely-typed recipe field
// maps. Implemented by the generative-model client; the maps it
// produces go through the normalizer before anything else sees them.
type RecipeExtractor interface {
	Extract(text, source string) ([]map[string]any, error)
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
	Message  string `json:"message"`
}
