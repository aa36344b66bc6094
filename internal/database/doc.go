// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── recipes/         # Canonical recipe CRUD operations
//	└── saved/           # Saved-recipe rating overlay
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./recipefinder.db")
//
//	// Create domain-specific repositories
//	recipeRepo := recipes.NewRepository(db.DB)
//	savedRepo := saved.NewRepository(db.DB)
//
//	// Use repositories
//	recipe, err := recipeRepo.FindByID("a8098c1a-f86e-11da-bd1a-00112444be1e")
//	overlay, err := savedRepo.GetOverlay(recipe.ID)
//
// The recipes repository satisfies the import/export store interfaces in
// the paprika and services packages; the saved repository satisfies the
// overlay interfaces in paprika and exporters.
package database
