package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/recipefinder/internal/database/recipes"
	"github.com/mrlokans/recipefinder/internal/database/saved"
	"github.com/mrlokans/recipefinder/internal/exporters"
	"github.com/mrlokans/recipefinder/internal/paprika"
	"github.com/mrlokans/recipefinder/internal/services"
	"github.com/mrlokans/recipefinder/internal/uploads"
)

// =============================================================================
// Data Access Layer
// =============================================================================

// RecipeStore implementations
var _ paprika.RecipeStore = (*recipes.Repository)(nil)
var _ services.RecipeRepository = (*recipes.Repository)(nil)

// OverlayStore implementations
var _ paprika.OverlayStore = (*saved.Repository)(nil)
var _ exporters.OverlayStore = (*saved.Repository)(nil)

// =============================================================================
// Image Storage
// =============================================================================

// AssetStore implementations
var _ paprika.AssetStore = (*uploads.Store)(nil)
var _ exporters.AssetStore = (*uploads.Store)(nil)

// AssetFetcher implementations
var _ services.AssetFetcher = (*uploads.Store)(nil)
