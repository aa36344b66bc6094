// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// The application uses several categories of interfaces:
//
// ## Data Access Interfaces
//
//   - RecipeStore: Lookup and persistence during archive import (internal/paprika/paprika.go)
//   - RecipeRepository: Recipe listing and dedup lookups (internal/services/interfaces.go)
//   - OverlayStore: Saved-recipe rating overlay access (internal/paprika/paprika.go, internal/exporters/archive.go)
//
// ## Image Storage Interfaces
//
//   - AssetStore: Store and resolve recipe images (internal/paprika/paprika.go, internal/exporters/archive.go)
//   - AssetFetcher: Download remote images during imports (internal/services/interfaces.go)
//
// ## External Service Interfaces
//
//   - RecipeExtractor: Extract recipe payloads from free text (internal/services/interfaces.go)
//
// # Adding a New Export Format
//
// To add support for a new recipe export format:
//
//  1. Create an exporter in internal/exporters/ that accepts the stores it
//     needs through small consumer-side interfaces
//
//  2. Create an HTTP controller in internal/http/ wrapping it
//
//  3. Register routes in router.go
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces. This catches missing methods at compile time rather than runtime:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full set.
package interfaces
