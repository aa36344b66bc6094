package services

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/mrlokans/recipefinder/internal/normalizer"
)

// ImportService turns raw loosely-typed recipe payloads (extracted from
// free text or produced by the model) into persisted canonical records.
// Deduplication here is by exact name: unlike archive imports, these
// sources carry no identity of their own.
type ImportService struct {
	recipes    RecipeRepository
	assets     AssetFetcher
	extractor  RecipeExtractor
	httpClient *http.Client
}

// NewImportService creates a new ImportService. The extractor may be
// nil when only pre-parsed payloads are imported.
func NewImportService(recipes RecipeRepository, assets AssetFetcher, extractor RecipeExtractor) *ImportService {
	return &ImportService{
		recipes:   recipes,
		assets:    assets,
		extractor: extractor,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// ImportText extracts recipes from free-form text and persists them.
// The source string becomes the attribution on every imported recipe.
func (s *ImportService) ImportText(content, source string) (ImportResult, error) {
	if strings.TrimSpace(content) == "" {
		return ImportResult{Message: fmt.Sprintf("'%s' was empty", source)}, nil
	}
	if s.extractor == nil {
		return ImportResult{}, errors.New("no recipe extractor configured")
	}

	raw, err := s.extractor.Extract(content, source)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to extract recipes: %w", err)
	}
	if len(raw) == 0 {
		return ImportResult{Message: fmt.Sprintf("No recipes found in '%s'", source)}, nil
	}

	return s.ImportParsed(raw, source, "")
}

// ImportParsed normalizes and persists pre-parsed recipe payloads.
// Payloads without a usable name and exact-name duplicates are counted
// as skipped. When imageURL is set, the image is fetched for the first
// imported recipe.
func (s *ImportService) ImportParsed(raw []map[string]any, source, imageURL string) (ImportResult, error) {
	result := ImportResult{}

	for _, payload := range raw {
		recipe, err := normalizer.Normalize(payload)
		if err != nil {
			if errors.Is(err, normalizer.ErrMissingName) {
				result.Skipped++
				continue
			}
			return result, err
		}

		existing, err := s.recipes.FindByName(recipe.Name)
		if err != nil {
			return result, fmt.Errorf("duplicate check for %q: %w", recipe.Name, err)
		}
		if existing != nil {
			result.Skipped++
			continue
		}

		recipe.Source = source
		recipe.AIGenerated = false

		if err := s.recipes.Save(recipe); err != nil {
			return result, err
		}

		// Fetch the page image for the first recipe only; a remote
		// fetch failure never fails the import.
		if imageURL != "" && result.Imported == 0 && s.assets != nil {
			ref, err := s.assets.FetchRemote(imageURL, recipe.ID)
			if err != nil {
				log.Printf("Failed to fetch image for %q: %v", recipe.Name, err)
			} else {
				recipe.ImageURL = ref
				if err := s.recipes.Save(recipe); err != nil {
					return result, err
				}
			}
		}

		result.Imported++
	}

	result.Message = fmt.Sprintf("Imported %d recipes, skipped %d duplicates", result.Imported, result.Skipped)
	return result, nil
}
