// Package exporters renders canonical recipes into human-readable
// markdown, either as a single document or as a ZIP batch with the
// recipe images alongside.
package exporters

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mrlokans/recipefinder/internal/entities"
	"github.com/mrlokans/recipefinder/internal/paprika"
)

// stepPrefix matches pre-existing step numbering at the start of a
// direction line ("1.", "2:", "Step 3."). Stripping it before
// renumbering keeps re-rendering already rendered text idempotent.
var stepPrefix = regexp.MustCompile(`^(?i:step\s+)?\d+[.:]\s*`)

// RenderMarkdown produces a self-contained markdown document for one
// recipe. The saved overlay is optional; the image tag references the
// img/ sibling-folder convention used by the ZIP batch export and is
// skipped when includeImageTag is false.
func RenderMarkdown(recipe *entities.Recipe, saved *entities.SavedRecipe, includeImageTag bool) string {
	var lines []string
	lines = append(lines, fmt.Sprintf("# %s\n", recipe.Name))

	if recipe.Description != "" {
		lines = append(lines, fmt.Sprintf("_%s_\n", recipe.Description))
	}

	if includeImageTag && recipe.ImageURL != "" {
		safeName := paprika.SafeName(recipe.Name, recipe.ID)
		lines = append(lines, fmt.Sprintf("![%s](img/%s.jpg)\n", recipe.Name, safeName))
	}

	if meta := metadataLine(recipe); meta != "" {
		lines = append(lines, meta+"\n")
	}

	if categories := paprika.ParseCategories(recipe.Categories); len(categories) > 0 {
		lines = append(lines, "**Categories:** "+strings.Join(categories, ", ")+"\n")
	}

	lines = append(lines, "## Ingredients\n")
	for _, line := range strings.Split(recipe.Ingredients, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, "- "+line)
		}
	}
	lines = append(lines, "")

	lines = append(lines, "## Directions\n")
	step := 0
	for _, line := range strings.Split(recipe.Directions, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		step++
		lines = append(lines, fmt.Sprintf("%d. %s", step, stepPrefix.ReplaceAllString(line, "")))
	}
	lines = append(lines, "")

	if recipe.NutritionalInfo != "" {
		lines = append(lines, "## Nutrition\n")
		lines = append(lines, recipe.NutritionalInfo+"\n")
	}

	if recipe.Notes != "" {
		lines = append(lines, "## Notes\n")
		lines = append(lines, recipe.Notes+"\n")
	}

	if saved != nil && saved.Rating != nil && *saved.Rating > 0 {
		rating := *saved.Rating
		if rating > 5 {
			rating = 5
		}
		stars := strings.Repeat("★", rating) + strings.Repeat("☆", 5-rating)
		lines = append(lines, fmt.Sprintf("**Rating:** %s\n", stars))
	}

	if recipe.Source != "" {
		lines = append(lines, fmt.Sprintf("**Source:** %s\n", recipe.Source))
	}

	return strings.Join(lines, "\n")
}

// metadataLine joins whichever timing/serving fields are present into
// one pipe-separated line.
func metadataLine(recipe *entities.Recipe) string {
	var parts []string
	if recipe.PrepTime != "" {
		parts = append(parts, "**Prep:** "+recipe.PrepTime)
	}
	if recipe.CookTime != "" {
		parts = append(parts, "**Cook:** "+recipe.CookTime)
	}
	if recipe.TotalTime != "" {
		parts = append(parts, "**Total:** "+recipe.TotalTime)
	}
	if recipe.Servings != "" {
		parts = append(parts, "**Servings:** "+recipe.Servings)
	}
	if recipe.Difficulty != "" {
		parts = append(parts, "**Difficulty:** "+recipe.Difficulty)
	}
	if recipe.Cuisine != "" {
		parts = append(parts, "**Cuisine:** "+recipe.Cuisine)
	}
	return strings.Join(parts, " | ")
}
