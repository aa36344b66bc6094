// Package normalizer coerces loosely-typed recipe payloads into the
// canonical entities.Recipe shape.
//
// Upstream producers disagree on field encodings: hand-authored archives
// send categories as native JSON arrays, scraped pages send them as bare
// strings, and model output flips between the two from one response to
// the next. The same applies to ingredients/directions (array vs.
// newline-joined string), nutritional info (object vs. string) and
// servings (number vs. string). All of that coercion policy lives here
// so the importers and the generation pipeline share one set of rules.
package normalizer

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/mrlokans/recipefinder/internal/entities"
)

// ErrMissingName is returned when a payload has no usable recipe name.
var ErrMissingName = errors.New("recipe payload is missing a name")

// Normalize converts a raw field map into a canonical recipe. It fails
// only when the name is absent or blank; every other field is optional.
// Unrecognized keys are dropped.
func Normalize(raw map[string]any) (*entities.Recipe, error) {
	name := strings.TrimSpace(asString(raw["name"]))
	if name == "" {
		return nil, ErrMissingName
	}

	return &entities.Recipe{
		Name:            name,
		Ingredients:     JoinLines(raw["ingredients"]),
		Directions:      JoinLines(raw["directions"]),
		Description:     asString(raw["description"]),
		Notes:           asString(raw["notes"]),
		Source:          asString(raw["source"]),
		PrepTime:        asString(raw["prep_time"]),
		CookTime:        asString(raw["cook_time"]),
		TotalTime:       asString(raw["total_time"]),
		Servings:        Servings(raw["servings"]),
		Categories:      Categories(raw["categories"]),
		NutritionalInfo: NutritionalInfo(raw["nutritional_info"]),
		Difficulty:      asString(raw["difficulty"]),
		Cuisine:         asString(raw["cuisine"]),
	}, nil
}

// JoinLines flattens a sequence into newline-separated text. Strings
// pass through unchanged.
func JoinLines(v any) string {
	switch items := v.(type) {
	case []any:
		parts := make([]string, 0, len(items))
		for _, item := range items {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, "\n")
	case []string:
		return strings.Join(items, "\n")
	default:
		return asString(v)
	}
}

// Categories produces the canonical categories string: a JSON array as
// text. Native sequences are serialized, bare strings are wrapped as a
// single-element array, and strings that already look like a serialized
// array pass through untouched (consumers parse them lazily).
func Categories(v any) string {
	switch cat := v.(type) {
	case []any:
		if len(cat) == 0 {
			return ""
		}
		parts := make([]string, 0, len(cat))
		for _, item := range cat {
			parts = append(parts, stringify(item))
		}
		return marshalList(parts)
	case []string:
		if len(cat) == 0 {
			return ""
		}
		return marshalList(cat)
	case string:
		if cat == "" || strings.HasPrefix(cat, "[") {
			return cat
		}
		return marshalList([]string{cat})
	default:
		return ""
	}
}

// NutritionalInfo renders an object payload as a readable
// "key: value, key: value" string. Keys are sorted so the output is
// stable across runs.
func NutritionalInfo(v any) string {
	m, ok := v.(map[string]any)
	if !ok {
		return asString(v)
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, stringify(m[k])))
	}
	return strings.Join(parts, ", ")
}

// Servings stringifies numeric servings counts; strings pass through.
func Servings(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return stringify(v)
}

func marshalList(items []string) string {
	data, err := json.Marshal(items)
	if err != nil {
		return ""
	}
	return string(data)
}

// asString returns string values untouched and drops everything else.
func asString(v any) string {
	s, _ := v.(string)
	return s
}

// stringify renders scalars the way a human would write them: integral
// floats lose the trailing ".0" that JSON decoding introduces.
func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
