package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// ErrPageUnavailable marks URL import failures caused by the remote
// page rather than by this service.
var ErrPageUnavailable = errors.New("failed to fetch page")

const (
	importUserAgent = "Mozilla/5.0 (compatible; RecipeFinder/1.0)"

	// maxPageSize caps how much of a remote page is read.
	maxPageSize = 10 << 20

	// maxExtractChars caps the text handed to the extractor.
	maxExtractChars = 30000
)

// ImportURL fetches a web page, extracts its readable text and recipe
// image, and imports whatever recipes the extractor finds in it.
func (s *ImportService) ImportURL(pageURL string) (ImportResult, error) {
	if s.extractor == nil {
		return ImportResult{}, errors.New("no recipe extractor configured")
	}

	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrPageUnavailable, err)
	}
	req.Header.Set("User-Agent", importUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrPageUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ImportResult{}, fmt.Errorf("%w: status %d", ErrPageUnavailable, resp.StatusCode)
	}

	doc, err := html.Parse(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return ImportResult{}, fmt.Errorf("%w: %v", ErrPageUnavailable, err)
	}

	imageURL := findRecipeImage(doc, pageURL)

	text := pageText(doc)
	if text == "" {
		return ImportResult{}, fmt.Errorf("%w: no text content at URL", ErrPageUnavailable)
	}
	if runes := []rune(text); len(runes) > maxExtractChars {
		text = string(runes[:maxExtractChars])
	}

	raw, err := s.extractor.Extract(text, pageURL)
	if err != nil {
		return ImportResult{}, fmt.Errorf("failed to extract recipes: %w", err)
	}
	if len(raw) == 0 {
		return ImportResult{Message: "No recipes found at that URL"}, nil
	}

	return s.ImportParsed(raw, pageURL, imageURL)
}

// pageText collects the page's visible text, one trimmed fragment per
// line. Script, style and chrome elements are dropped wholesale.
func pageText(doc *html.Node) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "nav", "footer", "header":
				return
			}
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(parts, "\n")
}

// findRecipeImage looks for the page's recipe image: og:image first,
// then a schema.org Recipe JSON-LD block, then twitter:image. Relative
// candidates resolve against the page URL.
func findRecipeImage(doc *html.Node, pageURL string) string {
	var ogImage, schemaImage, twitterImage string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var property, name, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "property":
						property = attr.Val
					case "name":
						name = attr.Val
					case "content":
						content = attr.Val
					}
				}
				if content != "" {
					switch {
					case property == "og:image" && ogImage == "":
						ogImage = content
					case (name == "twitter:image" || property == "twitter:image") && twitterImage == "":
						twitterImage = content
					}
				}
			case "script":
				if schemaImage == "" && attrValue(n, "type") == "application/ld+json" && n.FirstChild != nil {
					schemaImage = recipeImageFromJSONLD(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for _, candidate := range []string{ogImage, schemaImage, twitterImage} {
		if candidate != "" {
			return resolveURL(pageURL, candidate)
		}
	}
	return ""
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// recipeImageFromJSONLD pulls the image out of a schema.org Recipe
// block. The image field may be a string, a list, or an ImageObject.
func recipeImageFromJSONLD(raw string) string {
	var data any
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return ""
	}
	if list, ok := data.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		data = list[0]
	}
	obj, ok := data.(map[string]any)
	if !ok || obj["@type"] != "Recipe" {
		return ""
	}

	image := obj["image"]
	if list, ok := image.([]any); ok {
		if len(list) == 0 {
			return ""
		}
		image = list[0]
	}
	if m, ok := image.(map[string]any); ok {
		image = m["url"]
	}
	s, _ := image.(string)
	return s
}

func resolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return b.ResolveReference(r).String()
}
