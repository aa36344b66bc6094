// Package uploads stores recipe images on disk. Every image belongs to
// exactly one recipe; the returned reference is what gets recorded in
// the recipe's image field and served back over the uploads endpoint.
package uploads

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// URLPrefix is the public path prefix under which stored images are
// served. References returned by the store carry it.
const URLPrefix = "/api/uploads/"

// maxRemoteImageSize caps images fetched from remote URLs (5 MB).
const maxRemoteImageSize = 5 * 1024 * 1024

// Store is a disk-backed image store.
type Store struct {
	dir        string
	httpClient *http.Client
}

// NewStore creates the uploads directory if needed and returns a store
// over it.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Store{
		dir: dir,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

// Put writes image bytes under a fresh name derived from the owning
// recipe's identity and returns the serving reference.
func (s *Store) Put(recipeID string, data []byte, preferredExt string) (string, error) {
	ext := preferredExt
	if ext == "" {
		ext = ".jpg"
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	filename := fmt.Sprintf("%s_%s%s", recipeID, suffix, ext)

	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0644); err != nil {
		return "", fmt.Errorf("write image: %w", err)
	}
	return URLPrefix + filename, nil
}

// Get resolves a stored reference back to the image bytes.
func (s *Store) Get(ref string) ([]byte, error) {
	data, err := os.ReadFile(s.path(ref))
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", ref, err)
	}
	return data, nil
}

// Delete releases a stored image. Deleting a reference that is already
// gone is not an error.
func (s *Store) Delete(ref string) error {
	if err := os.Remove(s.path(ref)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete image %s: %w", ref, err)
	}
	return nil
}

// FilePath returns the on-disk path for a stored reference, for
// handlers that serve the file directly.
func (s *Store) FilePath(name string) string {
	return filepath.Join(s.dir, filepath.Base(name))
}

// FetchRemote downloads an image from a URL and stores it for the
// given recipe. The file extension comes from the response
// Content-Type, falling back to the URL suffix.
func (s *Store) FetchRemote(imageURL, recipeID string) (string, error) {
	req, err := http.NewRequest(http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "RecipeFinder/1.0")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch image: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteImageSize+1))
	if err != nil {
		return "", fmt.Errorf("fetch image: %w", err)
	}
	if len(data) > maxRemoteImageSize {
		return "", fmt.Errorf("fetch image: larger than %d bytes", maxRemoteImageSize)
	}

	ext := extensionFor(resp.Header.Get("Content-Type"), imageURL)
	return s.Put(recipeID, data, ext)
}

func (s *Store) path(ref string) string {
	return filepath.Join(s.dir, filepath.Base(strings.TrimPrefix(ref, URLPrefix)))
}

// extensionFor derives a file extension from the declared media type,
// falling back to the source URL suffix, then to .jpg.
func extensionFor(contentType, imageURL string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	}

	urlPath := strings.ToLower(imageURL)
	if i := strings.IndexByte(urlPath, '?'); i >= 0 {
		urlPath = urlPath[:i]
	}
	switch {
	case strings.HasSuffix(urlPath, ".png"):
		return ".png"
	case strings.HasSuffix(urlPath, ".webp"):
		return ".webp"
	default:
		return ".jpg"
	}
}
