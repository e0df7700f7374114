// Package output writes rendered recipe cards to disk.
// A single card is named after the page URL (cook_test_recipes_soup.pdf);
// batch runs mirror the URL path under a directory per host.
package output

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// Writer writes rendered cards below Dir.
type Writer struct {
	Dir string
}

// New creates a Writer for dir, defaulting to the working directory,
// and makes sure the directory exists.
func New(dir string) (*Writer, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		dir = wd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Writer{Dir: dir}, nil
}

// WriteCard writes one card with a flat, URL-derived file name.
func (w *Writer) WriteCard(pageURL string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.Dir, FlatName(pageURL)+ext)
	return path, writeFile(path, data)
}

// WriteBatch writes a card for a batch run.
// Example: https://cook.test/recipes/soup → <dir>/cook_test/recipes/soup.pdf
func (w *Writer) WriteBatch(pageURL string, data []byte, ext string) (string, error) {
	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("parsing URL: %w", err)
	}

	segments := []string{sanitize(parsed.Hostname())}
	for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if seg != "" {
			segments = append(segments, sanitize(seg))
		}
	}
	if len(segments) == 1 {
		segments = append(segments, "index")
	}

	path := filepath.Join(append([]string{w.Dir}, segments...)...) + ext
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("creating directory %s: %w", filepath.Dir(path), err)
	}
	return path, writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing file %s: %w", path, err)
	}
	return nil
}

// FlatName turns a URL into a single file name without extension.
func FlatName(pageURL string) string {
	parsed, err := url.Parse(pageURL)
	if err != nil || parsed.Host == "" {
		return sanitize(pageURL)
	}
	parts := []string{sanitize(parsed.Hostname())}
	for _, seg := range strings.Split(strings.Trim(parsed.Path, "/"), "/") {
		if seg != "" {
			parts = append(parts, sanitize(seg))
		}
	}
	return strings.Join(parts, "_")
}

// sanitize replaces everything except ASCII letters, digits and '-' with '_'.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
