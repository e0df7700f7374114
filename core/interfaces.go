// Package core defines the recipe pipeline types and stage interfaces.
// Each stage of the pipeline is a clean, testable interface:
// fetch → locate → normalize → assemble, then optionally render.
package core

import (
	"context"

	"github.com/gaurav-prasanna/recipecard/core/jsonld"
)

// FetchResult holds the decoded HTML and response metadata from a fetch.
type FetchResult struct {
	URL         string
	FinalURL    string
	StatusCode  int
	ContentType string
	HTML        string
	Truncated   bool // body exceeded the size cap and was cut
}

// Recipe is the canonical recipe record handed to renderers and API callers.
// Optional fields are empty when the source did not provide them.
// Ingredients and Instructions are never nil once assembled.
type Recipe struct {
	Title        string   `json:"title,omitempty"`
	Image        string   `json:"image,omitempty"`
	Description  string   `json:"description,omitempty"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     string   `json:"prepTime,omitempty"` // ISO-8601, verbatim
	CookTime     string   `json:"cookTime,omitempty"`
	TotalTime    string   `json:"totalTime,omitempty"`
	Yield        string   `json:"yield,omitempty"`
	URL          string   `json:"url"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Locator finds the Recipe entity among a page's JSON-LD blocks.
// It returns a *Error of KindRecipeNotFound when no block has one.
type Locator interface {
	Locate(html string) (jsonld.Value, error)
}

// Normalizer maps a raw Recipe entity onto the canonical record.
// The returned record has no URL; the assembler adds it.
type Normalizer interface {
	Normalize(entity jsonld.Value) Recipe
}

// Renderer converts a recipe into a printable output format.
type Renderer interface {
	Render(r Recipe) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
	// ContentType is the MIME type served by the HTTP API.
	ContentType() string
}
