// Package scrape runs one URL through the recipe pipeline:
// fetch → locate → normalize → assemble.
package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/core"
	"github.com/gaurav-prasanna/recipecard/core/assemble"
)

// Scraper wires the pipeline stages. It keeps no per-request state and
// is safe for concurrent use.
type Scraper struct {
	fetcher    core.Fetcher
	locator    core.Locator
	normalizer core.Normalizer
	log        *zap.Logger
}

// New creates a Scraper. A nil logger discards diagnostics.
func New(fetcher core.Fetcher, locator core.Locator, normalizer core.Normalizer, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{
		fetcher:    fetcher,
		locator:    locator,
		normalizer: normalizer,
		log:        log,
	}
}

// Scrape fetches rawURL and returns its canonical recipe record.
// Every failure is a *core.Error; panics inside a stage are recovered
// and reported as core.KindInternal.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (recipe core.Recipe, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("scrape panicked", zap.String("url", rawURL), zap.Any("panic", r), zap.Stack("stack"))
			recipe = core.Recipe{}
			err = core.Internal(fmt.Errorf("panic: %v", r))
		}
	}()

	if err := Validate(rawURL); err != nil {
		return core.Recipe{}, err
	}

	start := time.Now()
	page, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return core.Recipe{}, classify(err)
	}
	if page.Truncated {
		s.log.Warn("page body truncated at size cap, later JSON-LD blocks are lost",
			zap.String("url", rawURL),
			zap.Int("bytes", len(page.HTML)))
	}

	entity, err := s.locator.Locate(page.HTML)
	if err != nil {
		return core.Recipe{}, classify(err)
	}

	recipe = assemble.Assemble(s.normalizer.Normalize(entity), rawURL)
	s.log.Debug("recipe scraped",
		zap.String("url", rawURL),
		zap.String("final_url", page.FinalURL),
		zap.String("title", recipe.Title),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("instructions", len(recipe.Instructions)),
		zap.Duration("elapsed", time.Since(start)))
	return recipe, nil
}

// Validate rejects an empty URL or one without scheme and host.
func Validate(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return core.InvalidRequest("URL is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return core.InvalidRequest(fmt.Sprintf("invalid URL: %s (must include scheme, e.g. https://example.com)", rawURL))
	}
	return nil
}

// classify keeps taxonomy errors and wraps anything else as internal.
func classify(err error) error {
	var ce *core.Error
	if errors.As(err, &ce) {
		return err
	}
	return core.Internal(err)
}
