// Package locate implements the Locator interface.
// It scans every <script type="application/ld+json"> block of a page in
// document order and returns the first Recipe entity it finds.
package locate

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/core"
	"github.com/gaurav-prasanna/recipecard/core/jsonld"
)

const (
	recipeType = "Recipe"
	selector   = `script[type="application/ld+json"]`

	// DefaultMaxDepth bounds recursion through nested arrays.
	DefaultMaxDepth = 32
)

// JSONLDLocator finds Recipe entities in JSON-LD script blocks.
type JSONLDLocator struct {
	log      *zap.Logger
	maxDepth int
}

// New creates a JSONLDLocator. Malformed blocks are reported to log;
// a nil logger discards them. maxDepth <= 0 selects DefaultMaxDepth.
func New(log *zap.Logger, maxDepth int) *JSONLDLocator {
	if log == nil {
		log = zap.NewNop()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &JSONLDLocator{log: log, maxDepth: maxDepth}
}

// Locate returns the first Recipe entity across the page's JSON-LD blocks.
// Blocks that fail to parse are logged and skipped. When no block yields
// a Recipe the error is a *core.Error of kind KindRecipeNotFound.
func (l *JSONLDLocator) Locate(html string) (jsonld.Value, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return jsonld.Value{}, core.Internal(err)
	}

	var (
		found  jsonld.Value
		ok     bool
		blocks int
	)
	doc.Find(selector).EachWithBreak(func(i int, s *goquery.Selection) bool {
		blocks++
		data, err := jsonld.Parse(s.Text())
		if err != nil {
			l.log.Warn("skipping malformed JSON-LD block",
				zap.Int("block", i),
				zap.Error(core.MalformedData(i, err)))
			return true
		}
		found, ok = l.find(data, 0)
		return !ok
	})

	if !ok {
		return jsonld.Value{}, core.RecipeNotFound(blocks)
	}
	return found, nil
}

// Find runs the Recipe search over one already-parsed JSON-LD value.
func (l *JSONLDLocator) Find(v jsonld.Value) (jsonld.Value, bool) {
	return l.find(v, 0)
}

func (l *JSONLDLocator) find(v jsonld.Value, depth int) (jsonld.Value, bool) {
	if depth > l.maxDepth {
		l.log.Debug("JSON-LD nesting exceeds depth limit", zap.Int("limit", l.maxDepth))
		return jsonld.Value{}, false
	}

	switch v.Kind() {
	case jsonld.KindArray:
		// Returns the nested Recipe node itself, not the element that contained it.
		items, _ := v.Items()
		for _, item := range items {
			if match, ok := l.find(item, depth+1); ok {
				return match, true
			}
		}
		return jsonld.Value{}, false

	case jsonld.KindObject:
		// A @graph container is answered from its direct members only.
		if graph, isArr := v.Get("@graph").Items(); isArr {
			for _, node := range graph {
				if node.HasType(recipeType) {
					return node, true
				}
			}
			return jsonld.Value{}, false
		}
		if v.HasType(recipeType) {
			return v, true
		}
		return jsonld.Value{}, false

	default:
		return jsonld.Value{}, false
	}
}
