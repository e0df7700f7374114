// Package normalize implements the Normalizer interface.
// It coerces the loosely-typed fields of a schema.org Recipe node into
// core.Recipe. Values are copied verbatim; nothing is trimmed or reformatted.
package normalize

import (
	"github.com/gaurav-prasanna/recipecard/core"
	"github.com/gaurav-prasanna/recipecard/core/jsonld"
)

// maxImageDepth bounds recursion through nested image arrays.
const maxImageDepth = 16

// RecipeNormalizer maps Recipe entities onto core.Recipe. It is stateless.
type RecipeNormalizer struct{}

// New creates a RecipeNormalizer.
func New() *RecipeNormalizer {
	return &RecipeNormalizer{}
}

// Normalize converts a Recipe node. The URL is left for the assembler.
func (n *RecipeNormalizer) Normalize(entity jsonld.Value) core.Recipe {
	return core.Recipe{
		Title:        text(entity.Get("name")),
		Image:        image(entity.Get("image"), 0),
		Description:  text(entity.Get("description")),
		Ingredients:  ingredients(entity.Get("recipeIngredient")),
		Instructions: instructions(entity.Get("recipeInstructions")),
		PrepTime:     text(entity.Get("prepTime")),
		CookTime:     text(entity.Get("cookTime")),
		TotalTime:    text(entity.Get("totalTime")),
		Yield:        yield(entity.Get("recipeYield")),
	}
}

func text(v jsonld.Value) string {
	s, _ := v.Str()
	return s
}

// ingredients keeps only an array source. A bare string is not wrapped.
func ingredients(v jsonld.Value) []string {
	out := []string{}
	switch v.Kind() {
	case jsonld.KindArray:
		items, _ := v.Items()
		for _, item := range items {
			if s, ok := item.Str(); ok {
				out = append(out, s)
			}
		}
	default:
		// string, object, scalar or absent: nothing usable
	}
	return out
}

// instructions flattens strings, HowToStep objects and HowToSection
// itemListElement groups into one ordered list.
func instructions(v jsonld.Value) []string {
	out := []string{}
	switch v.Kind() {
	case jsonld.KindString:
		s, _ := v.Str()
		out = append(out, s)
	case jsonld.KindArray:
		items, _ := v.Items()
		for _, item := range items {
			out = appendStep(out, item)
		}
	default:
		// unrecognized shape
	}
	return out
}

func appendStep(out []string, item jsonld.Value) []string {
	switch item.Kind() {
	case jsonld.KindString:
		s, _ := item.Str()
		return append(out, s)
	case jsonld.KindObject:
		if s, ok := item.Get("text").Str(); ok && s != "" {
			return append(out, s)
		}
		if steps, ok := item.Get("itemListElement").Items(); ok {
			for _, step := range steps {
				if s, ok := step.Get("text").Str(); ok && s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		return out
	}
}

// image resolves a string, an ImageObject (url, then contentUrl) or the
// first element of an array.
func image(v jsonld.Value, depth int) string {
	if depth > maxImageDepth {
		return ""
	}
	switch v.Kind() {
	case jsonld.KindString:
		s, _ := v.Str()
		return s
	case jsonld.KindArray:
		items, _ := v.Items()
		if len(items) == 0 {
			return ""
		}
		return image(items[0], depth+1)
	case jsonld.KindObject:
		if s, ok := v.Get("url").Str(); ok && s != "" {
			return s
		}
		s, _ := v.Get("contentUrl").Str()
		return s
	default:
		return ""
	}
}

// yield takes a scalar as-is or the first element of an array.
func yield(v jsonld.Value) string {
	switch v.Kind() {
	case jsonld.KindString, jsonld.KindNumber:
		s, _ := v.Scalar()
		return s
	case jsonld.KindArray:
		items, _ := v.Items()
		if len(items) == 0 {
			return ""
		}
		s, _ := items[0].Scalar()
		return s
	default:
		return ""
	}
}
