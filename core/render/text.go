// Package render provides printable card renderers for recipes.
// Renderers are presentation only: they humanize durations and derive the
// source host for display, and never feed anything back into the record.
package render

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/gaurav-prasanna/recipecard/core"
)

// strict removes every tag; publishers often leave markup in step text.
var strict = bluemonday.StrictPolicy()

// cleanText strips markup and entities and collapses whitespace.
func cleanText(s string) string {
	s = html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(s), " ")
}

func cleanAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if c := cleanText(s); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// HumanizeDuration shortens an ISO-8601 duration for display: "PT1H30M" → "1h30m".
func HumanizeDuration(iso string) string {
	return strings.ToLower(strings.Replace(iso, "PT", "", 1))
}

// SourceHost returns the hostname of the recipe URL, or "" if it has none.
func SourceHost(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return parsed.Hostname()
}

type timing struct {
	Label string
	Value string
}

// card is the display view of a recipe shared by all renderers.
type card struct {
	Title        string
	Yield        string
	Description  string
	Image        string
	Times        []timing
	Ingredients  []string
	Instructions []string
	Host         string
}

func newCard(r core.Recipe) card {
	c := card{
		Title:        cleanText(r.Title),
		Yield:        cleanText(r.Yield),
		Description:  cleanText(r.Description),
		Image:        r.Image,
		Ingredients:  cleanAll(r.Ingredients),
		Instructions: cleanAll(r.Instructions),
		Host:         SourceHost(r.URL),
	}
	for _, t := range []timing{{"Prep", r.PrepTime}, {"Cook", r.CookTime}, {"Total", r.TotalTime}} {
		if t.Value != "" {
			c.Times = append(c.Times, timing{Label: t.Label, Value: HumanizeDuration(t.Value)})
		}
	}
	if c.Title == "" {
		c.Title = "Untitled recipe"
	}
	return c
}

// ForFormat returns the renderer registered under name.
func ForFormat(name string) (core.Renderer, error) {
	switch strings.ToLower(name) {
	case "pdf", "":
		return NewPDFRenderer(), nil
	case "html":
		return NewHTMLRenderer(), nil
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown card format %q (want pdf, html, markdown or json)", name)
	}
}
