package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/recipecard/core"
)

var soup = core.Recipe{
	Title:        "Crème Soup",
	Description:  "Warm",
	Ingredients:  []string{"Water", "<b>Salt</b> &amp; pepper"},
	Instructions: []string{"Boil it.", "Serve."},
	PrepTime:     "PT5M",
	CookTime:     "PT1H30M",
	Yield:        "2 bowls",
	URL:          "https://www.cook.test/recipes/soup?ref=x",
}

func TestHumanizeDuration(t *testing.T) {
	assert.Equal(t, "30m", HumanizeDuration("PT30M"))
	assert.Equal(t, "1h30m", HumanizeDuration("PT1H30M"))
	assert.Equal(t, "", HumanizeDuration(""))
	assert.Equal(t, "p0dt1h", HumanizeDuration("P0DT1H"))
}

func TestSourceHost(t *testing.T) {
	assert.Equal(t, "www.cook.test", SourceHost("https://www.cook.test/recipes/soup"))
	assert.Equal(t, "cook.test", SourceHost("http://cook.test:8080/x"))
	assert.Equal(t, "", SourceHost("::bad"))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Salt & pepper", cleanText("<b>Salt</b> &amp; pepper"))
	assert.Equal(t, "a b", cleanText("  a \n\t b "))
	assert.Equal(t, []string{"x"}, cleanAll([]string{"<br>", "x", "  "}))
}

func TestNewCardDoesNotTouchRecord(t *testing.T) {
	before := soup
	before.Ingredients = append([]string(nil), soup.Ingredients...)

	c := newCard(soup)

	assert.Equal(t, before, soup)
	assert.Equal(t, []timing{{"Prep", "5m"}, {"Cook", "1h30m"}}, c.Times)
	assert.Equal(t, "www.cook.test", c.Host)
}

func TestNewCardUntitled(t *testing.T) {
	assert.Equal(t, "Untitled recipe", newCard(core.Recipe{}).Title)
}

func TestJSONRendererKeepsRecordVerbatim(t *testing.T) {
	data, err := NewJSONRenderer().Render(soup)
	require.NoError(t, err)

	var got core.Recipe
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, soup, got)
	assert.Contains(t, string(data), `"prepTime": "PT5M"`)
	assert.NotContains(t, string(data), `"image"`)
}

func TestHTMLRenderer(t *testing.T) {
	data, err := NewHTMLRenderer().Render(soup)
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<h1>Crème Soup</h1>")
	assert.Contains(t, out, "Yields: 2 bowls")
	assert.Contains(t, out, "Prep: 5m")
	assert.Contains(t, out, "Cook: 1h30m")
	assert.Contains(t, out, "<li>Salt &amp; pepper</li>")
	assert.Contains(t, out, "Source: www.cook.test")
	assert.Less(t, strings.Index(out, "Boil it."), strings.Index(out, "Serve."))
}

func TestMarkdownRenderer(t *testing.T) {
	data, err := NewMarkdownRenderer().Render(soup)
	require.NoError(t, err)
	out := string(data)

	assert.Contains(t, out, "# Crème Soup")
	assert.Contains(t, out, "Ingredients")
	assert.Contains(t, out, "Water")
	assert.Contains(t, out, "1. Boil it.")
	assert.Contains(t, out, "2. Serve.")
	assert.Contains(t, out, "Source: www.cook.test")
	assert.NotContains(t, out, "<li>")
}

func TestPDFRenderer(t *testing.T) {
	data, err := NewPDFRenderer().Render(soup)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestPDFRendererLongRecipe(t *testing.T) {
	long := soup
	long.Instructions = nil
	for i := 0; i < 60; i++ {
		long.Instructions = append(long.Instructions, strings.Repeat("Stir gently and keep watching the pot. ", 3))
	}
	data, err := NewPDFRenderer().Render(long)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestForFormat(t *testing.T) {
	for name, ext := range map[string]string{"pdf": ".pdf", "": ".pdf", "HTML": ".html", "md": ".md", "markdown": ".md", "json": ".json"} {
		r, err := ForFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, ext, r.Extension(), name)
		assert.NotEmpty(t, r.ContentType())
	}
	_, err := ForFormat("docx")
	assert.Error(t, err)
}
