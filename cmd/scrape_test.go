package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/recipecard/core"
	"github.com/gaurav-prasanna/recipecard/core/output"
)

const soupPage = `<html><head>
<script type="application/ld+json">{"@type":"Recipe","name":"Soup","recipeIngredient":["Water","Salt"],"recipeInstructions":"Boil it.","prepTime":"PT5M"}</script>
</head><body><a href="/about">About</a></body></html>`

const aboutPage = `<html><body><a href="/soup">Soup</a></body></html>`

func newSite(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		switch r.URL.Path {
		case "/", "/about":
			fmt.Fprint(w, aboutPage)
		case "/soup":
			fmt.Fprint(w, soupPage)

		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--env_file", filepath.Join(t.TempDir(), "none.env")))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestScrapeWritesJSONCard(t *testing.T) {
	ts := newSite(t)
	dir := t.TempDir()

	out, _, err := execute(t, "scrape", ts.URL+"/soup", "--json", "--output_dir", dir)
	require.NoError(t, err)

	path := filepath.Join(dir, output.FlatName(ts.URL+"/soup")+".json")
	assert.Contains(t, out, "Written: "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var recipe core.Recipe
	require.NoError(t, json.Unmarshal(data, &recipe))
	assert.Equal(t, core.Recipe{
		Title:        "Soup",
		Ingredients:  []string{"Water", "Salt"},
		Instructions: []string{"Boil it."},
		PrepTime:     "PT5M",
		URL:          ts.URL + "/soup",
	}, recipe)
}

func TestScrapeDefaultsToPDF(t *testing.T) {
	ts := newSite(t)
	dir := t.TempDir()

	_, _, err := execute(t, "scrape", ts.URL+"/soup", "--output_dir", dir)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, output.FlatName(ts.URL+"/soup")+".pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestScrapeReportsMissingRecipe(t *testing.T) {
	ts := newSite(t)

	_, _, err := execute(t, "scrape", ts.URL+"/about", "--output_dir", t.TempDir())
	require.Error(t, err)
	assert.Equal(t, core.KindRecipeNotFound, core.KindOf(err))
}

func TestScrapeAllSkipsPagesWithoutRecipe(t *testing.T) {
	ts := newSite(t)
	dir := t.TempDir()

	out, _, err := execute(t, "scrape", ts.URL+"/", "--all", "--markdown", "--output_dir", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "Found 3 pages to process")
	assert.Contains(t, out, "1 written, 2 skipped, 0 failed")
	assert.FileExists(t, filepath.Join(dir, output.FlatName(ts.URL), "soup.md"))
}

func TestScrapeFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"two formats", []string{"scrape", "https://cook.test/soup", "--pdf", "--json"}},
		{"only and all", []string{"scrape", "https://cook.test/soup", "--only", "--all"}},
		{"missing scheme", []string{"scrape", "cook.test/soup"}},
		{"no url", []string{"scrape"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

// dropConnection closes the socket without writing a response.
func dropConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("response writer cannot hijack")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(err)
	}
	_ = conn.Close()
}

func TestScrapeAllReportsRetryableFailures(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			fmt.Fprint(w, `<html><body><a href="/soup">Soup</a><a href="/flaky">Flaky</a></body></html>`)
		case "/soup":
			fmt.Fprint(w, soupPage)
		case "/flaky":
			dropConnection(w)
		default:
			http.NotFound(w, r)
		}
	}))
	defer ts.Close()

	out, errOut, err := execute(t, "scrape", ts.URL+"/", "--all", "--json", "--output_dir", t.TempDir())
	require.NoError(t, err)

	assert.Contains(t, out, "1 written, 1 skipped, 1 failed")
	assert.Contains(t, out, "1 of the failures were network errors")
	assert.Contains(t, errOut, "network_error")
}
