package scrape

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gaurav-prasanna/recipecard/core"
	"github.com/gaurav-prasanna/recipecard/core/fetch"
	"github.com/gaurav-prasanna/recipecard/core/jsonld"
	"github.com/gaurav-prasanna/recipecard/core/locate"
	"github.com/gaurav-prasanna/recipecard/core/normalize"
)

const soupPage = `<!doctype html><html><head>
<script type="application/ld+json">{"@type":"Organization","name":"Cook Test"}</script>
<script type="application/ld+json">{"@context":"https://schema.org","@graph":[
  {"@type":"WebPage","name":"Soup page"},
  {"@type":"Recipe","name":"Soup","image":{"url":"https://cook.test/soup.jpg"},
   "recipeIngredient":["Water","Salt"],
   "recipeInstructions":[{"@type":"HowToStep","text":"Boil it."},{"@type":"HowToStep","text":"Salt it."}],
   "prepTime":"PT5M","cookTime":"PT20M","recipeYield":["2","2 bowls"]}
]}</script>
</head><body><h1>Soup</h1></body></html>`

func newScraper(t *testing.T) *Scraper {
	log := zaptest.NewLogger(t)
	return New(fetch.New(fetch.Options{}), locate.New(log, 0), normalize.New(), log)
}

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestScrapeEndToEnd(t *testing.T) {
	ts := serve(t, http.StatusOK, soupPage)
	url := ts.URL + "/recipes/soup"

	got, err := newScraper(t).Scrape(context.Background(), url)
	require.NoError(t, err)

	assert.Equal(t, core.Recipe{
		Title:        "Soup",
		Image:        "https://cook.test/soup.jpg",
		Ingredients:  []string{"Water", "Salt"},
		Instructions: []string{"Boil it.", "Salt it."},
		PrepTime:     "PT5M",
		CookTime:     "PT20M",
		Yield:        "2",
		URL:          url,
	}, got)
}

func TestScrapeUpstream404IsNotRecipeNotFound(t *testing.T) {
	ts := serve(t, http.StatusNotFound, soupPage)

	_, err := newScraper(t).Scrape(context.Background(), ts.URL)
	require.Error(t, err)

	var ce *core.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.KindUpstreamHTTP, ce.Kind)
	assert.Equal(t, http.StatusNotFound, ce.Status)
	assert.False(t, errors.Is(err, core.ErrRecipeNotFound))
}

func TestScrapeNoJSONLDIsRecipeNotFound(t *testing.T) {
	ts := serve(t, http.StatusOK, "<html><body><h1>Just a blog post</h1></body></html>")

	_, err := newScraper(t).Scrape(context.Background(), ts.URL)
	assert.Equal(t, core.KindRecipeNotFound, core.KindOf(err))
}

func TestScrapeInvalidRequest(t *testing.T) {
	for _, raw := range []string{"", "   ", "not a url", "/relative/path", "://missing"} {
		_, err := newScraper(t).Scrape(context.Background(), raw)
		assert.Equal(t, core.KindInvalidRequest, core.KindOf(err), "url %q", raw)
	}
}

func TestScrapeNetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := newScraper(t).Scrape(context.Background(), url)
	assert.Equal(t, core.KindNetwork, core.KindOf(err))
}

type stubFetcher struct {
	html      string
	truncated bool
}

func (f stubFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	return &core.FetchResult{URL: url, FinalURL: url, StatusCode: 200, HTML: f.html, Truncated: f.truncated}, nil
}

type panicNormalizer struct{}

func (panicNormalizer) Normalize(jsonld.Value) core.Recipe { panic("boom") }

type failingFetcher struct{}

func (failingFetcher) Fetch(context.Context, string) (*core.FetchResult, error) {
	return nil, errors.New("unexpected")
}

func TestScrapeRecoversPanics(t *testing.T) {
	s := New(stubFetcher{html: soupPage}, locate.New(nil, 0), panicNormalizer{}, zaptest.NewLogger(t))

	got, err := s.Scrape(context.Background(), "https://cook.test/soup")
	require.Error(t, err)
	assert.Equal(t, core.KindInternal, core.KindOf(err))
	assert.Empty(t, got.URL)
}

func TestScrapeWrapsForeignErrorsAsInternal(t *testing.T) {
	s := New(failingFetcher{}, locate.New(nil, 0), normalize.New(), nil)

	_, err := s.Scrape(context.Background(), "https://cook.test/soup")
	var ce *core.Error
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, core.KindInternal, ce.Kind)
}

func TestScrapeWarnsOnTruncatedBody(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	s := New(stubFetcher{html: "<html><head>", truncated: true}, locate.New(nil, 0), normalize.New(), zap.New(obs))

	_, err := s.Scrape(context.Background(), "https://cook.test/huge")
	assert.Equal(t, core.KindRecipeNotFound, core.KindOf(err))

	entries := logs.FilterMessageSnippet("truncated").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "https://cook.test/huge", entries[0].ContextMap()["url"])
}

func TestScrapeDoesNotWarnOnCompleteBody(t *testing.T) {
	obs, logs := observer.New(zap.WarnLevel)
	s := New(stubFetcher{html: soupPage}, locate.New(nil, 0), normalize.New(), zap.New(obs))

	_, err := s.Scrape(context.Background(), "https://cook.test/soup")
	require.NoError(t, err)
	assert.Zero(t, logs.Len())
}
