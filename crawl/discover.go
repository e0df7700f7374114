// Package crawl discovers candidate recipe pages on a site for batch runs.
// It reads sitemap.xml first and falls back to a breadth-first link crawl,
// keeping discovery separate from the scrape pipeline.
package crawl

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/core"
)

// DefaultLimit caps the number of discovered pages.
const DefaultLimit = 100

type locEntry struct {
	Loc string `xml:"loc"`
}

// sitemapDoc decodes both <urlset> and <sitemapindex> roots.
type sitemapDoc struct {
	XMLName  xml.Name
	URLs     []locEntry `xml:"url"`
	Sitemaps []locEntry `xml:"sitemap"`
}

// Discoverer lists same-host pages reachable from a start URL.
type Discoverer struct {
	fetcher core.Fetcher
	limit   int
	log     *zap.Logger
}

// NewDiscoverer creates a Discoverer. limit <= 0 selects DefaultLimit.
func NewDiscoverer(fetcher core.Fetcher, limit int, log *zap.Logger) *Discoverer {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Discoverer{fetcher: fetcher, limit: limit, log: log}
}

// Discover returns at most limit canonical page URLs on baseURL's host.
// A link crawl always lists the start URL first.
func (d *Discoverer) Discover(ctx context.Context, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parsing base URL %q: invalid URL", baseURL)
	}

	sitemap := base.Scheme + "://" + base.Host + "/sitemap.xml"
	urls, err := d.fromSitemap(ctx, sitemap, base.Host)
	if err == nil && len(urls) > 0 {
		d.log.Info("pages discovered from sitemap", zap.String("sitemap", sitemap), zap.Int("pages", len(urls)))
		return urls, nil
	}
	if err != nil {
		d.log.Debug("sitemap unavailable, crawling links", zap.String("sitemap", sitemap), zap.Error(err))
	}

	urls = d.fromLinks(ctx, base)
	d.log.Info("pages discovered from links", zap.String("start", baseURL), zap.Int("pages", len(urls)))
	return urls, nil
}

// fromSitemap reads a sitemap, following one level of sitemap index.
func (d *Discoverer) fromSitemap(ctx context.Context, sitemapURL, host string) ([]string, error) {
	doc, err := d.readSitemap(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	found := newFrontier(d.limit)
	add := func(entries []locEntry) {
		for _, e := range entries {
			loc := strings.TrimSpace(e.Loc)
			if sameHost(loc, host) && !isAsset(loc) {
				found.push(canonical(loc))
			}
		}
	}

	add(doc.URLs)
	for _, child := range doc.Sitemaps {
		if len(found.all()) >= d.limit {
			break
		}
		sub, err := d.readSitemap(ctx, strings.TrimSpace(child.Loc))
		if err != nil {
			d.log.Debug("skipping child sitemap", zap.String("sitemap", child.Loc), zap.Error(err))
			continue
		}
		add(sub.URLs)
	}
	return found.all(), nil
}

func (d *Discoverer) readSitemap(ctx context.Context, sitemapURL string) (*sitemapDoc, error) {
	res, err := d.fetcher.Fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}

	dec := xml.NewDecoder(strings.NewReader(res.HTML))
	// The fetcher already decoded the body to UTF-8.
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }

	var doc sitemapDoc
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding sitemap %s: %w", sitemapURL, err)
	}
	return &doc, nil
}

// fromLinks crawls breadth-first from base, bounded by the limit.
func (d *Discoverer) fromLinks(ctx context.Context, base *url.URL) []string {
	queue := newFrontier(d.limit)
	queue.push(canonical(base.String()))

	for {
		if ctx.Err() != nil {
			break
		}
		current, ok := queue.pop()
		if !ok {
			break
		}

		res, err := d.fetcher.Fetch(ctx, current)
		if err != nil {
			continue // a dead page must not stop discovery
		}
		// Relative links resolve against where a redirect landed.
		pageURL := current
		if res.FinalURL != "" {
			pageURL = res.FinalURL
		}
		for _, link := range links(res.HTML, pageURL) {
			if sameHost(link, base.Host) && !isAsset(link) {
				queue.push(canonical(link))
			}
		}
	}
	return queue.all()
}

// links returns the absolute href of every anchor on the page.
func links(html, pageURL string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	var out []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		if abs := resolve(s.AttrOr("href", ""), base); abs != "" {
			out = append(out, abs)
		}
	})
	return out
}
