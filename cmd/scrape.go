package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/core"
	"github.com/gaurav-prasanna/recipecard/core/output"
	"github.com/gaurav-prasanna/recipecard/core/render"
	"github.com/gaurav-prasanna/recipecard/core/scrape"
	"github.com/gaurav-prasanna/recipecard/crawl"
)

type scrapeFlags struct {
	fetchFlags

	only      bool
	all       bool
	pdf       bool
	html      bool
	markdown  bool
	json      bool
	outputDir string
	limit     int
}

func newScrapeCmd(a *app) *cobra.Command {
	f := &scrapeFlags{}
	cmd := &cobra.Command{
		Use:   "scrape <url>",
		Short: "Render the recipe on a page as a printable card",
		Long: `Scrape fetches a page, finds its schema.org Recipe JSON-LD and writes a card
in the chosen format (PDF by default).

Examples:
  recipecard scrape https://example.com/pea-soup
  recipecard scrape https://example.com/pea-soup --markdown --output_dir ./cards
  recipecard scrape https://example.com --all --limit 50 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, a, f, args[0])
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&f.only, "only", false, "Scrape only the given URL (default)")
	flags.BoolVar(&f.all, "all", false, "Scrape every page discovered on the site")

	flags.BoolVar(&f.pdf, "pdf", false, "Output a PDF card (default)")
	flags.BoolVar(&f.html, "html", false, "Output a printable HTML card")
	flags.BoolVar(&f.markdown, "markdown", false, "Output a Markdown card")
	flags.BoolVar(&f.json, "json", false, "Output the recipe record as JSON")

	flags.StringVar(&f.outputDir, "output_dir", "", "Output directory (default: current directory)")
	flags.IntVar(&f.limit, "limit", crawl.DefaultLimit, "Maximum pages discovered with --all")
	f.fetchFlags.register(flags)
	return cmd
}

func runScrape(cmd *cobra.Command, a *app, f *scrapeFlags, rawURL string) error {
	if err := f.validate(); err != nil {
		return err
	}
	if err := scrape.Validate(rawURL); err != nil {
		return err
	}
	f.fetchFlags.apply(a, cmd.Flags())
	if cmd.Flags().Changed("limit") {
		a.cfg.Crawl.Limit = f.limit
	}

	renderer, err := render.ForFormat(f.format())
	if err != nil {
		return err
	}
	writer, err := output.New(f.outputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	fetcher, scraper := newPipeline(a)
	b := &batch{
		scraper:  scraper,
		renderer: renderer,
		writer:   writer,
		log:      a.log,
		out:      cmd.OutOrStdout(),
		errOut:   cmd.ErrOrStderr(),
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if f.all {
		discoverer := crawl.NewDiscoverer(fetcher, a.cfg.Crawl.Limit, a.log.Named("crawl"))
		return b.runAll(ctx, discoverer, rawURL)
	}
	return b.runOnly(ctx, rawURL)
}

// validate checks that at most one output format is chosen and that
// --only and --all are not both specified.
func (f *scrapeFlags) validate() error {
	if f.only && f.all {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	formatCount := 0
	for _, set := range []bool{f.pdf, f.html, f.markdown, f.json} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

func (f *scrapeFlags) format() string {
	switch {
	case f.html:
		return "html"
	case f.markdown:
		return "markdown"
	case f.json:
		return "json"
	default:
		return "pdf"
	}
}

// batch renders and writes cards for one or many pages.
type batch struct {
	scraper  *scrape.Scraper
	renderer core.Renderer
	writer   *output.Writer
	log      *zap.Logger
	out      io.Writer
	errOut   io.Writer
}

// runOnly processes a single URL.
func (b *batch) runOnly(ctx context.Context, rawURL string) error {
	data, err := b.card(ctx, rawURL)
	if err != nil {
		return err
	}
	path, err := b.writer.WriteCard(rawURL, data, b.renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(b.out, "✓ Written: %s\n", path)
	return nil
}

// runAll discovers the site's pages and writes a card for each one
// that carries a recipe. Pages without one are skipped, not failed.
func (b *batch) runAll(ctx context.Context, discoverer *crawl.Discoverer, rawURL string) error {
	fmt.Fprintf(b.out, "Discovering pages from %s...\n", rawURL)

	urls, err := discoverer.Discover(ctx, rawURL)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	fmt.Fprintf(b.out, "Found %d pages to process\n", len(urls))

	var written, skipped, failed, retryable int
	for i, pageURL := range urls {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(b.out, "[%d/%d] Processing %s\n", i+1, len(urls), pageURL)

		data, err := b.card(ctx, pageURL)
		if errors.Is(err, core.ErrRecipeNotFound) {
			fmt.Fprintf(b.out, "  - Skipped: no recipe\n")
			skipped++
			continue
		}
		if err != nil {
			fmt.Fprintf(b.errOut, "  ✗ Error: %v\n", err)
			failed++
			if isRetryable(err) {
				retryable++
			}
			continue
		}

		path, err := b.writer.WriteBatch(pageURL, data, b.renderer.Extension())
		if err != nil {
			fmt.Fprintf(b.errOut, "  ✗ Write error: %v\n", err)
			failed++
			continue
		}
		fmt.Fprintf(b.out, "  ✓ Written: %s\n", path)
		written++
	}

	fmt.Fprintf(b.out, "\n%d written, %d skipped, %d failed\n", written, skipped, failed)
	if retryable > 0 {
		fmt.Fprintf(b.out, "%d of the failures were network errors; rerun to retry them\n", retryable)
	}
	b.log.Info("batch finished",
		zap.String("start", rawURL),
		zap.Int("written", written),
		zap.Int("skipped", skipped),
		zap.Int("failed", failed),
		zap.Int("retryable", retryable))
	return nil
}

// card scrapes one page and renders it.
func (b *batch) card(ctx context.Context, rawURL string) ([]byte, error) {
	recipe, err := b.scraper.Scrape(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	data, err := b.renderer.Render(recipe)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return data, nil
}

func isRetryable(err error) bool {
	var ce *core.Error
	return errors.As(err, &ce) && ce.Retryable()
}
