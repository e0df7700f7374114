package cmd

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/gaurav-prasanna/recipecard/core/fetch"
	"github.com/gaurav-prasanna/recipecard/core/locate"
	"github.com/gaurav-prasanna/recipecard/core/normalize"
	"github.com/gaurav-prasanna/recipecard/core/scrape"
)

// fetchFlags are shared by scrape and serve.
type fetchFlags struct {
	timeout   time.Duration
	userAgent string
	maxDepth  int
}

func (f *fetchFlags) register(flags *pflag.FlagSet) {
	flags.DurationVar(&f.timeout, "timeout", fetch.DefaultTimeout, "Page fetch timeout")
	flags.StringVar(&f.userAgent, "user_agent", "", "User-Agent header sent when fetching (default: desktop Chrome)")
	flags.IntVar(&f.maxDepth, "max_depth", locate.DefaultMaxDepth, "Maximum JSON-LD nesting searched for a Recipe")
}

// apply copies explicitly set flags over the loaded configuration.
func (f *fetchFlags) apply(a *app, flags *pflag.FlagSet) {
	if flags.Changed("timeout") {
		a.cfg.Fetch.Timeout = f.timeout
	}
	if flags.Changed("user_agent") {
		a.cfg.Fetch.UserAgent = f.userAgent
	}
	if flags.Changed("max_depth") {
		a.cfg.Locator.MaxDepth = f.maxDepth
	}
}

// newPipeline builds the fetcher and the scraper around it.
func newPipeline(a *app) (*fetch.HTTPFetcher, *scrape.Scraper) {
	fetcher := fetch.New(a.cfg.Fetch.Options())
	scraper := scrape.New(
		fetcher,
		locate.New(a.log.Named("locate"), a.cfg.Locator.MaxDepth),
		normalize.New(),
		a.log.Named("scrape"),
	)
	return fetcher, scraper
}
