// Package cmd implements the recipecard CLI using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/config"
	"github.com/gaurav-prasanna/recipecard/logging"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	envFile  string
	logLevel string
	logDev   bool

	cfg *config.Config
	log *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "recipecard",
		Short: "recipecard turns recipe web pages into printable cards",
		Long: `recipecard fetches a recipe page, reads its schema.org Recipe JSON-LD
and renders a compact 4x6 card as PDF, HTML, Markdown or JSON.

Usage:
  recipecard scrape <url> [flags]
  recipecard serve [flags]`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env_file", "", "Read settings from this .env file (default: ./.env if present)")
	root.PersistentFlags().StringVar(&a.logLevel, "log_level", "", "Log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&a.logDev, "log_dev", false, "Human-readable console logs")

	root.AddCommand(newScrapeCmd(a), newServeCmd(a))
	return root
}

// setup loads configuration and builds the logger. Flags override the environment.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	var files []string
	if a.envFile != "" {
		files = append(files, a.envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log_level") {
		cfg.Logging.Level = a.logLevel
	}
	if flags.Changed("log_dev") {
		cfg.Logging.Development = a.logDev
	}

	log, err := logging.New(cfg.Logging.Logger())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.cfg = cfg
	a.log = log
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
