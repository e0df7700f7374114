package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/core/render"
	"github.com/gaurav-prasanna/recipecard/server"
)

const shutdownTimeout = 10 * time.Second

type serveFlags struct {
	fetchFlags

	host string
	port string
}

func newServeCmd(a *app) *cobra.Command {
	f := &serveFlags{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recipe API over HTTP",
		Long: `Serve starts the HTTP API:

  GET  /health
  POST /api/scrape   {"url": "https://..."}
  GET  /api/card?url=https://...&format=pdf|html|markdown|json
  GET  /metrics`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, a, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.host, "host", "", "Listen host (default: RECIPECARD_HOST or 0.0.0.0)")
	flags.StringVar(&f.port, "port", "", "Listen port (default: RECIPECARD_PORT or 8080)")
	f.fetchFlags.register(flags)
	return cmd
}

func runServe(cmd *cobra.Command, a *app, f *serveFlags) error {
	f.fetchFlags.apply(a, cmd.Flags())
	if cmd.Flags().Changed("host") {
		a.cfg.Server.Host = f.host
	}
	if cmd.Flags().Changed("port") {
		a.cfg.Server.Port = f.port
	}
	if !a.cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	_, scraper := newPipeline(a)
	api := server.New(scraper, render.ForFormat, a.log.Named("http"))
	srv := api.HTTPServer(a.cfg.Server.Addr(), a.cfg.Fetch.Timeout)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serving on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
