// Package server exposes the recipe pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/core"
)

// Scraper turns a page URL into a recipe record.
type Scraper interface {
	Scrape(ctx context.Context, rawURL string) (core.Recipe, error)
}

// RendererFor picks a card renderer by format name.
type RendererFor func(format string) (core.Renderer, error)

// Server wraps the gin router and its dependencies.
type Server struct {
	router   *gin.Engine
	scraper  Scraper
	renderer RendererFor
	metrics  *Metrics
	log      *zap.Logger
}

// New creates a Server with all routes registered.
func New(scraper Scraper, renderer RendererFor, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		router:   gin.New(),
		scraper:  scraper,
		renderer: renderer,
		metrics:  NewMetrics(),
		log:      log,
	}
	s.router.Use(recovery(log), requestLogger(log), s.metrics.middleware())
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{})))

	api := s.router.Group("/api")
	api.POST("/scrape", s.scrape)
	api.GET("/card", s.card)
}

// Handler returns the router for use in an http.Server or tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Metrics returns the server's collectors.
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// HTTPServer builds an http.Server for addr with conservative timeouts.
// The write timeout leaves room for a slow upstream fetch.
func (s *Server) HTTPServer(addr string, fetchTimeout time.Duration) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      fetchTimeout + 30*time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
