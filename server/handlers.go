package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/recipecard/core"
	"github.com/gaurav-prasanna/recipecard/core/output"
)

const (
	notFoundMessage = "No recipe data found on this page (looking for ld+json Recipe)"
	internalMessage = "Internal Server Error"
)

type scrapeRequest struct {
	URL string `json:"url"`
}

type errorBody struct {
	Error  string    `json:"error"`
	Kind   core.Kind `json:"kind"`
	Status int       `json:"status,omitempty"`
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// scrape handles POST /api/scrape.
func (s *Server) scrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.fail(c, core.InvalidRequest("URL is required"))
		return
	}

	recipe, ok := s.run(c, req.URL)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// card handles GET /api/card and returns the rendered card.
func (s *Server) card(c *gin.Context) {
	renderer, err := s.renderer(c.Query("format"))
	if err != nil {
		s.fail(c, core.InvalidRequest(err.Error()))
		return
	}

	rawURL := strings.TrimSpace(c.Query("url"))
	recipe, ok := s.run(c, rawURL)
	if !ok {
		return
	}

	data, err := renderer.Render(recipe)
	if err != nil {
		s.fail(c, core.Internal(err))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", output.FlatName(rawURL)+renderer.Extension()))
	c.Data(http.StatusOK, renderer.ContentType(), data)
}

func (s *Server) run(c *gin.Context, rawURL string) (core.Recipe, bool) {
	recipe, err := s.scraper.Scrape(c.Request.Context(), strings.TrimSpace(rawURL))
	if err != nil {
		s.metrics.RecordScrape(string(core.KindOf(err)))
		s.fail(c, err)
		return core.Recipe{}, false
	}
	s.metrics.RecordScrape("ok")
	return recipe, true
}

// fail writes the error response for err.
func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	status, body := errorResponse(err)
	if body.Kind == core.KindInternal {
		s.log.Error("request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, body)
}

// errorResponse maps a pipeline error to an HTTP status and body.
func errorResponse(err error) (int, errorBody) {
	var e *core.Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError, errorBody{Error: internalMessage, Kind: core.KindInternal}
	}

	switch e.Kind {
	case core.KindInvalidRequest:
		return http.StatusBadRequest, errorBody{Error: e.Message, Kind: e.Kind}
	case core.KindUpstreamHTTP:
		status := e.Status
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		return status, errorBody{Error: "Failed to fetch URL: " + e.Reason, Kind: e.Kind, Status: e.Status}
	case core.KindNetwork:
		cause := e.Message
		if e.Err != nil {
			cause = e.Err.Error()
		}
		return http.StatusBadGateway, errorBody{Error: "Failed to fetch URL: " + cause, Kind: e.Kind}
	case core.KindRecipeNotFound:
		return http.StatusNotFound, errorBody{Error: notFoundMessage, Kind: e.Kind}
	default:
		return http.StatusInternalServerError, errorBody{Error: internalMessage, Kind: core.KindInternal}
	}
}
