// Package server exposes the identity search engine over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codeGROOVE-dev/doppel"
	"github.com/codeGROOVE-dev/doppel/profile"
)

// SearchFunc runs one identity search. It matches doppel.Search and exists
// so tests can stub the engine.
type SearchFunc func(ctx context.Context, q profile.Query) ([]profile.SearchResult, error)

// searchTimeout bounds one search end to end. Slow platforms time out
// individually well before this; it backstops the whole sweep.
const searchTimeout = 2 * time.Minute

// Option configures a Server.
type Option func(*Server)

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSearchOptions forwards engine options to every search.
func WithSearchOptions(opts ...doppel.Option) Option {
	return func(s *Server) { s.searchOpts = append(s.searchOpts, opts...) }
}

// WithSearchFunc replaces the engine entry point.
func WithSearchFunc(fn SearchFunc) Option {
	return func(s *Server) { s.search = fn }
}

// Server handles HTTP search requests.
type Server struct {
	logger     *slog.Logger
	search     SearchFunc
	searchOpts []doppel.Option
}

// New builds a Server.
func New(opts ...Option) *Server {
	s := &Server{logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	if s.search == nil {
		s.search = func(ctx context.Context, q profile.Query) ([]profile.SearchResult, error) {
			return doppel.Search(ctx, q, s.searchOpts...)
		}
	}
	return s
}

// Router constructs the Gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/healthz", s.handleHealth)
	r.POST("/api/search", s.handleSearch)
	return r
}

type ageRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type searchRequest struct {
	Query     string    `json:"query"`
	Location  string    `json:"location"`
	AgeRange  *ageRange `json:"age_range"`
	Gender    string    `json:"gender"`
	Platforms []string  `json:"platforms"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	q := profile.Query{
		Text:      req.Query,
		Location:  req.Location,
		Gender:    req.Gender,
		Platforms: req.Platforms,
	}
	if req.AgeRange != nil {
		q.AgeMin = req.AgeRange.Min
		q.AgeMax = req.AgeRange.Max
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), searchTimeout)
	defer cancel()

	results, err := s.search(ctx, q)
	switch {
	case errors.Is(err, profile.ErrEmptyQuery), errors.Is(err, profile.ErrNoPlatforms):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case err != nil:
		// Engine detail stays in the log; clients get a generic failure.
		s.logger.ErrorContext(c.Request.Context(), "search failed", "query", req.Query, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	if results == nil {
		results = []profile.SearchResult{}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"results": results,
		"query":   q,
	})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
