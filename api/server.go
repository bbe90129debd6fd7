// Package api serves a self-contained stand-in for the video Q&A service.
// It speaks the same HTTP contract as the real backend, with canned answers
// and summaries, so the client can be exercised without a model or vector
// store.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"vidqa/api/store"
)

// Server holds the mock service's dependencies
type Server struct {
	store    store.Store
	metadata MetadataSource
	latency  time.Duration
	log      *slog.Logger
	now      func() time.Time
}

// Option customizes a Server
type Option func(*Server)

// WithMetadata sets the catalog used to title processed videos
func WithMetadata(m MetadataSource) Option {
	return func(s *Server) {
		if m != nil {
			s.metadata = m
		}
	}
}

// WithLatency delays every response except /health
func WithLatency(d time.Duration) Option {
	return func(s *Server) { s.latency = d }
}

// WithLogger sets the structured logger
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.now = now
		}
	}
}

// NewServer creates a mock service over st
func NewServer(st store.Store, opts ...Option) *Server {
	s := &Server{
		store:    st,
		metadata: PlaceholderMetadata{},
		log:      slog.New(slog.DiscardHandler),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRouter constructs a Gin engine with registered routes.
func NewRouter(s *Server) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.handleHealth)

	slow := r.Group("/", s.delay())
	s.registerVideoRoutes(slow)
	s.registerQuestionRoutes(slow)
	s.registerSummaryRoutes(slow)
	return r
}

func (s *Server) handleHealth(c *gin.Context) {
	if err := s.store.Ping(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// delay simulates model latency so clients can show pending states
func (s *Server) delay() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.latency <= 0 {
			c.Next()
			return
		}
		t := time.NewTimer(s.latency)
		defer t.Stop()
		select {
		case <-t.C:
			c.Next()
		case <-c.Request.Context().Done():
			c.Abort()
		}
	}
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// abortWithDetail mirrors the backend's {"detail": "..."} error body
func abortWithDetail(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, gin.H{"detail": detail})
}
