// Package server assembles the gin engine and the http.Server around it.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"blogapi/internal/auth"
	"blogapi/internal/comments"
	"blogapi/internal/config"
	"blogapi/internal/httpx"
	"blogapi/internal/likes"
	"blogapi/internal/posts"
)

const serviceName = "blog-api"

// HealthChecker reports the state of a backing dependency.
type HealthChecker interface {
	Health(ctx context.Context) map[string]string
}

// Handlers groups the resource handlers mounted under /api.
type Handlers struct {
	Posts    *posts.Handler
	Comments *comments.Handler
	Likes    *likes.Handler
}

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg      config.HTTPConfig
	secret   []byte
	logger   *slog.Logger
	db       HealthChecker
	handlers Handlers
}

// New creates a server. db may be nil when no database is in use.
func New(cfg config.HTTPConfig, secret []byte, logger *slog.Logger, db HealthChecker, handlers Handlers) *Server {
	return &Server{cfg: cfg, secret: secret, logger: logger, db: db, handlers: handlers}
}

// RegisterRoutes builds the gin engine with middleware and all routes.
func (s *Server) RegisterRoutes() http.Handler {
	r := gin.New()

	r.Use(gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic))
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware(s.logger))
	r.Use(cors.New(s.corsConfig()))

	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	api.Use(auth.Middleware(s.secret, s.logger))
	{
		posts.RegisterRoutes(api, s.handlers.Posts)
		comments.RegisterRoutes(api, s.handlers.Comments)
		likes.RegisterRoutes(api, s.handlers.Likes)
	}

	return r
}

// recoverPanic logs a handler panic and answers with the JSON error envelope.
func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.logger.ErrorContext(c.Request.Context(), "Panic recovered",
		slog.Any("panic", recovered),
		slog.String("method", c.Request.Method),
		slog.String("path", c.Request.URL.Path),
		slog.String("request_id", c.GetString("request_id")),
	)
	httpx.Abort(c, http.StatusInternalServerError, "internal server error")
}

func (s *Server) corsConfig() cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Accept", "Authorization", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(s.cfg.AllowOrigins) == 0 || (len(s.cfg.AllowOrigins) == 1 && s.cfg.AllowOrigins[0] == "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = s.cfg.AllowOrigins
	}
	return cfg
}

func (s *Server) healthHandler(c *gin.Context) {
	response := gin.H{
		"status":  "healthy",
		"service": serviceName,
	}
	status := http.StatusOK

	if s.db != nil {
		dbHealth := s.db.Health(c.Request.Context())
		response["database"] = dbHealth
		if dbHealth["status"] != "up" {
			response["status"] = "unhealthy"
			status = http.StatusServiceUnavailable
		}
	}

	c.JSON(status, response)
}

// HTTPServer configures an http.Server serving the routes.
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.RegisterRoutes(),
		ReadTimeout:       s.cfg.ReadTimeout,
		WriteTimeout:      s.cfg.WriteTimeout,
		IdleTimeout:       s.cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
