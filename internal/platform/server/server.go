package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authapi "github.com/fintrack/household-budget/internal/auth/api"
	budgetapi "github.com/fintrack/household-budget/internal/budget/api"
)

// Server wraps the HTTP service.
type Server struct {
	engine *gin.Engine
	logger *zap.Logger
	port   string
	server *http.Server
}

// NewServer builds the gin engine: recovery, request logging, CORS, then
// the public auth routes and the owner-scoped budget routes behind the JWT
// middleware.
func NewServer(
	logger *zap.Logger,
	cfgPort string,
	cfgMode string,
	verifier authapi.TokenVerifier,
	authHandler *authapi.AuthHandler,
	accountHandler *budgetapi.AccountHandler,
	transactionHandler *budgetapi.TransactionHandler,
) *Server {
	if cfgMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())

	// Request logging through zap.
	r.Use(func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		logger.Info("HTTP Request",
			zap.Int("status", c.Writer.Status()),
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.String("query", query),
			zap.String("ip", c.ClientIP()),
			zap.Duration("cost", cost),
		)
	})

	// CORS for browser clients.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	v1 := r.Group("/api/v1")
	{
		v1.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "UP"})
		})

		// Public: register / login.
		authHandler.RegisterRoutes(v1)

		// Owner-scoped resources require a valid bearer token.
		protected := v1.Group("")
		protected.Use(authapi.RequireAuth(verifier))
		{
			accountHandler.RegisterRoutes(protected)
			transactionHandler.RegisterRoutes(protected)
		}
	}

	return &Server{
		engine: r,
		logger: logger,
		port:   cfgPort,
		// Built here so Shutdown is safe to call from another goroutine
		// even before Run has started listening.
		server: &http.Server{
			Addr:    ":" + cfgPort,
			Handler: r,
		},
	}
}

// Run starts the listener and blocks until it stops.
func (s *Server) Run() error {
	s.logger.Info("household budget API started", zap.String("port", s.port))
	return s.server.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
