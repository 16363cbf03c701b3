package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Host              string
	Port              int
	ReadHeaderTimeout time.Duration
}

// Address returns the server address.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Validate validates the server configuration.
func (c ServerConfig) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Port)
	}
	return nil
}

// Server wraps the gin engine in an http.Server.
type Server struct {
	config     ServerConfig
	engine     *gin.Engine
	httpServer *http.Server
	listener   net.Listener
	logger     logging.Logger
}

// NewServer creates a new HTTP server with recovery and request logging.
func NewServer(cfg ServerConfig, logger logging.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(logger))

	return &Server{
		config: cfg,
		engine: engine,
		httpServer: &http.Server{
			Handler:           engine,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		logger: logger,
	}, nil
}

// Router returns the router plugins mount their routes on.
func (s *Server) Router() gin.IRouter {
	return s.engine
}

// Start listens and serves until Stop is called.
func (s *Server) Start() error {
	addr := s.config.Address()

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener

	for _, route := range s.engine.Routes() {
		s.logger.Debug("route registered", "method", route.Method, "path", route.Path)
	}
	s.logger.Info("http server starting", "address", addr)

	if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully stops the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("http server stopping")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Info("http server force stopping")
		_ = s.httpServer.Close()
		return err
	}
	s.logger.Info("http server stopped gracefully")
	return nil
}

// Address returns the server's listening address.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

func requestLogger(logger logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start).String(),
		)
	}
}
