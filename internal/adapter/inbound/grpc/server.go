package grpc

import (
	"context"
	"fmt"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/0xsj/overwatch-sso-instagram/internal/port/outbound/logging"
)

// ServiceName is the name reported to health checks.
const ServiceName = "sso.instagram"

// ServerConfig holds configuration for the gRPC side server.
type ServerConfig struct {
	Host             string
	Port             int
	EnableReflection bool
}

// Address returns the server address.
func (c ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Server exposes grpc.health.v1 and, optionally, reflection for
// orchestrators and operators.
type Server struct {
	config     ServerConfig
	grpcServer *grpc.Server
	health     *health.Server
	listener   net.Listener
	logger     logging.Logger
}

// NewServer creates a new gRPC server.
func NewServer(config ServerConfig, logger logging.Logger, opts ...grpc.ServerOption) *Server {
	grpcServer := grpc.NewServer(opts...)

	healthServer := health.NewServer()
	grpc_health_v1.RegisterHealthServer(grpcServer, healthServer)
	healthServer.SetServingStatus(ServiceName, grpc_health_v1.HealthCheckResponse_NOT_SERVING)

	if config.EnableReflection {
		reflection.Register(grpcServer)
	}

	return &Server{
		config:     config,
		grpcServer: grpcServer,
		health:     healthServer,
		logger:     logger,
	}
}

// Listen binds the listening socket.
func (s *Server) Listen() error {
	addr := s.config.Address()
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	s.listener = listener
	return nil
}

// Start serves on the bound listener, binding one first if needed.
func (s *Server) Start() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}

	s.logger.Info("gRPC server starting",
		"address", s.listener.Addr().String(),
		"reflection", s.config.EnableReflection,
	)

	return s.grpcServer.Serve(s.listener)
}

// SetServing flips the reported health of the service.
func (s *Server) SetServing(serving bool) {
	status := grpc_health_v1.HealthCheckResponse_NOT_SERVING
	if serving {
		status = grpc_health_v1.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus(ServiceName, status)
}

// Stop gracefully stops the gRPC server.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("gRPC server stopping")
	s.health.Shutdown()

	stopped := make(chan struct{})

	go func() {
		s.grpcServer.GracefulStop()
		close(stopped)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("gRPC server force stopping")
		s.grpcServer.Stop()
		return ctx.Err()
	case <-stopped:
		s.logger.Info("gRPC server stopped gracefully")
		return nil
	}
}

// Address returns the server's listening address.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}
