package grpc

import (
	"context"
	"fmt"

	pkggrpc "github.com/0xsj/overwatch-pkg/grpc"
	"github.com/0xsj/overwatch-pkg/log"

	identityv1 "github.com/0xsj/overwatch-contracts/gen/go/identity/v1"
)

// healthService is the name reported to gRPC health checks.
const healthService = "identity.v1.IdentityService"

// ServerConfig holds configuration for the kernel gRPC server.
type ServerConfig struct {
	Host              string
	Port              int
	EnableReflection  bool
	EnableHealthCheck bool
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

// Server serves the kernel's IdentityService surface on the pkg grpc.Server.
type Server struct {
	server *pkggrpc.Server
	logger log.Logger
}

// NewServer creates a new kernel gRPC server with handler registered.
func NewServer(cfg ServerConfig, handler *Handler, logger log.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid server config: %w", err)
	}

	server, err := pkggrpc.NewServer(
		pkggrpc.WithServerAddress(cfg.Address()),
		pkggrpc.WithServerLogger(logger),
		pkggrpc.WithServerReflection(cfg.EnableReflection),
		pkggrpc.WithServerHealthCheck(cfg.EnableHealthCheck),
		pkggrpc.WithUnaryInterceptors(BuildUnaryInterceptors(logger)...),
		pkggrpc.WithStreamInterceptors(BuildStreamInterceptors(logger)...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create grpc server: %w", err)
	}

	server.RegisterService(&identityv1.IdentityService_ServiceDesc, handler)

	return &Server{
		server: server,
		logger: logger,
	}, nil
}

// Run marks the service as serving and blocks until the server stops.
func (s *Server) Run() error {
	s.logger.Info("running kernel gRPC server",
		log.String("address", s.server.Address()),
	)
	s.server.SetServingStatus(healthService, true)
	return s.server.Run()
}

// Stop reports NOT_SERVING to health checks, then stops gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping kernel gRPC server")
	s.server.SetServingStatus(healthService, false)
	return s.server.Stop(ctx)
}

// Address returns the server's listen address.
func (s *Server) Address() string {
	return s.server.Address()
}
