// Package grpc exposes the gRPC listener: the standard health service and
// server reflection, guarded by the same authentication gate as HTTP.
package grpc

import (
	"context"
	"net"

	"github.com/dmitrijs2005/bankaccounts/internal/logging"
	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// HealthCheckMethod is the only method reachable without a token.
const HealthCheckMethod = "/grpc.health.v1.Health/Check"

// PublicMethods is the gate list for the gRPC listener.
func PublicMethods() []string {
	return []string{HealthCheckMethod}
}

type GRPCServer struct {
	address string
	gate    *auth.Gate
	logger  logging.Logger
	health  *health.Server
	srv     *grpc.Server
}

func NewGRPCServer(a string, gate *auth.Gate, l logging.Logger) *GRPCServer {
	s := &GRPCServer{
		address: a,
		gate:    gate,
		logger:  l.With("module", "grpc_server"),
		health:  health.NewServer(),
	}

	s.srv = grpc.NewServer(
		grpc.ChainUnaryInterceptor(s.unaryAuthInterceptor),
		grpc.ChainStreamInterceptor(s.streamAuthInterceptor),
	)

	healthpb.RegisterHealthServer(s.srv, s.health)
	reflection.Register(s.srv)

	return s
}

// Run listens on the configured address and serves until ctx is done.
func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on lis until ctx is done, then stops gracefully.
func (s *GRPCServer) Serve(ctx context.Context, lis net.Listener) error {
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		s.srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", lis.Addr().String())

	// starts accepting incoming connections
	if err := s.srv.Serve(lis); err != nil {
		return err
	}

	return nil
}
