package grpc

import (
	"context"

	"github.com/dmitrijs2005/bankaccounts/internal/common"
	"github.com/dmitrijs2005/bankaccounts/internal/server/auth"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// authorizationFromContext returns the first "authorization" metadata value.
func authorizationFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	values := md.Get(common.AuthorizationHeaderName)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// authorize runs the gate for a full method name and returns the context the
// handler should see.
func (s *GRPCServer) authorize(ctx context.Context, method string) (context.Context, error) {
	d := s.gate.Evaluate(method, authorizationFromContext(ctx))
	if !d.Admitted() {
		s.logger.Warn(ctx, "call rejected", "method", method, "reason", auth.RejectReason(d.Cause))
		return nil, status.Error(codes.Unauthenticated, common.ErrorUnauthenticated.Error())
	}
	if d.Public {
		return ctx, nil
	}
	return auth.WithPrincipal(ctx, d.Principal), nil
}

func (s *GRPCServer) unaryAuthInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {
	ctx, err := s.authorize(ctx, info.FullMethod)
	if err != nil {
		return nil, err
	}
	return handler(ctx, req)
}

// authStream overrides the context of an admitted stream.
type authStream struct {
	grpc.ServerStream
	ctx context.Context
}

func (a *authStream) Context() context.Context {
	return a.ctx
}

func (s *GRPCServer) streamAuthInterceptor(srv interface{}, ss grpc.ServerStream, info *grpc.StreamServerInfo, handler grpc.StreamHandler) error {
	ctx, err := s.authorize(ss.Context(), info.FullMethod)
	if err != nil {
		return err
	}
	return handler(srv, &authStream{ServerStream: ss, ctx: ctx})
}
