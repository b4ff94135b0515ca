package interceptor

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"eurekastreams-backend/internal/logger"
)

// Unary returns a server interceptor that logs every unary RPC and turns a
// handler panic into an Internal error.
func Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				logger.Error("gRPC handler panicked", "method", info.FullMethod, "panic", r)
				resp, err = nil, status.Error(codes.Internal, "internal error")
			}
			if err != nil {
				logger.Warn("gRPC call failed", "method", info.FullMethod, "code", status.Code(err).String(), "duration", time.Since(start))
				return
			}
			logger.Debug("gRPC call", "method", info.FullMethod, "duration", time.Since(start))
		}()

		return handler(ctx, req)
	}
}
