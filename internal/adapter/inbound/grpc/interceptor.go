package grpc

import (
	"google.golang.org/grpc"

	"github.com/0xsj/overwatch-pkg/grpc/middleware"
	"github.com/0xsj/overwatch-pkg/log"
)

// BuildUnaryInterceptors builds the complete unary interceptor chain with correct order.
func BuildUnaryInterceptors(logger log.Logger) []grpc.UnaryServerInterceptor {
	return []grpc.UnaryServerInterceptor{
		middleware.UnaryServerRecoveryWithLogger(logger), // 1. Outermost - catch panics
		middleware.UnaryServerRequestID(),                // 2. Generate/extract request ID
		middleware.UnaryServerLogging(logger),            // 3. Log with request ID
		UnaryServerCaller(),                              // 4. Caller identity
	}
}

// BuildStreamInterceptors builds the complete stream interceptor chain with correct order.
func BuildStreamInterceptors(logger log.Logger) []grpc.StreamServerInterceptor {
	return []grpc.StreamServerInterceptor{
		middleware.StreamServerRecoveryWithLogger(logger), // 1. Outermost - catch panics
		middleware.StreamServerRequestID(),                // 2. Generate/extract request ID
		middleware.StreamServerLogging(logger),            // 3. Log with request ID
		StreamServerCaller(),                              // 4. Caller identity
	}
}
