package enginerpc

import (
	"context"
	"fmt"
	"runtime/debug"

	"go.uber.org/zap"
	"google.golang.org/grpc"

	errs "go_engine/internal/errors"
)

// RecoverUnary reports a panicking handler as an Internal status and keeps
// the server running.
func RecoverUnary(log *zap.SugaredLogger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp any, err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("rpc panicked", "method", info.FullMethod, "panic", r, "stack", string(debug.Stack()))
				resp = nil
				err = Status(fmt.Errorf("%w: panic in %s", errs.ErrInternal, info.FullMethod)).Err()
			}
		}()
		return handler(ctx, req)
	}
}
