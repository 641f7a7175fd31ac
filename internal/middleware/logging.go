package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// Request messages implementing slog.LogValuer are logged under "request",
// so each line carries the participant or group the call touched.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", req.Spec().Procedure,
				"duration_ms", time.Since(start).Milliseconds(),
			}
			if v, ok := req.Any().(slog.LogValuer); ok {
				attrs = append(attrs, "request", v)
			}

			var connectErr *connect.Error
			switch {
			case err == nil:
				slog.InfoContext(ctx, "RPC ok", append(attrs, "peer", req.Peer().Addr)...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				// Caller mistakes and refused transitions.
				slog.WarnContext(ctx, "RPC rejected", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				slog.ErrorContext(ctx, "RPC error", append(attrs, "error", err)...)
			}
			return resp, err
		}
	}
}
