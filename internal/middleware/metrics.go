package middleware

import (
	"context"

	"connectrpc.com/connect"
)

// RPCObserver records the outcome of an RPC. *metrics.Metrics satisfies it.
type RPCObserver interface {
	ObserveRPC(procedure, code string)
}

// MetricsInterceptor counts every RPC by procedure and result code. Successful
// calls are recorded with code "ok".
func MetricsInterceptor(obs RPCObserver) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			obs.ObserveRPC(req.Spec().Procedure, code)

			return resp, err
		}
	}
}
