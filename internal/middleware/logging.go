package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LogAttrser is implemented by messages that add their own fields to the
// RPC log line, such as the cycle and person filter of a summary call.
type LogAttrser interface {
	LogAttrs() []any
}

func messageAttrs(msg any) []any {
	if m, ok := msg.(LogAttrser); ok {
		return m.LogAttrs()
	}
	return nil
}

// LoggingInterceptor returns a Connect interceptor that logs every RPC with
// its procedure, duration and outcome, plus whatever the request and
// response messages contribute through LogAttrser.
//
// Client mistakes (any code but Internal) log at Warn, everything else that
// fails at Error.
func LoggingInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			attrs := append([]any{"procedure", req.Spec().Procedure}, messageAttrs(req.Any())...)

			resp, err := next(ctx, req)

			attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())
			if err == nil {
				if resp != nil {
					attrs = append(attrs, messageAttrs(resp.Any())...)
				}
				slog.InfoContext(ctx, "RPC ok", attrs...)
				return resp, nil
			}

			var connectErr *connect.Error
			if errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal {
				attrs = append(attrs, "code", connectErr.Code(), "error", connectErr.Message())
				slog.WarnContext(ctx, "RPC rejected", attrs...)
			} else {
				attrs = append(attrs, "error", err)
				slog.ErrorContext(ctx, "RPC failed", attrs...)
			}
			return resp, err
		}
	}
}
