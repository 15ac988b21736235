package middleware

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summaryCall struct {
	PersonID string
}

func (s summaryCall) LogAttrs() []any {
	return []any{"person_id", s.PersonID}
}

type summaryResult struct{}

func (summaryResult) LogAttrs() []any {
	return []any{"cached", true}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLoggingInterceptor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		level   string
		message string
		want    []string
	}{
		{
			name:    "success logs request and response fields",
			level:   "level=INFO",
			message: `msg="RPC ok"`,
			want:    []string{"person_id=alice", "cached=true"},
		},
		{
			name:    "client error",
			err:     connect.NewError(connect.CodeNotFound, errors.New("person not found")),
			level:   "level=WARN",
			message: `msg="RPC rejected"`,
			want:    []string{"person_id=alice", "code=not_found"},
		},
		{
			name:    "internal error",
			err:     errors.New("disk on fire"),
			level:   "level=ERROR",
			message: `msg="RPC failed"`,
			want:    []string{"person_id=alice", `error="disk on fire"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)
			handler := LoggingInterceptor()(func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
				if tt.err != nil {
					return nil, tt.err
				}
				return connect.NewResponse(&summaryResult{}), nil
			})

			_, err := handler(context.Background(), connect.NewRequest(&summaryCall{PersonID: "alice"}))
			require.ErrorIs(t, err, tt.err)

			out := buf.String()
			assert.Contains(t, out, tt.level)
			assert.Contains(t, out, tt.message)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
		})
	}
}
