// Package attr provides the slog attributes used across services.
package attr

import (
	"context"
	"log/slog"

	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
)

func String(key, value string) slog.Attr { return slog.String(key, value) }

func Int(key string, value int) slog.Attr { return slog.Int(key, value) }

func Int64(key string, value int64) slog.Attr { return slog.Int64(key, value) }

func Any(key string, value any) slog.Attr { return slog.Any(key, value) }

// Error returns the attribute for err under the "error" key.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.String("error", err.Error())
}

// ExtractCorrelationID returns the request id of ctx, falling back to the
// trace id when the call did not originate from an HTTP request.
func ExtractCorrelationID(ctx context.Context) slog.Attr {
	if id := middleware.GetReqID(ctx); id != "" {
		return slog.String("correlation_id", id)
	}
	if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
		return slog.String("correlation_id", sc.TraceID().String())
	}
	return slog.String("correlation_id", "")
}
