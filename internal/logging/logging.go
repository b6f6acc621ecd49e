// Package logging attaches slog subscribers to the event bus. The handler
// itself never logs; everything observable arrives through events.
package logging

import (
	"context"
	"log/slog"

	eventbus "github.com/gqlgate/gqlgate/internal/eventbus"
	events "github.com/gqlgate/gqlgate/internal/events"
	reqid "github.com/gqlgate/gqlgate/internal/reqid"
)

// Attach subscribes access and operation logging to the global event bus and
// returns an unsubscribe function.
func Attach(log *slog.Logger) (unsubscribe func()) {
	unsubs := []func(){
		eventbus.Subscribe(func(ctx context.Context, e events.HTTPFinish) {
			rid, _ := reqid.FromContext(ctx)
			log.LogAttrs(ctx, slog.LevelInfo, "http request",
				slog.Int64("request_id", rid),
				slog.String("method", e.Request.Method),
				slog.String("path", e.Request.URL.Path),
				slog.Int("status", e.Status),
				slog.Duration("duration", e.Duration),
			)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.GraphQLFinish) {
			rid, _ := reqid.FromContext(ctx)
			level := slog.LevelDebug
			if len(e.Errors) > 0 {
				level = slog.LevelWarn
			}
			log.LogAttrs(ctx, level, "graphql operation",
				slog.Int64("request_id", rid),
				slog.String("operation", e.OperationName),
				slog.String("type", e.OperationType),
				slog.Int("errors", len(e.Errors)),
				slog.Duration("duration", e.Duration),
			)
		}),
		eventbus.Subscribe(func(ctx context.Context, e events.RequestRejected) {
			rid, _ := reqid.FromContext(ctx)
			log.LogAttrs(ctx, slog.LevelWarn, "request rejected",
				slog.Int64("request_id", rid),
				slog.String("code", e.Code),
				slog.Int("status", e.Status),
				slog.String("message", e.Message),
			)
		}),
	}
	return func() {
		for _, u := range unsubs {
			u()
		}
	}
}
