// Package logger provides the structured, levelled logger for gamestore,
// built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("checkout initiated", "entry_id", entry.ID)
//	// → time=... level=INFO msg="checkout initiated" request_id=a1b2c3d4 entry_id=7
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/gamestorehq/gamestore/config"
)

var (
	L     *slog.Logger
	sinkM *MongoHandler
)

func init() {
	Setup()
}

// Setup builds the base logger from config. Called once from init; callable
// again after config changes (tests, CLI commands that load .env late).
func Setup() {
	var handler slog.Handler

	switch config.AppEnv() {
	case "production", "prod":
		opts := &slog.HandlerOptions{Level: slog.LevelInfo}
		handler = slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		opts := &slog.HandlerOptions{Level: slog.LevelDebug}
		handler = slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}

	if uri := config.LogMongoURI(); uri != "" {
		if mh, err := NewMongoHandler(uri, "gamestore", "logs", handler); err != nil {
			slog.New(handler).Warn("mongo log sink disabled", "error", err)
		} else {
			handler = Tee(handler, mh)
			sinkM = mh
		}
	}

	L = slog.New(handler)
	slog.SetDefault(L)
}

// Close flushes the Mongo sink, if one is attached. Call on shutdown.
func Close() {
	if sinkM != nil {
		sinkM.Close()
		sinkM = nil
	}
}

type ctxKey struct{}

// WithCtx returns a *slog.Logger pre-tagged with the request_id found in ctx,
// or the base logger when the request middleware has not run.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a per-request *slog.Logger into ctx. Called by the
// Logger middleware; application code should not need it.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

func Debug(msg string, args ...any) { L.Debug(msg, args...) }
func Info(msg string, args ...any)  { L.Info(msg, args...) }
func Warn(msg string, args ...any)  { L.Warn(msg, args...) }
func Error(msg string, args ...any) { L.Error(msg, args...) }
