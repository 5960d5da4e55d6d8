// Package logger provides a structured, levelled logger built on log/slog.
//
// The key extension over plain slog is WithCtx: it returns a logger with the
// request ID already attached, so every log line from a handler is
// automatically correlated:
//
//	log := logger.WithCtx(r.Context())
//	log.Info("bill created", "bill_number", bill.BillNumber)
//	// → time=... level=INFO msg="bill created" request_id=a1b2c3d4 bill_number=BILL-...
package logger

import (
	"context"
	"log/slog"
	"os"

	"github.com/Akibsaiyad14/clothsbillingandinventory/config"
)

var L *slog.Logger

// mongoSink is set by EnableMongoSink so Shutdown can flush it.
var mongoSink *MongoHandler

func init() {
	L = slog.New(baseHandler())
	slog.SetDefault(L)
}

func baseHandler() slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelDebug}

	switch config.AppEnv() {
	case "production", "prod":
		opts.Level = slog.LevelInfo
		return slog.NewJSONHandler(os.Stdout, opts) // structured JSON for log aggregators
	default:
		return slog.NewTextHandler(os.Stdout, opts) // human-readable for dev
	}
}

// EnableMongoSink adds the async MongoDB handler next to the stdout handler.
// Called at boot when LOG_MONGO_URI is configured; a connection failure is
// reported to the caller and the stdout logger keeps working.
func EnableMongoSink() error {
	uri := config.LogMongoURI()
	if uri == "" {
		return nil
	}

	mh, err := NewMongoHandler(uri, config.LogMongoDB(), config.LogMongoColl())
	if err != nil {
		return err
	}

	mongoSink = mh
	L = slog.New(NewMultiHandler(baseHandler(), mh))
	slog.SetDefault(L)
	return nil
}

// Shutdown flushes the Mongo sink, if one is active.
func Shutdown() {
	if mongoSink != nil {
		mongoSink.Close()
	}
}

// ─────────────────────────────────────────────
// Context-aware logger
// ─────────────────────────────────────────────

// ctxKey is the unexported key used to store a per-request *slog.Logger.
type ctxKey struct{}

// WithCtx returns the *slog.Logger stored in ctx by the Logger middleware,
// pre-tagged with the request_id. Falls back to the base logger.
func WithCtx(ctx context.Context) *slog.Logger {
	if log, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && log != nil {
		return log
	}
	return L
}

// InjectLogger stores a *slog.Logger (pre-tagged with request_id) into ctx.
// Called by the Logger middleware — not usually needed in application code.
func InjectLogger(ctx context.Context, log *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, log)
}

// ─────────────────────────────────────────────
// Short-hand helpers (use base logger)
// ─────────────────────────────────────────────

// Debug logs at DEBUG level.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs at INFO level.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Warn logs at WARN level.
func Warn(msg string, args ...any) { L.Warn(msg, args...) }

// Error logs at ERROR level.
func Error(msg string, args ...any) { L.Error(msg, args...) }
