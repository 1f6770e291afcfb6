package logger

import (
	"context"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type loggerKey string

const LoggerKey loggerKey = "logger"

var fallback *zap.SugaredLogger

func init() {
	l, err := zap.NewProduction()
	if err != nil {
		log.Fatalln("logger: can't build fallback logger:", err)
	}
	fallback = l.Sugar()
}

// Builds the root logger for the process. Level is one of
// debug|info|warn|error|fatal, anything else falls back to info.
func Run(level string) *zap.SugaredLogger {
	lvl := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(level); err == nil {
		lvl = parsed
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		log.Fatalln("logger: can't build zap logger:", err)
	}
	fallback = l.Sugar()
	return fallback
}

// Returns the request-scoped logger from the context. Handlers always
// call it with a request context, so the trace id set by the logging
// middleware travels with every message.
func Log(ctx context.Context) *zap.SugaredLogger {
	if l, ok := ctx.Value(LoggerKey).(*zap.SugaredLogger); ok && l != nil {
		return l
	}
	return fallback
}

func With(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, LoggerKey, l)
}
