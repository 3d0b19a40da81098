package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config controls level and encoding of the service logger.
type Config struct {
	Level  string
	Format string
}

// New builds a zap logger. "debug" switches to the development config,
// "console"/"text" formats use the console encoder, everything else is JSON.
func New(cfg Config) *zap.Logger {
	var zapConfig zap.Config
	if strings.ToLower(cfg.Level) == "debug" {
		zapConfig = zap.NewDevelopmentConfig()
	} else {
		zapConfig = zap.NewProductionConfig()
		zapConfig.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level := strings.ToLower(cfg.Level)
	if level == "" {
		level = "info"
	}
	if err := zapConfig.Level.UnmarshalText([]byte(level)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q, using info: %v\n", cfg.Level, err)
		zapConfig.Level.SetLevel(zapcore.InfoLevel)
	}

	switch strings.ToLower(cfg.Format) {
	case "console", "text":
		zapConfig.Encoding = "console"
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapConfig.Encoding = "json"
	}

	log, err := zapConfig.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger, falling back to production defaults: %v\n", err)
		log, _ = zap.NewProduction()
	}
	return log
}

// OrNop lets constructors accept a nil logger.
func OrNop(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}
