package facecam

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig defines how the logger is built
type LogConfig struct {
	// Level is one of debug, info, warn or error
	Level string
	// Development selects human readable console output instead of JSON
	Development bool
	// File additionally writes JSON logs to a rotated file when set
	File string
}

// NewLogger builds a structured logger from the config
func NewLogger(cfg LogConfig) (*zap.Logger, error) {

	level := zapcore.InfoLevel

	if cfg.Level != "" {
		var err error
		level, err = zapcore.ParseLevel(cfg.Level)

		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
	}

	zc := zap.NewProductionConfig()
	zc.EncoderConfig.TimeKey = "timestamp"

	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}

	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()

	if err != nil {
		return nil, err
	}

	if cfg.File == "" {
		return logger, nil
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	fileCore := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100,
			MaxAge:     7,
			MaxBackups: 3,
			LocalTime:  true,
			Compress:   true,
		}),
		level,
	)

	return logger.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return zapcore.NewTee(core, fileCore)
	})), nil
}

// WithCycle enriches the logger with the annotation cycle identifier
func WithCycle(logger *zap.Logger, cycleID string) *zap.Logger {
	return logger.With(zap.String("cycle_id", cycleID))
}

// orNop returns a no-op logger if logger is nil
func orNop(logger *zap.Logger) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}
