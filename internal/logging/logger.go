package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	sharedLogger *zap.SugaredLogger
	once         sync.Once
)

// New builds a console logger at the given level ("debug", "info", ...).
// Unknown levels fall back to info.
func New(level string) *zap.SugaredLogger {
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		MessageKey:     "M",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.0000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	lvl := zapcore.InfoLevel
	if level != "" {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			lvl = parsed
		}
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		lvl,
	)

	return zap.New(core).Sugar()
}

// Get returns the process-wide logger, configured from LOG_LEVEL on first use
func Get() *zap.SugaredLogger {
	once.Do(func() {
		sharedLogger = New(os.Getenv("LOG_LEVEL"))
	})
	return sharedLogger
}

// Sync flushes the shared logger if it was created
func Sync() {
	if sharedLogger != nil {
		_ = sharedLogger.Sync()
	}
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
