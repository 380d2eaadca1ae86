package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var Logger = zap.NewNop()

// InitializeLogger swaps the no-op logger for a real one.
func InitializeLogger(production bool) {
	var err error
	var logger *zap.Logger
	if production {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Logger = logger
}

// Close flushes buffered entries before a Lambda freezes.
func Close() {
	_ = Logger.Sync()
}

func Info(msg string, args ...zapcore.Field) {
	Logger.Info(msg, args...)
}

func Warn(msg string, args ...zapcore.Field) {
	Logger.Warn(msg, args...)
}

func Error(msg string, args ...zapcore.Field) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...zapcore.Field) {
	Logger.Debug(msg, args...)
}
