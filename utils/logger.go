package utils

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger *zap.Logger

// InitLogger sets up the shared zap logger. Output goes to a rotated file
// and, outside production, to stdout as well.
func InitLogger(level string, production bool) {
	fileWriter := zapcore.AddSync(&lumberjack.Logger{
		Filename:   "./logs/app.log",
		MaxSize:    50, // MB
		MaxBackups: 7,
		MaxAge:     14, // days
		Compress:   true,
	})

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	lvl := zap.InfoLevel
	if err := lvl.Set(level); err != nil {
		lvl = zap.InfoLevel
	}

	cores := []zapcore.Core{zapcore.NewCore(encoder, fileWriter, lvl)}
	if !production {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(os.Stdout), lvl))
	}

	Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

// GetLogger returns the shared logger, initializing a no-op fallback when
// InitLogger has not run (keeps tests quiet).
func GetLogger() *zap.Logger {
	if Logger == nil {
		Logger = zap.NewNop()
	}
	return Logger
}
