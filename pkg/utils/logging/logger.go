package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogsDir is the directory, relative to the working directory, that receives log files
const LogsDir = "logs"

// InitLogger builds a logger that writes human-readable output to stdout and JSON
// to logs/<env>_<timestamp>.log. The file always records debug entries; the
// console shows info and above unless verbose is set.
func InitLogger(env string, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(LogsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create logs directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath(env, time.Now()), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	consoleEncoderConfig := zap.NewDevelopmentEncoderConfig()
	consoleEncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	fileEncoderConfig := zap.NewProductionEncoderConfig()
	fileEncoderConfig.TimeKey = "timestamp"
	fileEncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	consoleLevel := zapcore.InfoLevel
	if verbose {
		consoleLevel = zapcore.DebugLevel
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoderConfig), zapcore.AddSync(os.Stdout), consoleLevel),
		zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoderConfig), zapcore.AddSync(logFile), zapcore.DebugLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if env != "" {
		logger = logger.With(zap.String("env", env))
	}

	return logger, nil
}

func logFilePath(env string, now time.Time) string {
	if env == "" {
		env = "default"
	}
	return filepath.Join(LogsDir, fmt.Sprintf("%s_%s.log", env, now.Format("2006-01-02_15-04-05")))
}
