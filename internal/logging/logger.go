// Package logging configures the process-wide logrus logger. The TUI owns the
// terminal, so logs go to a rotating file.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LoggerSetupParams struct {
	LogFileName string
	LogLevel    string
	// MaxSizeMB and MaxBackups bound the rotated files. Zero means 5 MB and
	// 3 backups.
	MaxSizeMB  int
	MaxBackups int
}

// Setup points logrus at the log file and returns the writer so the caller
// can close it on exit. With no file name, logs are discarded. The text
// format is fixed because the diagnostics view parses it.
func Setup(params LoggerSetupParams) (io.Closer, error) {
	logrus.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})

	logrus.SetLevel(GetLevel(params.LogLevel))

	if strings.TrimSpace(params.LogFileName) == "" {
		logrus.SetOutput(io.Discard)
		return nopCloser{}, nil
	}

	if !strings.HasSuffix(params.LogFileName, ".log") {
		params.LogFileName += ".log"
	}
	if err := os.MkdirAll(filepath.Dir(params.LogFileName), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	maxSize := params.MaxSizeMB
	if maxSize <= 0 {
		maxSize = 5
	}
	backups := params.MaxBackups
	if backups <= 0 {
		backups = 3
	}

	lumberJackLogger := &lumberjack.Logger{
		Filename:   params.LogFileName,
		MaxSize:    maxSize, // megabytes
		MaxBackups: backups,
		LocalTime:  true,
	}
	logrus.SetOutput(lumberJackLogger)
	return lumberJackLogger, nil
}

// GetLevel maps a config level name to a logrus level. Unknown names mean info.
func GetLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "trace":
		return logrus.TraceLevel
	case "warn", "warning":
		return logrus.WarnLevel
	default:
		return logrus.InfoLevel
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
