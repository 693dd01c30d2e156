package common

import (
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

var (
	logger     *log.Logger
	loggerOnce sync.Once
)

// Logger returns the shared planner logger. It writes to stderr at info level
// unless replaced with SetLogger.
//
// Returns:
//   - *log.Logger: the package logger
func Logger() *log.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = log.NewWithOptions(os.Stderr, log.Options{
				ReportTimestamp: true,
				TimeFormat:      time.RFC3339,
				Prefix:          "scenepack",
			})
			logger.SetLevel(log.InfoLevel)
		}
	})
	return logger
}

// SetLogger replaces the shared planner logger.
// This must be called before any planning starts.
//
// Parameters:
//   - l: the logger to use
func SetLogger(l *log.Logger) {
	loggerOnce.Do(func() {})
	logger = l
}
