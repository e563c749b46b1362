package logger

import (
	"os"
	"sync"
)

var (
	globalLogger *Logger
	mu           sync.RWMutex
)

// GetLogger returns the global logger, building one from the environment
// (LOG_LEVEL, LOG_FORMAT, DEBUG) on first use
func GetLogger() *Logger {
	mu.RLock()
	l := globalLogger
	mu.RUnlock()
	if l != nil {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if globalLogger == nil {
		globalLogger = New(configFromEnv())
	}
	return globalLogger
}

// SetLogger replaces the global logger. Loggers already handed out keep
// their previous sink.
func SetLogger(l *Logger) {
	mu.Lock()
	globalLogger = l
	mu.Unlock()
	SetGlobalLogger(l)
}

func configFromEnv() Config {
	level := "info"
	if os.Getenv("DEBUG") == "true" {
		level = "debug"
	} else if env := os.Getenv("LOG_LEVEL"); env != "" {
		level = env
	}

	format := "json"
	if env := os.Getenv("LOG_FORMAT"); env != "" {
		format = env
	}

	return Config{
		Level:  level,
		Format: format,
		Output: "stdout",
	}
}

// WithField adds a field to the global logger
func WithField(key string, value interface{}) *Logger {
	return GetLogger().WithField(key, value)
}

// WithFields adds multiple fields to the global logger
func WithFields(fields map[string]interface{}) *Logger {
	return GetLogger().WithFields(fields)
}

// WithError adds an error to the global logger
func WithError(err error) *Logger {
	return GetLogger().WithError(err)
}
