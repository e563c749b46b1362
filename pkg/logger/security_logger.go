package logger

import (
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	"trends-dashboard/pkg/utils"
)

var (
	urlPattern    = regexp.MustCompile(`https?://[^\s"']+`)
	secretPattern = regexp.MustCompile(`(?i)(key|token|secret|private_key)([=:]\s*)[^\s,"]+`)
)

// SecurityLogger masks identifiers and secrets before they reach the log
type SecurityLogger struct {
	*Logger
}

// NewSecurityLogger wraps l
func NewSecurityLogger(l *Logger) *SecurityLogger {
	return &SecurityLogger{Logger: l}
}

// GetSecurityLogger wraps the current global logger
func GetSecurityLogger() *SecurityLogger {
	return NewSecurityLogger(GetLogger())
}

// MaskSpreadsheetID keeps a short hash so runs can still be correlated
func (sl *SecurityLogger) MaskSpreadsheetID(id string) string {
	if id == "" {
		return ""
	}
	return "spreadsheet#" + utils.ShortHash(id)
}

// MaskPath keeps only the file name of a credentials path
func (sl *SecurityLogger) MaskPath(path string) string {
	if path == "" {
		return ""
	}
	return filepath.Base(path) + "#" + utils.ShortHash(path)
}

// MaskAPIEndpoint keeps the host of each comma-separated endpoint
func (sl *SecurityLogger) MaskAPIEndpoint(endpoints string) string {
	if endpoints == "" {
		return ""
	}

	var masked []string
	for _, raw := range strings.Split(endpoints, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		parsed, err := url.Parse(raw)
		if err != nil || parsed.Host == "" {
			masked = append(masked, "api-endpoint#"+utils.ShortHash(raw))
			continue
		}
		masked = append(masked, parsed.Host+"#"+utils.ShortHash(raw))
	}
	return strings.Join(masked, ",")
}

// MaskLogMessage strips URLs and key=value secrets from free text
func (sl *SecurityLogger) MaskLogMessage(message string) string {
	masked := urlPattern.ReplaceAllStringFunc(message, sl.MaskAPIEndpoint)
	return secretPattern.ReplaceAllString(masked, "${1}${2}***")
}

// SafeInfo logs msg with masked free text
func (sl *SecurityLogger) SafeInfo(msg string, fields map[string]interface{}) {
	if fields != nil {
		sl.Logger.WithFields(fields).Info(sl.MaskLogMessage(msg))
		return
	}
	sl.Logger.Info(sl.MaskLogMessage(msg))
}

// SafeError logs msg and err with masked free text
func (sl *SecurityLogger) SafeError(msg string, err error, fields map[string]interface{}) {
	l := sl.Logger
	if fields != nil {
		l = l.WithFields(fields)
	}
	l.WithField("error", sl.MaskLogMessage(err.Error())).Error(sl.MaskLogMessage(msg))
}
