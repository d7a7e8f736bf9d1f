package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type writerLogger struct {
	w         io.Writer
	component string
	now       func() time.Time
}

func (l writerLogger) write(level, msg string, obj any) {
	if l.w == nil {
		return
	}

	ts := l.now().Format(time.RFC3339)
	prefix := fmt.Sprintf("%s %-5s", ts, level)
	if l.component != "" {
		prefix += " [" + l.component + "]"
	}
	if obj == nil {
		_, _ = fmt.Fprintf(l.w, "%s %s\n", prefix, msg)
		return
	}

	if fields, ok := obj.(map[string]any); ok {
		obj = Redact(fields)
	}
	b, err := json.Marshal(obj)
	if err != nil {
		_, _ = fmt.Fprintf(l.w, "%s %s obj=%q\n", prefix, msg, fmt.Sprintf("%+v", obj))
		return
	}
	_, _ = fmt.Fprintf(l.w, "%s %s obj=%s\n", prefix, msg, string(b))
}

// NewComponentLogger builds a writer logger that tags every line with component.
func NewComponentLogger(w io.Writer, component string) Logger {
	return writerLogger{w: w, component: component, now: time.Now}
}

func (l writerLogger) Info(msg string, obj any)  { l.write("INFO", msg, obj) }
func (l writerLogger) Warn(msg string, obj any)  { l.write("WARN", msg, obj) }
func (l writerLogger) Debug(msg string, obj any) { l.write("DEBUG", msg, obj) }
func (l writerLogger) Error(msg string, obj any) { l.write("ERROR", msg, obj) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf is a compatibility helper for format-style debug logging.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	Debug(enabled, logger, fmt.Sprintf(format, args...), nil)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}

// Mask returns a masked version of a secret string.
func Mask(s string) string {
	if len(s) == 0 {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	if len(s) <= 10 {
		return s[:1] + "********" + s[len(s)-1:]
	}
	return s[:3] + "********" + s[len(s)-3:]
}

var secretKeyHints = []string{"apikey", "api_key", "secret", "token", "password"}

// Redact returns a copy of fields with secret-looking string values masked.
func Redact(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		s, ok := v.(string)
		if ok && isSecretKey(k) {
			out[k] = Mask(s)
			continue
		}
		out[k] = v
	}
	return out
}

func isSecretKey(key string) bool {
	key = strings.ToLower(key)
	for _, hint := range secretKeyHints {
		if strings.Contains(key, hint) {
			return true
		}
	}
	return false
}
