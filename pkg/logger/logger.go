package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// Fields is an alias so callers don't need to import logrus directly
type Fields = logrus.Fields

type Logger struct {
	level  Level
	logger *logrus.Logger
}

func New(levelStr string) *Logger {
	level := parseLevel(levelStr)

	l := logrus.New()
	l.SetOutput(os.Stdout)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	l.SetLevel(toLogrus(level))

	return &Logger{
		level:  level,
		logger: l,
	}
}

func parseLevel(levelStr string) Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func toLogrus(level Level) logrus.Level {
	switch level {
	case DebugLevel:
		return logrus.DebugLevel
	case WarnLevel:
		return logrus.WarnLevel
	case ErrorLevel:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// Level reports the configured minimum level
func (l *Logger) Level() Level {
	return l.level
}

// SetOutput redirects log output, mostly useful in tests
func (l *Logger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

// WithFields returns a structured entry carrying the given fields
func (l *Logger) WithFields(fields Fields) *logrus.Entry {
	return l.logger.WithFields(fields)
}

func (l *Logger) Debug(v ...interface{}) {
	l.logger.Debug(fmt.Sprint(v...))
}

func (l *Logger) Info(v ...interface{}) {
	l.logger.Info(fmt.Sprint(v...))
}

func (l *Logger) Warn(v ...interface{}) {
	l.logger.Warn(fmt.Sprint(v...))
}

func (l *Logger) Error(v ...interface{}) {
	l.logger.Error(fmt.Sprint(v...))
}

func (l *Logger) Fatal(v ...interface{}) {
	l.logger.Fatal(fmt.Sprint(v...))
}
