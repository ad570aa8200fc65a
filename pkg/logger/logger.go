package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures a Logger
type Options struct {
	// Debug enables debug level output
	Debug bool
	// File is the path of the rotated log file. Empty disables file output.
	File string
	// MaxSizeMB is the size in megabytes at which the log file is rotated
	MaxSizeMB int
	// MaxBackups is the number of rotated files kept
	MaxBackups int
	// Console receives log output besides the file. Defaults to os.Stderr.
	Console io.Writer
}

// Logger wraps logrus with printf style helpers and color support
type Logger struct {
	*logrus.Logger
	file      *lumberjack.Logger
	green     *color.Color
	highlight *color.Color
}

// New creates a logger. Callers own the returned logger and must Close it.
func New(opts Options) *Logger {
	l := &Logger{
		Logger:    logrus.New(),
		green:     color.New(color.FgGreen),
		highlight: color.New(color.Bold, color.FgCyan),
	}

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	out := console
	if opts.File != "" {
		l.file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
		}
		out = io.MultiWriter(console, l.file)
	}
	l.SetOutput(out)

	l.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006/01/02 15:04:05",
		FullTimestamp:   true,
		DisableSorting:  true,
	})

	if opts.Debug {
		l.SetLevel(logrus.DebugLevel)
		l.Info("Debug logging enabled")
	} else {
		l.SetLevel(logrus.InfoLevel)
	}

	return l
}

// Discard returns a logger that drops everything. Used in tests.
func Discard() *Logger {
	return New(Options{Console: io.Discard})
}

// Close flushes and closes the rotated log file, if any
func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.Logger.Debug(fmt.Sprintf(format, args...))
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.Logger.Info(fmt.Sprintf(format, args...))
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.Logger.Warn(fmt.Sprintf(format, args...))
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.Logger.Error(fmt.Sprintf(format, args...))
}

// Fatal logs a fatal message and exits
func (l *Logger) Fatal(format string, args ...interface{}) {
	l.Logger.Fatal(fmt.Sprintf(format, args...))
}

// Success logs an info message highlighted in green
func (l *Logger) Success(format string, args ...interface{}) {
	l.Logger.Info(l.green.Sprintf(format, args...))
}

// Highlight renders s in bold cyan for inclusion in log lines
func (l *Logger) Highlight(s string) string {
	return l.highlight.Sprint(s)
}

// IsDebugEnabled returns whether debug logging is enabled
func (l *Logger) IsDebugEnabled() bool {
	return l.GetLevel() == logrus.DebugLevel
}
