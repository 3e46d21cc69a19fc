// Package logger provides leveled, colourised logging for the server and its middleware.
package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// The Logger interface defines the levels a logging can occur at.
type Logger interface {
	Debug(msg string, fields Fields)
	Info(msg string, fields Fields)
	Warn(msg string, fields Fields)
	Error(msg string, fields Fields)

	LogLevel() LogLevel
}

// Fields is structured context attached to a log line.
type Fields map[string]any

// String renders the fields sorted by key, as key=value pairs.
func (f Fields) String() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%s=%v", k, f[k])
	}

	return sb.String()
}

type LogLevel int

const (
	LogLevelUnk LogLevel = iota
	LogLevelDebug
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func NewLogLevel(val string) LogLevel {
	switch strings.ToUpper(val) {
	case "DEBUG":
		return LogLevelDebug
	case "INFO":
		return LogLevelInfo
	case "WARN":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelUnk
	}
}

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelDebug:
		return "[DEBUG]"
	case LogLevelInfo:
		return "[INFO]"
	case LogLevelWarn:
		return "[WARN]"
	case LogLevelError:
		return "[ERROR]"
	default:
		return "[UNK]"
	}
}

// StdLogger implements Logger using log.
type StdLogger struct {
	mu sync.Mutex
	l  *log.Logger
	ll LogLevel
}

// An Option configures a StdLogger.
type Option func(*StdLogger)

// WithLevel sets the minimum level written. An unknown level is ignored.
func WithLevel(ll LogLevel) Option {
	return func(l *StdLogger) {
		if ll != LogLevelUnk {
			l.ll = ll
		}
	}
}

// WithWriter sends output to w instead of os.Stdout.
func WithWriter(w io.Writer) Option {
	return func(l *StdLogger) {
		l.l.SetOutput(w)
	}
}

// New constructs a StdLogger.
//
// Logs are printed to os.Stdout by default, using the std lib log pkg.
// The default log level is INFO.
func New(opts ...Option) *StdLogger {
	l := &StdLogger{
		l:  log.New(os.Stdout, "", log.LstdFlags),
		ll: LogLevelInfo,
	}
	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Debug writes a debug log.
func (l *StdLogger) Debug(msg string, fields Fields) {
	l.log(color.WhiteString, LogLevelDebug, msg, fields)
}

// Info writes an info log.
func (l *StdLogger) Info(msg string, fields Fields) {
	l.log(color.BlueString, LogLevelInfo, msg, fields)
}

// Warn writes a warning log.
func (l *StdLogger) Warn(msg string, fields Fields) {
	l.log(color.YellowString, LogLevelWarn, msg, fields)
}

// Error writes an error log.
func (l *StdLogger) Error(msg string, fields Fields) {
	l.log(color.RedString, LogLevelError, msg, fields)
}

// LogLevel returns the LogLevel set for the StdLogger.
func (l *StdLogger) LogLevel() LogLevel { return l.ll }

func (l *StdLogger) log(colorizer func(string, ...any) string, level LogLevel, msg string, fields Fields) {
	if l.ll > level {
		return
	}

	line := colorizer("%s %s", level, msg)
	if len(fields) > 0 {
		line += " " + fields.String()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.l.Println(line)
}

// Noop discards everything.
type Noop struct{}

func (Noop) Debug(string, Fields) {}
func (Noop) Info(string, Fields)  {}
func (Noop) Warn(string, Fields)  {}
func (Noop) Error(string, Fields) {}

func (Noop) LogLevel() LogLevel { return LogLevelUnk }
