// Package logutil is the leveled logger every MicroSim writes through.
package logutil

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

// Level is a logging severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) color() string {
	switch l {
	case LevelDebug:
		return "\x1b[90m"
	case LevelWarn:
		return "\x1b[33m"
	case LevelError:
		return "\x1b[31m"
	default:
		return "\x1b[36m"
	}
}

// ParseLevel maps a config string onto a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

type sink struct {
	mu    sync.Mutex
	out   io.Writer
	color bool
}

// Logger writes timestamped, leveled, prefixed lines.
type Logger struct {
	sink     *sink
	minLevel Level
	prefix   string
}

// New creates a logger. Level tags are coloured when out is a terminal.
func New(out io.Writer, minLevel Level, prefix string) *Logger {
	if out == nil {
		out = os.Stderr
	}
	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Logger{sink: &sink{out: out, color: color}, minLevel: minLevel, prefix: prefix}
}

// Discard is a Logger that drops everything.
var Discard = New(io.Discard, LevelError+1, "")

// WithPrefix returns a sub-logger sharing the same output.
func (l *Logger) WithPrefix(prefix string) *Logger {
	p := prefix
	if l.prefix != "" {
		p = l.prefix + "/" + prefix
	}
	return &Logger{sink: l.sink, minLevel: l.minLevel, prefix: p}
}

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.minLevel {
		return
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	tag := level.String()
	if l.sink.color {
		tag = level.color() + tag + "\x1b[0m"
	}
	prefix := ""
	if l.prefix != "" {
		prefix = "[" + l.prefix + "] "
	}
	fmt.Fprintf(l.sink.out, "%s %s %s%s\n",
		time.Now().Format("15:04:05.000"), tag, prefix, fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(LevelError, format, args...) }

// Dump writes a multi-line payload at warn level, one line per entry, so it
// can be recovered from the log when an export fails.
func (l *Logger) Dump(title, payload string) {
	l.Warn("%s (%d bytes follow)", title, len(payload))
	for _, line := range strings.Split(strings.TrimRight(payload, "\n"), "\n") {
		l.Warn("| %s", line)
	}
}
