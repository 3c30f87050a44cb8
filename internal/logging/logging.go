package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

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
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

type Logger struct {
	format Format
	level  Level
	out    io.Writer
	text   *log.Logger
	mu     sync.Mutex
}

var (
	defaultLogger = New(FormatText)
	defaultMu     sync.RWMutex
)

func ParseFormat(raw string) (Format, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	if raw == "" {
		return FormatText, nil
	}
	switch raw {
	case "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported log format %q (expected text or json)", raw)
	}
}

func ParseLevel(raw string) (Level, error) {
	raw = strings.TrimSpace(strings.ToLower(raw))
	switch raw {
	case "", "info":
		return LevelInfo, nil
	case "debug":
		return LevelDebug, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unsupported log level %q (expected debug, info, warn or error)", raw)
	}
}

// Setup builds a logger from the textual format and level and installs it as
// the package default.
func Setup(rawFormat, rawLevel string) (*Logger, error) {
	format, err := ParseFormat(rawFormat)
	if err != nil {
		return nil, err
	}
	level, err := ParseLevel(rawLevel)
	if err != nil {
		return nil, err
	}
	logger := New(format)
	logger.SetLevel(level)
	SetDefault(logger)
	return logger, nil
}

// New writes to stderr, so stdout stays reserved for the startup line.
func New(format Format) *Logger {
	return NewWithWriter(format, os.Stderr)
}

func NewWithWriter(format Format, out io.Writer) *Logger {
	return &Logger{
		format: format,
		level:  LevelInfo,
		out:    out,
		text:   log.New(out, "", log.LstdFlags),
	}
}

func (l *Logger) SetLevel(level Level) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.level = level
	l.mu.Unlock()
}

func SetDefault(l *Logger) {
	if l == nil {
		return
	}
	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
}

func Default() *Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

func Debugf(format string, args ...any) { Default().Debugf(format, args...) }
func Infof(format string, args ...any)  { Default().Infof(format, args...) }
func Warnf(format string, args ...any)  { Default().Warnf(format, args...) }
func Errorf(format string, args ...any) { Default().Errorf(format, args...) }

func (l *Logger) Debugf(format string, args ...any) {
	l.log(LevelDebug, format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log(LevelWarn, format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log(LevelError, format, args...)
}

func (l *Logger) log(level Level, format string, args ...any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if level < l.level {
		return
	}
	message := fmt.Sprintf(format, args...)
	if l.format == FormatText {
		l.text.Printf("%s", message)
		return
	}

	writeJSONLine(l.out, map[string]any{
		"ts":        time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level.String(),
		"msg":       message,
		"component": "apidocs",
	})
}

func writeJSONLine(w io.Writer, fields map[string]any) {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(fields)
}
