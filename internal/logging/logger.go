// Package logging provides the level-filtered structured logger used
// throughout a search run, tagging each run with a stable correlation ID
// so interleaved batch/worker log lines can be grouped back together.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"github.com/google/uuid"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	Fatal
)

var levelNames = map[string]Level{
	"debug": Debug,
	"info":  Info,
	"warn":  Warn,
	"error": Error,
	"fatal": Fatal,
}

// Config controls where a Logger writes and at what level.
type Config struct {
	Level  string
	Output string // "stdout", "stderr", or a file path
}

// Logger is a minimal, mutex-guarded level logger. Every instance is
// tagged with a RunID so log lines from concurrent batches can be
// correlated back to the search that produced them.
type Logger struct {
	mu     sync.Mutex
	logger *log.Logger
	level  Level
	RunID  string
}

// New builds a Logger from cfg, defaulting to info/stdout and minting a
// fresh run ID.
func New(cfg Config) (*Logger, error) {
	level, ok := levelNames[cfg.Level]
	if !ok {
		level = Info
	}

	var out io.Writer
	switch cfg.Output {
	case "", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("logging: open %s: %w", cfg.Output, err)
		}
		out = f
	}

	return &Logger{
		logger: log.New(out, "", log.LstdFlags),
		level:  level,
		RunID:  uuid.NewString(),
	}, nil
}

func (l *Logger) log(level Level, tag, format string, args ...any) {
	if level < l.level {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.Printf("[%s] run=%s "+format, append([]any{tag, l.RunID}, args...)...)
}

func (l *Logger) Debug(format string, args ...any) { l.log(Debug, "DEBUG", format, args...) }
func (l *Logger) Info(format string, args ...any)  { l.log(Info, "INFO", format, args...) }
func (l *Logger) Warn(format string, args ...any)  { l.log(Warn, "WARN", format, args...) }
func (l *Logger) Error(format string, args ...any) { l.log(Error, "ERROR", format, args...) }

func (l *Logger) Fatal(format string, args ...any) {
	l.log(Fatal, "FATAL", format, args...)
	os.Exit(1)
}
