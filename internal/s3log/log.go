// Package s3log is a small leveled logger funneling every log call through
// one channel and one writer goroutine, so concurrent requests issued by
// the multiplexed backend never interleave a line mid-write. It is the
// same design as s5cmd's own log package, re-aimed at this module's
// request/response lifecycle events instead of file-transfer progress.
package s3log

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString parses a level name, defaulting to LevelInfo for an
// unrecognized or empty string.
func LevelFromString(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warning":
		return LevelWarning
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Logger is a leveled, goroutine-safe logger. Zero value is not usable;
// construct with New.
type Logger struct {
	ch    chan string
	done  chan struct{}
	impl  *log.Logger
	level Level
	json  bool
}

// Options configures a new Logger.
type Options struct {
	Level  Level
	JSON   bool
	Output io.Writer // defaults to os.Stdout
}

// New starts the writer goroutine and returns a ready Logger. Close must
// be called to drain it.
func New(opts Options) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	l := &Logger{
		ch:    make(chan string, 10000),
		done:  make(chan struct{}),
		impl:  log.New(out, "", 0),
		level: opts.Level,
		json:  opts.JSON,
	}
	go l.drain()
	return l
}

func (l *Logger) drain() {
	defer close(l.done)
	for line := range l.ch {
		l.impl.Println(line)
	}
}

func (l *Logger) render(level Level, msg Message) string {
	if l.json {
		return msg.JSON()
	}
	return fmt.Sprintf("%-7s %s", level, msg.String())
}

func (l *Logger) log(level Level, msg Message) {
	if level < l.level {
		return
	}
	l.ch <- l.render(level, msg)
}

func (l *Logger) Debug(msg Message)   { l.log(LevelDebug, msg) }
func (l *Logger) Info(msg Message)    { l.log(LevelInfo, msg) }
func (l *Logger) Warning(msg Message) { l.log(LevelWarning, msg) }
func (l *Logger) Error(msg Message)   { l.log(LevelError, msg) }

// Close stops accepting log lines, drains what's buffered, and waits for
// the writer goroutine to finish. A second call will panic on the
// already-closed channel — callers are expected to call Close exactly
// once, from Client.Close.
func (l *Logger) Close() {
	close(l.ch)
	<-l.done
}
