// internal/platform/logx/logx.go
package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// EnvLevel es la variable de entorno que fija el nivel inicial.
const EnvLevel = "DEVENV_LOG_LEVEL"

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String devuelve el nombre corto del nivel.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", int(l))
	}
}

type Logger interface {
	Debug(msg string, kv ...any)
	Info(msg string, kv ...any)
	Warn(msg string, kv ...any)
	Err(err error, kv ...any)
	With(kv ...any) Logger
	SetLevel(lvl Level)
}

var tagColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgCyan),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed, color.Bold),
}

type simpleLogger struct {
	mu    *sync.Mutex
	lvl   *Level
	scope []string // pares key=value fijos
	lg    *log.Logger
	plain bool
}

// New crea un logger sobre stderr con el nivel de DEVENV_LOG_LEVEL.
// stdout queda libre para JSON y para el transporte stdio de MCP.
func New() Logger {
	return newLogger(os.Stderr, parseLevel(os.Getenv(EnvLevel)), color.NoColor)
}

// NewWithLevel creates a stderr logger with a specific log level
func NewWithLevel(lvl Level) Logger {
	return newLogger(os.Stderr, lvl, color.NoColor)
}

// NewWithWriter creates an uncoloured logger that writes to w.
func NewWithWriter(w io.Writer, lvl Level) Logger {
	return newLogger(w, lvl, true)
}

// NewSilent creates a logger that only outputs errors (quiet mode for the CLI)
func NewSilent() Logger {
	return NewWithLevel(LevelError)
}

// NewNop discards everything. Tests use it when output is irrelevant.
func NewNop() Logger {
	return newLogger(io.Discard, LevelError+1, true)
}

func newLogger(w io.Writer, lvl Level, plain bool) *simpleLogger {
	return &simpleLogger{
		mu:    &sync.Mutex{},
		lvl:   &lvl,
		lg:    log.New(w, "", 0),
		plain: plain,
	}
}

// With shares level and lock with its parent so SetLevel on the root
// logger reaches every component logger derived from it.
func (s *simpleLogger) With(kv ...any) Logger {
	clone := *s
	clone.scope = append(append([]string{}, s.scope...), kvPairs(kv...)...)
	return &clone
}

func (s *simpleLogger) SetLevel(lvl Level) {
	s.mu.Lock()
	defer s.mu.Unlock()
	*s.lvl = lvl
}

func (s *simpleLogger) Debug(msg string, kv ...any) { s.log(LevelDebug, "DBG", msg, kv...) }
func (s *simpleLogger) Info(msg string, kv ...any)  { s.log(LevelInfo, "INF", msg, kv...) }
func (s *simpleLogger) Warn(msg string, kv ...any)  { s.log(LevelWarn, "WRN", msg, kv...) }
func (s *simpleLogger) Err(err error, kv ...any) {
	if err == nil {
		return
	}
	kv = append([]any{"error", err.Error()}, kv...)
	s.log(LevelError, "ERR", "", kv...)
}

func (s *simpleLogger) log(l Level, tag, msg string, kv ...any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l < *s.lvl {
		return
	}
	if !s.plain {
		tag = tagColors[l].Sprint(tag)
	}
	ts := time.Now().Format("15:04:05")
	fields := append([]string{}, s.scope...)
	fields = append(fields, kvPairs(kv...)...)
	line := fmt.Sprintf("%s %s %s", ts, tag, msg)
	if len(strings.TrimSpace(msg)) == 0 && len(fields) > 0 {
		// sin msg (Err) evita el doble espacio
		line = fmt.Sprintf("%s %s", ts, tag)
	}
	if len(fields) > 0 {
		line = fmt.Sprintf("%s %s", line, strings.Join(fields, " "))
	}
	s.lg.Println(line)
}

func kvPairs(kv ...any) []string {
	out := make([]string, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		var k, v any
		k = kv[i]
		if i+1 < len(kv) {
			v = kv[i+1]
		} else {
			v = "(missing)"
		}
		out = append(out, fmt.Sprintf("%v=%v", k, quoteIfSpaced(fmt.Sprint(v))))
	}
	return out
}

func quoteIfSpaced(v string) string {
	if strings.ContainsAny(v, " \t\n") {
		return fmt.Sprintf("%q", v)
	}
	return v
}

// ParseLevel exposes level parsing to the config layer.
func ParseLevel(s string) Level {
	return parseLevel(s)
}

func parseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "dbg":
		return LevelDebug
	case "info", "inf", "":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "err", "error":
		return LevelError
	default:
		return LevelInfo
	}
}
