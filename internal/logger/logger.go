package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogFilePath is the default log file, relative to the working directory (project root when run via go run ./cmd/grabsim).
const LogFilePath = "logs/grabsim.txt"

// maxLines bounds the in-memory history so a long simulation does not grow without limit.
const maxLines = 1000

// history is shared between a logger and every child created with With.
type history struct {
	mu    sync.Mutex
	lines []string
}

func (h *history) add(e zapcore.Entry) error {
	stamped := "[" + e.Time.Format("2006-01-02 15:04:05") + "] " + e.Level.CapitalString() + " " + e.Message
	h.mu.Lock()
	h.lines = append(h.lines, stamped)
	if len(h.lines) > maxLines {
		h.lines = h.lines[len(h.lines)-maxLines:]
	}
	h.mu.Unlock()
	return nil
}

// Logger writes structured entries through zap and keeps the most recent messages in memory
// so a caller (or a test) can show what happened without reading the file back.
type Logger struct {
	zap  *zap.Logger
	hist *history
	file *os.File
}

// New returns a Logger that appends console-encoded entries to path at the given level
// ("debug", "info", "warn", "error"; empty means info). The directory is created if needed.
func New(path, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := build(f, lvl)
	l.file = f
	return l, nil
}

// NewMemory returns a Logger that only keeps the in-memory history. Used by tests and dry runs.
func NewMemory(level string) *Logger {
	lvl, err := parseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	return build(io.Discard, lvl)
}

// NewNop returns a Logger that drops everything.
func NewNop() *Logger {
	return &Logger{zap: zap.NewNop(), hist: &history{}}
}

func build(w io.Writer, lvl zapcore.Level) *Logger {
	hist := &history{}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), lvl)
	core = zapcore.RegisterHooks(core, hist.add)
	return &Logger{zap: zap.New(core), hist: hist}
}

func parseLevel(level string) (zapcore.Level, error) {
	if level == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("log level %q: %w", level, err)
	}
	return lvl, nil
}

// With returns a child logger that adds fields to every entry and shares this logger's history.
func (l *Logger) With(fields ...zap.Field) *Logger {
	return &Logger{zap: l.zap.With(fields...), hist: l.hist}
}

// Debug logs msg at debug level.
func (l *Logger) Debug(msg string, fields ...zap.Field) { l.zap.Debug(msg, fields...) }

// Info logs msg at info level.
func (l *Logger) Info(msg string, fields ...zap.Field) { l.zap.Info(msg, fields...) }

// Warn logs msg at warn level.
func (l *Logger) Warn(msg string, fields ...zap.Field) { l.zap.Warn(msg, fields...) }

// Error logs msg at error level.
func (l *Logger) Error(msg string, fields ...zap.Field) { l.zap.Error(msg, fields...) }

// Lines returns a copy of the most recent entries, oldest first, each prefixed with [timestamp] LEVEL.
func (l *Logger) Lines() []string {
	l.hist.mu.Lock()
	defer l.hist.mu.Unlock()
	out := make([]string, len(l.hist.lines))
	copy(out, l.hist.lines)
	return out
}

// Close flushes buffered entries and closes the log file, if any.
func (l *Logger) Close() error {
	_ = l.zap.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
