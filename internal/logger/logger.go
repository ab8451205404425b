package logger

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// DefaultPath is the log file, relative to the working directory.
const DefaultPath = "logs/gallery.txt"

// MaxLines is how many lines the in-memory buffer keeps for the on-screen console.
const MaxLines = 500

// Logger stores lines of text in memory for the console and appends them to a file on disk.
// It is also an io.Writer so a slog handler can write through it.
type Logger struct {
	path string

	mu      sync.Mutex
	lines   []string
	partial []byte
}

// New returns a new Logger writing to path (DefaultPath when empty) and ensures the
// log directory exists.
func New(path string) *Logger {
	if path == "" {
		path = DefaultPath
	}
	_ = os.MkdirAll(filepath.Dir(path), 0755)
	return &Logger{path: path, lines: make([]string, 0)}
}

// Path returns the log file path.
func (l *Logger) Path() string {
	return l.path
}

// Log appends a line to the logger and to the log file. Each entry is prefixed with
// [timestamp] using computer time.
func (l *Logger) Log(line string) {
	stamped := "[" + time.Now().Format("2006-01-02 15:04:05") + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	if over := len(l.lines) - MaxLines; over > 0 {
		l.lines = append(l.lines[:0], l.lines[over:]...)
	}
	l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Write logs every complete line in p. A trailing partial line is held until its newline arrives.
func (l *Logger) Write(p []byte) (int, error) {
	l.mu.Lock()
	buf := append(l.partial, p...)
	var complete []string
	for {
		i := bytes.IndexByte(buf, '\n')
		if i < 0 {
			break
		}
		complete = append(complete, string(buf[:i]))
		buf = buf[i+1:]
	}
	l.partial = append([]byte(nil), buf...)
	l.mu.Unlock()

	for _, line := range complete {
		l.Log(line)
	}
	return len(p), nil
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels; anything else is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// NewSlog returns a text slog logger writing through l (and also to extra, e.g. stderr,
// when non-nil). The time attribute is dropped because l stamps every line itself.
func NewSlog(l *Logger, level slog.Level, extra io.Writer) *slog.Logger {
	var w io.Writer = l
	if extra != nil {
		w = io.MultiWriter(l, extra)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) == 0 && a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	}))
}
