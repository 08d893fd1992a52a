// Package audit appends one usage record per invocation to a shared
// plain-text log file.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// TimeFormat is the timestamp layout used in audit lines (local time).
const TimeFormat = "2006-01-02 15:04:05"

// Record documents who ran which script, when, against which host version.
// Records are written once and never retained after the append.
type Record struct {
	Timestamp   time.Time
	Username    string
	HostVersion string
	ScriptPath  string
}

// Line renders the record as one newline-terminated log line. The four
// fields are comma-and-space separated and not escaped.
func (r Record) Line() string {
	return fmt.Sprintf("%s, %s, %s, %s\n",
		r.Timestamp.Format(TimeFormat), r.Username, r.HostVersion, r.ScriptPath)
}

// Logger appends records to a single shared log file. It is opened once
// per process and is safe for concurrent use: each record goes out in a
// single write to an O_APPEND file, so concurrent appenders (including
// other processes sharing the file) never interleave partial lines.
type Logger struct {
	mu   sync.Mutex
	f    *os.File
	path string
}

// Open creates or opens the named log file under dir in append mode.
// An empty dir falls back to the system temp directory.
func Open(dir, name string) (*Logger, error) {
	if dir == "" {
		dir = os.TempDir()
	}
	path := filepath.Join(dir, name)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening audit log %s: %w", path, err)
	}
	return &Logger{f: f, path: path}, nil
}

// Path returns the resolved log file path.
func (l *Logger) Path() string { return l.path }

// Append writes one record as a complete line.
func (l *Logger) Append(r Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return fmt.Errorf("audit log %s is closed", l.path)
	}
	if _, err := l.f.WriteString(r.Line()); err != nil {
		return fmt.Errorf("appending to audit log %s: %w", l.path, err)
	}
	return nil
}

// Close releases the underlying file. Appends after Close fail.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.f == nil {
		return nil
	}
	err := l.f.Close()
	l.f = nil
	return err
}

// Discard drops every record. It stands in for a Logger when usage
// logging is disabled.
type Discard struct{}

// Append discards the record.
func (Discard) Append(Record) error { return nil }
