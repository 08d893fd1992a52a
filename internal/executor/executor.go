// Package executor runs script source text through an external
// interpreter process with a timeout and an output size cap. It is the
// default ScriptExecutor implementation used by the bridge.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result holds the raw result of one script execution.
type Result struct {
	RunID   string // unique identifier for this run
	RawCode int    // raw status code (the process exit code)
	Message string // diagnostic text (capped stderr, trimmed)
}

// Interp executes script source by piping it into an interpreter process.
// The zero value is not usable; all fields must be set by the caller.
type Interp struct {
	Argv      []string      // interpreter argv, e.g. ["python3", "-"]
	PathVar   string        // env var carrying the search-path list, e.g. "PYTHONPATH"
	Timeout   time.Duration // per-run wall clock limit
	MaxOutput int           // bytes of stderr retained for Message
}

// Run feeds src to the interpreter on stdin. sourceName is appended to
// the argv so the script can identify itself, and searchPaths is
// exported via PathVar when both are non-empty. The process exit code
// becomes the raw status code; script-level failures are not errors.
// The error return is reserved for the interpreter failing to start.
func (i *Interp) Run(ctx context.Context, src, sourceName, searchPaths string) (*Result, error) {
	if len(i.Argv) == 0 {
		return nil, fmt.Errorf("no interpreter configured")
	}

	ctx, cancel := context.WithTimeout(ctx, i.Timeout)
	defer cancel()

	runID := uuid.New().String()

	argv := append(append([]string{}, i.Argv...), sourceName)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = strings.NewReader(src)
	if i.PathVar != "" && searchPaths != "" {
		cmd.Env = append(os.Environ(), i.PathVar+"="+searchPaths)
	}

	var stderr bytes.Buffer
	cmd.Stderr = &limitWriter{buf: &stderr, limit: i.MaxOutput}

	runErr := cmd.Run()

	code := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			// Includes -1 when the process was killed (e.g. timeout).
			code = exitErr.ExitCode()
		} else {
			// Interpreter not found or other exec error.
			return nil, fmt.Errorf("executing %s: %w", argv[0], runErr)
		}
	}

	return &Result{
		RunID:   runID,
		RawCode: code,
		Message: strings.TrimSpace(stderr.String()),
	}, nil
}

// limitWriter writes up to limit bytes to buf, then silently discards the rest.
type limitWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	remaining := w.limit - w.buf.Len()
	if remaining <= 0 {
		return len(p), nil // discard
	}
	if len(p) > remaining {
		// Write only what fits, but report all bytes as consumed
		// to avoid short write errors.
		w.buf.Write(p[:remaining])
		return len(p), nil
	}
	return w.buf.Write(p)
}
