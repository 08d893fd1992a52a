// Package bridge implements the dispatch-execute-map-log pipeline that
// turns one host command trigger into a script run, an outcome, and an
// audit record. It is consumed by both the CLI and the MCP server.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/tkoster/scriptbridge/internal/audit"
	"github.com/tkoster/scriptbridge/internal/executor"
	"github.com/tkoster/scriptbridge/internal/outcome"
	"github.com/tkoster/scriptbridge/internal/source"
)

// InvocationConfig binds one host command to a script. It is built at
// registration time and never mutated, so it is safe to share across
// invocations without synchronisation.
type InvocationConfig struct {
	ScriptPath  string // filesystem path to the script source; non-empty
	LogFileName string // audit log file name (not a full path)
	SearchPaths string // opaque path-list string forwarded to the executor
}

// InvocationContext carries the host identity for one invocation.
type InvocationContext struct {
	Username    string
	HostVersion string
	Now         func() time.Time // record timestamp source; nil means time.Now
}

// ScriptExecutor runs script source text. Script-level failures are
// reported through Result.RawCode, never as an error; the error return
// is reserved for the executor itself failing to run.
// Implemented by executor.Interp.
type ScriptExecutor interface {
	Run(ctx context.Context, src, sourceName, searchPaths string) (*executor.Result, error)
}

// AuditSink receives one record per invocation that completes execution.
// Implemented by audit.Logger and audit.Discard.
type AuditSink interface {
	Append(r audit.Record) error
}

// Dispatcher orchestrates a single invocation: load source, execute,
// map the raw code, append the audit record. Invocations are strictly
// linear with no retries and no internal concurrency.
type Dispatcher struct {
	Exec  ScriptExecutor
	Audit AuditSink
	Log   *slog.Logger // nil means slog.Default()
}

// Invoke runs the pipeline for one command trigger and returns the
// outcome plus the executor's message.
//
// A source load failure aborts the pipeline before execution; the
// *source.AccessError propagates unwrapped and nothing is logged. An
// executor error likewise skips the audit append, since execution never
// completed. Once execution completes, the record is appended whatever
// the outcome; an append failure is reported as a warning and never
// alters the already-computed outcome.
func (d *Dispatcher) Invoke(ctx context.Context, ictx InvocationContext, cfg InvocationConfig) (outcome.Outcome, string, error) {
	id := uuid.New().String()

	src, err := source.Load(cfg.ScriptPath)
	if err != nil {
		return outcome.Failed, "", err
	}

	res, err := d.Exec.Run(ctx, src, cfg.ScriptPath, cfg.SearchPaths)
	if err != nil {
		return outcome.Failed, "", fmt.Errorf("invocation %s: %w", id, err)
	}

	out := outcome.Map(res.RawCode)

	now := ictx.Now
	if now == nil {
		now = time.Now
	}
	rec := audit.Record{
		Timestamp:   now(),
		Username:    ictx.Username,
		HostVersion: ictx.HostVersion,
		ScriptPath:  cfg.ScriptPath,
	}
	if err := d.Audit.Append(rec); err != nil {
		d.logger().Warn("audit append failed",
			"invocation", id,
			"script", cfg.ScriptPath,
			"error", err)
	}

	d.logger().Info("invocation complete",
		"invocation", id,
		"script", cfg.ScriptPath,
		"raw_code", res.RawCode,
		"outcome", out.String())

	return out, res.Message, nil
}

func (d *Dispatcher) logger() *slog.Logger {
	if d.Log != nil {
		return d.Log
	}
	return slog.Default()
}
