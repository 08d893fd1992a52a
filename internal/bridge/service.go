package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tkoster/scriptbridge/internal/audit"
	"github.com/tkoster/scriptbridge/internal/config"
	"github.com/tkoster/scriptbridge/internal/history"
	"github.com/tkoster/scriptbridge/internal/outcome"
)

// Service resolves catalog commands into invocations. It owns the
// process-lifetime audit sinks (one per distinct log file name) and the
// invocation history. Safe for concurrent use.
type Service struct {
	Config  *config.Config
	Root    string // directory the catalog was loaded from
	Exec    ScriptExecutor
	History *history.Recorder // nil disables history
	Log     *slog.Logger

	mu    sync.Mutex
	sinks map[string]*audit.Logger
}

// InvokeCommand runs the named catalog command through the pipeline.
func (s *Service) InvokeCommand(ctx context.Context, ictx InvocationContext, name string) (outcome.Outcome, string, error) {
	cmd, ok := s.Config.Command(name)
	if !ok {
		return outcome.Failed, "", fmt.Errorf("unknown command %q", name)
	}

	cfg := InvocationConfig{
		ScriptPath:  cmd.ResolveScript(s.Root),
		LogFileName: s.Config.LogFileFor(cmd, ictx.Username),
		SearchPaths: cmd.SearchPathString(s.Root),
	}

	sink, err := s.sink(cfg.LogFileName)
	if err != nil {
		return outcome.Failed, "", err
	}

	d := &Dispatcher{Exec: s.Exec, Audit: sink, Log: s.Log}
	out, msg, err := d.Invoke(ctx, ictx, cfg)
	if err != nil {
		return out, msg, err
	}

	if s.History != nil {
		now := ictx.Now
		if now == nil {
			now = time.Now
		}
		s.History.Add(history.Entry{
			ID:      uuid.New().String(),
			Command: name,
			Script:  cfg.ScriptPath,
			Outcome: out,
			Message: msg,
			Time:    now(),
		})
	}

	return out, msg, nil
}

// Close releases all opened audit sinks.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var firstErr error
	for _, l := range s.sinks {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	s.sinks = nil
	return firstErr
}

// sink returns the audit sink for the given log file name, opening it
// on first use. Returns a no-op sink when usage logging is disabled.
func (s *Service) sink(name string) (AuditSink, error) {
	if !s.Config.AuditEnabled() {
		return audit.Discard{}, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.sinks[name]; ok {
		return l, nil
	}
	l, err := audit.Open(s.Config.Audit.Dir, name)
	if err != nil {
		return nil, err
	}
	if s.sinks == nil {
		s.sinks = make(map[string]*audit.Logger)
	}
	s.sinks[name] = l
	return l, nil
}
