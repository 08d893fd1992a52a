package bridge

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/tkoster/scriptbridge/internal/config"
	"github.com/tkoster/scriptbridge/internal/history"
	"github.com/tkoster/scriptbridge/internal/outcome"
)

func newTestService(t *testing.T, cfg *config.Config, root string, exec ScriptExecutor) *Service {
	t.Helper()
	svc := &Service{
		Config:  cfg,
		Root:    root,
		Exec:    exec,
		History: history.New(8),
	}
	t.Cleanup(func() { _ = svc.Close() })
	return svc
}

func TestInvokeCommand_UnknownCommand(t *testing.T) {
	svc := newTestService(t, &config.Config{}, t.TempDir(), &fakeExec{})

	out, _, err := svc.InvokeCommand(context.Background(), testContext(), "nope")
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if out != outcome.Failed {
		t.Errorf("outcome = %v, want Failed", out)
	}
}

func TestInvokeCommand_ResolvesScriptAndSearchPaths(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "scripts"), 0o755); err != nil {
		t.Fatal(err)
	}
	script := writeScript(t, filepath.Join(root, "scripts"), "greet.py", "print('hello')\n")

	logDir := t.TempDir()
	cfg := &config.Config{
		Audit: config.AuditConfig{Dir: logDir, File: "usage.log"},
		Commands: []config.Command{
			{Name: "greet", Script: "scripts/greet.py", SearchPaths: []string{"lib"}},
		},
	}
	fake := &fakeExec{code: outcome.CodeSucceeded}
	svc := newTestService(t, cfg, root, fake)

	out, _, err := svc.InvokeCommand(context.Background(), testContext(), "greet")
	if err != nil {
		t.Fatalf("InvokeCommand: %v", err)
	}
	if out != outcome.Succeeded {
		t.Errorf("outcome = %v, want Succeeded", out)
	}
	if fake.gotName != script {
		t.Errorf("executor got script %q, want %q", fake.gotName, script)
	}
	wantPaths := filepath.Dir(script) + string(os.PathListSeparator) + filepath.Join(root, "lib")
	if fake.gotPaths != wantPaths {
		t.Errorf("executor got search paths %q, want %q", fake.gotPaths, wantPaths)
	}

	lines := readLines(t, filepath.Join(logDir, "usage.log"))
	if len(lines) != 1 {
		t.Errorf("got %d audit lines, want 1", len(lines))
	}

	recent := svc.History.Recent(0)
	if len(recent) != 1 {
		t.Fatalf("got %d history entries, want 1", len(recent))
	}
	if recent[0].Command != "greet" || recent[0].Outcome != outcome.Succeeded {
		t.Errorf("history entry = %+v", recent[0])
	}
}

func TestInvokeCommand_AuditDisabled(t *testing.T) {
	root := t.TempDir()
	script := writeScript(t, root, "greet.py", "pass\n")

	disabled := false
	logDir := t.TempDir()
	cfg := &config.Config{
		Audit: config.AuditConfig{Enabled: &disabled, Dir: logDir, File: "usage.log"},
		Commands: []config.Command{
			{Name: "greet", Script: script},
		},
	}
	svc := newTestService(t, cfg, root, &fakeExec{code: outcome.CodeSucceeded})

	if _, _, err := svc.InvokeCommand(context.Background(), testContext(), "greet"); err != nil {
		t.Fatalf("InvokeCommand: %v", err)
	}
	if _, err := os.Stat(filepath.Join(logDir, "usage.log")); !os.IsNotExist(err) {
		t.Errorf("usage.log exists with audit disabled (stat err = %v)", err)
	}
}

func TestInvokeCommand_SinkIsReused(t *testing.T) {
	root := t.TempDir()
	script := writeScript(t, root, "greet.py", "pass\n")

	logDir := t.TempDir()
	cfg := &config.Config{
		Audit: config.AuditConfig{Dir: logDir, File: "usage.log"},
		Commands: []config.Command{
			{Name: "greet", Script: script},
		},
	}
	svc := newTestService(t, cfg, root, &fakeExec{code: outcome.CodeSucceeded})

	for i := 0; i < 3; i++ {
		if _, _, err := svc.InvokeCommand(context.Background(), testContext(), "greet"); err != nil {
			t.Fatalf("InvokeCommand #%d: %v", i+1, err)
		}
	}

	if got := len(readLines(t, filepath.Join(logDir, "usage.log"))); got != 3 {
		t.Errorf("got %d audit lines, want 3", got)
	}
	svc.mu.Lock()
	sinks := len(svc.sinks)
	svc.mu.Unlock()
	if sinks != 1 {
		t.Errorf("got %d sinks, want 1", sinks)
	}
}

func TestInvokeCommand_PerCommandLogFile(t *testing.T) {
	root := t.TempDir()
	script := writeScript(t, root, "greet.py", "pass\n")

	logDir := t.TempDir()
	cfg := &config.Config{
		Audit: config.AuditConfig{Dir: logDir, File: "shared.log"},
		Commands: []config.Command{
			{Name: "greet", Script: script, LogFile: "greet.log"},
		},
	}
	svc := newTestService(t, cfg, root, &fakeExec{code: outcome.CodeSucceeded})

	if _, _, err := svc.InvokeCommand(context.Background(), testContext(), "greet"); err != nil {
		t.Fatalf("InvokeCommand: %v", err)
	}

	if got := len(readLines(t, filepath.Join(logDir, "greet.log"))); got != 1 {
		t.Errorf("got %d lines in greet.log, want 1", got)
	}
	if _, err := os.Stat(filepath.Join(logDir, "shared.log")); !os.IsNotExist(err) {
		t.Errorf("shared.log should not exist (stat err = %v)", err)
	}
}
