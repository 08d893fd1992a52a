// Package cmd implements the CLI commands for scriptbridge.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/tkoster/scriptbridge"
	"github.com/tkoster/scriptbridge/internal/bridge"
	"github.com/tkoster/scriptbridge/internal/config"
	"github.com/tkoster/scriptbridge/internal/executor"
	"github.com/tkoster/scriptbridge/internal/history"
	"github.com/tkoster/scriptbridge/internal/hostinfo"
	"github.com/tkoster/scriptbridge/pkg/logger"
)

var cfgPath string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scriptbridge",
	Short: "Script command invocation bridge",
	Long: `Scriptbridge invokes scripts declared in a .scriptbridge catalog, maps
each script's raw status code to a succeeded/cancelled/failed outcome, and
appends a usage record to a shared audit log.`,
	Version:       scriptbridge.Version,
	SilenceUsage:  true,
	SilenceErrors: true, // main prints errors; outcome exit codes stay quiet
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"path to the catalog file (default: discover .scriptbridge upward from the working directory)")
}

// Execute runs the root command and returns any error.
func Execute() error {
	return rootCmd.Execute()
}

// ExitCodeError carries a specific process exit code for main to use.
type ExitCodeError struct {
	Code int
	Msg  string
}

func (e *ExitCodeError) Error() string { return e.Msg }

// newService builds the bridge service and the host identity for
// invocations made by this process.
func newService() (*bridge.Service, bridge.InvocationContext, error) {
	var (
		loaded *config.LoadResult
		err    error
	)
	if cfgPath != "" {
		loaded, err = config.LoadFile(cfgPath)
	} else {
		var workdir string
		workdir, err = os.Getwd()
		if err != nil {
			return nil, bridge.InvocationContext{}, fmt.Errorf("determining working directory: %w", err)
		}
		loaded, err = config.Load(workdir)
	}
	if err != nil {
		return nil, bridge.InvocationContext{}, fmt.Errorf("loading catalog: %w", err)
	}
	cfg := loaded.Config

	svc := &bridge.Service{
		Config: cfg,
		Root:   loaded.Root,
		Exec: &executor.Interp{
			Argv:      cfg.InterpreterArgv(),
			PathVar:   cfg.PathVarName(),
			Timeout:   cfg.Timeout(),
			MaxOutput: cfg.MaxOutputBytes(),
		},
		History: history.New(32),
		Log:     logger.New(),
	}

	ictx := bridge.InvocationContext{
		Username:    hostinfo.Username(),
		HostVersion: hostinfo.Version(),
	}
	return svc, ictx, nil
}
