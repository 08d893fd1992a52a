package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tkoster/scriptbridge/internal/outcome"
)

var invokeCmd = &cobra.Command{
	Use:   "invoke <command>",
	Short: "Invoke a configured script command",
	Long: `Invoke runs the named catalog command: the script source is loaded,
executed by the configured interpreter, and the raw status code is mapped to
an outcome. The process exit code reflects the outcome: 0 succeeded,
1 failed, 2 cancelled.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, ictx, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		out, msg, err := svc.InvokeCommand(cmd.Context(), ictx, args[0])
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), out)
		if msg != "" {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}

		switch out {
		case outcome.Failed:
			return &ExitCodeError{Code: 1, Msg: "command failed"}
		case outcome.Cancelled:
			return &ExitCodeError{Code: 2, Msg: "command cancelled"}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(invokeCmd)
}
