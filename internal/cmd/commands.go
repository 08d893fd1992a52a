package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the configured script commands",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, _, err := newService()
		if err != nil {
			return err
		}
		defer svc.Close()

		if len(svc.Config.Commands) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no commands configured")
			return nil
		}
		for _, c := range svc.Config.Commands {
			fmt.Fprintf(cmd.OutOrStdout(), "%-20s %s\n", c.Name, c.ResolveScript(svc.Root))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(commandsCmd)
}
