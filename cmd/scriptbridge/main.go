// Command scriptbridge is the entry point for the scriptbridge CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tkoster/scriptbridge/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var exitErr *cmd.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		fmt.Fprintf(os.Stderr, "scriptbridge: %v\n", err)
		os.Exit(1)
	}
}
