package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vold-bow",
	Short: "Diagnostic tool for the bow checkpoint/rollback core",
	Long: `vold-bow is an operator-facing diagnostic tool over the checkpoint
lifecycle and restore library. It does not replace the daemon integration —
each subcommand is a thin wrapper over a library entry point.

Commands:
  inspect       decode and print a bow log header from a device or image
  status        print the current checkpoint metadata state
  simulate-boot walk needsCheckpoint/needsRollback/markBootAttempt once`,
	Version: "0.1.0-dev",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
