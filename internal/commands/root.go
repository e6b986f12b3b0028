// Package commands wires the CLI.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "conciliador",
		Short: "Normalize bank statement exports into one canonical movement store",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newIngestCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newEnqueueCommand())

	return rootCmd
}
