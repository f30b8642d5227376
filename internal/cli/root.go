// Package cli implements the shift-scheduler command line: the HTTP server,
// schema migrations and spreadsheet export.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "shift-scheduler",
	Version: "dev",
	Short:   "Employee shift scheduling backend",
	Long: `shift-scheduler stores employees and their shifts, rejects overlapping
shifts for the same employee and reports worked hours per employee.

Configuration is read from SHIFTS_* environment variables and an optional
.env file in the working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, exportCmd)
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
