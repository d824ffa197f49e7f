package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/nao1215/medphys/internal/log"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for medphys.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medphys",
		Short: "Generate survey reports for medical imaging equipment",
		Long: `medphys generates calibration and inspection survey reports for medical
imaging equipment.

Given an equipment ID, it looks the unit up in the equipment database,
selects the spreadsheet template(s) for the unit type, fills in the report
header and saves each report as
<base_report_dir>/<YYYY>/<MM-Month>/<id>_<site>_<type>_<make-model>_<report>_<MM-DD-YYYY>.xlsx

Existing reports are never replaced without confirmation.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().Bool("log-json", false, "Write log output as JSON lines")

	cmd.AddCommand(NewReportCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newLogger creates the logger of a command from the persistent flags.
// Logs go to the command's error output.
func newLogger(cmd *cobra.Command) *slog.Logger {
	verbose := getVerboseFlag(cmd)
	if getBoolFlag(cmd, "log-json") {
		return log.NewSecureJSONLogger(cmd.ErrOrStderr(), verbose)
	}
	return log.NewSecureLogger(cmd.ErrOrStderr(), verbose)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return getBoolFlag(cmd, "verbose")
}

// getBoolFlag retrieves a boolean flag from the command or the root command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	value, err := cmd.Flags().GetBool(name)
	if err != nil {
		value, err = cmd.Root().PersistentFlags().GetBool(name)
		if err != nil {
			return false
		}
	}
	return value
}
