package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/nao1215/medphys/internal/config"
	"github.com/nao1215/medphys/internal/database"
	"github.com/nao1215/medphys/internal/model"
	"github.com/nao1215/medphys/internal/resolver"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a unit and the templates its reports would use",
		Long: `Show looks up a unit in the equipment database and prints its details,
its normalized type labels and the template selected for each label.
Nothing is written.

Examples:
  medphys show 1234

  # Use a database file directly, without a configuration file
  medphys show 1234 --db ./equipment.db`,
		Args: cobra.ExactArgs(1),
		RunE: runShowCmd,
	}

	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .medphys.yaml in current or home directory)")
	cmd.Flags().String("db", "",
		"Equipment database path (overrides the configuration file)")

	return cmd
}

// runShowCmd executes the show command.
func runShowCmd(cmd *cobra.Command, args []string) error {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	dbPath, err := cmd.Flags().GetString("db")
	if err != nil {
		return err
	}

	logger := newLogger(cmd)
	slog.SetDefault(logger)

	if dbPath == "" {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		dbPath = cfg.Dirs.Database
	}

	db, err := database.Open(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()

	units, err := db.LookupByID(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	logger.Debug("units found", "id", args[0], "count", len(units))

	for i, unit := range units {
		if i > 0 {
			fmt.Fprintln(cmd.OutOrStdout())
		}
		printUnit(cmd.OutOrStdout(), unit)
	}
	return nil
}

// printUnit writes the unit and its template resolution.
func printUnit(w io.Writer, unit model.UnitRecord) {
	fmt.Fprintf(w, "Unit %s\n", unit.ID)
	fmt.Fprintf(w, "  site:         %s\n", unit.Site)
	fmt.Fprintf(w, "  location:     %s\n", unit.LocationText())
	fmt.Fprintf(w, "  type:         %s\n", unit.RawType)
	fmt.Fprintf(w, "  make/model:   %s\n", unit.MakeModelText())
	fmt.Fprintln(w, "  templates:")
	for _, res := range resolver.Resolve(unit) {
		fmt.Fprintf(w, "    %-16s %s\n", res.Label, res.String())
	}
}
