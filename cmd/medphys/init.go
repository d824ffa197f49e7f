package main

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/medphys/internal/config"
	"github.com/nao1215/medphys/internal/model"
	"github.com/nao1215/medphys/internal/report"
	"github.com/spf13/cobra"
)

//go:embed templates/medphys.yaml
var configTemplate embed.FS

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file and starter templates",
		Long: `Init creates a new .medphys.yaml configuration file in the current directory.

The generated file lists every setting with comments. Fill in the report
directory, the tester and checker details and the detector details before
running "medphys report".

With --templates, init also writes a starter workbook for every template
that does not exist yet in the given directory. Each starter has a "Report"
sheet with the header cells labelled.

Examples:
  # Create .medphys.yaml in current directory
  medphys init

  # Create config file at a specific path
  medphys init -o myconfig.yaml

  # Also create starter templates
  medphys init --templates ~/.local/share/medphys/templates

  # Force overwrite existing file
  medphys init -f`,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")
	cmd.Flags().String("templates", "",
		"Directory to write starter template workbooks into")

	return cmd
}

// runInitCmd executes the init command.
func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	templatesDir, err := cmd.Flags().GetString("templates")
	if err != nil {
		return err
	}

	if err := writeConfigFile(outputPath, force); err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)

	if templatesDir != "" {
		written, err := writeSkeletons(templatesDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Created %d starter template(s) in %s\n", len(written), templatesDir)
	}

	fmt.Fprintln(out, "\nEdit the configuration file and set:")
	fmt.Fprintln(out, "  - dirs.base_report_dir")
	fmt.Fprintln(out, "  - testing_info (tester, checker and their SPNs)")
	fmt.Fprintln(out, "  - detector_info (model, serial number, calibration date)")

	return nil
}

// writeConfigFile writes the embedded configuration template to path.
func writeConfigFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", path)
		}
	}

	content, err := configTemplate.ReadFile("templates/medphys.yaml")
	if err != nil {
		return fmt.Errorf("failed to read config template: %w", err)
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	if err := os.WriteFile(path, content, 0600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}
	return nil
}

// writeSkeletons writes a starter workbook for every template key missing
// from dir. Existing workbooks are left alone.
func writeSkeletons(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create templates directory: %w", err)
	}

	renderer := report.NewRenderer(dir, report.Signoff{})
	var written []string
	for _, key := range model.TemplateKeys() {
		path := renderer.TemplatePath(key)
		if _, err := os.Stat(path); err == nil {
			continue
		}
		if err := report.WriteSkeleton(key, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
