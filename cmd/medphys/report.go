package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/nao1215/medphys/internal/config"
	"github.com/nao1215/medphys/internal/database"
	"github.com/nao1215/medphys/internal/model"
	"github.com/nao1215/medphys/internal/naming"
	"github.com/nao1215/medphys/internal/pipeline"
	"github.com/nao1215/medphys/internal/prompt"
	"github.com/nao1215/medphys/internal/report"
	"github.com/spf13/cobra"
)

// errUnitsFailed is returned when at least one unit did not finish.
// The per-unit reasons are in the run summary.
var errUnitsFailed = errors.New("not every report was created")

// reportOptions holds everything one report invocation needs.
type reportOptions struct {
	id          string
	reportType  string
	date        string
	modifier    string
	configPath  string
	force       bool
	skipUnknown bool
	markdown    bool

	in     io.Reader
	out    io.Writer
	now    func() time.Time
	logger *slog.Logger
}

// NewReportCmd creates the report command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [id]",
		Short: "Generate survey reports for a unit",
		Long: `Report generates the survey report(s) for the unit with the given ID.

The unit is looked up in the equipment database. A unit whose type covers
several templates, such as Rad/Fluoro, gets one report per template.
Acceptance reports are for new equipment: the unit is entered interactively
and the ID argument is not needed.

If a report already exists you are asked before it is replaced. Declining
any of a unit's reports leaves all of them untouched.

Examples:
  # Annual report dated today
  medphys report 1234

  # Acceptance report for a new unit
  medphys report --type Acceptance

  # Report for a past survey date, with a filename suffix
  medphys report 1234 --date 03-15-2024 --mod retest

  # Markdown summary, replacing existing reports without asking
  medphys report 1234 --force --markdown`,
		Args: cobra.MaximumNArgs(1),
		RunE: runReportCmd,
	}

	cmd.Flags().StringP("type", "t", model.DefaultReportType,
		"Report type (Annual, Other, Acceptance, ACR)")
	cmd.Flags().StringP("date", "d", model.SurveyDateToday,
		"Survey date as MM-DD-YYYY, or \"today\"")
	cmd.Flags().StringP("mod", "m", "",
		"Suffix appended to the report filename")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .medphys.yaml in current or home directory)")
	cmd.Flags().BoolP("force", "f", false,
		"Replace existing reports without asking")
	cmd.Flags().Bool("skip-unknown", false,
		"Skip unit types without a template instead of failing the unit")
	cmd.Flags().Bool("markdown", false,
		"Print the run summary as Markdown")

	return cmd
}

// runReportCmd executes the report command.
func runReportCmd(cmd *cobra.Command, args []string) error {
	opts, err := reportOptionsFromFlags(cmd, args)
	if err != nil {
		return err
	}

	opts.logger = newLogger(cmd)
	slog.SetDefault(opts.logger)

	return runReport(cmd.Context(), opts)
}

// reportOptionsFromFlags reads the command flags and arguments.
func reportOptionsFromFlags(cmd *cobra.Command, args []string) (*reportOptions, error) {
	opts := &reportOptions{
		in:  cmd.InOrStdin(),
		out: cmd.OutOrStdout(),
		now: time.Now,
	}
	if len(args) > 0 {
		opts.id = args[0]
	}

	var err error
	if opts.reportType, err = cmd.Flags().GetString("type"); err != nil {
		return nil, err
	}
	if opts.date, err = cmd.Flags().GetString("date"); err != nil {
		return nil, err
	}
	if opts.modifier, err = cmd.Flags().GetString("mod"); err != nil {
		return nil, err
	}
	if opts.configPath, err = cmd.Flags().GetString("config"); err != nil {
		return nil, err
	}
	if opts.force, err = cmd.Flags().GetBool("force"); err != nil {
		return nil, err
	}
	if opts.skipUnknown, err = cmd.Flags().GetBool("skip-unknown"); err != nil {
		return nil, err
	}
	if opts.markdown, err = cmd.Flags().GetBool("markdown"); err != nil {
		return nil, err
	}
	return opts, nil
}

// runReport generates the reports and prints the run summary.
func runReport(ctx context.Context, opts *reportOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.logger
	if logger == nil {
		logger = slog.Default()
	}

	// The date is checked before anything touches the filesystem.
	surveyDate, err := model.ParseSurveyDate(opts.date, opts.now())
	if err != nil {
		return err
	}
	job := model.NewReportJob(opts.reportType, surveyDate, opts.modifier)

	if !job.IsAcceptance() && opts.id == "" {
		return errors.New("an equipment ID is required (only Acceptance reports are entered interactively)")
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}

	prompter := prompt.NewPrompter(opts.in, opts.out)

	units, err := loadUnits(ctx, cfg, job, opts.id, prompter)
	if err != nil {
		return err
	}
	logger.Info("generating reports",
		"units", len(units),
		"report_type", job.ReportType,
		"survey_date", job.DateStamp(),
	)

	builder := naming.NewBuilder(cfg.Dirs.BaseReportDir)
	guard := prompt.NewGuard(prompter, prompt.WithForce(opts.force), prompt.WithGuardLogger(logger))
	renderer := report.NewRenderer(cfg.Dirs.TemplatesDir, report.SignoffFromConfig(cfg),
		report.WithRendererLogger(logger))

	batch := pipeline.NewBatchProcessor(func() *pipeline.Pipeline {
		return pipeline.DefaultPipeline(builder, guard, renderer,
			[]pipeline.Option{pipeline.WithLogger(logger)},
			pipeline.WithSkipUnresolved(opts.skipUnknown),
		)
	}, pipeline.WithBatchLogger(logger))

	runs := batch.Process(ctx, units, job)

	if _, err := summaryWriter(opts.out, opts.markdown).Write(runs); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	for _, run := range runs {
		if !run.Outcome.Succeeded() {
			return errUnitsFailed
		}
	}
	if len(runs) < len(units) {
		return errUnitsFailed
	}
	return nil
}

// loadUnits returns the units to report on: the interactively entered unit
// for Acceptance reports, otherwise every database match for id.
func loadUnits(
	ctx context.Context,
	cfg *config.Config,
	job model.ReportJob,
	id string,
	prompter *prompt.Prompter,
) ([]model.UnitRecord, error) {
	if job.IsAcceptance() {
		unit, err := prompt.NewUnitEntry(prompter).Prompt()
		if err != nil {
			return nil, fmt.Errorf("unit entry: %w", err)
		}
		return []model.UnitRecord{unit}, nil
	}

	db, err := database.Open(cfg.Dirs.Database)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.LookupByID(ctx, id)
}

// summaryWriter selects the run summary format.
func summaryWriter(out io.Writer, markdown bool) report.Writer {
	if markdown {
		return report.NewMarkdownWriter(out)
	}
	return report.NewSimpleWriter(out)
}
