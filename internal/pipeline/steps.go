package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/medphys/internal/model"
	"github.com/nao1215/medphys/internal/naming"
	"github.com/nao1215/medphys/internal/resolver"
)

// OverwriteGuard decides whether existing reports may be replaced.
// Check returns model.ErrOverwriteDeclined if any path must be kept.
type OverwriteGuard interface {
	Check(paths []string) error
}

// ReportRenderer writes one report instance to target.
type ReportRenderer interface {
	Render(unit model.UnitRecord, res model.Resolution, job model.ReportJob, target string) error
}

// ResolveStep resolves the unit type into template keys.
//
// By default a single unresolved label fails the run with ErrUnknownType.
// With skipUnresolved set, unresolved labels are dropped and only a unit
// with no resolvable label fails.
type ResolveStep struct {
	skipUnresolved bool
	logger         *slog.Logger
}

// NewResolveStep creates a ResolveStep.
func NewResolveStep(skipUnresolved bool, logger *slog.Logger) *ResolveStep {
	return &ResolveStep{skipUnresolved: skipUnresolved, logger: logger}
}

// Name returns the step name.
func (s *ResolveStep) Name() string {
	return "resolve"
}

// Do executes the resolve step.
func (s *ResolveStep) Do(_ context.Context, run *model.ReportRun) error {
	run.Resolutions = resolver.Resolve(run.Unit)

	var unresolved []string
	for _, res := range run.Resolutions {
		if !res.IsResolved() {
			unresolved = append(unresolved, res.Label)
		}
	}
	if len(unresolved) == 0 {
		return nil
	}

	if s.skipUnresolved && len(unresolved) < len(run.Resolutions) {
		s.logger.Warn("skipping types without a template",
			"unit", run.Unit.ID,
			"types", unresolved,
		)
		return nil
	}

	return fmt.Errorf("%w: %s (manufacturer %q)",
		model.ErrUnknownType, strings.Join(unresolved, ", "), run.Unit.Manufacturer)
}

// PathStep creates the report folder and names the report files.
type PathStep struct {
	builder *naming.Builder
	logger  *slog.Logger
}

// NewPathStep creates a PathStep.
func NewPathStep(builder *naming.Builder, logger *slog.Logger) *PathStep {
	return &PathStep{builder: builder, logger: logger}
}

// Name returns the step name.
func (s *PathStep) Name() string {
	return "paths"
}

// Do executes the path step.
func (s *PathStep) Do(_ context.Context, run *model.ReportRun) error {
	folder, created, err := s.builder.EnsureFolder(run.Job.SurveyDate)
	if err != nil {
		return err
	}
	if created {
		s.logger.Info("created report folder", "folder", folder)
	} else {
		s.logger.Debug("report folder exists", "folder", folder)
	}

	instances := run.Instances()
	labels := make([]string, len(instances))
	for i, inst := range instances {
		labels[i] = inst.Label
	}

	run.Folder = folder
	run.Targets = s.builder.Targets(folder, run.Unit, labels, run.Job)
	return nil
}

// OverwriteStep asks before existing reports are replaced.
type OverwriteStep struct {
	guard OverwriteGuard
}

// NewOverwriteStep creates an OverwriteStep.
func NewOverwriteStep(guard OverwriteGuard) *OverwriteStep {
	return &OverwriteStep{guard: guard}
}

// Name returns the step name.
func (s *OverwriteStep) Name() string {
	return "overwrite"
}

// Do executes the overwrite step.
func (s *OverwriteStep) Do(_ context.Context, run *model.ReportRun) error {
	return s.guard.Check(run.Targets)
}

// RenderStep writes one report per resolved instance, in order.
type RenderStep struct {
	renderer ReportRenderer
	logger   *slog.Logger
}

// NewRenderStep creates a RenderStep.
func NewRenderStep(renderer ReportRenderer, logger *slog.Logger) *RenderStep {
	return &RenderStep{renderer: renderer, logger: logger}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return "render"
}

// Do executes the render step. It stops at the first failing instance;
// reports already written stay in place.
func (s *RenderStep) Do(ctx context.Context, run *model.ReportRun) error {
	instances := run.Instances()
	if len(instances) != len(run.Targets) {
		return fmt.Errorf("%w: %d report paths for %d templates",
			model.ErrTemplate, len(run.Targets), len(instances))
	}

	for i, inst := range instances {
		if err := ctx.Err(); err != nil {
			return err
		}
		target := run.Targets[i]
		if err := s.renderer.Render(run.Unit, inst.Resolution(), run.Job, target); err != nil {
			if len(run.Written) > 0 {
				s.logger.Warn("earlier reports of this unit were kept", "written", run.Written)
			}
			return err
		}
		run.Written = append(run.Written, target)
	}
	return nil
}

// DefaultOption configures the steps built by DefaultPipeline.
type DefaultOption func(*defaultConfig)

type defaultConfig struct {
	skipUnresolved bool
}

// WithSkipUnresolved drops unit types without a template instead of failing
// the run, as long as at least one type resolves.
func WithSkipUnresolved(skip bool) DefaultOption {
	return func(c *defaultConfig) {
		c.skipUnresolved = skip
	}
}

// DefaultPipeline creates the standard resolve, paths, overwrite, render pipeline.
func DefaultPipeline(
	builder *naming.Builder,
	guard OverwriteGuard,
	renderer ReportRenderer,
	pipelineOpts []Option,
	opts ...DefaultOption,
) *Pipeline {
	cfg := defaultConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	p := New(pipelineOpts...)
	p.AddSteps(
		NewResolveStep(cfg.skipUnresolved, p.logger),
		NewPathStep(builder, p.logger),
		NewOverwriteStep(guard),
		NewRenderStep(renderer, p.logger),
	)
	return p
}
