package pipeline

import (
	"context"
	"log/slog"

	"github.com/nao1215/medphys/internal/model"
)

// BatchProcessor runs several units through report generation, one at a
// time. Each unit gets a fresh pipeline from the factory and its own run;
// a failed unit does not stop the following ones.
type BatchProcessor struct {
	// pipelineFactory creates a new pipeline for each unit.
	pipelineFactory func() *Pipeline

	// logger is used for batch-level logging.
	logger *slog.Logger
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// NewBatchProcessor creates a new BatchProcessor.
func NewBatchProcessor(pipelineFactory func() *Pipeline, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		pipelineFactory: pipelineFactory,
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// Process runs every unit with the same job and returns the runs in unit order.
func (bp *BatchProcessor) Process(ctx context.Context, units []model.UnitRecord, job model.ReportJob) []*model.ReportRun {
	return bp.ProcessWithCallback(ctx, units, job, nil)
}

// ProcessWithCallback is like Process and calls callback after each unit
// finishes. Units not started because ctx was cancelled are left out of
// the result.
func (bp *BatchProcessor) ProcessWithCallback(
	ctx context.Context,
	units []model.UnitRecord,
	job model.ReportJob,
	callback func(run *model.ReportRun, index int),
) []*model.ReportRun {
	runs := make([]*model.ReportRun, 0, len(units))

	for i, unit := range units {
		if ctx.Err() != nil {
			bp.logger.Warn("batch cancelled", "remaining", len(units)-i)
			break
		}

		run := model.NewReportRun(unit, job)
		if err := bp.pipelineFactory().Execute(ctx, run); err != nil {
			bp.logger.Debug("unit not completed",
				"unit", unit.ID,
				"outcome", run.Outcome.String(),
			)
		}
		runs = append(runs, run)

		if callback != nil {
			callback(run, i)
		}
	}

	return runs
}
