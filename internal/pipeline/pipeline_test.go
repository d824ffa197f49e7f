package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/medphys/internal/model"
	"github.com/nao1215/medphys/internal/naming"
	"github.com/nao1215/medphys/internal/prompt"
	"github.com/nao1215/medphys/internal/report"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// mockStep is a test double for Step.
type mockStep struct {
	name   string
	err    error
	called bool
}

func (m *mockStep) Name() string { return m.name }

func (m *mockStep) Do(_ context.Context, _ *model.ReportRun) error {
	m.called = true
	return m.err
}

// answerConfirmer answers every question with the same decision.
type answerConfirmer struct {
	answer    bool
	questions []string
}

func (c *answerConfirmer) Confirm(question string) (bool, error) {
	c.questions = append(c.questions, question)
	return c.answer, nil
}

// failingRenderer fails on the call with the given index and writes an
// empty file for the others.
type failingRenderer struct {
	failAt int
	calls  int
}

func (r *failingRenderer) Render(_ model.UnitRecord, _ model.Resolution, _ model.ReportJob, target string) error {
	defer func() { r.calls++ }()
	if r.calls == r.failAt {
		return model.ErrTemplate
	}
	return os.WriteFile(target, nil, 0o600)
}

func surveyJob() model.ReportJob {
	return model.NewReportJob(model.ReportTypeAnnual, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), "")
}

func unit(rawType model.UnitType, manufacturer, modelName string) model.UnitRecord {
	return model.UnitRecord{
		ID:           "1234",
		Site:         "Main Hospital",
		Location:     "Radiology",
		RawType:      rawType,
		Manufacturer: manufacturer,
		Model:        modelName,
	}
}

type fixture struct {
	baseDir   string
	confirmer *answerConfirmer
	pipeline  *Pipeline
}

func newFixture(t *testing.T, confirm bool, opts ...DefaultOption) *fixture {
	t.Helper()

	templates := t.TempDir()
	for _, key := range model.TemplateKeys() {
		if err := report.WriteSkeleton(key, filepath.Join(templates, key.FileName())); err != nil {
			t.Fatalf("WriteSkeleton(%s): %v", key, err)
		}
	}

	f := &fixture{
		baseDir:   t.TempDir(),
		confirmer: &answerConfirmer{answer: confirm},
	}
	logger := discardLogger()
	f.pipeline = DefaultPipeline(
		naming.NewBuilder(f.baseDir),
		prompt.NewGuard(f.confirmer, prompt.WithGuardLogger(logger)),
		report.NewRenderer(templates, report.Signoff{TestedBy: "A. Tester"}, report.WithRendererLogger(logger)),
		[]Option{WithLogger(logger)},
		opts...,
	)
	return f
}

func (f *fixture) folder() string {
	return filepath.Join(f.baseDir, "2024", "03-March")
}

func TestPipeline(t *testing.T) {
	t.Parallel()

	t.Run("executes steps in order", func(t *testing.T) {
		t.Parallel()

		first := &mockStep{name: "first"}
		second := &mockStep{name: "second"}
		p := New(WithLogger(discardLogger()))
		p.AddSteps(first, second)

		run := model.NewReportRun(unit(model.UnitTypeXRay, "GE", ""), surveyJob())
		if err := p.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if !first.called || !second.called {
			t.Error("expected both steps to be called")
		}
		if run.Outcome != model.OutcomeDone {
			t.Errorf("Outcome = %v, expected done", run.Outcome)
		}
		if len(run.PerformedSteps) != 2 {
			t.Errorf("PerformedSteps = %v", run.PerformedSteps)
		}
	})

	t.Run("stops at the first failing step", func(t *testing.T) {
		t.Parallel()

		first := &mockStep{name: "first", err: model.ErrUnknownType}
		second := &mockStep{name: "second"}
		p := New(WithLogger(discardLogger()))
		p.AddSteps(first, second)

		run := model.NewReportRun(unit(model.UnitTypeXRay, "GE", ""), surveyJob())
		err := p.Execute(context.Background(), run)
		if !errors.Is(err, model.ErrUnknownType) {
			t.Fatalf("Execute() error = %v, expected ErrUnknownType", err)
		}
		if second.called {
			t.Error("second step should not run")
		}
		if run.Outcome != model.OutcomeUnknownType {
			t.Errorf("Outcome = %v, expected unknown type", run.Outcome)
		}
	})

	t.Run("cancelled context aborts the run", func(t *testing.T) {
		t.Parallel()

		step := &mockStep{name: "step"}
		p := New(WithLogger(discardLogger()))
		p.AddStep(step)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		run := model.NewReportRun(unit(model.UnitTypeXRay, "GE", ""), surveyJob())
		if err := p.Execute(ctx, run); !errors.Is(err, context.Canceled) {
			t.Fatalf("Execute() error = %v, expected context.Canceled", err)
		}
		if step.called {
			t.Error("step should not run after cancellation")
		}
		if run.Outcome != model.OutcomeAborted {
			t.Errorf("Outcome = %v, expected aborted", run.Outcome)
		}
	})

	t.Run("step names", func(t *testing.T) {
		t.Parallel()

		p := DefaultPipeline(
			naming.NewBuilder(t.TempDir()),
			prompt.NewGuard(&answerConfirmer{}),
			&failingRenderer{failAt: -1},
			nil,
		)
		want := []string{"resolve", "paths", "overwrite", "render"}
		got := p.StepNames()
		if p.StepCount() != len(want) {
			t.Fatalf("StepCount() = %d, expected %d", p.StepCount(), len(want))
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("StepNames()[%d] = %q, expected %q", i, got[i], want[i])
			}
		}
	})
}

func TestDefaultPipeline(t *testing.T) {
	t.Parallel()

	t.Run("single type writes one report", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, true)
		run := model.NewReportRun(unit(model.UnitTypeXRay, "GE", "Discovery"), surveyJob())

		if err := f.pipeline.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		want := filepath.Join(f.folder(), "1234_MainHospital_X-Ray_GE-Discovery_Annual_03-15-2024.xlsx")
		if len(run.Written) != 1 || run.Written[0] != want {
			t.Fatalf("Written = %v, expected [%s]", run.Written, want)
		}
		if _, err := os.Stat(want); err != nil {
			t.Errorf("report not on disk: %v", err)
		}
		if len(f.confirmer.questions) != 0 {
			t.Errorf("unexpected questions: %v", f.confirmer.questions)
		}
	})

	t.Run("combined type writes one report per label", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, true)
		run := model.NewReportRun(unit(model.UnitTypeRadFluoro, "Siemens", "Luminos"), surveyJob())

		if err := f.pipeline.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}

		want := []string{
			filepath.Join(f.folder(), "1234_MainHospital_X-Ray_Siemens-Luminos_Annual_03-15-2024.xlsx"),
			filepath.Join(f.folder(), "1234_MainHospital_Fluoro_Siemens-Luminos_Annual_03-15-2024.xlsx"),
		}
		if len(run.Written) != len(want) {
			t.Fatalf("Written = %v, expected %v", run.Written, want)
		}
		for i := range want {
			if run.Written[i] != want[i] {
				t.Errorf("Written[%d] = %q, expected %q", i, run.Written[i], want[i])
			}
		}
	})

	t.Run("unknown portable manufacturer writes nothing", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, true)
		run := model.NewReportRun(unit(model.UnitTypePortableXRay, "Siemens", "Mobilett"), surveyJob())

		err := f.pipeline.Execute(context.Background(), run)
		if !errors.Is(err, model.ErrUnknownType) {
			t.Fatalf("Execute() error = %v, expected ErrUnknownType", err)
		}
		if run.Outcome != model.OutcomeUnknownType {
			t.Errorf("Outcome = %v, expected unknown type", run.Outcome)
		}
		if _, err := os.Stat(f.folder()); !os.IsNotExist(err) {
			t.Errorf("report folder should not exist, stat error = %v", err)
		}
	})

	t.Run("skip unresolved still fails without any template", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, true, WithSkipUnresolved(true))
		run := model.NewReportRun(unit(model.UnitTypePortableXRay, "Carestream", "DRX"), surveyJob())

		if err := f.pipeline.Execute(context.Background(), run); !errors.Is(err, model.ErrUnknownType) {
			t.Fatalf("Execute() error = %v, expected ErrUnknownType with nothing resolvable", err)
		}
	})

	t.Run("declined overwrite keeps every report", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, false)
		if err := os.MkdirAll(f.folder(), 0o750); err != nil {
			t.Fatal(err)
		}
		// Only the second report exists; the first must not be written either.
		existing := filepath.Join(f.folder(), "1234_MainHospital_Fluoro_Siemens-Luminos_Annual_03-15-2024.xlsx")
		if err := os.WriteFile(existing, []byte("keep"), 0o600); err != nil {
			t.Fatal(err)
		}

		run := model.NewReportRun(unit(model.UnitTypeRadFluoro, "Siemens", "Luminos"), surveyJob())
		err := f.pipeline.Execute(context.Background(), run)
		if !errors.Is(err, model.ErrOverwriteDeclined) {
			t.Fatalf("Execute() error = %v, expected ErrOverwriteDeclined", err)
		}
		if run.Outcome != model.OutcomeAborted {
			t.Errorf("Outcome = %v, expected aborted", run.Outcome)
		}
		if len(run.Written) != 0 {
			t.Errorf("Written = %v, expected none", run.Written)
		}

		entries, err := os.ReadDir(f.folder())
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("folder has %d entries, expected only the existing report", len(entries))
		}
		data, err := os.ReadFile(existing)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != "keep" {
			t.Error("existing report was modified")
		}
	})

	t.Run("accepted overwrite replaces the report", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, true)
		if err := os.MkdirAll(f.folder(), 0o750); err != nil {
			t.Fatal(err)
		}
		existing := filepath.Join(f.folder(), "1234_MainHospital_X-Ray_GE-Discovery_Annual_03-15-2024.xlsx")
		if err := os.WriteFile(existing, []byte("old"), 0o600); err != nil {
			t.Fatal(err)
		}

		run := model.NewReportRun(unit(model.UnitTypeXRay, "GE", "Discovery"), surveyJob())
		if err := f.pipeline.Execute(context.Background(), run); err != nil {
			t.Fatalf("Execute() error = %v", err)
		}
		if len(f.confirmer.questions) != 1 {
			t.Errorf("questions = %v, expected one", f.confirmer.questions)
		}
		data, err := os.ReadFile(existing)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) == "old" {
			t.Error("report was not replaced")
		}
	})
}

func TestRenderStep(t *testing.T) {
	t.Parallel()

	t.Run("stops at the first failing instance", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		renderer := &failingRenderer{failAt: 1}
		step := NewRenderStep(renderer, discardLogger())

		run := model.NewReportRun(unit(model.UnitTypeRadFluoro, "Siemens", ""), surveyJob())
		run.Resolutions = []model.Resolution{
			model.Resolved("X-Ray", model.TemplateXRay),
			model.Resolved("Fluoro", model.TemplateFluoro),
		}
		run.Targets = []string{filepath.Join(dir, "a.xlsx"), filepath.Join(dir, "b.xlsx")}

		err := step.Do(context.Background(), run)
		if !errors.Is(err, model.ErrTemplate) {
			t.Fatalf("Do() error = %v, expected ErrTemplate", err)
		}
		if len(run.Written) != 1 || run.Written[0] != run.Targets[0] {
			t.Errorf("Written = %v, expected only the first report", run.Written)
		}
		if model.OutcomeOf(err) != model.OutcomeRenderError {
			t.Errorf("OutcomeOf() = %v, expected render error", model.OutcomeOf(err))
		}
	})

	t.Run("target count mismatch", func(t *testing.T) {
		t.Parallel()

		step := NewRenderStep(&failingRenderer{failAt: -1}, discardLogger())
		run := model.NewReportRun(unit(model.UnitTypeXRay, "GE", ""), surveyJob())
		run.Resolutions = []model.Resolution{model.Resolved("X-Ray", model.TemplateXRay)}

		if err := step.Do(context.Background(), run); !errors.Is(err, model.ErrTemplate) {
			t.Errorf("Do() error = %v, expected ErrTemplate", err)
		}
	})
}

func TestResolveStep(t *testing.T) {
	t.Parallel()

	t.Run("records resolutions", func(t *testing.T) {
		t.Parallel()

		step := NewResolveStep(false, discardLogger())
		run := model.NewReportRun(unit(model.UnitTypeRadFluoro, "GE", ""), surveyJob())

		if err := step.Do(context.Background(), run); err != nil {
			t.Fatalf("Do() error = %v", err)
		}
		labels := run.Labels()
		if len(labels) != 2 || labels[0] != "X-Ray" || labels[1] != "Fluoro" {
			t.Errorf("Labels() = %v", labels)
		}
	})

	t.Run("unknown label fails", func(t *testing.T) {
		t.Parallel()

		step := NewResolveStep(false, discardLogger())
		run := model.NewReportRun(unit("Mammo", "Hologic", ""), surveyJob())

		if err := step.Do(context.Background(), run); !errors.Is(err, model.ErrUnknownType) {
			t.Errorf("Do() error = %v, expected ErrUnknownType", err)
		}
	})
}

func TestBatchProcessor(t *testing.T) {
	t.Parallel()

	t.Run("failed unit does not stop the batch", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t, true)
		bp := NewBatchProcessor(func() *Pipeline { return f.pipeline }, WithBatchLogger(discardLogger()))

		units := []model.UnitRecord{
			unit(model.UnitTypePortableXRay, "Carestream", ""),
			unit(model.UnitTypeDental, "Planmeca", "ProX"),
		}
		var seen []int
		runs := bp.ProcessWithCallback(context.Background(), units, surveyJob(), func(_ *model.ReportRun, index int) {
			seen = append(seen, index)
		})

		if len(runs) != 2 {
			t.Fatalf("got %d runs, expected 2", len(runs))
		}
		if runs[0].Outcome != model.OutcomeUnknownType {
			t.Errorf("runs[0].Outcome = %v, expected unknown type", runs[0].Outcome)
		}
		if runs[1].Outcome != model.OutcomeDone {
			t.Errorf("runs[1].Outcome = %v, expected done (err %v)", runs[1].Outcome, runs[1].Err)
		}
		if len(seen) != 2 || seen[0] != 0 || seen[1] != 1 {
			t.Errorf("callback indexes = %v", seen)
		}
	})

	t.Run("cancelled context processes nothing", func(t *testing.T) {
		t.Parallel()

		calls := 0
		bp := NewBatchProcessor(func() *Pipeline {
			calls++
			return New(WithLogger(discardLogger()))
		}, WithBatchLogger(discardLogger()))

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		runs := bp.Process(ctx, []model.UnitRecord{unit(model.UnitTypeXRay, "GE", "")}, surveyJob())
		if len(runs) != 0 || calls != 0 {
			t.Errorf("runs = %d, factory calls = %d, expected none", len(runs), calls)
		}
	})
}
