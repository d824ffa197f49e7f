package report

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/medphys/internal/model"
)

// Writer summarizes finished report runs.
type Writer interface {
	// Write outputs the summary of runs and returns the number of bytes written.
	Write(runs []*model.ReportRun) (int, error)
}

// baseWriter provides common functionality for summary writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// typesText returns the unit's normalized labels, or its raw type when the
// run ended before resolution.
func typesText(run *model.ReportRun) string {
	if len(run.Resolutions) == 0 {
		return run.Unit.RawType.String()
	}
	return strings.Join(run.Labels(), ", ")
}

// statusText returns the outcome, with the error message for failed runs.
func statusText(run *model.ReportRun) string {
	if run.Err == nil {
		return run.Outcome.String()
	}
	return run.Outcome.String() + " - " + run.Err.Error()
}

// baseNames returns the file names of paths.
func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
