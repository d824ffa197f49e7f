package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/medphys/internal/model"
)

// SimpleWriter prints one block of plain text per unit.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary of runs.
func (w *SimpleWriter) Write(runs []*model.ReportRun) (int, error) {
	var sb strings.Builder

	for _, run := range runs {
		fmt.Fprintf(&sb, "Unit %s (%s): %s\n", run.Unit.ID, typesText(run), statusText(run))
		for _, path := range run.Written {
			fmt.Fprintf(&sb, "  Report created at: %s\n", path)
		}
	}

	return io.WriteString(w.output, sb.String())
}
