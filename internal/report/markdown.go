package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/medphys/internal/model"
)

// MarkdownWriter outputs the run summary as GitHub flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary of runs.
func (w *MarkdownWriter) Write(runs []*model.ReportRun) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Survey Reports")
	md.PlainText("")

	rows := make([][]string, 0, len(runs))
	done := 0
	for _, run := range runs {
		if run.Outcome.Succeeded() {
			done++
		}
		rows = append(rows, []string{
			"`" + run.Unit.ID + "`",
			run.Unit.Site,
			typesText(run),
			statusText(run),
			strings.Join(baseNames(run.Written), "<br>"),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"ID", "Site", "Types", "Status", "Reports"},
		Rows:   rows,
	})
	md.PlainText("")

	switch {
	case len(runs) == 0:
		md.Note("No units were processed.")
	case done == len(runs):
		md.Tip("All " + strconv.Itoa(done) + " unit(s) completed.")
	default:
		md.Warningf("%d of %d unit(s) did not complete.", len(runs)-done, len(runs))
	}

	return len(md.String()), md.Build()
}
