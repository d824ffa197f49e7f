// Package report produces survey report workbooks and run summaries.
//
// Renderer fills the fixed header block of a template workbook and saves the
// result. The header layout (sheet "Report", fourteen cells) is shared with
// the existing survey workbooks and must not change.
//
// SimpleWriter and MarkdownWriter summarize the outcome of a run for the
// terminal or for pasting into documentation.
package report
