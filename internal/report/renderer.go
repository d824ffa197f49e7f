package report

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/medphys/internal/model"
	"github.com/xuri/excelize/v2"
)

// Renderer fills template workbooks with report headers.
type Renderer struct {
	templatesDir string
	signoff      Signoff
	logger       *slog.Logger
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRendererLogger sets the logger of the renderer.
func WithRendererLogger(logger *slog.Logger) RendererOption {
	return func(r *Renderer) {
		r.logger = logger
	}
}

// NewRenderer creates a Renderer loading templates from templatesDir.
func NewRenderer(templatesDir string, signoff Signoff, opts ...RendererOption) *Renderer {
	r := &Renderer{
		templatesDir: templatesDir,
		signoff:      signoff,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TemplatePath returns the workbook path of a template key.
func (r *Renderer) TemplatePath(key model.TemplateKey) string {
	return filepath.Join(r.templatesDir, key.FileName())
}

// Render writes the report of one type label to target. The template is
// chosen by res; an unresolved label, a missing or unreadable template, a
// template without the Report sheet, or a failed save all return ErrTemplate
// and leave target as it was. An existing file at target is replaced.
func (r *Renderer) Render(unit model.UnitRecord, res model.Resolution, job model.ReportJob, target string) error {
	key, ok := res.Key()
	if !ok {
		return fmt.Errorf("%w: no template for type %q", model.ErrTemplate, res.Label)
	}

	path := r.TemplatePath(key)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("%w: failed to open %s: %w", model.ErrTemplate, path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			r.logger.Debug("failed to close template", "path", path, "error", cerr)
		}
	}()

	idx, err := f.GetSheetIndex(SheetName)
	if err != nil || idx < 0 {
		return fmt.Errorf("%w: %s has no %q sheet", model.ErrTemplate, path, SheetName)
	}

	values := HeaderValues(unit, res.Label, job, r.signoff)
	for _, hc := range HeaderLayout() {
		if err := f.SetCellValue(SheetName, hc.Cell, values[hc.Field]); err != nil {
			return fmt.Errorf("%w: failed to set %s (%s): %w", model.ErrTemplate, hc.Field, hc.Cell, err)
		}
		if hc.Field != FieldSurveyDate {
			continue
		}
		if err := setDateStyle(f, hc.Cell); err != nil {
			return fmt.Errorf("%w: failed to format %s (%s): %w", model.ErrTemplate, hc.Field, hc.Cell, err)
		}
	}

	if err := saveReport(f, target); err != nil {
		return fmt.Errorf("%w: failed to save %s: %w", model.ErrTemplate, target, err)
	}

	r.logger.Info("report created", "path", target, "template", key.String())
	return nil
}

// surveyDateFormat is the number format of the survey date cell when the
// template does not give it a date format of its own.
var surveyDateFormat = "mm-dd-yyyy"

// setDateStyle makes cell display a calendar date. A date format already set
// by the template is kept; otherwise the cell's style gets surveyDateFormat
// with its font, border and fill unchanged.
func setDateStyle(f *excelize.File, cell string) error {
	id, err := f.GetCellStyle(SheetName, cell)
	if err != nil {
		return err
	}

	style := &excelize.Style{}
	if id != 0 {
		if style, err = f.GetStyle(id); err != nil {
			return err
		}
		if isDateFormat(style) {
			return nil
		}
	}

	style.NumFmt = 0
	style.CustomNumFmt = &surveyDateFormat
	dateID, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	return f.SetCellStyle(SheetName, cell, cell, dateID)
}

// isDateFormat reports whether style shows a date without a time of day.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		format := strings.ToLower(*style.CustomNumFmt)
		return strings.ContainsAny(format, "dy") && !strings.ContainsAny(format, "hs")
	}
	switch style.NumFmt {
	case 14, 15, 16, 17:
		return true
	}
	return false
}

// saveReport writes f next to target and renames it into place, so a failed
// save never leaves a partial report at target.
func saveReport(f *excelize.File, target string) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".report-*"+model.TemplateExt)
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := f.SaveAs(tmpPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, target); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
