// Package naming derives where survey reports are stored and what they are called.
//
// Reports are filed by survey date under <base>/<YYYY>/<MM-MonthName>/ and named
//
//	<id>_<site>_<type>_<mfr[-model]>_<reportType>_<MM-DD-YYYY>[_<modifier>].xlsx
//
// Names depend only on the unit and the job, so rerunning the same job yields
// the same paths and the overwrite check can find earlier output.
package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nao1215/medphys/internal/model"
)

// folderPerm is the permission used for created report folders.
const folderPerm = 0750

// Builder derives report folders and file paths below a base directory.
type Builder struct {
	baseDir string
}

// NewBuilder creates a Builder rooted at baseDir.
func NewBuilder(baseDir string) *Builder {
	return &Builder{baseDir: baseDir}
}

// Folder returns the report folder for a survey date, e.g.
// <base>/2024/03-March. It does not touch the filesystem.
func (b *Builder) Folder(date time.Time) string {
	month := fmt.Sprintf("%02d-%s", int(date.Month()), date.Month().String())
	return filepath.Join(b.baseDir, fmt.Sprintf("%04d", date.Year()), month)
}

// EnsureFolder returns the report folder for date, creating it and any
// missing parents. An existing folder is not an error. created reports
// whether the folder had to be made.
func (b *Builder) EnsureFolder(date time.Time) (folder string, created bool, err error) {
	folder = b.Folder(date)

	info, err := os.Stat(folder)
	switch {
	case err == nil && info.IsDir():
		return folder, false, nil
	case err == nil:
		return "", false, fmt.Errorf("report folder %s exists and is not a directory", folder)
	case !os.IsNotExist(err):
		return "", false, fmt.Errorf("failed to check report folder: %w", err)
	}

	if err := os.MkdirAll(folder, folderPerm); err != nil {
		return "", false, fmt.Errorf("failed to create report folder: %w", err)
	}
	return folder, true, nil
}

// Targets returns the report path for each label, in label order.
func (b *Builder) Targets(folder string, unit model.UnitRecord, labels []string, job model.ReportJob) []string {
	targets := make([]string, len(labels))
	for i, label := range labels {
		targets[i] = filepath.Join(folder, FileName(unit, label, job))
	}
	return targets
}

// FileName returns the report file name for one type label of a unit.
func FileName(unit model.UnitRecord, label string, job model.ReportJob) string {
	parts := []string{
		unit.ID,
		strings.ReplaceAll(unit.Site, " ", ""),
		strings.ReplaceAll(label, " ", "-"),
		MakeModelToken(unit.Manufacturer, unit.Model),
		job.ReportType,
		job.DateStamp(),
	}
	if job.Modifier != "" {
		parts = append(parts, job.Modifier)
	}
	return strings.Join(parts, "_") + model.TemplateExt
}

// MakeModelToken returns "manufacturer-model", or the manufacturer alone
// when there is no model. Spaces are removed from the model and slashes
// become hyphens so the token is safe in a file name.
func MakeModelToken(manufacturer, modelName string) string {
	modelName = strings.ReplaceAll(modelName, " ", "")
	modelName = strings.ReplaceAll(modelName, "/", "-")
	if modelName == "" {
		return manufacturer
	}
	return manufacturer + "-" + modelName
}
