package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-playground/validator/v10"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "medphys"

	// DefaultTemplatesDirName is the templates directory below the data directory.
	DefaultTemplatesDirName = "templates"

	// DefaultDatabaseName is the equipment database file below the data directory.
	DefaultDatabaseName = "equipment.db"
)

// Config holds the settings of one run. It is loaded once at startup,
// validated, and passed by pointer to every consumer.
type Config struct {
	// Dirs locates reports, templates and the equipment database.
	Dirs Dirs `yaml:"dirs"`

	// TestingInfo identifies the people who performed and checked the survey.
	TestingInfo TestingInfo `yaml:"testing_info"`

	// DetectorInfo describes the measurement detector used for the survey.
	DetectorInfo DetectorInfo `yaml:"detector_info"`
}

// Dirs holds filesystem locations.
type Dirs struct {
	// BaseReportDir is the root of the dated report folders.
	BaseReportDir string `yaml:"base_report_dir" validate:"required"`

	// TemplatesDir contains one <template-key>.xlsx workbook per template.
	TemplatesDir string `yaml:"templates_dir" validate:"required"`

	// Database is the path of the SQLite equipment database.
	Database string `yaml:"database" validate:"required"`
}

// TestingInfo holds the tester and checker of a survey.
type TestingInfo struct {
	TestedBy     string `yaml:"tested_by" validate:"required"`
	TestedBySPN  string `yaml:"tested_by_spn" validate:"required"`
	CheckedBy    string `yaml:"checked_by" validate:"required"`
	CheckedBySPN string `yaml:"checked_by_spn" validate:"required"`
}

// DetectorInfo holds the detector details.
type DetectorInfo struct {
	Model        string `yaml:"detector_model" validate:"required"`
	SerialNumber string `yaml:"detector_sn" validate:"required"`
	CalDate      string `yaml:"detector_cal_date" validate:"required"`
}

// NewConfig creates a Config with default locations for templates and the
// equipment database. The report directory and the operator details have
// no default and must come from the configuration file.
func NewConfig() *Config {
	return &Config{
		Dirs: Dirs{
			TemplatesDir: filepath.Join(XDGDataDir(), DefaultTemplatesDirName),
			Database:     filepath.Join(XDGDataDir(), DefaultDatabaseName),
		},
	}
}

// XDGDataDir returns the XDG data directory of the application.
// On Linux: ~/.local/share/medphys
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory of the application.
// On Linux: ~/.config/medphys
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks that every required key is set. The first missing key is
// returned wrapped in ErrMissingKey, named the way it is written in the
// configuration file, e.g. "testing_info.tested_by".
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(yamlName)

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		key := verrs[0].Namespace()
		if i := strings.IndexByte(key, '.'); i >= 0 {
			key = key[i+1:]
		}
		return fmt.Errorf("%w: %s", ErrMissingKey, key)
	}
	return fmt.Errorf("invalid configuration: %w", err)
}

// yamlName reports a struct field by its YAML key.
func yamlName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("yaml"), ",", 2)[0]
	if name == "-" || name == "" {
		return field.Name
	}
	return name
}
