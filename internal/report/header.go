package report

import (
	"github.com/nao1215/medphys/internal/config"
	"github.com/nao1215/medphys/internal/model"
)

// SheetName is the worksheet holding the report header.
const SheetName = "Report"

// Header field names.
const (
	FieldSite            = "site"
	FieldLocationDetail  = "location_detail"
	FieldUnitType        = "unit_type"
	FieldMfrModel        = "mfr_model"
	FieldIDNumber        = "id_number"
	FieldReportType      = "report_type"
	FieldSurveyDate      = "survey_date"
	FieldTestedBy        = "tested_by"
	FieldTestedBySPN     = "tested_by_spn"
	FieldCheckedBy       = "checked_by"
	FieldCheckedBySPN    = "checked_by_spn"
	FieldDetectorModel   = "detector_model"
	FieldDetectorSN      = "detector_sn"
	FieldDetectorCalDate = "detector_cal_date"
)

// HeaderCell places one header field.
type HeaderCell struct {
	Field string
	Cell  string
}

// HeaderLayout returns the cell of every header field, in sheet order.
func HeaderLayout() []HeaderCell {
	return []HeaderCell{
		{FieldSite, "B3"},
		{FieldLocationDetail, "B4"},
		{FieldUnitType, "B5"},
		{FieldMfrModel, "B6"},
		{FieldIDNumber, "B7"},
		{FieldReportType, "B9"},
		{FieldSurveyDate, "G3"},
		{FieldTestedBy, "G4"},
		{FieldTestedBySPN, "G5"},
		{FieldCheckedBy, "G6"},
		{FieldCheckedBySPN, "G7"},
		{FieldDetectorModel, "G8"},
		{FieldDetectorSN, "G9"},
		{FieldDetectorCalDate, "G10"},
	}
}

// Signoff holds the operator and detector details printed on every report.
type Signoff struct {
	TestedBy        string
	TestedBySPN     string
	CheckedBy       string
	CheckedBySPN    string
	DetectorModel   string
	DetectorSN      string
	DetectorCalDate string
}

// SignoffFromConfig copies the signoff details out of the configuration.
func SignoffFromConfig(cfg *config.Config) Signoff {
	return Signoff{
		TestedBy:        cfg.TestingInfo.TestedBy,
		TestedBySPN:     cfg.TestingInfo.TestedBySPN,
		CheckedBy:       cfg.TestingInfo.CheckedBy,
		CheckedBySPN:    cfg.TestingInfo.CheckedBySPN,
		DetectorModel:   cfg.DetectorInfo.Model,
		DetectorSN:      cfg.DetectorInfo.SerialNumber,
		DetectorCalDate: cfg.DetectorInfo.CalDate,
	}
}

// HeaderValues returns the value of every header field for one report instance.
// The survey date is a time.Time so that it is stored as a date cell.
func HeaderValues(unit model.UnitRecord, label string, job model.ReportJob, s Signoff) map[string]any {
	return map[string]any{
		FieldSite:            unit.Site,
		FieldLocationDetail:  unit.LocationText(),
		FieldUnitType:        label,
		FieldMfrModel:        unit.MakeModelText(),
		FieldIDNumber:        unit.ID,
		FieldReportType:      job.ReportType,
		FieldSurveyDate:      job.SurveyDate,
		FieldTestedBy:        s.TestedBy,
		FieldTestedBySPN:     s.TestedBySPN,
		FieldCheckedBy:       s.CheckedBy,
		FieldCheckedBySPN:    s.CheckedBySPN,
		FieldDetectorModel:   s.DetectorModel,
		FieldDetectorSN:      s.DetectorSN,
		FieldDetectorCalDate: s.DetectorCalDate,
	}
}
