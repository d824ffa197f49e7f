package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Report types understood by the tooling. The set is open: any other
// string is carried through to the filename and the report header as-is.
const (
	ReportTypeAnnual     = "Annual"
	ReportTypeOther      = "Other"
	ReportTypeAcceptance = "Acceptance"
	ReportTypeACR        = "ACR"
)

// DefaultReportType is used when no report type is given.
const DefaultReportType = ReportTypeAnnual

// SurveyDateToday is the survey date argument that selects the current date.
const SurveyDateToday = "today"

// surveyDateLayout is the MM-DD-YYYY layout used in filenames.
const surveyDateLayout = "01-02-2006"

// ReportJob describes one requested report run: what kind of survey was
// performed, when, and an optional filename modifier.
type ReportJob struct {
	// ReportType is the survey kind, e.g. "Annual".
	ReportType string

	// SurveyDate is the calendar date of the survey. Only the date part is meaningful.
	SurveyDate time.Time

	// Modifier is appended to the report filename when non-empty.
	Modifier string
}

// NewReportJob creates a ReportJob. An empty report type falls back to
// DefaultReportType.
func NewReportJob(reportType string, surveyDate time.Time, modifier string) ReportJob {
	if reportType == "" {
		reportType = DefaultReportType
	}
	return ReportJob{
		ReportType: reportType,
		SurveyDate: surveyDate,
		Modifier:   modifier,
	}
}

// DateStamp returns the survey date formatted as MM-DD-YYYY.
func (j ReportJob) DateStamp() string {
	return j.SurveyDate.Format(surveyDateLayout)
}

// IsAcceptance reports whether the job is an acceptance survey of a new unit.
func (j ReportJob) IsAcceptance() bool {
	return j.ReportType == ReportTypeAcceptance
}

// ParseSurveyDate converts a survey date argument into a calendar date.
// "today" selects the date of now. Any other value must be month-day-year
// separated by dashes; zero padding of month and day is optional
// ("3-5-2024" and "03-05-2024" are equal) and the year has four digits.
// Malformed input or impossible dates such as 02-30-2024 yield ErrDateFormat.
func ParseSurveyDate(value string, now time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.EqualFold(value, SurveyDateToday) {
		y, m, d := now.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	parts := strings.Split(value, "-")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return time.Time{}, fmt.Errorf("%w: %q (expected MM-DD-YYYY)", ErrDateFormat, value)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if p == "" || len(p) > 4 || strings.IndexFunc(p, notDigit) >= 0 {
			return time.Time{}, fmt.Errorf("%w: %q (expected MM-DD-YYYY)", ErrDateFormat, value)
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q (expected MM-DD-YYYY)", ErrDateFormat, value)
		}
		nums[i] = n
	}

	month, day, year := nums[0], nums[1], nums[2]
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values; a round trip detects them.
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, fmt.Errorf("%w: %q is not a calendar date", ErrDateFormat, value)
	}
	return date, nil
}

func notDigit(r rune) bool {
	return r < '0' || r > '9'
}
