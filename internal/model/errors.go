package model

import "errors"

// Report generation errors.
// Components wrap these with context; callers classify them with errors.Is
// or OutcomeOf.
var (
	// ErrConnection is returned when the equipment database cannot be opened or queried.
	ErrConnection = errors.New("unable to connect to the equipment database")

	// ErrNotFound is returned when an identifier matches no equipment record.
	ErrNotFound = errors.New("that ID number does not match any of our records")

	// ErrUnknownType is returned when a unit type cannot be resolved to a template.
	ErrUnknownType = errors.New("that type of template does not exist in the template folder")

	// ErrTemplate is returned when a template workbook is missing or unreadable,
	// or the populated report cannot be saved.
	ErrTemplate = errors.New("report not created: template problem")

	// ErrDateFormat is returned when an explicit survey date is malformed.
	ErrDateFormat = errors.New("date not entered in correct format")

	// ErrOverwriteDeclined is returned when the operator refuses to overwrite an existing report.
	ErrOverwriteDeclined = errors.New("cancelling report generation")
)
