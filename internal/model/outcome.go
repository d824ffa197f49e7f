package model

import (
	"context"
	"errors"
)

// Outcome is the terminal state of one unit's report run.
type Outcome int

const (
	// OutcomePending means the run has not finished yet.
	OutcomePending Outcome = iota

	// OutcomeDone means every report instance was written.
	OutcomeDone

	// OutcomeAborted means the operator declined an overwrite or interrupted the run.
	// No report was written.
	OutcomeAborted

	// OutcomeUnknownType means a unit type did not resolve to a template.
	// No report was written.
	OutcomeUnknownType

	// OutcomeRenderError means a template could not be loaded or a report could
	// not be saved. Instances written before the failure are kept.
	OutcomeRenderError
)

// String returns a human-readable name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePending:
		return "pending"
	case OutcomeDone:
		return "done"
	case OutcomeAborted:
		return "aborted"
	case OutcomeUnknownType:
		return "failed: unknown type"
	case OutcomeRenderError:
		return "failed: render error"
	default:
		return "unknown"
	}
}

// Succeeded reports whether the outcome is OutcomeDone.
func (o Outcome) Succeeded() bool {
	return o == OutcomeDone
}

// OutcomeOf classifies the error returned by a report run.
// Filesystem failures while preparing the output folder are reported as
// render errors since they also prevent the report from being produced.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeDone
	case errors.Is(err, ErrUnknownType):
		return OutcomeUnknownType
	case errors.Is(err, ErrOverwriteDeclined),
		errors.Is(err, context.Canceled):
		return OutcomeAborted
	default:
		return OutcomeRenderError
	}
}
