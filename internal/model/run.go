package model

// ReportRun carries one unit through the report pipeline. Each step reads
// what earlier steps produced and fills in its own part.
type ReportRun struct {
	// Unit is the equipment being reported on.
	Unit UnitRecord

	// Job is the requested report.
	Job ReportJob

	// Resolutions holds one entry per normalized type label, in label order.
	Resolutions []Resolution

	// Folder is the dated report folder.
	Folder string

	// Targets holds the output path of each resolved instance. Targets[i]
	// belongs to Instances()[i].
	Targets []string

	// Written lists the reports saved so far, in order.
	Written []string

	// PerformedSteps records the names of the steps that completed.
	PerformedSteps []string

	// Outcome is the terminal state, set when the pipeline finishes.
	Outcome Outcome

	// Err is the error that ended the run, if any.
	Err error
}

// NewReportRun creates a pending run for unit and job.
func NewReportRun(unit UnitRecord, job ReportJob) *ReportRun {
	return &ReportRun{
		Unit:    unit,
		Job:     job,
		Outcome: OutcomePending,
	}
}

// Instance is one report to produce: a type label and its template.
type Instance struct {
	Label string
	Key   TemplateKey
}

// Resolution returns the instance as a resolved Resolution.
func (i Instance) Resolution() Resolution {
	return Resolved(i.Label, i.Key)
}

// Instances returns the resolved labels in order, skipping unresolved ones.
func (r *ReportRun) Instances() []Instance {
	instances := make([]Instance, 0, len(r.Resolutions))
	for _, res := range r.Resolutions {
		if key, ok := res.Key(); ok {
			instances = append(instances, Instance{Label: res.Label, Key: key})
		}
	}
	return instances
}

// Labels returns every normalized type label, resolved or not.
func (r *ReportRun) Labels() []string {
	labels := make([]string, len(r.Resolutions))
	for i, res := range r.Resolutions {
		labels[i] = res.Label
	}
	return labels
}

// Finish records the terminal error and outcome of the run.
func (r *ReportRun) Finish(err error) {
	r.Err = err
	r.Outcome = OutcomeOf(err)
}
