// Package model defines the data shared by the report generator.
//
// This package contains the following main types:
//   - UnitRecord: one piece of imaging equipment
//   - ReportJob: the requested survey report (type, date, filename modifier)
//   - Resolution: a type label resolved, or not, to a TemplateKey
//   - ReportRun: the state of one unit moving through the pipeline
//   - Outcome: the terminal state of a run
//
// The error taxonomy of the tool also lives here so that every package can
// wrap the same sentinels.
package model
