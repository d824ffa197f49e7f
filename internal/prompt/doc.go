// Package prompt implements the operator interactions of the report generator.
//
// All interactions are synchronous and line based: a question is written to
// the output and the answer is read from the input before anything else
// happens. Two interactions exist:
//   - Guard asks before an existing report would be overwritten
//   - UnitEntry collects the data of a unit that is not in the database yet
package prompt
