// Package pipeline runs a unit through report generation.
//
// A run moves through four steps, each stopping the run on failure:
//
//	resolve   -> unit type to template keys      (ErrUnknownType)
//	paths     -> dated folder and report paths
//	overwrite -> operator decision on collisions (ErrOverwriteDeclined)
//	render    -> one workbook per template       (ErrTemplate)
//
// Nothing is written before the render step, so unknown types and declined
// overwrites leave no report behind. Rendering is not transactional: when the
// second of two instances fails, the first stays on disk.
//
// BatchProcessor runs several units, one after the other, each with a fresh
// pipeline.
package pipeline
