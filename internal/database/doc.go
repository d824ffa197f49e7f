// Package database provides read access to the SQLite equipment database.
//
// The database holds one row per piece of equipment in a table named
// "equipment":
//
//	id, site, location, location_detail, type, manufacturer, model
//
// The report generator never writes to it; the file is opened read-only
// once per run.
package database
