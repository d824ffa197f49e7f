// Package main provides the entry point for the medphys CLI.
//
// medphys generates survey reports for medical imaging equipment. A unit is
// looked up in the equipment database by its ID, mapped to one or more
// spreadsheet templates by its type, and each template is filled in and
// saved under a dated folder.
//
// Usage:
//
//	medphys report <id> [--type Annual] [--date today] [--mod suffix]
//	medphys show <id>
//	medphys init
//
// See --help for all available options.
package main

// main is the entry point for medphys.
func main() {
	Execute()
}
