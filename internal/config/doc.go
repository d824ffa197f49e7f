// Package config provides the configuration of the report generator.
// It defines where reports, templates and the equipment database live, and
// the operator and detector details printed on every report header.
package config
