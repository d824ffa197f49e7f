package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version information set at build time via ldflags.
var (
	version = ""
	commit  = ""
	date    = ""
)

// buildSetting returns a setting recorded by the Go toolchain, e.g.
// "vcs.revision", or "" when the binary carries no build information.
func buildSetting(key string) string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	if key == "main.version" {
		return info.Main.Version
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value
		}
	}
	return ""
}

// firstNonEmpty returns the first non-empty value, or fallback.
func firstNonEmpty(fallback string, values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return fallback
}

// getVersion returns the version: ldflags, then build info, then "(devel)".
func getVersion() string {
	return firstNonEmpty("(devel)", version, buildSetting("main.version"))
}

// getCommit returns the short commit hash.
func getCommit() string {
	c := firstNonEmpty("unknown", commit, buildSetting("vcs.revision"))
	if commit == "" && len(c) > 7 {
		return c[:7]
	}
	return c
}

// getDate returns the build or commit date.
func getDate() string {
	return firstNonEmpty("unknown", date, buildSetting("vcs.time"))
}

// NewVersionCmd creates the version command.
func NewVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print the version, commit hash, and build date of medphys.`,
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "medphys version %s\n", getVersion())
			fmt.Fprintf(out, "  commit: %s\n", getCommit())
			fmt.Fprintf(out, "  built:  %s\n", getDate())
		},
	}
}
