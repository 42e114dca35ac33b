// Package main provides the paperlens CLI entry point.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "paperlens",
	Short: "Structure scholarly documents and resolve their citations",
	Long: `paperlens recovers the section layout of a scholarly document from its
text alone, parses the reference list, links in-text citation markers to
the entries they denote, and produces extractive per-section summaries.

Run it one-shot on a file with "paperlens summarize", or as an HTTP
service with "paperlens serve".`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Version = Version
}
