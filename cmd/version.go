/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fulmenhq/spdxlint/pkg/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE:  runVersion,
}

func init() {
	versionCmd.Flags().Bool("extended", false, "Include module build information")
}

func runVersion(cmd *cobra.Command, _ []string) error {
	cmd.Printf("spdxlint %s\n", buildinfo.BinaryVersion)
	if extended, _ := cmd.Flags().GetBool("extended"); extended {
		if mv := buildinfo.ModuleVersion(); mv != "" {
			cmd.Printf("module version: %s\n", mv)
		}
	}
	return nil
}
