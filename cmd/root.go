/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/fulmenhq/spdxlint/pkg/buildinfo"
	"github.com/fulmenhq/spdxlint/pkg/exitcode"
	"github.com/fulmenhq/spdxlint/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "spdxlint",
		Short: "SPDX license header compliance scanner",
		Long: `Spdxlint classifies source files by language, extracts the declared
SPDX-License-Identifier from each file's header comment, and reports files
whose declaration is missing or not in the accepted set.

Examples:
   spdxlint check Apache-2.0 MIT .   # Scan the tree against an allow-list
   spdxlint check Apache-2.0 lib.rs  # Check a single file
   spdxlint languages                # List supported languages
   spdxlint version                  # Show version`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	addGlobalFlags(cmd.PersistentFlags())

	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("spdxlint {{.Version}}\n")

	return cmd
}

// addGlobalFlags registers the flags shared by every subcommand.
func addGlobalFlags(flags *pflag.FlagSet) {
	flags.String("log-level", "info", "Set log level (trace|debug|info|warn|error)")
	flags.Bool("json", false, "Output logs in JSON format")
	flags.Bool("no-color", false, "Disable colored output")
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(checkCmd)
	cmd.AddCommand(languagesCmd)
	cmd.AddCommand(versionCmd)
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitcode.GeneralError)
	}
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json")
	noColor, _ := cmd.Flags().GetBool("no-color")

	var logLevel logger.Level
	switch strings.ToLower(logLevelStr) {
	case "trace":
		logLevel = logger.TraceLevel
	case "debug":
		logLevel = logger.DebugLevel
	case "info":
		logLevel = logger.InfoLevel
	case "warn":
		logLevel = logger.WarnLevel
	case "error":
		logLevel = logger.ErrorLevel
	default:
		logLevel = logger.InfoLevel
	}

	config := logger.Config{
		Level:     logLevel,
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "spdxlint",
	}

	if err := logger.Initialize(config); err != nil {
		if _, writeErr := os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n"); writeErr != nil {
			_ = writeErr
		}
		os.Exit(exitcode.ConfigError)
	}
}
