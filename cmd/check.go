/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/fulmenhq/spdxlint/internal/policy"
	"github.com/fulmenhq/spdxlint/internal/report"
	"github.com/fulmenhq/spdxlint/pkg/checker"
	"github.com/fulmenhq/spdxlint/pkg/config"
	"github.com/fulmenhq/spdxlint/pkg/exitcode"
	"github.com/fulmenhq/spdxlint/pkg/ignore"
	"github.com/fulmenhq/spdxlint/pkg/lang"
	"github.com/fulmenhq/spdxlint/pkg/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check [licenses...] [path]",
	Short: "Scan files for accepted SPDX license declarations",
	Long: `Check walks a directory tree (or reads a single file), resolves each
file's language, extracts the declared SPDX-License-Identifier, and reports
files missing a declaration or declaring a license outside the allow-list.

Positional arguments are license names; the final argument is the path to
scan. With no arguments the current directory is scanned. The ` + config.LicensesEnv + `
environment variable (a JSON list) overrides positional license names, and
` + config.IgnoreEnv + ` adds comma-separated directory names to the ignore set.

Exit status is 0 when every checked file is compliant and 1 otherwise.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("format", "", "Output format (text|json|markdown|checkstyle)")
	checkCmd.Flags().Int("jobs", 0, "Concurrent header reads (1 = fully sequential)")
	checkCmd.Flags().String("policy", "", "Rego policy file evaluated against scan results")
	checkCmd.Flags().Bool("gitignore", false, "Also prune directories ignored by git")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Configuration error", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	licenses, target := splitCheckArgs(args)
	if len(cfg.Licenses) > 0 {
		// The environment allow-list (and the config file, when no
		// licenses were given on the command line) wins over
		// positional arguments.
		if _, fromEnv := os.LookupEnv(config.LicensesEnv); fromEnv || len(licenses) == 0 {
			licenses = cfg.Licenses
		}
	}

	// Reject a bad allow-list before the scan touches the filesystem.
	if err := checker.ValidateAllowList(licenses); err != nil {
		logger.Error("Configuration error", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	formatName, _ := cmd.Flags().GetString("format")
	if formatName == "" {
		formatName = cfg.Output.Format
	}
	format, err := report.ParseFormat(formatName)
	if err != nil {
		logger.Error("Configuration error", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	if jobs <= 0 {
		jobs = cfg.Jobs
	}

	useGitignore, _ := cmd.Flags().GetBool("gitignore")
	ignoreSet, err := ignore.NewSet(target, ignore.Options{
		Dirs:      cfg.Ignore.Dirs,
		Patterns:  cfg.Ignore.Patterns,
		Gitignore: useGitignore || cfg.Ignore.Gitignore,
	})
	if err != nil {
		logger.Error("Configuration error", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	chk, err := checker.New(lang.NewRegistry(), checker.Options{
		Allowed: licenses,
		Ignore:  ignoreSet,
		Jobs:    jobs,
	})
	if err != nil {
		logger.Error("Configuration error", logger.Err(err))
		os.Exit(exitcode.ConfigError)
	}

	ctx := context.Background()
	findings, err := chk.Check(ctx, target)
	if err != nil {
		logger.Error("Scan failed", logger.Err(err))
		os.Exit(exitcode.FileSystemError)
	}

	code := checker.ExitCode(findings)

	if policyFile, _ := cmd.Flags().GetString("policy"); policyFile != "" {
		engine := policy.NewEngine()
		if err := engine.LoadPolicy(policyFile); err != nil {
			logger.Error("Configuration error", logger.Err(err))
			os.Exit(exitcode.ConfigError)
		}
		denials, err := engine.Evaluate(ctx, findings)
		if err != nil {
			logger.Error("Policy evaluation failed", logger.Err(err))
			os.Exit(exitcode.GeneralError)
		}
		for _, d := range denials {
			cmd.PrintErrln(d)
		}
		if len(denials) > 0 {
			code |= 1
		}
	}

	writer := report.NewWriter(format, cmd.OutOrStdout())
	if err := writer.Write(target, findings); err != nil {
		return err
	}

	if code != 0 {
		os.Exit(code)
	}
	return nil
}

// splitCheckArgs separates license names from the optional trailing
// path. The final argument is always the path candidate; when it names
// neither an existing file nor a directory the scan simply produces no
// findings. With no arguments the current directory is scanned.
func splitCheckArgs(args []string) (licenses []string, target string) {
	if len(args) == 0 {
		return nil, "."
	}
	return args[:len(args)-1], args[len(args)-1]
}
