/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/fulmenhq/spdxlint/pkg/lang"
)

var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages and how they are recognized",
	RunE:  runLanguages,
}

func runLanguages(cmd *cobra.Command, _ []string) error {
	title := cases.Title(language.English)
	cmd.Printf("%-14s %-28s %s\n", "LANGUAGE", "EXTENSIONS", "INTERPRETERS")
	for _, def := range lang.NewRegistry().Definitions() {
		name := title.String(def.Name)
		if def.Shebang {
			name += " *"
		}
		cmd.Printf("%-14s %-28s %s\n", name,
			strings.Join(def.Extensions, " "),
			strings.Join(def.Interpreters, " "))
	}
	cmd.Println()
	cmd.Println("* a #! first line does not disqualify the file")
	return nil
}
