// Package report renders compliance findings for humans and CI.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aymerick/raymond"
	"github.com/beevik/etree"
	"github.com/mattn/go-runewidth"

	"github.com/fulmenhq/spdxlint/pkg/checker"
)

// Format selects how findings are rendered.
type Format string

const (
	FormatText       Format = "text"
	FormatJSON       Format = "json"
	FormatMarkdown   Format = "markdown"
	FormatCheckstyle Format = "checkstyle"
)

// ParseFormat maps a user-supplied format name to a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatMarkdown, FormatCheckstyle:
		return Format(s), nil
	case "":
		return FormatText, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// licenseColumn is the fixed field width of the license column in text
// output; longer identifiers are truncated to keep paths aligned.
const licenseColumn = 16

// Writer renders a finding stream in one format.
type Writer struct {
	format Format
	out    io.Writer
}

// NewWriter creates a writer rendering to out.
func NewWriter(format Format, out io.Writer) *Writer {
	return &Writer{format: format, out: out}
}

// Write renders the findings. Compliant files are silent in text and
// markdown output; json and checkstyle carry the full result set so CI
// consumers can compute their own totals.
func (w *Writer) Write(target string, findings []checker.Finding) error {
	switch w.format {
	case FormatText:
		return w.writeText(findings)
	case FormatJSON:
		return w.writeJSON(target, findings)
	case FormatMarkdown:
		return w.writeMarkdown(target, findings)
	case FormatCheckstyle:
		return w.writeCheckstyle(findings)
	default:
		return fmt.Errorf("unsupported format: %s", w.format)
	}
}

func (w *Writer) writeText(findings []checker.Finding) error {
	for _, f := range findings {
		if f.Allowed {
			continue
		}
		if !f.Found {
			if _, err := fmt.Fprintf(w.out, "NO SPDX %s\n", f.Path); err != nil {
				return err
			}
			continue
		}
		license := runewidth.FillRight(runewidth.Truncate(f.License, licenseColumn, ""), licenseColumn)
		if _, err := fmt.Fprintf(w.out, "%s %s\n", license, f.Path); err != nil {
			return err
		}
	}
	return nil
}

type jsonReport struct {
	Target   string            `json:"target"`
	Findings []checker.Finding `json:"findings"`
	Summary  jsonSummary       `json:"summary"`
}

type jsonSummary struct {
	Checked    int `json:"checked"`
	Missing    int `json:"missing"`
	Disallowed int `json:"disallowed"`
}

func summarize(findings []checker.Finding) jsonSummary {
	s := jsonSummary{Checked: len(findings)}
	for _, f := range findings {
		switch {
		case !f.Found:
			s.Missing++
		case !f.Allowed:
			s.Disallowed++
		}
	}
	return s
}

func (w *Writer) writeJSON(target string, findings []checker.Finding) error {
	report := jsonReport{Target: target, Findings: findings, Summary: summarize(findings)}
	if report.Findings == nil {
		report.Findings = []checker.Finding{}
	}
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

// markdownTemplate renders the non-compliant subset as a handlebars
// document suitable for PR comments.
const markdownTemplate = `# SPDX License Compliance

**Target:** {{target}}
**Generated:** {{generated}}

Checked {{summary.Checked}} file(s): {{summary.Missing}} missing a declaration, {{summary.Disallowed}} with a disallowed license.

{{#if issues}}
| File | License |
| --- | --- |
{{#each issues}}
| {{this.Path}} | {{#if this.Found}}{{this.License}}{{else}}*none*{{/if}} |
{{/each}}
{{else}}
All checked files are compliant.
{{/if}}
`

func (w *Writer) writeMarkdown(target string, findings []checker.Finding) error {
	var issues []checker.Finding
	for _, f := range findings {
		if !f.Allowed {
			issues = append(issues, f)
		}
	}
	out, err := raymond.Render(markdownTemplate, map[string]interface{}{
		"target":    target,
		"generated": time.Now().Format(time.RFC3339),
		"summary":   summarize(findings),
		"issues":    issues,
	})
	if err != nil {
		return fmt.Errorf("rendering markdown report: %w", err)
	}
	_, err = io.WriteString(w.out, out)
	return err
}

func (w *Writer) writeCheckstyle(findings []checker.Finding) error {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("checkstyle")
	root.CreateAttr("version", "4.3")

	for _, f := range findings {
		if f.Allowed {
			continue
		}
		file := root.CreateElement("file")
		file.CreateAttr("name", f.Path)
		e := file.CreateElement("error")
		e.CreateAttr("line", "1")
		e.CreateAttr("severity", "error")
		if f.Found {
			e.CreateAttr("message", fmt.Sprintf("disallowed license %q", f.License))
		} else {
			e.CreateAttr("message", "missing SPDX license identifier")
		}
		e.CreateAttr("source", "spdxlint")
	}

	doc.Indent(2)
	_, err := doc.WriteTo(w.out)
	return err
}
