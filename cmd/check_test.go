/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// newTestRootCommand builds an isolated command tree with captured output.
func newTestRootCommand() (*bytes.Buffer, *bytes.Buffer, func(args ...string) error) {
	root := newRootCommand()
	registerSubcommands(root)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	return &stdout, &stderr, func(args ...string) error {
		root.SetArgs(args)
		return root.Execute()
	}
}

func TestSplitCheckArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		licenses []string
		target   string
	}{
		{"no args scans cwd", nil, nil, "."},
		{"path only", []string{"src"}, []string{}, "src"},
		{"licenses and path", []string{"MIT", "Apache-2.0", "."}, []string{"MIT", "Apache-2.0"}, "."},
		{"single license no path", []string{"MIT"}, []string{}, "MIT"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			licenses, target := splitCheckArgs(tt.args)
			if target != tt.target {
				t.Errorf("target = %q, want %q", target, tt.target)
			}
			if len(licenses) != len(tt.licenses) || (len(licenses) > 0 && !reflect.DeepEqual(licenses, tt.licenses)) {
				t.Errorf("licenses = %v, want %v", licenses, tt.licenses)
			}
		})
	}
}

func TestCheckCommandCompliantTree(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	if err := os.WriteFile(path, []byte("// SPDX-License-Identifier: Apache-2.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	stdout, _, execute := newTestRootCommand()
	if err := execute("check", "Apache-2.0", dir); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if stdout.String() != "" {
		t.Errorf("compliant tree produced output: %q", stdout.String())
	}
}

func TestCheckCommandMissingTarget(t *testing.T) {
	// A path that is neither a file nor a directory produces no
	// findings and no error.
	stdout, _, execute := newTestRootCommand()
	if err := execute("check", "MIT", filepath.Join(t.TempDir(), "nope")); err != nil {
		t.Fatalf("check failed: %v", err)
	}
	if stdout.String() != "" {
		t.Errorf("unexpected output: %q", stdout.String())
	}
}

func TestLanguagesCommand(t *testing.T) {
	stdout, _, execute := newTestRootCommand()
	if err := execute("languages"); err != nil {
		t.Fatalf("languages failed: %v", err)
	}
	for _, want := range []string{"Rust", "Python", ".rs", "python3"} {
		if !bytes.Contains(stdout.Bytes(), []byte(want)) {
			t.Errorf("languages output missing %q", want)
		}
	}
}

func TestVersionCommand(t *testing.T) {
	stdout, _, execute := newTestRootCommand()
	if err := execute("version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !bytes.Contains(stdout.Bytes(), []byte("spdxlint")) {
		t.Errorf("version output missing binary name: %q", stdout.String())
	}
}
