package lang

import (
	"os"
	"path/filepath"
	"testing"
)

func mustMatcher(t *testing.T, name string) *Matcher {
	t.Helper()
	m, ok := NewRegistry().Matcher(name)
	if !ok {
		t.Fatalf("no matcher for language %q", name)
	}
	return m
}

func TestMatchLineCommentStyles(t *testing.T) {
	tests := []struct {
		name     string
		language string
		line     string
		want     string
		ok       bool
	}{
		{"rust line comment", "rust", "// SPDX-License-Identifier: Apache-2.0", "Apache-2.0", true},
		{"rust doc comment", "rust", "/// SPDX-License-Identifier: Apache-2.0", "Apache-2.0", true},
		{"rust inner doc comment", "rust", "//! SPDX-License-Identifier: MIT", "MIT", true},
		{"rust block comment", "rust", "/* SPDX-License-Identifier: MIT */", "MIT", true},
		{"rust block with doubled markers", "rust", "/** SPDX-License-Identifier: MIT **/", "MIT", true},
		{"python hash", "python", "# SPDX-License-Identifier: GPL-2.0-only", "GPL-2.0-only", true},
		{"python doubled hash", "python", "## SPDX-License-Identifier: GPL-2.0-only", "GPL-2.0-only", true},
		{"shell hash", "shell", "# SPDX-License-Identifier: BSD-3-Clause", "BSD-3-Clause", true},
		{"sql dashes", "sql", "-- SPDX-License-Identifier: MIT", "MIT", true},
		{"lua dashes", "lua", "--- SPDX-License-Identifier: MIT", "MIT", true},
		{"html block", "html", "<!-- SPDX-License-Identifier: CC-BY-4.0 -->", "CC-BY-4.0", true},
		{"go line", "go", "// SPDX-License-Identifier: Apache-2.0", "Apache-2.0", true},
		{"lisp semicolons", "lisp", ";;; SPDX-License-Identifier: MIT", "MIT", true},
		{"token with spaces", "rust", "// SPDX-License-Identifier: Apache-2.0 WITH LLVM-exception", "Apache-2.0 WITH LLVM-exception", true},
		{"trailing whitespace trimmed", "python", "# SPDX-License-Identifier: MIT   ", "MIT", true},
		{"leading indentation rejected", "rust", "  // SPDX-License-Identifier: MIT", "", false},
		{"wrong comment marker", "python", "// SPDX-License-Identifier: MIT", "", false},
		{"no declaration", "rust", "// just a comment", "", false},
		{"keyword without token", "rust", "// SPDX-License-Identifier:", "", false},
		{"block close missing", "c", "/* SPDX-License-Identifier: MIT", "", false},
		{"block open missing", "c", "SPDX-License-Identifier: MIT */", "", false},
		{"html unclosed", "html", "<!-- SPDX-License-Identifier: MIT", "", false},
		{"shebang line never matches", "python", "#!/usr/bin/env python3", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := mustMatcher(t, tt.language).MatchLine(tt.line)
			if ok != tt.ok || got != tt.want {
				t.Errorf("MatchLine(%q) = (%q, %v), want (%q, %v)", tt.line, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLicenseFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lib.rs")
	content := "// some header\n" +
		"// SPDX-License-Identifier: Apache-2.0\n" +
		"// SPDX-License-Identifier: MIT\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	license, found, err := mustMatcher(t, "rust").License(path)
	if err != nil {
		t.Fatalf("License() error: %v", err)
	}
	if !found || license != "Apache-2.0" {
		t.Errorf("License() = (%q, %v), want (Apache-2.0, true)", license, found)
	}
}

func TestLicenseAbsent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tool.py")
	if err := os.WriteFile(path, []byte("import sys\nprint(sys.argv)\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	license, found, err := mustMatcher(t, "python").License(path)
	if err != nil {
		t.Fatalf("License() error: %v", err)
	}
	if found || license != "" {
		t.Errorf("License() = (%q, %v), want absent", license, found)
	}
}

func TestLicenseDeclarationAnywhereInFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.py")
	content := "import os\n\n\n# SPDX-License-Identifier: ISC\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	license, found, err := mustMatcher(t, "python").License(path)
	if err != nil {
		t.Fatalf("License() error: %v", err)
	}
	if !found || license != "ISC" {
		t.Errorf("License() = (%q, %v), want (ISC, true)", license, found)
	}
}

func TestLicenseMultiLineBlockNotMatched(t *testing.T) {
	// Both block markers must sit on the declaration's physical line.
	dir := t.TempDir()
	path := filepath.Join(dir, "multi.c")
	content := "/*\n * SPDX-License-Identifier: MIT\n */\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	_, found, err := mustMatcher(t, "c").License(path)
	if err != nil {
		t.Fatalf("License() error: %v", err)
	}
	if found {
		t.Error("declaration inside a multi-line block comment should not match")
	}
}

func TestLicenseOpenError(t *testing.T) {
	if _, _, err := mustMatcher(t, "rust").License(filepath.Join(t.TempDir(), "missing.rs")); err == nil {
		t.Error("expected error for unreadable file")
	}
}

func TestValidToken(t *testing.T) {
	valid := []string{"MIT", "Apache-2.0", "GPL-3.0-or-later", "Apache-2.0 WITH LLVM-exception", "0BSD"}
	for _, s := range valid {
		if !ValidToken(s) {
			t.Errorf("ValidToken(%q) = false, want true", s)
		}
	}
	invalid := []string{"", "MIT@2", "GPL_3.0", "Apache/2.0", "MIT\n", "café"}
	for _, s := range invalid {
		if ValidToken(s) {
			t.Errorf("ValidToken(%q) = true, want false", s)
		}
	}
}
