// Package lang classifies source files by programming language and
// extracts declared SPDX license identifiers from header comments.
package lang

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// declarationKey is the structured header keyword a declaration line
// must carry, per the SPDX convention.
const declarationKey = `SPDX-License-Identifier:`

// tokenPattern accepts license identifiers made of letters, digits,
// dots, hyphens, and spaces. The same character class governs
// allow-list entries (see ValidToken).
const tokenPattern = `[0-9A-Za-z. -]+`

var tokenRe = regexp.MustCompile(`^` + tokenPattern + `$`)

// ValidToken reports whether s is a legal license identifier. The whole
// string must match the token grammar, not a substring.
func ValidToken(s string) bool {
	return s != "" && tokenRe.MatchString(s)
}

// Style describes one comment notation in which a license declaration
// may appear. Open and Close are regular-expression fragments anchored
// around the declaration; Close is empty for one-sided line comments.
// Block-comment declarations must carry both markers on the same
// physical line, so a declaration inside a multi-line block comment is
// not recognized.
type Style struct {
	Open  string
	Close string
}

// LineComment returns a style for a one-sided comment prefix, e.g.
// `//+` for C-family line comments or `#+` for hash comments.
func LineComment(marker string) Style {
	return Style{Open: marker}
}

// BlockComment returns a style for a delimited comment, e.g.
// BlockComment(`/\*+`, `\*+/`).
func BlockComment(open, close string) Style {
	return Style{Open: open, Close: close}
}

// Matcher finds the license declaration for one language. It holds the
// compiled header patterns for every comment notation the language
// accepts; patterns are tried in declaration order.
type Matcher struct {
	name     string
	shebang  bool
	patterns []*regexp.Regexp
}

func newMatcher(def Definition) *Matcher {
	m := &Matcher{name: def.Name, shebang: def.Shebang}
	for _, s := range def.Styles {
		expr := `^` + s.Open + `\s*` + declarationKey + `\s+(` + tokenPattern + `)\s*` + s.Close + `\s*$`
		m.patterns = append(m.patterns, regexp.MustCompile(expr))
	}
	return m
}

// Name returns the language name this matcher serves.
func (m *Matcher) Name() string {
	return m.name
}

// ShebangTolerant reports whether a `#!` first line is acceptable for
// this language. The shebang line itself never matches a pattern; it is
// simply ignored during the scan.
func (m *Matcher) ShebangTolerant() bool {
	return m.shebang
}

// License scans the file at path line by line and returns the first
// captured license token. Most files legitimately lack a declaration,
// so (_, false, nil) is the common case, not an error. Read failures
// propagate: the file was already classified as a supported text
// language, so they indicate a traversal invariant was violated.
func (m *Matcher) License(path string) (string, bool, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the caller's own scan root
	if err != nil {
		return "", false, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if token, ok := m.MatchLine(scanner.Text()); ok {
			return token, true, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}
	return "", false, nil
}

// MatchLine tests a single line against the language's patterns and
// returns the captured token, trimmed of surrounding whitespace.
func (m *Matcher) MatchLine(line string) (string, bool) {
	for _, re := range m.patterns {
		if sub := re.FindStringSubmatch(line); sub != nil {
			return strings.TrimSpace(sub[1]), true
		}
	}
	return "", false
}
