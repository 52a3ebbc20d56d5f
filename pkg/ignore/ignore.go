// Package ignore decides which directories a scan descends into.
package ignore

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	gitignore "github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Set holds the directories excluded from a single scan invocation. It
// is immutable for the scan's duration. The version-control metadata
// directory is always a member.
type Set struct {
	names    map[string]struct{}
	patterns []string
	git      gitignore.Matcher
}

// Options configures a Set beyond the built-in exclusions.
type Options struct {
	// Dirs lists extra directory names to prune wherever they appear.
	Dirs []string
	// Patterns lists doublestar globs matched against the directory's
	// root-relative slash path, e.g. "vendor/**" or "**/testdata".
	Patterns []string
	// Gitignore layers the repository's gitignore files on top.
	Gitignore bool
}

// NewSet builds the ignore set for a scan rooted at root. Patterns are
// validated eagerly so a bad glob surfaces as a configuration error
// before any traversal. A `.spdxlintignore` file at the root
// contributes additional patterns, one per line, `#` comments allowed.
func NewSet(root string, opts Options) (*Set, error) {
	s := &Set{names: map[string]struct{}{".git": {}}}
	for _, d := range opts.Dirs {
		if d = strings.TrimSpace(d); d != "" {
			s.names[d] = struct{}{}
		}
	}

	patterns := append([]string(nil), opts.Patterns...)
	if filePatterns, err := readIgnoreFile(filepath.Join(root, ".spdxlintignore")); err == nil {
		patterns = append(patterns, filePatterns...)
	}
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid ignore pattern %q", p)
		}
	}
	s.patterns = patterns

	if opts.Gitignore {
		fs := osfs.New(root)
		if gitPatterns, err := gitignore.ReadPatterns(fs, nil); err == nil && len(gitPatterns) > 0 {
			s.git = gitignore.NewMatcher(gitPatterns)
		}
	}
	return s, nil
}

// readIgnoreFile reads patterns from a `.spdxlintignore` file.
func readIgnoreFile(p string) ([]string, error) {
	cleaned := filepath.Clean(p)
	if filepath.Base(cleaned) != ".spdxlintignore" {
		return nil, fmt.Errorf("disallowed ignore file path: %s", cleaned)
	}
	content, err := os.ReadFile(cleaned) // #nosec G304 -- basename allowlisted above
	if err != nil {
		return nil, err
	}

	var patterns []string
	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	return patterns, nil
}

// SkipDir reports whether the directory at the root-relative slash path
// rel should be pruned. The pruning is irreversible for the scan:
// nothing under a skipped directory is ever visited.
func (s *Set) SkipDir(rel string) bool {
	if _, ok := s.names[path.Base(rel)]; ok {
		return true
	}
	for _, p := range s.patterns {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	if s.git != nil && s.git.Match(strings.Split(rel, "/"), true) {
		return true
	}
	return false
}

// Names returns the directory names in the set, for logging.
func (s *Set) Names() []string {
	names := make([]string, 0, len(s.names))
	for n := range s.names {
		names = append(names, n)
	}
	return names
}
