// Package checker drives compliance scans: it resolves files through
// the language registry, extracts declared licenses, and judges each
// result against the allow-list.
package checker

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/fulmenhq/spdxlint/pkg/ignore"
	"github.com/fulmenhq/spdxlint/pkg/lang"
)

// Finding is the judged result for one scanned file. Compliant files
// are findings too (Allowed true); formatters decide what to surface.
type Finding struct {
	Path    string `json:"path"`
	License string `json:"license,omitempty"`
	Found   bool   `json:"found"`
	Allowed bool   `json:"allowed"`
}

// Options configures a Checker.
type Options struct {
	// Allowed lists the accepted license identifiers. Every entry must
	// match the token grammar exactly or New fails before any
	// filesystem access.
	Allowed []string
	// Ignore prunes directories during tree scans. Nil means only the
	// built-in exclusions apply.
	Ignore *ignore.Set
	// Jobs bounds concurrent header reads during tree scans. Values
	// below 2 keep the scan fully sequential.
	Jobs int
}

// Checker is stateless after construction and may be reused across
// scan invocations.
type Checker struct {
	registry *lang.Registry
	allowed  map[string]struct{}
	ignore   *ignore.Set
	jobs     int
}

// ValidateAllowList checks every entry against the token grammar. It
// never touches the filesystem, so callers can reject a bad allow-list
// before any scanning starts.
func ValidateAllowList(names []string) error {
	for _, name := range names {
		if !lang.ValidToken(name) {
			return fmt.Errorf("invalid license name %q: identifiers may only contain letters, digits, dot, hyphen, and space", name)
		}
	}
	return nil
}

// New validates the allow-list and builds a checker over registry.
func New(registry *lang.Registry, opts Options) (*Checker, error) {
	if err := ValidateAllowList(opts.Allowed); err != nil {
		return nil, err
	}
	allowed := make(map[string]struct{}, len(opts.Allowed))
	for _, name := range opts.Allowed {
		allowed[name] = struct{}{}
	}
	return &Checker{
		registry: registry,
		allowed:  allowed,
		ignore:   opts.Ignore,
		jobs:     opts.Jobs,
	}, nil
}

// Check scans target and returns one finding per checked file, in
// traversal order. A directory target is walked recursively; a file
// target yields at most one finding. A target that is neither an
// existing file nor a directory produces no findings and no error.
func (c *Checker) Check(ctx context.Context, target string) ([]Finding, error) {
	info, err := os.Lstat(target)
	if err != nil {
		return nil, nil
	}
	if !info.IsDir() {
		license, found, err := c.registry.ScanFile(target)
		if err != nil {
			return nil, err
		}
		return []Finding{c.judge(target, license, found)}, nil
	}
	if c.jobs > 1 {
		return c.checkConcurrent(ctx, target)
	}
	return c.checkSequential(target)
}

func (c *Checker) checkSequential(root string) ([]Finding, error) {
	var findings []Finding
	err := c.registry.Scan(root, c.dirFilter(), func(res lang.Result) error {
		findings = append(findings, c.judge(res.Path, res.License, res.Found))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return findings, nil
}

// checkConcurrent resolves the tree sequentially, then fans the header
// reads out over a bounded errgroup. Results keep traversal order, so
// the output is identical to a sequential scan.
func (c *Checker) checkConcurrent(ctx context.Context, root string) ([]Finding, error) {
	type job struct {
		path     string
		language string
	}
	var jobs []job
	err := c.registry.Walk(root, c.dirFilter(), func(path, language string) error {
		jobs = append(jobs, job{path: path, language: language})
		return nil
	})
	if err != nil {
		return nil, err
	}

	findings := make([]Finding, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.jobs)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			matcher, ok := c.registry.Matcher(j.language)
			if !ok {
				return fmt.Errorf("no matcher registered for language %q", j.language)
			}
			license, found, err := matcher.License(j.path)
			if err != nil {
				return err
			}
			findings[i] = c.judge(j.path, license, found)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return findings, nil
}

func (c *Checker) dirFilter() lang.DirFilter {
	if c.ignore == nil {
		return nil
	}
	return c.ignore
}

func (c *Checker) judge(path, license string, found bool) Finding {
	f := Finding{Path: path, License: license, Found: found}
	if found {
		_, f.Allowed = c.allowed[license]
	}
	return f
}

// ExitCode aggregates per-file check results the way the process exit
// status is defined: the bitwise OR of every file's result, 0 for a
// compliant file and 1 otherwise.
func ExitCode(findings []Finding) int {
	code := 0
	for _, f := range findings {
		if !f.Allowed {
			code |= 1
		}
	}
	return code
}
