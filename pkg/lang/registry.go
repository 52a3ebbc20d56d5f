package lang

import (
	"bufio"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Registry resolves files to languages and delegates header matching to
// the per-language matchers. It is immutable after construction and
// safe for the whole process lifetime.
type Registry struct {
	defs         []Definition
	matchers     map[string]*Matcher
	extensions   map[string]string
	interpreters map[string]string
}

// NewRegistry builds a registry over the built-in language set.
func NewRegistry() *Registry {
	r, err := newRegistry(builtinDefinitions())
	if err != nil {
		// The built-in table is a compile-time artifact; an
		// inconsistent table is a programming error.
		panic(err)
	}
	return r
}

func newRegistry(defs []Definition) (*Registry, error) {
	r := &Registry{
		defs:         defs,
		matchers:     make(map[string]*Matcher, len(defs)),
		extensions:   make(map[string]string),
		interpreters: make(map[string]string),
	}
	for _, def := range defs {
		if _, dup := r.matchers[def.Name]; dup {
			return nil, fmt.Errorf("duplicate language %q", def.Name)
		}
		r.matchers[def.Name] = newMatcher(def)
		for _, ext := range def.Extensions {
			if prev, dup := r.extensions[ext]; dup {
				return nil, fmt.Errorf("extension %s claimed by %q and %q", ext, prev, def.Name)
			}
			r.extensions[ext] = def.Name
		}
		for _, interp := range def.Interpreters {
			if prev, dup := r.interpreters[interp]; dup {
				return nil, fmt.Errorf("interpreter %s claimed by %q and %q", interp, prev, def.Name)
			}
			r.interpreters[interp] = def.Name
		}
	}
	return r, nil
}

// Definitions returns the language table in declaration order.
func (r *Registry) Definitions() []Definition {
	return r.defs
}

// Matcher returns the matcher for a language name.
func (r *Registry) Matcher(name string) (*Matcher, bool) {
	m, ok := r.matchers[name]
	return m, ok
}

// Detect resolves a file to a language name. Extensions win over
// content: a file with a registered extension is never sniffed, even if
// its first line names a different language's interpreter. Files with
// an unregistered extension fall back to shebang sniffing; anything
// else is unknown.
func (r *Registry) Detect(path string) (string, bool) {
	if name, ok := r.extensions[filepath.Ext(path)]; ok {
		return name, true
	}
	interp, ok := sniffInterpreter(path)
	if !ok {
		return "", false
	}
	name, ok := r.interpreters[interp]
	return name, ok
}

// sniffInterpreter reads the shebang line and extracts the interpreter
// token: the last slash- or space-delimited word of the line. That
// resolves `#!/usr/bin/env python3` to python3 through the env
// indirection, but an interpreter line with trailing arguments such as
// `#!/usr/bin/env python3 -u` resolves to the final argument instead of
// the interpreter. Known limitation, kept for compatibility with the
// historical behavior; tests pin it.
//
// Any I/O or decoding trouble here is swallowed: sniffing must never
// abort a scan.
func sniffInterpreter(path string) (string, bool) {
	f, err := os.Open(path) // #nosec G304 -- path comes from the caller's own scan root
	if err != nil {
		return "", false
	}
	defer func() { _ = f.Close() }()

	var magic [2]byte
	if _, err := io.ReadFull(f, magic[:]); err != nil || magic[0] != '#' || magic[1] != '!' {
		return "", false
	}

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", false
	}
	line = strings.TrimSpace(line)
	if i := strings.LastIndexAny(line, "/ \t"); i >= 0 {
		line = line[i+1:]
	}
	if line == "" {
		return "", false
	}
	return line, true
}

// Result is one scanned file. License is empty and Found false when the
// file carries no recognized declaration.
type Result struct {
	Path     string
	Language string
	License  string
	Found    bool
}

// ScanFunc consumes scan results. Returning fs.SkipAll stops the scan
// cleanly; any other error aborts it.
type ScanFunc func(Result) error

// DirFilter prunes directories during a scan. rel is the
// slash-separated path of the directory relative to the scan root.
// Pruned subtrees are never visited.
type DirFilter interface {
	SkipDir(rel string) bool
}

// Scan walks root depth-first in lexical order and yields one Result
// per classifiable file. Symbolic links are never followed or reported.
// Zero-byte files and files whose language cannot be resolved are
// skipped silently. The version-control metadata directory is always
// pruned, before the filter is consulted.
func (r *Registry) Scan(root string, filter DirFilter, fn ScanFunc) error {
	return r.Walk(root, filter, func(path, language string) error {
		license, found, err := r.matchers[language].License(path)
		if err != nil {
			return err
		}
		return fn(Result{Path: path, Language: language, License: license, Found: found})
	})
}

// Walk traverses like Scan but stops at language resolution, without
// reading headers. Callers that want to schedule header reads
// themselves build on this.
func (r *Registry) Walk(root string, filter DirFilter, fn func(path, language string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == root {
				return nil
			}
			if d.Name() == ".git" {
				return fs.SkipDir
			}
			if filter != nil {
				rel, relErr := filepath.Rel(root, path)
				if relErr != nil {
					return relErr
				}
				if filter.SkipDir(filepath.ToSlash(rel)) {
					return fs.SkipDir
				}
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			// File vanished between listing and stat; nothing to report.
			return nil
		}
		if info.Size() == 0 {
			return nil
		}
		language, ok := r.Detect(path)
		if !ok {
			return nil
		}
		return fn(path, language)
	})
}

// ScanFile resolves and reads a single file. An unresolvable language
// yields an absent license; the caller cannot distinguish that from a
// resolved file with no header.
func (r *Registry) ScanFile(path string) (string, bool, error) {
	language, ok := r.Detect(path)
	if !ok {
		return "", false, nil
	}
	return r.matchers[language].License(path)
}
