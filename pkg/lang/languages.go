package lang

// Definition declares one supported language: the comment notations its
// license declaration may use, the extensions that identify it, and the
// shebang interpreters that resolve to it. The supported set is closed;
// registries are always built from this table.
type Definition struct {
	Name         string
	Styles       []Style
	Shebang      bool
	Extensions   []string
	Interpreters []string
}

var cStyles = []Style{
	LineComment(`//+`),
	BlockComment(`/\*+`, `\*+/`),
}

var hashStyles = []Style{
	LineComment(`#+`),
}

var dashStyles = []Style{
	LineComment(`--+`),
}

var sgmlStyles = []Style{
	BlockComment(`<!--`, `-->`),
}

// builtinDefinitions lists every supported language in resolution
// order. Pattern order within a language is significant: the first
// matching pattern wins.
func builtinDefinitions() []Definition {
	return []Definition{
		{
			Name: "rust",
			Styles: []Style{
				LineComment(`//+`),
				LineComment(`//!`),
				BlockComment(`/\*+`, `\*+/`),
			},
			Extensions: []string{".rs"},
		},
		{
			Name:         "python",
			Styles:       hashStyles,
			Shebang:      true,
			Extensions:   []string{".py"},
			Interpreters: []string{"python", "python2", "python3"},
		},
		{
			Name:         "shell",
			Styles:       hashStyles,
			Shebang:      true,
			Extensions:   []string{".sh", ".bash"},
			Interpreters: []string{"sh", "bash", "dash", "zsh", "ksh"},
		},
		{
			Name:         "ruby",
			Styles:       hashStyles,
			Shebang:      true,
			Extensions:   []string{".rb"},
			Interpreters: []string{"ruby"},
		},
		{
			Name:         "perl",
			Styles:       hashStyles,
			Shebang:      true,
			Extensions:   []string{".pl", ".pm"},
			Interpreters: []string{"perl"},
		},
		{
			Name:       "c",
			Styles:     cStyles,
			Extensions: []string{".c", ".h"},
		},
		{
			Name:       "cpp",
			Styles:     cStyles,
			Extensions: []string{".cpp", ".cc", ".cxx", ".hpp", ".hh"},
		},
		{
			Name:       "go",
			Styles:     cStyles,
			Extensions: []string{".go"},
		},
		{
			Name:         "javascript",
			Styles:       cStyles,
			Shebang:      true,
			Extensions:   []string{".js", ".mjs", ".cjs"},
			Interpreters: []string{"node", "nodejs"},
		},
		{
			Name:       "typescript",
			Styles:     cStyles,
			Extensions: []string{".ts", ".tsx"},
		},
		{
			Name:       "java",
			Styles:     cStyles,
			Extensions: []string{".java"},
		},
		{
			Name:       "css",
			Styles:     []Style{BlockComment(`/\*+`, `\*+/`)},
			Extensions: []string{".css"},
		},
		{
			Name:       "yaml",
			Styles:     hashStyles,
			Extensions: []string{".yaml", ".yml"},
		},
		{
			Name:       "toml",
			Styles:     hashStyles,
			Extensions: []string{".toml"},
		},
		{
			Name:       "sql",
			Styles:     dashStyles,
			Extensions: []string{".sql"},
		},
		{
			Name:       "lua",
			Styles:     dashStyles,
			Extensions: []string{".lua"},
		},
		{
			Name:       "html",
			Styles:     sgmlStyles,
			Extensions: []string{".html", ".htm"},
		},
		{
			Name:       "xml",
			Styles:     sgmlStyles,
			Extensions: []string{".xml", ".svg"},
		},
		{
			Name:       "markdown",
			Styles:     sgmlStyles,
			Extensions: []string{".md"},
		},
		{
			Name:       "lisp",
			Styles:     []Style{LineComment(`;+`)},
			Extensions: []string{".lisp", ".el", ".scm"},
		},
		{
			Name:       "asm",
			Styles:     []Style{LineComment(`;+`), LineComment(`#+`)},
			Extensions: []string{".s", ".asm"},
		},
	}
}
