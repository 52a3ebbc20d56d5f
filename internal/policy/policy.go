// Package policy evaluates scan results against a Rego policy, for
// repositories whose licensing rules go beyond a flat allow-list.
package policy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/open-policy-agent/opa/v1/rego"

	"github.com/fulmenhq/spdxlint/pkg/checker"
)

// denyQuery is the rule set a policy must populate. Each entry is a
// human-readable violation message.
const denyQuery = "data.spdxlint.deny"

// Engine holds one loaded policy. Zero value is unusable; call
// LoadPolicy first.
type Engine struct {
	regoCode string
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{}
}

// LoadPolicy reads Rego source from path.
func (e *Engine) LoadPolicy(source string) error {
	cleanPath := filepath.Clean(source)
	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("invalid path: directory traversal detected")
	}
	data, err := os.ReadFile(cleanPath) // #nosec G304 -- cleaned above, user-supplied policy file
	if err != nil {
		return fmt.Errorf("reading policy file: %w", err)
	}
	e.regoCode = string(data)
	return nil
}

// Evaluate offers every finding to the policy's deny rules and returns
// the violation messages. The input document is
// {"files": [{"path":..., "license":..., "found":..., "allowed":...}]}.
func (e *Engine) Evaluate(ctx context.Context, findings []checker.Finding) ([]string, error) {
	if e.regoCode == "" {
		return nil, fmt.Errorf("no policy loaded")
	}

	files := make([]map[string]interface{}, 0, len(findings))
	for _, f := range findings {
		files = append(files, map[string]interface{}{
			"path":    f.Path,
			"license": f.License,
			"found":   f.Found,
			"allowed": f.Allowed,
		})
	}

	rs, err := rego.New(
		rego.Query(denyQuery),
		rego.Input(map[string]interface{}{"files": files}),
		rego.Module("policy.rego", e.regoCode),
	).Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluating policy: %w", err)
	}

	var denials []string
	for _, result := range rs {
		for _, expr := range result.Expressions {
			values, ok := expr.Value.([]interface{})
			if !ok {
				continue
			}
			for _, v := range values {
				denials = append(denials, fmt.Sprintf("%v", v))
			}
		}
	}
	return denials, nil
}
