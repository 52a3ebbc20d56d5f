package config

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// configSchema is the JSON schema every .spdxlint.yaml must satisfy.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "title": "spdxlint configuration",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "licenses": {
      "type": "array",
      "items": {
        "type": "string",
        "pattern": "^[0-9A-Za-z. -]+$"
      }
    },
    "ignore": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "dirs": {"type": "array", "items": {"type": "string", "minLength": 1}},
        "patterns": {"type": "array", "items": {"type": "string", "minLength": 1}},
        "gitignore": {"type": "boolean"}
      }
    },
    "output": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "format": {"enum": ["text", "json", "markdown", "checkstyle"]}
      }
    },
    "jobs": {"type": "integer", "minimum": 1}
  }
}`

// ValidateConfig validates raw YAML config data against the embedded
// schema. YAML is decoded and re-encoded as JSON because the schema
// validator only speaks JSON documents.
func ValidateConfig(data []byte) error {
	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	if doc == nil {
		return nil
	}
	jsonDoc, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting config for validation: %w", err)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(configSchema),
		gojsonschema.NewBytesLoader(jsonDoc),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if !result.Valid() {
		var errs []string
		for _, desc := range result.Errors() {
			errs = append(errs, desc.String())
		}
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
