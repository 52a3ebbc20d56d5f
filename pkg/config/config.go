// Package config loads spdxlint configuration from an optional
// .spdxlint.yaml file and the SPDXLINT_* environment.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for spdxlint.
type Config struct {
	// Licenses is the allow-list of accepted identifiers.
	Licenses []string     `mapstructure:"licenses"`
	Ignore   IgnoreConfig `mapstructure:"ignore"`
	Output   OutputConfig `mapstructure:"output"`
	// Jobs bounds concurrent header reads; 1 keeps scans sequential.
	Jobs int `mapstructure:"jobs"`
}

// IgnoreConfig extends the traversal exclusions.
type IgnoreConfig struct {
	Dirs      []string `mapstructure:"dirs"`
	Patterns  []string `mapstructure:"patterns"`
	Gitignore bool     `mapstructure:"gitignore"`
}

// OutputConfig selects how findings are rendered.
type OutputConfig struct {
	Format string `mapstructure:"format"`
}

// Environment collaborators. LicensesEnv carries a JSON-encoded list
// and overrides any licenses picked up elsewhere; IgnoreEnv is a
// comma-separated list of additional directory names.
const (
	LicensesEnv = "SPDXLINT_LICENSES"
	IgnoreEnv   = "SPDXLINT_IGNORE"
)

// Load reads configuration in precedence order: defaults, then an
// optional .spdxlint.yaml in the working directory, then environment
// variables. A config file that fails schema validation, or a
// malformed JSON allow-list in the environment, is a configuration
// error; the caller must abort before scanning.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("licenses", []string{})
	v.SetDefault("ignore.dirs", []string{})
	v.SetDefault("ignore.patterns", []string{})
	v.SetDefault("ignore.gitignore", false)
	v.SetDefault("output.format", "text")
	v.SetDefault("jobs", 1)

	v.SetConfigName(".spdxlint")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("SPDXLINT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for _, key := range []string{"output.format", "jobs", "ignore.gitignore"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err == nil {
		data, readErr := os.ReadFile(v.ConfigFileUsed()) // #nosec G304 -- path chosen by viper's config search
		if readErr != nil {
			return nil, fmt.Errorf("reading config file: %w", readErr)
		}
		if err := ValidateConfig(data); err != nil {
			return nil, fmt.Errorf("%s: %w", v.ConfigFileUsed(), err)
		}
	} else if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyEnv folds in the structured environment collaborators that
// viper's flat key mapping cannot express.
func applyEnv(cfg *Config) error {
	if raw, ok := os.LookupEnv(LicensesEnv); ok {
		var licenses []string
		if err := json.Unmarshal([]byte(raw), &licenses); err != nil {
			return fmt.Errorf("%s must be a JSON list of license names: %w", LicensesEnv, err)
		}
		cfg.Licenses = licenses
	}
	if raw, ok := os.LookupEnv(IgnoreEnv); ok {
		for _, dir := range strings.Split(raw, ",") {
			if dir = strings.TrimSpace(dir); dir != "" {
				cfg.Ignore.Dirs = append(cfg.Ignore.Dirs, dir)
			}
		}
	}
	return nil
}
