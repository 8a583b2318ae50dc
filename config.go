package cascata

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"
)

// OutputStyle selects how the emitter formats the generated CSS.
type OutputStyle string

const (
	StyleNested     OutputStyle = "nested"
	StyleExpanded   OutputStyle = "expanded"
	StyleCompact    OutputStyle = "compact"
	StyleCompressed OutputStyle = "compressed"
)

// Config represents the cascata configuration
type Config struct {
	Style        OutputStyle     `yaml:"style"`
	Precision    int             `yaml:"precision"`
	IncludePaths []string        `yaml:"include_paths"`
	SourceMap    SourceMapConfig `yaml:"source_map"`
	Extend       ExtendConfig    `yaml:"extend"`
	Indent       string          `yaml:"indent"`
	Linefeed     string          `yaml:"linefeed"`
}

// SourceMapConfig represents source map generation settings
type SourceMapConfig struct {
	Enabled       bool   `yaml:"enabled"`
	File          string `yaml:"file"`
	Root          string `yaml:"root"`
	EmbedContents bool   `yaml:"embed_contents"`
	OmitURL       bool   `yaml:"omit_url"`
}

// ExtendConfig represents @extend resolution settings
type ExtendConfig struct {
	// RejectUnmatched turns "@extend target was not found" into a fatal
	// error instead of a warning.
	RejectUnmatched bool `yaml:"reject_unmatched"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Style:     StyleNested,
		Precision: 5,
		Indent:    "  ",
		Linefeed:  "\n",
	}
}

// LoadConfig reads a cascata configuration file. A missing file yields
// the default configuration. ".env" files next to the working directory
// are loaded first so ${VAR} references in include paths resolve; no
// other field is expanded.
func LoadConfig(configPath string) (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, fmt.Errorf("failed to load environment files: %w", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.UnmarshalWithOptions(data, &config, yaml.Strict()); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, err
	}

	applyDefaults(&config)

	for i, p := range config.IncludePaths {
		config.IncludePaths[i] = os.ExpandEnv(p)
	}

	return &config, nil
}

func loadEnvFiles() error {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return err
		}
	}
	return nil
}

func validateConfig(config *Config) error {
	switch config.Style {
	case "", StyleNested, StyleExpanded, StyleCompact, StyleCompressed:
	default:
		return fmt.Errorf("%w: invalid style '%s': must be one of nested, expanded, compact, compressed", ErrConfigValidation, config.Style)
	}
	if config.Precision < 0 {
		return fmt.Errorf("%w: precision must not be negative", ErrConfigValidation)
	}
	return nil
}

func applyDefaults(config *Config) {
	if config.Style == "" {
		config.Style = StyleNested
	}
	if config.Precision == 0 {
		config.Precision = 5
	}
	if config.Indent == "" {
		config.Indent = "  "
	}
	if config.Linefeed == "" {
		config.Linefeed = "\n"
	}
}

// ExpandIncludePaths resolves the configured include path patterns
// against the filesystem. Patterns may use doublestar globs; plain
// directories pass through unchanged. The result is sorted and
// deduplicated.
func (c *Config) ExpandIncludePaths() ([]string, error) {
	seen := map[string]bool{}
	var result []string
	for _, pattern := range c.IncludePaths {
		if !hasGlobMeta(pattern) {
			if !seen[pattern] {
				seen[pattern] = true
				result = append(result, pattern)
			}
			continue
		}
		base, rest := doublestar.SplitPattern(pattern)
		matches, err := doublestar.Glob(os.DirFS(base), rest)
		if err != nil {
			return nil, fmt.Errorf("failed to expand include path %q: %w", pattern, err)
		}
		for _, m := range matches {
			full := filepath.Join(base, m)
			if !seen[full] {
				seen[full] = true
				result = append(result, full)
			}
		}
	}
	sort.Strings(result)
	return result, nil
}

func hasGlobMeta(pattern string) bool {
	for _, r := range pattern {
		switch r {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}
