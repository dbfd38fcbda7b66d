package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-slidefactory/internal/fileutil"
	"github.com/alnah/go-slidefactory/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength       = 4096 // PATH_MAX on Linux
	MaxURLLength        = 2048 // Browser limit
	MaxThemeLength      = 4096 // Name or directory path
	MaxPandocArgsLength = 4096
	MaxInfoLength       = 10000 // Markdown snippet for the pages index
	MaxFilters          = 64
)

// configDirName is the sub-directory of os.UserConfigDir searched for configs.
const configDirName = "slidefactory"

// validFormats mirrors the output formats accepted on the command line.
var validFormats = []string{"pdf", "html", "html-local", "html-embedded", "html-standalone"}

// Config holds the file-based defaults for a slidefactory run.
// Every field may be overridden by environment variables and flags.
type Config struct {
	Root       string          `yaml:"root"`       // Installation root (themes, bundled assets)
	SharedRoot string          `yaml:"sharedRoot"` // Root of the read-only shared install
	Theme      string          `yaml:"theme"`      // Built-in name or directory path
	Format     string          `yaml:"format"`     // pdf, html, html-local, html-embedded
	Output     string          `yaml:"output"`     // Output directory (empty = beside input)
	Filters    []string        `yaml:"filters"`    // Pandoc filter scripts, in order
	PandocArgs string          `yaml:"pandocArgs"` // Extra pandoc arguments, shell-quoted
	NoMath     bool            `yaml:"noMath"`
	Resources  ResourcesConfig `yaml:"resources"`
	Tools      ToolsConfig     `yaml:"tools"`
	Pages      PagesConfig     `yaml:"pages"`
}

// ResourcesConfig overrides individual resource locations.
// Empty fields keep the computed default.
type ResourcesConfig struct {
	DefaultsFpath string `yaml:"defaults_fpath"`
	TemplateFpath string `yaml:"template_fpath"`
	ThemeURL      string `yaml:"theme_url"`
	RevealJSURL   string `yaml:"revealjs_url"`
	MathJaxURL    string `yaml:"mathjax_url"`
	FontsURL      string `yaml:"fonts_url"`
}

// Map returns the non-empty overrides keyed by resource key name.
func (r ResourcesConfig) Map() map[string]string {
	all := map[string]string{
		"defaults_fpath": r.DefaultsFpath,
		"template_fpath": r.TemplateFpath,
		"theme_url":      r.ThemeURL,
		"revealjs_url":   r.RevealJSURL,
		"mathjax_url":    r.MathJaxURL,
		"fonts_url":      r.FontsURL,
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// Set stores value under the resource key name. It reports false for
// unknown names.
func (r *ResourcesConfig) Set(name, value string) bool {
	switch name {
	case "defaults_fpath":
		r.DefaultsFpath = value
	case "template_fpath":
		r.TemplateFpath = value
	case "theme_url":
		r.ThemeURL = value
	case "revealjs_url":
		r.RevealJSURL = value
	case "mathjax_url":
		r.MathJaxURL = value
	case "fonts_url":
		r.FontsURL = value
	default:
		return false
	}
	return true
}

// ToolsConfig names the external programs. Empty means the default lookup.
type ToolsConfig struct {
	Pandoc      string `yaml:"pandoc"`
	Browser     string `yaml:"browser"`
	Ghostscript string `yaml:"ghostscript"`
}

// PagesConfig defines defaults for the pages subcommand.
type PagesConfig struct {
	InfoContent string `yaml:"infoContent"` // Markdown shown in the About card
	WithPDF     bool   `yaml:"withPDF"`
	Template    string `yaml:"template"` // Directory holding index.html
}

// Validate checks value sets and field lengths.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if c.Format != "" && !contains(validFormats, c.Format) {
		return fmt.Errorf("%w: format %q (must be one of %s)",
			ErrInvalidValue, c.Format, strings.Join(validFormats, ", "))
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"root", c.Root, MaxPathLength},
		{"sharedRoot", c.SharedRoot, MaxPathLength},
		{"theme", c.Theme, MaxThemeLength},
		{"output", c.Output, MaxPathLength},
		{"pandocArgs", c.PandocArgs, MaxPandocArgsLength},
		{"resources.defaults_fpath", c.Resources.DefaultsFpath, MaxPathLength},
		{"resources.template_fpath", c.Resources.TemplateFpath, MaxPathLength},
		{"resources.theme_url", c.Resources.ThemeURL, MaxURLLength},
		{"resources.revealjs_url", c.Resources.RevealJSURL, MaxURLLength},
		{"resources.mathjax_url", c.Resources.MathJaxURL, MaxURLLength},
		{"resources.fonts_url", c.Resources.FontsURL, MaxURLLength},
		{"tools.pandoc", c.Tools.Pandoc, MaxPathLength},
		{"tools.browser", c.Tools.Browser, MaxPathLength},
		{"tools.ghostscript", c.Tools.Ghostscript, MaxPathLength},
		{"pages.infoContent", c.Pages.InfoContent, MaxInfoLength},
		{"pages.template", c.Pages.Template, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if len(c.Filters) > MaxFilters {
		return fmt.Errorf("%w: filters (%d entries, max %d)", ErrFieldTooLong, len(c.Filters), MaxFilters)
	}
	for i, f := range c.Filters {
		if f == "" {
			return fmt.Errorf("%w: filters[%d] is empty", ErrInvalidValue, i)
		}
		if err := validateFieldLength(fmt.Sprintf("filters[%d]", i), f, MaxPathLength); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

// DefaultConfig returns an empty configuration; every field falls back to
// the built-in defaults of the converter.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists, in lookup order, the files LoadConfig tries for a name.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/slidefactory/
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, configDirName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths(name).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
