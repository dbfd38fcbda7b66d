package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-slidefactory/internal/config"
)

// envConfig holds configuration from environment variables.
type envConfig struct {
	Root       string // SLIDEFACTORY_ROOT: installation root
	SharedRoot string // SLIDEFACTORY_SHARED_ROOT: root of the shared install
	ConfigPath string // SLIDEFACTORY_CONFIG: config file name or path
	Theme      string // SLIDEFACTORY_THEME: theme name or path
	Format     string // SLIDEFACTORY_FORMAT: output format
	Pandoc     string // SLIDEFACTORY_PANDOC: pandoc binary
	Browser    string // SLIDEFACTORY_BROWSER: Chrome/Chromium binary
	GS         string // SLIDEFACTORY_GS: Ghostscript binary
}

// knownEnvVars lists valid SLIDEFACTORY_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SLIDEFACTORY_ROOT":        true,
	"SLIDEFACTORY_SHARED_ROOT": true,
	"SLIDEFACTORY_CONFIG":      true,
	"SLIDEFACTORY_THEME":       true,
	"SLIDEFACTORY_FORMAT":      true,
	"SLIDEFACTORY_PANDOC":      true,
	"SLIDEFACTORY_BROWSER":     true,
	"SLIDEFACTORY_GS":          true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	return &envConfig{
		Root:       os.Getenv("SLIDEFACTORY_ROOT"),
		SharedRoot: os.Getenv("SLIDEFACTORY_SHARED_ROOT"),
		ConfigPath: os.Getenv("SLIDEFACTORY_CONFIG"),
		Theme:      os.Getenv("SLIDEFACTORY_THEME"),
		Format:     os.Getenv("SLIDEFACTORY_FORMAT"),
		Pandoc:     os.Getenv("SLIDEFACTORY_PANDOC"),
		Browser:    os.Getenv("SLIDEFACTORY_BROWSER"),
		GS:         os.Getenv("SLIDEFACTORY_GS"),
	}
}

// warnUnknownEnvVars logs warnings for unrecognized SLIDEFACTORY_* variables.
// Helps catch typos like SLIDEFACTORY_THEMES instead of SLIDEFACTORY_THEME.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SLIDEFACTORY_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables replace config file values; CLI flags are applied
// afterwards, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Root, env.Root)
	set(&cfg.SharedRoot, env.SharedRoot)
	set(&cfg.Theme, env.Theme)
	set(&cfg.Format, env.Format)
	set(&cfg.Tools.Pandoc, env.Pandoc)
	set(&cfg.Tools.Browser, env.Browser)
	set(&cfg.Tools.Ghostscript, env.GS)
}
