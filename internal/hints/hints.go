// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-slidefactory/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForBrowser returns hints for headless browser failures.
// Suggests pointing at a specific browser binary when none was configured.
func ForBrowser() string {
	var hints []string

	if os.Getenv("SLIDEFACTORY_BROWSER") == "" && os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "use --browser or set SLIDEFACTORY_BROWSER to pick a Chrome/Chromium binary")
	}

	if IsInContainer() {
		hints = append(hints, "inside containers make sure /dev/shm is large enough or mount it from the host")
	}

	return formatHints(hints)
}

// ForToolNotFound returns a hint for an external program missing from PATH.
func ForToolNotFound(flagName, envName string) string {
	return format("install it, or use --" + flagName + " / " + envName + " to point at the binary")
}

// ForLocalResources returns the hint shown when offline HTML is requested
// from a shared installation.
func ForLocalResources() string {
	return format("run 'slidefactory install PATH', then convert with SLIDEFACTORY_ROOT=PATH")
}

// ForThemeNotFound lists the built-in themes.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return format("no built-in themes found; check --root or SLIDEFACTORY_ROOT")
	}
	return format("available: " + strings.Join(available, ", ") + "; or pass a directory path")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/slidefactory/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "slidefactory"+string(os.PathSeparator)) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForMissingAsset explains how data-src references are resolved.
func ForMissingAsset() string {
	return format("relative image paths are resolved against the directory of the input file")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
