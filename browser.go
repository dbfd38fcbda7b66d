package slidefactory

import (
	"os"
	"path/filepath"

	"github.com/go-rod/rod/lib/launcher"
)

// Default program names, looked up in PATH.
const (
	DefaultPandoc      = "pandoc"
	DefaultBrowser     = "chromium"
	DefaultGhostscript = "gs"
)

// virtualTimeBudget lets reveal.js finish layout and lazy loading before
// printing; headless Chromium fast-forwards virtual time, so the maximum
// value costs no wall time.
const virtualTimeBudget = "2147483647"

// Tools names the external programs a Converter runs.
type Tools struct {
	Pandoc      string
	Browser     string
	Ghostscript string
}

// DefaultTools returns pandoc and gs from PATH and the browser found by
// FindBrowser.
func DefaultTools() Tools {
	return Tools{
		Pandoc:      DefaultPandoc,
		Browser:     FindBrowser(),
		Ghostscript: DefaultGhostscript,
	}
}

// withDefaults fills empty entries from DefaultTools.
func (t Tools) withDefaults() Tools {
	if t.Pandoc == "" {
		t.Pandoc = DefaultPandoc
	}
	if t.Browser == "" {
		t.Browser = FindBrowser()
	}
	if t.Ghostscript == "" {
		t.Ghostscript = DefaultGhostscript
	}
	return t
}

// FindBrowser returns the Chrome/Chromium binary to print with.
// ROD_BROWSER_BIN wins, then the platform lookup of go-rod, then
// "chromium" from PATH.
func FindBrowser() string {
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		return bin
	}
	if path, ok := launcher.LookPath(); ok {
		return path
	}
	return DefaultBrowser
}

// browserArgs builds the headless print command. The ?print-pdf query
// switches reveal.js to one slide per page.
func browserArgs(bin, htmlPath, pdfPath string) ([]string, error) {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, err
	}
	return []string{
		bin,
		"--no-sandbox",
		"--headless",
		"--disable-gpu",
		"--disable-software-rasterizer",
		"--hide-scrollbars",
		"--virtual-time-budget=" + virtualTimeBudget,
		"--run-all-compositor-stages-before-draw",
		"--print-to-pdf=" + pdfPath,
		FileURL(abs) + "?print-pdf",
	}, nil
}
