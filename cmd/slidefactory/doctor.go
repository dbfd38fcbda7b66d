package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	flag "github.com/spf13/pflag"

	slidefactory "github.com/alnah/go-slidefactory"
	"github.com/alnah/go-slidefactory/internal/config"
	"github.com/alnah/go-slidefactory/internal/hints"
)

// doctorResult holds all diagnostic information.
type doctorResult struct {
	Status       string      `json:"status"` // "ready", "warnings", "errors"
	Installation installInfo `json:"installation"`
	Tools        []toolInfo  `json:"tools"`
	Env          envInfo     `json:"environment"`
	Warnings     []string    `json:"warnings,omitempty"`
	Errors       []string    `json:"errors,omitempty"`
}

// installInfo describes the installation root.
type installInfo struct {
	Root         string   `json:"root"`
	Shared       bool     `json:"shared"`
	Themes       []string `json:"themes"`
	LocalAssets  bool     `json:"local_assets"`
	MissingFiles []string `json:"missing_files,omitempty"`
}

// toolInfo holds the detection result of one external program.
type toolInfo struct {
	Name     string `json:"name"`
	Found    bool   `json:"found"`
	Path     string `json:"path,omitempty"`
	Version  string `json:"version,omitempty"`
	Required string `json:"required_for"`
}

// envInfo holds environment detection results.
type envInfo struct {
	OS         string `json:"os"`
	Arch       string `json:"arch"`
	Container  bool   `json:"container"`
	BrowserBin string `json:"rod_browser_bin,omitempty"`
}

// runDoctorCmd executes the doctor command and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found.
func runDoctorCmd(ctx context.Context, args []string, env *Environment) int {
	f := &cliFlags{}
	fs := buildDoctorFlagSet(f, env.Stderr)
	if _, err := parseArgs(fs, args); err != nil {
		if errors.Is(err, errHelpShown) {
			return ExitSuccess
		}
		reportError(env, err)
		return ExitUsage
	}

	result := runDoctor(ctx, fs, f, env)

	if f.jsonOutput {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// runDoctor performs all diagnostic checks. The configuration is loaded
// the same way as for a conversion, so the report matches what a run sees.
func runDoctor(ctx context.Context, fs *flag.FlagSet, f *cliFlags, env *Environment) *doctorResult {
	result := &doctorResult{
		Status: "ready",
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			Container:  hints.IsInContainer(),
			BrowserBin: os.Getenv("ROD_BROWSER_BIN"),
		},
	}

	tools := slidefactory.Tools{}
	cfg, err := loadConfig(fs, f)
	if err != nil {
		result.Errors = append(result.Errors, err.Error())
	} else {
		checkInstallation(result, cfg, env)
		tools = slidefactory.Tools{Pandoc: cfg.Tools.Pandoc, Browser: cfg.Tools.Browser, Ghostscript: cfg.Tools.Ghostscript}
	}
	checkTools(ctx, result, tools, env)

	if len(result.Errors) > 0 {
		result.Status = "errors"
	} else if len(result.Warnings) > 0 {
		result.Status = "warnings"
	}
	return result
}

// checkInstallation reports the root, its mode, themes and bundled assets.
func checkInstallation(result *doctorResult, cfg *config.Config, env *Environment) {
	inst, err := resolveInstallation(cfg, env)
	if err != nil {
		result.Errors = append(result.Errors, err.Error()+hints.ForLocalResources())
		return
	}

	info := &result.Installation
	info.Root = inst.Root
	info.Shared = inst.Shared
	info.Themes = slidefactory.AvailableThemes(inst.ThemeRoot())
	info.MissingFiles = inst.MissingLocalAssets()
	info.LocalAssets = len(info.MissingFiles) == 0

	if len(info.Themes) == 0 {
		result.Errors = append(result.Errors, "no themes found in "+inst.ThemeRoot())
	}
	if !info.LocalAssets {
		result.Warnings = append(result.Warnings,
			"bundled assets missing; pdf, html-local and html-embedded output will fail")
	}
	if inst.Shared {
		result.Warnings = append(result.Warnings,
			"shared installation: html-local output needs 'slidefactory install PATH'")
	}
}

// checkTools looks up each external program and asks for its version.
// pandoc is required for every format; the browser and Ghostscript only
// for PDF output.
func checkTools(ctx context.Context, result *doctorResult, tools slidefactory.Tools, env *Environment) {
	browser := tools.Browser
	if browser == "" {
		browser = slidefactory.FindBrowser()
	}
	candidates := []struct {
		name     string
		bin      string
		fallback string
		required string
	}{
		{"pandoc", tools.Pandoc, slidefactory.DefaultPandoc, "all formats"},
		{"browser", browser, slidefactory.DefaultBrowser, "pdf"},
		{"ghostscript", tools.Ghostscript, slidefactory.DefaultGhostscript, "pdf"},
	}

	for _, c := range candidates {
		bin := c.bin
		if bin == "" {
			bin = c.fallback
		}
		info := toolInfo{Name: c.name, Required: c.required}

		path, err := exec.LookPath(bin)
		if err != nil {
			msg := fmt.Sprintf("%s not found (%s)", c.name, bin)
			if c.required == "all formats" {
				result.Errors = append(result.Errors, msg)
			} else {
				result.Warnings = append(result.Warnings, msg+"; "+c.required+" output will fail")
			}
			result.Tools = append(result.Tools, info)
			continue
		}

		info.Found = true
		info.Path = path
		if env.Runner != nil {
			if stdout, _, err := env.Runner.Run(ctx, path, "--version"); err == nil {
				info.Version = firstLine(stdout)
			} else {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("could not get %s version: %v", c.name, err))
			}
		}
		result.Tools = append(result.Tools, info)
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(line)
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "slidefactory doctor")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Installation")
	if r.Installation.Root != "" {
		mode := "portable"
		if r.Installation.Shared {
			mode = "shared"
		}
		fmt.Fprintf(w, "  [OK] Root: %s (%s)\n", r.Installation.Root, mode)
		fmt.Fprintf(w, "  [OK] Themes: %s\n", strings.Join(r.Installation.Themes, ", "))
		if r.Installation.LocalAssets {
			fmt.Fprintln(w, "  [OK] Bundled assets: complete")
		} else {
			for _, p := range r.Installation.MissingFiles {
				fmt.Fprintf(w, "  [WARN] Missing: %s\n", p)
			}
		}
	} else {
		fmt.Fprintln(w, "  [ERROR] Not found")
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "External programs")
	for _, t := range r.Tools {
		if !t.Found {
			fmt.Fprintf(w, "  [MISSING] %s (needed for %s)\n", t.Name, t.Required)
			continue
		}
		fmt.Fprintf(w, "  [OK] %s: %s\n", t.Name, t.Path)
		if t.Version != "" {
			fmt.Fprintf(w, "       %s\n", t.Version)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Environment")
	fmt.Fprintf(w, "  [OK] Platform: %s/%s\n", r.Env.OS, r.Env.Arch)
	if r.Env.Container {
		fmt.Fprintln(w, "  [OK] Container: detected")
	}
	if r.Env.BrowserBin != "" {
		fmt.Fprintf(w, "  [OK] ROD_BROWSER_BIN: %s\n", r.Env.BrowserBin)
	}
	fmt.Fprintln(w)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "Warnings:")
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  [WARN] %s\n", warn)
		}
		fmt.Fprintln(w)
	}

	if len(r.Errors) > 0 {
		fmt.Fprintln(w, "Errors:")
		for _, err := range r.Errors {
			fmt.Fprintf(w, "  [ERROR] %s\n", err)
		}
		fmt.Fprintln(w)
	}

	switch r.Status {
	case "ready":
		fmt.Fprintln(w, "Status: Ready to convert")
	case "warnings":
		fmt.Fprintln(w, "Status: Ready with warnings")
	case "errors":
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}
