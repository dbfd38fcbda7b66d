package slidefactory

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// ---------------------------------------------------------------------------
// Fake CommandRunner
// ---------------------------------------------------------------------------

// fakeExitError mimics *exec.ExitError for ToolError exit codes.
type fakeExitError struct{ code int }

func (e fakeExitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e fakeExitError) ExitCode() int { return e.code }

// fakeRunner records invocations and imitates the output files of pandoc,
// chromium and gs so the pipeline can run end to end without them.
type fakeRunner struct {
	mu sync.Mutex

	calls [][]string

	// html is written by pandoc to its --output file.
	html string
	// failOn is the program base name that fails with exitCode and stderr.
	failOn   string
	exitCode int
	stderr   string

	// pdfmark captures the pdfmark file content seen by gs.
	pdfmark string
	// onCall runs before the fake acts on each invocation.
	onCall func(argv []string)
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	argv := append([]string{name}, args...)
	f.calls = append(f.calls, argv)
	if f.onCall != nil {
		f.onCall(argv)
	}

	if f.failOn != "" && filepath.Base(name) == f.failOn {
		return "", f.stderr, fakeExitError{f.exitCode}
	}

	for _, a := range args {
		switch {
		case strings.HasPrefix(a, "--output="):
			content := f.html
			if content == "" {
				content = "<html><body><section>slide</section></body></html>"
			}
			if err := os.WriteFile(strings.TrimPrefix(a, "--output="), []byte(content), 0o644); err != nil {
				return "", err.Error(), err
			}
		case strings.HasPrefix(a, "--print-to-pdf="):
			if err := os.WriteFile(strings.TrimPrefix(a, "--print-to-pdf="), []byte("%PDF-raw"), 0o644); err != nil {
				return "", err.Error(), err
			}
		case strings.HasPrefix(a, "-sOutputFile="):
			mark, err := os.ReadFile(args[len(args)-1])
			if err != nil {
				return "", err.Error(), err
			}
			f.pdfmark = string(mark)
			if err := os.WriteFile(strings.TrimPrefix(a, "-sOutputFile="), []byte("%PDF-final"), 0o644); err != nil {
				return "", err.Error(), err
			}
		}
	}
	return "ok", "", nil
}

func (f *fakeRunner) programs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		names = append(names, filepath.Base(c[0]))
	}
	return names
}

// ---------------------------------------------------------------------------
// Recording Logger
// ---------------------------------------------------------------------------

type recordingLogger struct {
	mu      sync.Mutex
	info    []string
	verbose []string
	errors  []string
}

func (l *recordingLogger) Info(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.info = append(l.info, msg)
}

func (l *recordingLogger) Verbose(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.verbose = append(l.verbose, msg)
}

func (l *recordingLogger) Error(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, msg)
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var testTools = Tools{Pandoc: "pandoc", Browser: "chromium", Ghostscript: "gs"}

// writeFile creates parent directories and writes content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// writeTheme creates a complete theme directory.
func writeTheme(t *testing.T, dir string) {
	t.Helper()
	writeFile(t, filepath.Join(dir, ThemeDefaultsFile), "from: markdown\nto: revealjs\n")
	writeFile(t, filepath.Join(dir, ThemeTemplateFile), "<html>$body$</html>\n")
	writeFile(t, filepath.Join(dir, ThemeStylesheetFile), "body { color: black; }\n")
}

// newTestInstallation builds a root with two themes and the bundled
// assets. shared marks it as the shared installation.
func newTestInstallation(t *testing.T, shared bool) *Installation {
	t.Helper()
	root := t.TempDir()
	writeTheme(t, filepath.Join(root, "theme", "csc-plain"))
	writeTheme(t, filepath.Join(root, "theme", "csc-2016"))
	writeFile(t, filepath.Join(root, "reveal.js-"+RevealJSVersion, "dist", "reveal.js"), "")
	writeFile(t, filepath.Join(root, "MathJax-"+MathJaxVersion, "es5", "tex-chtml-full.js"), "")
	writeFile(t, filepath.Join(root, "fonts", "fonts.css"), "")

	sharedRoot := filepath.Join(t.TempDir(), "elsewhere")
	if shared {
		sharedRoot = root
	}
	inst, err := NewInstallation(root, sharedRoot)
	if err != nil {
		t.Fatalf("NewInstallation() error = %v", err)
	}
	return inst
}

// builtinTheme resolves csc-plain from inst.
func builtinTheme(t *testing.T, inst *Installation) *Theme {
	t.Helper()
	theme, err := ResolveTheme(DefaultTheme, inst.ThemeRoot())
	if err != nil {
		t.Fatalf("ResolveTheme() error = %v", err)
	}
	return theme
}

// customTheme creates and resolves a theme outside the installation.
func customTheme(t *testing.T) *Theme {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "my-theme")
	writeTheme(t, dir)
	theme, err := ResolveTheme(dir, "")
	if err != nil {
		t.Fatalf("ResolveTheme() error = %v", err)
	}
	return theme
}

const talkSource = `---
title: Parallel <em>Programming</em>
author:
  - Ada
  - Grace
event: Summer School
---

# Intro
`
