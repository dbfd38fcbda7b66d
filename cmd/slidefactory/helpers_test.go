package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	slidefactory "github.com/alnah/go-slidefactory"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake runner and environment
// ---------------------------------------------------------------------------

type fakeExitError struct{ code int }

func (e fakeExitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }
func (e fakeExitError) ExitCode() int { return e.code }

// fakeRunner writes the output files pandoc, chromium and gs would write.
type fakeRunner struct {
	mu     sync.Mutex
	calls  [][]string
	failOn string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string{name}, args...))

	if f.failOn != "" && filepath.Base(name) == f.failOn {
		return "", name + ": boom", fakeExitError{1}
	}

	for _, a := range args {
		var out, content string
		switch {
		case strings.HasPrefix(a, "--output="):
			out, content = strings.TrimPrefix(a, "--output="), "<html><body><section>slide</section></body></html>"
		case strings.HasPrefix(a, "--print-to-pdf="):
			out, content = strings.TrimPrefix(a, "--print-to-pdf="), "%PDF-raw"
		case strings.HasPrefix(a, "-sOutputFile="):
			out, content = strings.TrimPrefix(a, "-sOutputFile="), "%PDF-final"
		default:
			continue
		}
		if err := os.WriteFile(out, []byte(content), 0o644); err != nil {
			return "", err.Error(), err
		}
	}
	return name + " 1.0\n", "", nil
}

func (f *fakeRunner) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

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

// newInstallationRoot creates a private installation with the csc-plain
// theme and the bundled assets.
func newInstallationRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	theme := filepath.Join(root, "theme", slidefactory.DefaultTheme)
	writeFile(t, filepath.Join(theme, slidefactory.ThemeDefaultsFile), "from: markdown\n")
	writeFile(t, filepath.Join(theme, slidefactory.ThemeTemplateFile), "<html>$body$</html>\n")
	writeFile(t, filepath.Join(theme, slidefactory.ThemeStylesheetFile), "body {}\n")
	writeFile(t, filepath.Join(root, "reveal.js-"+slidefactory.RevealJSVersion, "dist", "reveal.js"), "")
	writeFile(t, filepath.Join(root, "MathJax-"+slidefactory.MathJaxVersion, "es5", "tex-chtml-full.js"), "")
	writeFile(t, filepath.Join(root, "fonts", "fonts.css"), "")
	return root
}

// testEnv returns an environment rooted at root with captured output.
func testEnv(root string) (*Environment, *bytes.Buffer, *bytes.Buffer, *fakeRunner) {
	var stdout, stderr bytes.Buffer
	runner := &fakeRunner{}
	env := &Environment{
		Stdout:         &stdout,
		Stderr:         &stderr,
		Runner:         runner,
		ExecutableRoot: func() (string, error) { return root, nil },
	}
	return env, &stdout, &stderr, runner
}

const deckSource = `---
title: Intro to HPC
author: Ada
---

# Hello
`
