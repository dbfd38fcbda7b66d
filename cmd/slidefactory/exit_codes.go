package main

import (
	"errors"

	slidefactory "github.com/alnah/go-slidefactory"
)

// Exit codes for the slidefactory CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess     = 0   // Successful run
	ExitGeneral     = 1   // Setup, validation, conflict and asset errors
	ExitUsage       = 2   // Invalid flags or arguments
	ExitEngine      = 3   // pandoc failed
	ExitBrowser     = 4   // Chrome/Chromium failed
	ExitPostProcess = 5   // Ghostscript failed
	ExitInterrupted = 130 // SIGINT/SIGTERM
)

// Sentinel errors for CLI operations.
var (
	ErrUsage       = errors.New("usage error")
	ErrInterrupted = errors.New("interrupted")
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	if errors.Is(err, ErrInterrupted) {
		return ExitInterrupted
	}

	// External tool failures, one code per stage
	switch {
	case errors.Is(err, slidefactory.ErrEngineFailed):
		return ExitEngine
	case errors.Is(err, slidefactory.ErrBrowserFailed):
		return ExitBrowser
	case errors.Is(err, slidefactory.ErrPostProcessFailed):
		return ExitPostProcess
	}

	if errors.Is(err, ErrUsage) ||
		errors.Is(err, slidefactory.ErrNoInput) ||
		errors.Is(err, ErrUnsupportedShell) {
		return ExitUsage
	}

	return ExitGeneral
}
