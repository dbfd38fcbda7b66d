package main

import (
	"io"
	"os"

	slidefactory "github.com/alnah/go-slidefactory"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdout io.Writer
	Stderr io.Writer
	// Runner executes pandoc, the browser and Ghostscript. Nil means real
	// subprocesses.
	Runner slidefactory.CommandRunner
	// ExecutableRoot is the last fallback for the installation root.
	ExecutableRoot func() (string, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdout:         os.Stdout,
		Stderr:         os.Stderr,
		Runner:         &slidefactory.ExecRunner{},
		ExecutableRoot: slidefactory.ExecutableRoot,
	}
}

// newConverter builds the converter of one command run.
func newConverter(env *Environment, logger slidefactory.Logger, tools slidefactory.Tools, dryRun bool) *slidefactory.Converter {
	opts := []slidefactory.Option{
		slidefactory.WithLogger(logger),
		slidefactory.WithTools(tools),
		slidefactory.WithDryRun(dryRun),
	}
	if env.Runner != nil {
		opts = append(opts, slidefactory.WithRunner(env.Runner))
	}
	return slidefactory.NewConverter(opts...)
}
