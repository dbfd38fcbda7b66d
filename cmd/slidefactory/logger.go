package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	slidefactory "github.com/alnah/go-slidefactory"
)

// errorPrefix is red and bold on terminals; fatih/color drops the escape
// codes for non-terminals and when NO_COLOR is set.
var errorPrefix = color.New(color.FgRed, color.Bold).SprintFunc()

// cliLogger prints progress to stdout and errors to stderr.
type cliLogger struct {
	stdout  io.Writer
	stderr  io.Writer
	quiet   bool
	verbose bool
}

func newCLILogger(env *Environment, quiet, verbose bool) *cliLogger {
	return &cliLogger{stdout: env.Stdout, stderr: env.Stderr, quiet: quiet, verbose: verbose}
}

func (l *cliLogger) Info(msg string) {
	if !l.quiet {
		fmt.Fprintln(l.stdout, msg)
	}
}

func (l *cliLogger) Verbose(msg string) {
	if l.verbose && !l.quiet {
		fmt.Fprintln(l.stdout, msg)
	}
}

func (l *cliLogger) Error(msg string) {
	fmt.Fprintln(l.stderr, errorPrefix("error:"), msg)
}

var _ slidefactory.Logger = (*cliLogger)(nil)

// reportError prints a command failure. ToolError messages already carry
// the captured stderr of the program.
func reportError(env *Environment, err error) {
	newCLILogger(env, true, false).Error(err.Error())
}
