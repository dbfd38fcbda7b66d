package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"

	slidefactory "github.com/alnah/go-slidefactory"
)

// commands lists the subcommands in help order.
var commands = []string{"slides", "pages", "install", "doctor", "completion", "version", "help"}

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches the subcommand and returns the process exit code.
// Arguments that do not start with a command are slides arguments, so
// "slidefactory talk.md" converts talk.md.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	warnUnknownEnvVars(env.Stderr)

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	cmd, rest := "slides", args[1:]
	if isCommand(rest[0]) {
		cmd, rest = rest[0], rest[1:]
	}

	var err error
	switch cmd {
	case "slides":
		err = runSlides(ctx, rest, env)
	case "pages":
		err = runPages(ctx, rest, env)
	case "install":
		err = runInstall(rest, env)
	case "doctor":
		return runDoctorCmd(ctx, rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version":
		printVersion(env)
	case "help":
		err = runHelp(rest, env)
	}

	if errors.Is(err, errHelpShown) {
		return ExitSuccess
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			err = ErrInterrupted
		}
		reportError(env, err)
	}
	return exitCodeFor(err)
}

func isCommand(arg string) bool {
	return slices.Contains(commands, arg)
}

func printVersion(env *Environment) {
	fmt.Fprintf(env.Stdout, "slidefactory %s (reveal.js %s, MathJax %s)\n",
		slidefactory.Version, slidefactory.RevealJSVersion, slidefactory.MathJaxVersion)
}
