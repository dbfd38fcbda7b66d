package main

import (
	"fmt"

	"github.com/kballard/go-shellquote"

	slidefactory "github.com/alnah/go-slidefactory"
)

// runInstall copies the running installation to a new path: install PATH.
func runInstall(args []string, env *Environment) error {
	f := &cliFlags{}
	fs := buildInstallFlagSet(f, env.Stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: install needs exactly one PATH, got %d argument(s)", ErrUsage, len(positional))
	}

	cfg, err := loadConfig(fs, f)
	if err != nil {
		return err
	}
	src, err := resolveInstallation(cfg, env)
	if err != nil {
		return err
	}

	logger := newCLILogger(env, f.common.quiet, f.common.verbose)
	target, err := slidefactory.Install(slidefactory.InstallOptions{
		Source: src,
		Target: positional[0],
		DryRun: f.common.dryRun,
		Logger: logger,
	})
	if err != nil {
		return err
	}

	if f.common.dryRun {
		logger.Info("This was DRY RUN. No changes made.")
		return nil
	}
	logger.Info("")
	logger.Info("Slidefactory installed to " + target)
	logger.Info("Use it with:")
	logger.Info("  export SLIDEFACTORY_ROOT=" + shellquote.Join(target))
	logger.Info("  slidefactory --format html-local talk.md")
	return nil
}
