package main

import (
	"context"

	slidefactory "github.com/alnah/go-slidefactory"
)

// runSlides converts the input files given on the command line.
func runSlides(ctx context.Context, args []string, env *Environment) error {
	f := &cliFlags{}
	fs := buildSlidesFlagSet(f, env.Stderr)
	inputs, err := parseArgs(fs, args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(fs, f)
	if err != nil {
		return err
	}
	s, err := resolveSettings(cfg, env)
	if err != nil {
		return err
	}

	logger := newCLILogger(env, f.common.quiet, f.common.verbose)
	logger.Info("Slidefactory " + slidefactory.Version)

	jobs, err := s.options.NewJobs(inputs)
	if err != nil {
		return err
	}
	logger.Verbose("Resources:")
	for _, line := range jobs[0].Resources.Lines() {
		logger.Verbose(line)
	}

	conv := newConverter(env, logger, s.tools, f.common.dryRun)
	if err := conv.ConvertAll(ctx, jobs); err != nil {
		return err
	}

	if f.common.dryRun {
		logger.Info("This was DRY RUN. No changes made.")
	}
	return nil
}
