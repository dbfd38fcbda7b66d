package main

import (
	"context"
	"fmt"

	slidefactory "github.com/alnah/go-slidefactory"
)

// runPages builds a course site: pages ABOUT OUTDIR.
func runPages(ctx context.Context, args []string, env *Environment) error {
	f := &cliFlags{}
	fs := buildPagesFlagSet(f, env.Stderr)
	positional, err := parseArgs(fs, args)
	if err != nil {
		return err
	}
	if len(positional) != 2 {
		return fmt.Errorf("%w: pages needs ABOUT and OUTDIR, got %d argument(s)", ErrUsage, len(positional))
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

	conv := newConverter(env, logger, s.tools, f.common.dryRun)
	err = conv.BuildPages(ctx, slidefactory.PagesOptions{
		Options:     s.options,
		About:       positional[0],
		OutputDir:   positional[1],
		WithPDF:     cfg.Pages.WithPDF,
		InfoContent: cfg.Pages.InfoContent,
		TemplateDir: cfg.Pages.Template,
	})
	if err != nil {
		return err
	}

	if f.common.dryRun {
		logger.Info("This was DRY RUN. No changes made.")
	}
	return nil
}
